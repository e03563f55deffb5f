// Package plan decides, per key of a source document, what work the
// translation engine must do: reuse a prior translation, translate a
// string, or pass a non-string value through unchanged.
package plan

import (
	"github.com/intellator/intellator/jsonfile"
)

// Action is the kind of work required for one key.
type Action int

const (
	// Reuse copies the prior output's value: the key was already translated.
	Reuse Action = iota
	// Translate sends the source string to the translation capability.
	Translate
	// Passthrough copies a non-string source value unchanged.
	Passthrough
)

// String returns a short label for progress and log output.
func (a Action) String() string {
	switch a {
	case Reuse:
		return "skipped"
	case Translate:
		return "translated"
	case Passthrough:
		return "passthrough"
	default:
		return "unknown"
	}
}

// Item is one unit of work. Value is the prior output's value for Reuse
// items (the prior translation is authoritative for keys it covers) and
// the source value otherwise.
type Item struct {
	Key    string
	Action Action
	Value  jsonfile.Value
}

// Build classifies every source key, in source order, against the prior
// output document. A nil prior is treated as empty (first run). Build is
// pure: it never touches either document.
func Build(source, prior *jsonfile.Document) []Item {
	items := make([]Item, 0, source.Len())

	for _, key := range source.Keys() {
		value, _ := source.Get(key)

		if prior != nil {
			if existing, ok := prior.Get(key); ok {
				items = append(items, Item{Key: key, Action: Reuse, Value: existing})
				continue
			}
		}

		if value.IsString() {
			items = append(items, Item{Key: key, Action: Translate, Value: value})
		} else {
			items = append(items, Item{Key: key, Action: Passthrough, Value: value})
		}
	}

	return items
}
