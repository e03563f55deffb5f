// Package jsonfile implements reading and writing of flat JSON locale files.
//
// The expected file format is a single top-level object whose values are
// translatable strings (or other JSON scalars carried through untouched):
//
//	{
//	    "greeting": "Hello",
//	    "farewell": "Goodbye",
//	    "version": 42
//	}
//
// Key order is significant: it defines both iteration order and the order
// of the written output, so documents preserve the order found in the file.
package jsonfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotObject is returned when the top-level JSON value is not an object.
var ErrNotObject = errors.New("input is not a JSON object")

// Value is a single document value: either a translatable string or an
// opaque non-string JSON value (number, bool, null, array, object).
type Value struct {
	Str string
	// Raw holds the encoded form of a non-string value. Nil means Str is
	// the value.
	Raw json.RawMessage
}

// String returns a Value wrapping a translatable string.
func String(s string) Value {
	return Value{Str: s}
}

// RawValue returns a Value carrying non-string JSON untouched.
func RawValue(raw json.RawMessage) Value {
	return Value{Raw: raw}
}

// IsString reports whether the value is a translatable string.
func (v Value) IsString() bool {
	return v.Raw == nil
}

// Document is an insertion-ordered mapping from key to value.
type Document struct {
	keys   []string
	values map[string]Value
}

// New returns an empty document.
func New() *Document {
	return &Document{values: make(map[string]Value)}
}

// Len returns the number of keys.
func (d *Document) Len() int {
	return len(d.keys)
}

// Keys returns the keys in document order. The returned slice is shared;
// callers must not modify it.
func (d *Document) Keys() []string {
	return d.keys
}

// Has reports whether key is present.
func (d *Document) Has(key string) bool {
	_, ok := d.values[key]
	return ok
}

// Get returns the value for key.
func (d *Document) Get(key string) (Value, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Set stores a value, appending the key to the order if it is new.
func (d *Document) Set(key string, v Value) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = v
}

// ParseFile reads and parses a flat JSON locale file.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

// Parse parses flat JSON locale data, preserving key order.
//
// The decoder walks the token stream so that key order survives; a plain
// json.Unmarshal into a map would lose it.
func Parse(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	// Read opening brace.
	t, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	if delim, ok := t.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w (top-level value is %v)", ErrNotObject, t)
	}

	doc := New()

	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parsing JSON: %w", err)
		}
		key, ok := kt.(string)
		if !ok {
			return nil, fmt.Errorf("expected string key, got %T", kt)
		}

		// Decode the value as raw bytes; strings become Str, everything
		// else stays encoded.
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parsing value for key %q: %w", key, err)
		}
		if len(raw) > 0 && raw[0] == '"' {
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				return nil, fmt.Errorf("parsing string for key %q: %w", key, err)
			}
			doc.Set(key, String(s))
		} else {
			compact := &bytes.Buffer{}
			if err := json.Compact(compact, raw); err != nil {
				return nil, fmt.Errorf("parsing value for key %q: %w", key, err)
			}
			doc.Set(key, RawValue(json.RawMessage(compact.Bytes())))
		}
	}

	// Closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	return doc, nil
}

// WriteFile writes the document to path, creating parent directories.
func (d *Document) WriteFile(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Marshal produces 2-space-indented JSON with the document's key order.
// Non-ASCII characters are written literally, matching json.dump with
// ensure_ascii=false, so diffs stay readable.
func (d *Document) Marshal() ([]byte, error) {
	if len(d.keys) == 0 {
		return []byte("{}\n"), nil
	}

	var b strings.Builder
	b.WriteString("{\n")
	for i, k := range d.keys {
		v := d.values[k]
		b.WriteString("  ")
		b.WriteString(jsonString(k))
		b.WriteString(": ")
		if v.IsString() {
			b.WriteString(jsonString(v.Str))
		} else {
			indented := &bytes.Buffer{}
			if err := json.Indent(indented, v.Raw, "  ", "  "); err != nil {
				return nil, fmt.Errorf("encoding value for key %q: %w", k, err)
			}
			b.Write(indented.Bytes())
		}
		if i < len(d.keys)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString("}\n")

	return []byte(b.String()), nil
}

// jsonString returns a JSON-encoded string with non-ASCII kept literal.
// encoding/json does not escape non-ASCII; HTML escaping is turned off so
// characters like & and < also stay literal.
func jsonString(s string) string {
	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		// Encoding a string cannot fail; fall back to the raw text.
		return `"` + s + `"`
	}
	return strings.TrimSuffix(b.String(), "\n")
}
