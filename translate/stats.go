package translate

import (
	"encoding/json"
	"time"
)

// Bucket is one statistics category: the keys that fell into it, in
// worklist (source document) order. The count is always the list length.
type Bucket struct {
	Keys []string
}

func (b *Bucket) add(key string) {
	b.Keys = append(b.Keys, key)
}

// Count returns the number of keys in the bucket.
func (b Bucket) Count() int {
	return len(b.Keys)
}

// MarshalJSON emits {"count": N, "keys": [...]} with keys never null.
func (b Bucket) MarshalJSON() ([]byte, error) {
	keys := b.Keys
	if keys == nil {
		keys = []string{}
	}
	return json.Marshal(struct {
		Count int      `json:"count"`
		Keys  []string `json:"keys"`
	}{Count: len(keys), Keys: keys})
}

// Stats is the full accounting of one run. Every key of the source
// document lands in exactly one bucket, so
// Skipped + Translated + Failed + Passthrough == TotalKeys.
type Stats struct {
	TotalKeys   int
	Skipped     Bucket
	Translated  Bucket
	Failed      Bucket
	Passthrough Bucket
	Elapsed     time.Duration
}

// Rate returns processed keys per second, or 0 for an instant run.
func (s *Stats) Rate() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.TotalKeys) / s.Elapsed.Seconds()
}

// MarshalJSON emits the machine-readable statistics record written by
// --stats-json.
func (s *Stats) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		TotalKeys      int     `json:"total_keys"`
		Skipped        Bucket  `json:"skipped"`
		Translated     Bucket  `json:"translated"`
		Failed         Bucket  `json:"failed"`
		Passthrough    Bucket  `json:"passthrough"`
		ElapsedSeconds float64 `json:"elapsed_seconds"`
	}{
		TotalKeys:      s.TotalKeys,
		Skipped:        s.Skipped,
		Translated:     s.Translated,
		Failed:         s.Failed,
		Passthrough:    s.Passthrough,
		ElapsedSeconds: s.Elapsed.Seconds(),
	})
}
