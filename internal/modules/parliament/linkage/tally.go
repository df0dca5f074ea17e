package linkage

import (
	"sort"
	"sync"
)

// Tally accumulates the per-category data-quality counters a run reports at
// the end: malformed records, insert errors, unresolved references, ambiguous
// resolutions, rows written and rows deliberately skipped.
type Tally struct {
	mu           sync.Mutex
	malformed    map[string]int
	insertErrors map[string]int
	unresolved   map[string]int
	ambiguous    map[string]int
	written      map[string]int
	skipped      map[string]int
}

func NewTally() *Tally {
	return &Tally{
		malformed:    map[string]int{},
		insertErrors: map[string]int{},
		unresolved:   map[string]int{},
		ambiguous:    map[string]int{},
		written:      map[string]int{},
		skipped:      map[string]int{},
	}
}

func (t *Tally) add(m map[string]int, key string, n int) {
	if t == nil || n == 0 {
		return
	}
	t.mu.Lock()
	m[key] += n
	t.mu.Unlock()
}

func (t *Tally) Malformed(key string, n int) {
	if t != nil {
		t.add(t.malformed, key, n)
	}
}

func (t *Tally) InsertError(key string, n int) {
	if t != nil {
		t.add(t.insertErrors, key, n)
	}
}

func (t *Tally) Unresolved(key string, n int) {
	if t != nil {
		t.add(t.unresolved, key, n)
	}
}

func (t *Tally) Ambiguous(key string, n int) {
	if t != nil {
		t.add(t.ambiguous, key, n)
	}
}

func (t *Tally) Written(key string, n int) {
	if t != nil {
		t.add(t.written, key, n)
	}
}

func (t *Tally) Skipped(key string, n int) {
	if t != nil {
		t.add(t.skipped, key, n)
	}
}

// Report is an immutable snapshot of a Tally.
type Report struct {
	Malformed    map[string]int `json:"malformed"`
	InsertErrors map[string]int `json:"insert_errors"`
	Unresolved   map[string]int `json:"unresolved"`
	Ambiguous    map[string]int `json:"ambiguous"`
	Written      map[string]int `json:"written"`
	Skipped      map[string]int `json:"skipped"`
}

func (t *Tally) Report() Report {
	if t == nil {
		return Report{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return Report{
		Malformed:    copyCounts(t.malformed),
		InsertErrors: copyCounts(t.insertErrors),
		Unresolved:   copyCounts(t.unresolved),
		Ambiguous:    copyCounts(t.ambiguous),
		Written:      copyCounts(t.written),
		Skipped:      copyCounts(t.skipped),
	}
}

// Merge folds another report into this tally.
func (t *Tally) Merge(r Report) {
	for k, v := range r.Malformed {
		t.Malformed(k, v)
	}
	for k, v := range r.InsertErrors {
		t.InsertError(k, v)
	}
	for k, v := range r.Unresolved {
		t.Unresolved(k, v)
	}
	for k, v := range r.Ambiguous {
		t.Ambiguous(k, v)
	}
	for k, v := range r.Written {
		t.Written(k, v)
	}
	for k, v := range r.Skipped {
		t.Skipped(k, v)
	}
}

func (r Report) TotalInsertErrors() int { return sum(r.InsertErrors) }
func (r Report) TotalMalformed() int    { return sum(r.Malformed) }

// KV flattens the report into logger key/value pairs with stable ordering.
func (r Report) KV() []interface{} {
	var out []interface{}
	for _, sec := range []struct {
		prefix string
		m      map[string]int
	}{
		{"written", r.Written},
		{"malformed", r.Malformed},
		{"insert_error", r.InsertErrors},
		{"unresolved", r.Unresolved},
		{"ambiguous", r.Ambiguous},
		{"skipped", r.Skipped},
	} {
		keys := make([]string, 0, len(sec.m))
		for k := range sec.m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			out = append(out, sec.prefix+"."+k, sec.m[k])
		}
	}
	return out
}

func copyCounts(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func sum(m map[string]int) int {
	n := 0
	for _, v := range m {
		n += v
	}
	return n
}
