// Package ttable implements the search's transposition table: a map from
// state to cached search result, with age-based eviction so stale entries
// from long-finished positions are reclaimed over time.
//
// Grounded on the Rust zero_sum TranspositionTable (a HashMap keyed on the
// state itself, no separate hash type required the way Go's built-in map
// works too) and on macondo's TableEntry/TTExact/TTLower/TTUpper bound
// encoding and its memory-fraction-based sizing hint.
package ttable

import (
	"github.com/nullmove/pvsearch/pvsearch/eval"
	"github.com/pbnjay/memory"
)

// Bound records whether a cached value is a proved lower bound (fail-high
// cutoff), an exact score, or an upper bound (fail-low).
type Bound uint8

const (
	Lower Bound = iota
	Exact
	Upper
)

func (b Bound) String() string {
	switch b {
	case Lower:
		return "Lower"
	case Exact:
		return "Exact"
	case Upper:
		return "Upper"
	default:
		return "?"
	}
}

// Entry is a cached search result for one state.
type Entry[P any] struct {
	Depth  uint8
	Value  eval.Score
	Bound  Bound
	PVHead []P
	Age    uint8
}

// bytesPerEntryEstimate is a rough per-slot overhead used only to turn a
// memory fraction into a starting map capacity; Go maps grow dynamically
// regardless, so under- or over-estimating only affects how many times the
// map has to rehash early on.
const bytesPerEntryEstimate = 256

// Table is a transposition table keyed by state.
type Table[S comparable, P any] struct {
	entries map[S]Entry[P]
}

// Option configures a new Table.
type Option func(*options)

type options struct {
	initialCapacity int
}

// WithCapacity pre-sizes the table for roughly n entries.
func WithCapacity(n int) Option {
	return func(o *options) { o.initialCapacity = n }
}

// WithMemoryFraction pre-sizes the table to use roughly fraction of total
// system memory, estimated via github.com/pbnjay/memory, mirroring
// macondo's Reset(fractionOfMem, ...) sizing call.
func WithMemoryFraction(fraction float64) Option {
	return func(o *options) {
		total := memory.TotalMemory()
		if total == 0 || fraction <= 0 {
			return
		}
		budget := float64(total) * fraction
		o.initialCapacity = int(budget / bytesPerEntryEstimate)
	}
}

// New creates an empty transposition table.
func New[S comparable, P any](opts ...Option) *Table[S, P] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.initialCapacity < 0 {
		o.initialCapacity = 0
	}
	return &Table[S, P]{entries: make(map[S]Entry[P], o.initialCapacity)}
}

// Len returns the number of entries currently stored.
func (t *Table[S, P]) Len() int {
	return len(t.entries)
}

// Get returns the entry for state, if present.
func (t *Table[S, P]) Get(state S) (Entry[P], bool) {
	e, ok := t.entries[state]
	return e, ok
}

// Insert stores entry for state, seeding its age to 2, overwriting any
// existing entry unconditionally (no replacement scheme beyond
// last-write-wins, matching the Rust implementation this is grounded on).
func (t *Table[S, P]) Insert(state S, entry Entry[P]) {
	entry.Age = 2
	t.entries[state] = entry
}

// Clear discards every stored entry.
func (t *Table[S, P]) Clear() {
	clear(t.entries)
}

// AgeAndEvict decrements every entry's age by one, and removes entries
// that were already at age 0 (rather than letting age underflow). Called
// once at the start of every top-level Search.Run.
func (t *Table[S, P]) AgeAndEvict() {
	forget := make([]S, 0, len(t.entries)/5)
	for key, entry := range t.entries {
		if entry.Age > 0 {
			entry.Age--
			t.entries[key] = entry
		} else {
			forget = append(forget, key)
		}
	}
	for _, key := range forget {
		delete(t.entries, key)
	}
}

// Usable reports whether entry can be used to resolve a probe at the given
// search depth and window, per the bound semantics in spec.md §4.4:
// Exact entries are always usable once deep enough, Lower entries usable
// as a beta-like cutoff, Upper entries usable as an alpha-like cutoff, and
// terminal (is-end) Exact values are usable regardless of stored depth.
func (e Entry[P]) Usable(requiredDepth uint8, alpha, beta eval.Score) bool {
	if e.Bound == Exact && e.Value.IsEnd() {
		return true
	}
	if e.Depth < requiredDepth {
		return false
	}
	switch e.Bound {
	case Exact:
		return true
	case Lower:
		return e.Value >= beta
	case Upper:
		return e.Value < alpha
	default:
		return false
	}
}
