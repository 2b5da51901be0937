// Package history implements the history heuristic: a table of per-ply
// cutoff counts used to order quiet moves at other nodes of the search
// tree.
//
// This mirrors the Rust zero_sum History (a BTreeMap<u64, u32> keyed by a
// single-value ply hash behind a manual Hasher) and zurichess's fixed-size
// historyTable. Go maps accept any comparable key directly, so the extra
// hashing indirection the Rust and C++ implementations need is unnecessary
// here: the ply value itself is the key.
package history

import "sort"

// Table tracks, for each ply, how many times it has caused a beta cutoff,
// weighted by search depth.
type Table[P comparable] struct {
	counts map[P]uint32
}

// New returns an empty history table.
func New[P comparable]() *Table[P] {
	return &Table[P]{counts: make(map[P]uint32)}
}

// Get returns the stored cutoff count for ply, or (0, false) if unknown.
func (t *Table[P]) Get(ply P) (uint32, bool) {
	v, ok := t.counts[ply]
	return v, ok
}

// Add increments ply's cutoff count by count.
func (t *Table[P]) Add(ply P, count uint32) {
	t.counts[ply] += count
}

// Clear discards all recorded counts. Called at the start of every
// top-level Search.Run.
func (t *Table[P]) Clear() {
	clear(t.counts)
}

// IsEmpty reports whether no ply has ever been recorded.
func (t *Table[P]) IsEmpty() bool {
	return len(t.counts) == 0
}

// SortInPlace sorts plies ascending by stored cutoff count (unknown plies
// count as 0), stably preserving the input order among ties. The
// PlyGenerator pops from the back, so the effective search order is
// descending by history score, i.e. best-ordered plies first.
func (t *Table[P]) SortInPlace(plies []P) {
	if t.IsEmpty() {
		return
	}
	sort.SliceStable(plies, func(i, j int) bool {
		ci, _ := t.Get(plies[i])
		cj, _ := t.Get(plies[j])
		return ci < cj
	})
}
