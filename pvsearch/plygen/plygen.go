// Package plygen orders the plies visited at a search node: the principal
// variation's ply first (if any), then every other legal ply in
// history-sorted order, with a one-time random shuffle to break ties.
package plygen

import (
	"github.com/nullmove/pvsearch/pvsearch/history"
	"lukechampine.com/frand"
)

// Sorter is the subset of the history table the generator needs.
type Sorter[P comparable] interface {
	SortInPlace(plies []P)
}

var _ Sorter[int] = (*history.Table[int])(nil)

// Order returns plies in search order: pvPly first (if non-nil), then the
// remainder of candidates shuffled once and sorted by history score
// (descending), with any occurrence of pvPly removed from the remainder so
// it is never visited twice.
//
// Grounded on the Rust PlyGenerator: it shuffles with a process-wide PRNG
// before the history sort to randomize ties, then serves plies back to
// front (history.SortInPlace is ascending, so reading from the back yields
// descending, i.e. best-scored-first).
func Order[P comparable](candidates []P, pvPly *P, hist Sorter[P]) []P {
	remainder := make([]P, len(candidates))
	copy(remainder, candidates)

	frand.Shuffle(len(remainder), func(i, j int) {
		remainder[i], remainder[j] = remainder[j], remainder[i]
	})
	hist.SortInPlace(remainder)

	ordered := make([]P, 0, len(remainder)+1)
	if pvPly != nil {
		ordered = append(ordered, *pvPly)
	}

	// Read back to front (descending history score) and skip the ply
	// already emitted as the principal ply.
	for i := len(remainder) - 1; i >= 0; i-- {
		if pvPly != nil && remainder[i] == *pvPly {
			continue
		}
		ordered = append(ordered, remainder[i])
	}

	return ordered
}
