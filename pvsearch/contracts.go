package pvsearch

import "fmt"

// Ply is an opaque, comparable, stringable move descriptor. Go maps accept
// any comparable type directly as a key, so unlike the Rust contract this
// spec is grounded on, no separate Hash method is required: the ply value
// itself is its own key.
type Ply interface {
	comparable
	fmt.Stringer
}

// Resolution is a terminal verdict: either a winner index (0 is the player
// to move at ply 0) or a draw. The two are mutually exclusive.
type Resolution interface {
	// Winner returns the winning player's index and true, or (0, false) if
	// this resolution is not a win.
	Winner() (player int, ok bool)
	IsDraw() bool
}

// State is a game position. Implementations must be cheap to copy by value
// (Go's value semantics already give the allocation-avoidance the Rust
// contract's execute_ply_preallocated buys explicitly; see DESIGN.md).
//
// Implementations must hash and compare equal across transposed positions
// that differ only in raw ply count, keeping at most its parity (the side to
// move): hashing board-plus-side-to-move,
// not the raw ply count, is what makes the transposition table effective.
type State[S any, P Ply, R Resolution] interface {
	comparable
	fmt.Stringer

	// PlyCount returns the number of plies played so far.
	PlyCount() int

	// Extrapolate enumerates every legal ply from this state. It may
	// return empty only once CheckResolution reports a result. A
	// non-terminal state must extrapolate at least one ply.
	Extrapolate() []P

	// ExecutePly returns the state reached by playing ply, or the null
	// move if ply is nil. It must not mutate the receiver.
	ExecutePly(ply *P) (S, error)

	// RevertPly returns the predecessor state that ply was played from,
	// i.e. the inverse of ExecutePly. It must not mutate the receiver.
	RevertPly(ply *P) (S, error)

	// CheckResolution reports the terminal verdict, if any.
	CheckResolution() (R, bool)

	// NullMoveAllowed reports whether a null-move search optimization may
	// be attempted from this state. Reserved; unused by this engine.
	NullMoveAllowed() bool
}

// ExecutePlies executes each ply in plies on the result of the previous
// one, starting from state. Derivable from ExecutePly, per the contract.
func ExecutePlies[S State[S, P, R], P Ply, R Resolution](state S, plies []P) (S, error) {
	for i := range plies {
		next, err := state.ExecutePly(&plies[i])
		if err != nil {
			var zero S
			return zero, fmt.Errorf("execute ply %d (%v): %w", i, plies[i], err)
		}
		state = next
	}
	return state, nil
}
