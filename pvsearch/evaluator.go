package pvsearch

import "github.com/nullmove/pvsearch/pvsearch/eval"

// Evaluator scores a State from the perspective of the player to move.
// Implementations must be pure and stateless: the search calls Evaluate
// from every leaf and every terminal node in the tree and assumes no
// observable side effects.
//
// Evaluate is solely responsible for terminal scoring: a state whose
// CheckResolution is non-terminal may score anything domain-meaningful, but
// a terminal state must return eval.Lose().Shift(state.PlyCount()) for a
// decided game, or eval.Null() for a draw. The player to move at a terminal
// state can only be the one who just lost (the previous ply ended the
// game), so the mover's perspective score is always the loss value; shifting
// it by the (positive) ply count makes a loss suffered later score better
// than one suffered sooner, which negamax's negation turns into a preference
// for the quickest forced win over a slower one. Negamax never special-cases
// terminal states itself; it always defers to Evaluate.
type Evaluator[S any] interface {
	Evaluate(state S) eval.Score
}
