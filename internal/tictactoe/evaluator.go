package tictactoe

import "github.com/nullmove/pvsearch/pvsearch/eval"

var corners = [4]int{0, 2, 6, 8}

// CornerEvaluator scores a non-terminal board by counting occupied corners
// (excluding the center), X minus O, from the perspective of the player to
// move -- the seed evaluator spec.md's end-to-end scenarios are defined
// against. Terminal boards are scored per the Evaluator contract instead of
// the corner heuristic: a decided game returns the loss value shifted by
// the board's ply count (the player to move at a terminal board is always
// the one who just lost), and a drawn board returns eval.Null().
type CornerEvaluator struct{}

func (CornerEvaluator) Evaluate(b Board) eval.Score {
	if resolution, ok := b.CheckResolution(); ok {
		if resolution.IsDraw() {
			return eval.Null()
		}
		return eval.Lose().Shift(int32(b.PlyCount()))
	}

	diff := 0
	for _, i := range corners {
		switch b.Cells[i] {
		case X:
			diff++
		case O:
			diff--
		}
	}
	score := eval.Score(diff)
	if b.ToMove() == O {
		score = score.Neg()
	}
	return score
}
