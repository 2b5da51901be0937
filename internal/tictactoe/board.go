// Package tictactoe is a minimal reference game used exclusively to
// exercise and test the pvsearch engine. It plays the same role here that
// game/move/board play for the teacher's endgame/negamax solver: the engine
// package never assumes tic-tac-toe, and this package never assumes
// anything about the engine beyond the pvsearch contracts.
package tictactoe

import (
	"fmt"
	"strings"
)

// Mark is the content of one square.
type Mark uint8

const (
	Empty Mark = iota
	X
	O
)

func (m Mark) String() string {
	switch m {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return "."
	}
}

// Board is a 3x3 grid in row-major order. Deliberately, ply count is not a
// stored field: it is derived from the number of occupied cells, so two
// boards with identical cell contents compare equal regardless of how they
// were reached. That is the hash-equality requirement spec.md demands of
// every State implementation (ply count must collapse to the information
// that actually distinguishes positions), gotten for free here because
// tic-tac-toe's occupied-cell count already determines whose move it is.
type Board struct {
	Cells [9]Mark
}

// PlyCount is the number of marks placed so far.
func (b Board) PlyCount() int {
	n := 0
	for _, c := range b.Cells {
		if c != Empty {
			n++
		}
	}
	return n
}

// ToMove is X on even ply counts (including the empty board), O otherwise.
func (b Board) ToMove() Mark {
	if b.PlyCount()%2 == 0 {
		return X
	}
	return O
}

func (b Board) String() string {
	var rows [3]string
	for r := 0; r < 3; r++ {
		cells := make([]string, 3)
		for c := 0; c < 3; c++ {
			cells[c] = b.Cells[r*3+c].String()
		}
		rows[r] = strings.Join(cells, " ")
	}
	return strings.Join(rows[:], "\n")
}

// Move is a cell index in [0, 9).
type Move int

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)", int(m)/3, int(m)%3)
}

// Extrapolate returns every empty cell as a legal move.
func (b Board) Extrapolate() []Move {
	moves := make([]Move, 0, 9)
	for i, c := range b.Cells {
		if c == Empty {
			moves = append(moves, Move(i))
		}
	}
	return moves
}

// ExecutePly places the mark of the player to move at ply, returning the
// resulting board.
func (b Board) ExecutePly(ply *Move) (Board, error) {
	i := int(*ply)
	if i < 0 || i >= 9 {
		return Board{}, fmt.Errorf("move %d out of range", i)
	}
	if b.Cells[i] != Empty {
		return Board{}, fmt.Errorf("cell %d already occupied", i)
	}
	next := b
	next.Cells[i] = b.ToMove()
	return next, nil
}

// RevertPly clears the cell ply occupies, inverting ExecutePly.
func (b Board) RevertPly(ply *Move) (Board, error) {
	i := int(*ply)
	if i < 0 || i >= 9 {
		return Board{}, fmt.Errorf("move %d out of range", i)
	}
	if b.Cells[i] == Empty {
		return Board{}, fmt.Errorf("cell %d already empty", i)
	}
	prev := b
	prev.Cells[i] = Empty
	return prev, nil
}

// NullMoveAllowed is unused by the core search; always false here, per
// spec.md's reservation of the hook for a future extension.
func (b Board) NullMoveAllowed() bool {
	return false
}

var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// CheckResolution reports whether the board is terminal: three in a row for
// whichever mark just moved, or a full board with no line (a draw).
func (b Board) CheckResolution() (Resolution, bool) {
	for _, line := range lines {
		a, c, d := b.Cells[line[0]], b.Cells[line[1]], b.Cells[line[2]]
		if a != Empty && a == c && c == d {
			return Resolution{winner: a}, true
		}
	}
	if b.PlyCount() == 9 {
		return Resolution{draw: true}, true
	}
	return Resolution{}, false
}

// Resolution reports how a finished game ended.
type Resolution struct {
	winner Mark
	draw   bool
}

// Winner returns the index of the player whose move produced the terminal
// board, 0 for X (the player to move at ply 0) or 1 for O, and false if the
// game was a draw.
func (r Resolution) Winner() (player int, ok bool) {
	if r.winner == Empty {
		return 0, false
	}
	return int(r.winner) - 1, true
}

// IsDraw reports whether the game ended without a winner.
func (r Resolution) IsDraw() bool {
	return r.draw
}
