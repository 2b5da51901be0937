package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyBoardToMoveIsX(t *testing.T) {
	var b Board
	assert.Equal(t, X, b.ToMove())
	assert.Equal(t, 9, len(b.Extrapolate()))
}

func TestExecuteThenRevertRoundTrips(t *testing.T) {
	var b Board
	ply := Move(4)
	next, err := b.ExecutePly(&ply)
	require.NoError(t, err)
	assert.Equal(t, X, next.Cells[4])
	assert.Equal(t, O, next.ToMove())

	back, err := next.RevertPly(&ply)
	require.NoError(t, err)
	assert.Equal(t, b, back)
}

func TestExecuteOccupiedCellErrors(t *testing.T) {
	var b Board
	ply := Move(0)
	b, err := b.ExecutePly(&ply)
	require.NoError(t, err)
	_, err = b.ExecutePly(&ply)
	assert.Error(t, err)
}

func TestCheckResolutionDetectsRowWin(t *testing.T) {
	b := Board{Cells: [9]Mark{
		X, X, X,
		O, O, Empty,
		Empty, Empty, Empty,
	}}
	res, ok := b.CheckResolution()
	require.True(t, ok)
	player, won := res.Winner()
	assert.True(t, won)
	assert.Equal(t, 0, player) // X moved first, so it is player 0
	assert.False(t, res.IsDraw())
}

func TestCheckResolutionDetectsDraw(t *testing.T) {
	b := Board{Cells: [9]Mark{
		X, O, X,
		X, O, O,
		O, X, X,
	}}
	res, ok := b.CheckResolution()
	require.True(t, ok)
	assert.True(t, res.IsDraw())
	_, won := res.Winner()
	assert.False(t, won)
}

func TestCheckResolutionUnresolvedMidGame(t *testing.T) {
	b := Board{Cells: [9]Mark{
		X, Empty, Empty,
		Empty, O, Empty,
		Empty, Empty, Empty,
	}}
	_, ok := b.CheckResolution()
	assert.False(t, ok)
}

func TestBoardIsUsableAsMapKey(t *testing.T) {
	seen := map[Board]int{}
	a := Board{Cells: [9]Mark{X, O, Empty, Empty, Empty, Empty, Empty, Empty, Empty}}
	b := Board{Cells: [9]Mark{X, O, Empty, Empty, Empty, Empty, Empty, Empty, Empty}}
	seen[a] = 1
	seen[b]++
	assert.Equal(t, 2, seen[a])
}
