package hexboard_test

import (
	"testing"

	"github.com/hexmind/hexcore/pkg/hexboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushPopMove(t *testing.T) {
	zt := hexboard.NewZobristTable(5, 42)
	b := hexboard.NewBoard(5, zt, hexboard.SideA)

	initial := b.Hash()
	turn := b.SideToMove()

	ok := b.PushMove(hexboard.Move{Row: 2, Col: 2})
	require.True(t, ok)
	assert.Equal(t, hexboard.StoneA, b.Occupant(hexboard.Square{Row: 2, Col: 2}))
	assert.NotEqual(t, turn, b.SideToMove())
	assert.NotEqual(t, initial, b.Hash())

	m, ok := b.PopMove()
	require.True(t, ok)
	assert.Equal(t, hexboard.Move{Row: 2, Col: 2}, m)
	assert.Equal(t, hexboard.Empty, b.Occupant(hexboard.Square{Row: 2, Col: 2}))
	assert.Equal(t, turn, b.SideToMove())
	assert.Equal(t, initial, b.Hash())
}

func TestPushMoveRejectsOccupiedOrTerminal(t *testing.T) {
	zt := hexboard.NewZobristTable(5, 42)
	b := hexboard.NewBoard(5, zt, hexboard.SideA)

	require.True(t, b.PushMove(hexboard.Move{Row: 0, Col: 0}))
	assert.False(t, b.PushMove(hexboard.Move{Row: 0, Col: 0}), "cell occupied")

	grid := make([]hexboard.Cell, 25)
	for c := 0; c < 5; c++ {
		grid[2*5+c] = hexboard.StoneB
	}
	won, err := hexboard.NewBoardFromGrid(5, zt, grid, hexboard.SideA)
	require.NoError(t, err)
	require.True(t, won.IsTerminal())
	assert.False(t, won.PushMove(hexboard.Move{Row: 0, Col: 0}), "board terminal")
}

func TestPlaceIsImmutable(t *testing.T) {
	zt := hexboard.NewZobristTable(5, 42)
	b := hexboard.NewBoard(5, zt, hexboard.SideA)

	next, err := b.Place(hexboard.Move{Row: 1, Col: 1})
	require.NoError(t, err)

	assert.Equal(t, hexboard.Empty, b.Occupant(hexboard.Square{Row: 1, Col: 1}), "receiver must be untouched")
	assert.Equal(t, hexboard.StoneA, next.Occupant(hexboard.Square{Row: 1, Col: 1}))

	_, err = next.Place(hexboard.Move{Row: 1, Col: 1})
	assert.ErrorIs(t, err, hexboard.ErrIllegalMove)
}

func TestLegalMovesRowMajorOrder(t *testing.T) {
	zt := hexboard.NewZobristTable(3, 1)
	b := hexboard.NewBoard(3, zt, hexboard.SideA)
	require.True(t, b.PushMove(hexboard.Move{Row: 1, Col: 1}))

	moves := b.LegalMoves()
	require.Len(t, moves, 8)
	expected := []hexboard.Move{
		{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2},
		{Row: 1, Col: 0}, {Row: 1, Col: 2},
		{Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2},
	}
	assert.Equal(t, expected, moves)
}

func TestWinnerDetectionSideA(t *testing.T) {
	// A connects rows 0 and N-1: a straight column of A stones wins.
	zt := hexboard.NewZobristTable(5, 7)
	grid := make([]hexboard.Cell, 25)
	for r := 0; r < 4; r++ {
		grid[r*5+2] = hexboard.StoneA
	}
	b, err := hexboard.NewBoardFromGrid(5, zt, grid, hexboard.SideA)
	require.NoError(t, err)
	assert.False(t, b.IsTerminal())

	require.True(t, b.PushMove(hexboard.Move{Row: 4, Col: 2}))
	assert.True(t, b.IsTerminal())
	assert.Equal(t, hexboard.SideA, b.Winner())
}

func TestWinnerDetectionSideB(t *testing.T) {
	zt := hexboard.NewZobristTable(5, 7)
	grid := make([]hexboard.Cell, 25)
	for c := 0; c < 5; c++ {
		grid[2*5+c] = hexboard.StoneB
	}
	b, err := hexboard.NewBoardFromGrid(5, zt, grid, hexboard.SideA)
	require.NoError(t, err)
	assert.True(t, b.IsTerminal())
	assert.Equal(t, hexboard.SideB, b.Winner())
}

func TestForkIsIndependent(t *testing.T) {
	zt := hexboard.NewZobristTable(5, 3)
	b := hexboard.NewBoard(5, zt, hexboard.SideA)
	fork := b.Fork()

	require.True(t, fork.PushMove(hexboard.Move{Row: 0, Col: 0}))
	assert.Equal(t, hexboard.Empty, b.Occupant(hexboard.Square{Row: 0, Col: 0}))
	assert.Equal(t, hexboard.StoneA, fork.Occupant(hexboard.Square{Row: 0, Col: 0}))
}

func TestOccupantTrapsOutOfRange(t *testing.T) {
	zt := hexboard.NewZobristTable(5, 3)
	b := hexboard.NewBoard(5, zt, hexboard.SideA)
	assert.Panics(t, func() {
		b.Occupant(hexboard.Square{Row: 5, Col: 0})
	})
}
