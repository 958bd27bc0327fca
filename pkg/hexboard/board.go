package hexboard

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIllegalMove is returned by Place attempts on a non-empty cell or a
// terminal board; PushMove reports the same cases by returning false.
var ErrIllegalMove = errors.New("hexboard: illegal move")

// undo records the minimum state needed to reverse a single PushMove,
// kept as a flat stack since Hex placements never need positional
// history beyond hash/turn/result (no repetition or no-progress
// rules, and no draws).
type undo struct {
	move       Move
	prevTurn   Side
	prevHash   ZobristHash
	prevResult Result
}

// Board is a mutable Hex board: occupancy, side to move, incremental
// Zobrist hash, and cached terminal/winner state. Not thread-safe;
// callers needing an independent copy use Fork. Apply/undo (PushMove/
// PopMove) is the primary mutation path used by search, trading one
// allocation per node for a handful of XORs; Place offers a logically
// immutable view for callers outside the search hot path.
type Board struct {
	zt     *ZobristTable
	n      int
	cells  []Cell
	turn   Side
	hash   ZobristHash
	result Result
	stack  []undo
}

// NewBoard returns an empty n*n board with the given side to move.
func NewBoard(n int, zt *ZobristTable, turn Side) *Board {
	cells := make([]Cell, n*n)
	return &Board{
		zt:    zt,
		n:     n,
		cells: cells,
		turn:  turn,
		hash:  zt.Hash(cells, turn),
	}
}

// NewBoardFromGrid returns a board seeded with the given row-major
// occupancy grid (length n*n) and side to move, recomputing winner
// state for both sides. Used by tests to pin scenario positions.
func NewBoardFromGrid(n int, zt *ZobristTable, grid []Cell, turn Side) (*Board, error) {
	if len(grid) != n*n {
		return nil, fmt.Errorf("hexboard: grid has %v cells, want %v", len(grid), n*n)
	}
	cells := make([]Cell, len(grid))
	copy(cells, grid)

	b := &Board{
		zt:    zt,
		n:     n,
		cells: cells,
		turn:  turn,
		hash:  zt.Hash(cells, turn),
	}
	if b.checkWin(SideA) {
		b.result = Result{Outcome: Won, Winner: SideA}
	} else if b.checkWin(SideB) {
		b.result = Result{Outcome: Won, Winner: SideB}
	}
	return b, nil
}

// Size returns N.
func (b *Board) Size() int {
	return b.n
}

// Occupant returns the cell's occupancy. Traps (panics) on out-of-range
// coordinates.
func (b *Board) Occupant(sq Square) Cell {
	if !inBounds(b.n, sq) {
		panic(fmt.Sprintf("hexboard: square %v out of range for size %v", sq, b.n))
	}
	return b.cells[b.index(sq)]
}

func (b *Board) index(sq Square) int {
	return sq.Row*b.n + sq.Col
}

// SideToMove returns the side to move.
func (b *Board) SideToMove() Side {
	return b.turn
}

// Hash returns the current Zobrist hash.
func (b *Board) Hash() ZobristHash {
	return b.hash
}

// IsTerminal reports whether a side has completed its connection.
func (b *Board) IsTerminal() bool {
	return b.result.Outcome == Won
}

// Winner returns the winning side. Only valid when IsTerminal.
func (b *Board) Winner() Side {
	return b.result.Winner
}

// LegalMoves enumerates every empty cell in row-major order; the
// stable order matters for determinism and move ordering.
func (b *Board) LegalMoves() []Move {
	moves := make([]Move, 0, len(b.cells))
	for r := 0; r < b.n; r++ {
		base := r * b.n
		for c := 0; c < b.n; c++ {
			if b.cells[base+c] == Empty {
				moves = append(moves, Move{Row: r, Col: c})
			}
		}
	}
	return moves
}

// PushMove attempts to place a stone of the side to move. Returns
// false (no mutation) if the cell is occupied or the board is already
// terminal.
func (b *Board) PushMove(m Move) bool {
	if b.result.Outcome == Won {
		return false
	}
	sq := m.Square()
	if !inBounds(b.n, sq) {
		return false
	}
	idx := b.index(sq)
	if b.cells[idx] != Empty {
		return false
	}

	mover := b.turn
	u := undo{
		move:       m,
		prevTurn:   b.turn,
		prevHash:   b.hash,
		prevResult: b.result,
	}

	b.cells[idx] = mover.Cell()
	newTurn := mover.Opponent()
	b.hash = b.zt.Place(b.hash, sq, mover, b.turn, newTurn)
	b.turn = newTurn

	if b.checkWin(mover) {
		b.result = Result{Outcome: Won, Winner: mover}
	}

	b.stack = append(b.stack, u)
	return true
}

// PopMove reverses the last PushMove. Returns false if there is none.
func (b *Board) PopMove() (Move, bool) {
	if len(b.stack) == 0 {
		return Move{}, false
	}
	u := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]

	idx := b.index(u.move.Square())
	b.cells[idx] = Empty
	b.turn = u.prevTurn
	b.hash = u.prevHash
	b.result = u.prevResult
	return u.move, true
}

// Place returns a fresh board with the move applied, leaving the
// receiver untouched. Fails with ErrIllegalMove on a non-empty cell
// or a terminal board.
func (b *Board) Place(m Move) (*Board, error) {
	fork := b.Fork()
	if !fork.PushMove(m) {
		return nil, ErrIllegalMove
	}
	return fork, nil
}

// Ply returns the number of stones placed so far by PushMove (the
// apply/undo stack depth, which Fork carries over), used by the
// transposition table as an aging signal. Stones given to
// NewBoardFromGrid are not counted.
func (b *Board) Ply() int {
	return len(b.stack)
}

// Fork returns an independent copy, cheap enough to hand to a new
// search goroutine.
func (b *Board) Fork() *Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return &Board{
		zt:     b.zt,
		n:      b.n,
		cells:  cells,
		turn:   b.turn,
		hash:   b.hash,
		result: b.result,
		stack:  append([]undo(nil), b.stack...),
	}
}

// checkWin flood-fills from mover's starting edge over mover-owned
// cells via standard adjacency (bridges do not count toward an actual
// win, only toward the heuristic distance in pkg/eval). Only the side
// that just moved can have newly won, so callers only ever check the
// mover and cache the result on PushMove.
func (b *Board) checkWin(mover Side) bool {
	n := b.n
	visited := make([]bool, len(b.cells))
	queue := make([]Square, 0, n)

	for i := 0; i < n; i++ {
		var sq Square
		if mover == SideA {
			sq = Square{Row: 0, Col: i}
		} else {
			sq = Square{Row: i, Col: 0}
		}
		idx := b.index(sq)
		if b.cells[idx] == mover.Cell() {
			visited[idx] = true
			queue = append(queue, sq)
		}
	}

	for len(queue) > 0 {
		sq := queue[0]
		queue = queue[1:]

		if (mover == SideA && sq.Row == n-1) || (mover == SideB && sq.Col == n-1) {
			return true
		}
		for _, nb := range Neighbors(n, sq) {
			idx := b.index(nb)
			if !visited[idx] && b.cells[idx] == mover.Cell() {
				visited[idx] = true
				queue = append(queue, nb)
			}
		}
	}
	return false
}

func (b *Board) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "board{n=%v, turn=%v, hash=0x%x, result=%v}\n", b.n, b.turn, uint64(b.hash), b.result)
	for r := 0; r < b.n; r++ {
		sb.WriteString(strings.Repeat(" ", r))
		for c := 0; c < b.n; c++ {
			sb.WriteString(b.cells[r*b.n+c].String())
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
