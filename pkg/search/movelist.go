package search

import (
	"fmt"

	"github.com/hexmind/hexcore/pkg/heapq"
	"github.com/hexmind/hexcore/pkg/hexboard"
)

// Priority represents a move ordering priority; higher explores first.
type Priority int32

// MoveList is a move priority queue used to order a node's children,
// backed by the shared generic heapq.MaxHeap.
type MoveList struct {
	h   *heapq.MaxHeap[Priority, hexboard.Move]
	n   int
	top hexboard.Move
}

// NewMoveList builds a move list ordered by fn, highest priority first.
func NewMoveList(moves []hexboard.Move, fn func(move hexboard.Move) Priority) *MoveList {
	h := heapq.NewMaxHeap[Priority, hexboard.Move]()
	for _, m := range moves {
		h.Push(fn(m), m)
	}
	return &MoveList{h: h, n: len(moves)}
}

// Next pops and returns the highest-priority remaining move.
func (ml *MoveList) Next() (hexboard.Move, bool) {
	_, m, ok := ml.h.Pop()
	if !ok {
		return hexboard.Move{}, false
	}
	ml.n--
	ml.top = m
	return m, true
}

// Size returns the number of moves not yet returned by Next.
func (ml *MoveList) Size() int {
	return ml.n
}

func (ml *MoveList) String() string {
	if ml.n == 0 {
		return "[size=0]"
	}
	return fmt.Sprintf("[top=%v, size=%v]", ml.top, ml.n)
}

// CenterBias ranks moves by proximity to the board center: the center
// cell participates in the most bridges and standard connections in
// both directions, so plain move ordering favors it absent any other
// information.
func CenterBias(n int) func(m hexboard.Move) Priority {
	cr, cc := (n-1)/2, (n-1)/2
	center := hexboard.Square{Row: cr, Col: cc}
	return func(m hexboard.Move) Priority {
		d := hexDistance(center, m.Square())
		return Priority(n - d)
	}
}

// hexDistance is the standard axial-coordinate hex distance between
// two squares on a board using the (row, col) convention shared with
// hexboard.Neighbors' direction set.
func hexDistance(a, b hexboard.Square) int {
	dr := a.Row - b.Row
	dc := a.Col - b.Col
	if (dr < 0) == (dc < 0) {
		return abs(dr + dc)
	}
	if abs(dr) > abs(dc) {
		return abs(dr)
	}
	return abs(dc)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// First boosts one move (typically the transposition table's recorded
// best move) to the front of the list, deferring to base for every
// other move.
type First struct {
	Move hexboard.Move
	Base func(m hexboard.Move) Priority
}

func (f First) Priority(m hexboard.Move) Priority {
	if m.Equals(f.Move) {
		return 1 << 20
	}
	return f.Base(m)
}
