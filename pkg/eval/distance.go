package eval

import (
	"github.com/hexmind/hexcore/pkg/heapq"
	"github.com/hexmind/hexcore/pkg/hexboard"
)

// Unreachable is a sentinel distance: a value strictly larger than
// any legal distance on the given board.
func Unreachable(n int) int {
	return n*n + 1
}

// Distance computes d(P): the minimum number of currently-empty cells
// that must be filled with P's color to connect P's two target edges,
// via Dijkstra over standard adjacency plus (optionally) bridge edges.
// Returns Unreachable(n) if no chain candidate survives.
func Distance(b *hexboard.Board, side hexboard.Side, bridgeEnabled bool) int {
	n := b.Size()
	sentinel := Unreachable(n)

	dist := make([]int, n*n)
	for i := range dist {
		dist[i] = sentinel
	}

	pq := heapq.NewMinHeap[int, hexboard.Square]()

	opp := side.Opponent().Cell()
	own := side.Cell()

	seed := func(sq hexboard.Square) {
		idx := sq.Row*n + sq.Col
		switch b.Occupant(sq) {
		case own:
			relax(dist, pq, idx, sq, 0)
		case hexboard.Empty:
			relax(dist, pq, idx, sq, 1)
		}
	}
	for i := 0; i < n; i++ {
		if side == hexboard.SideA {
			seed(hexboard.Square{Row: 0, Col: i})
		} else {
			seed(hexboard.Square{Row: i, Col: 0})
		}
	}

	raw := sentinel
	for pq.Len() > 0 {
		cost, sq, _ := pq.Pop()
		idx := sq.Row*n + sq.Col
		if cost > dist[idx] {
			continue // stale: a cheaper path already finalized this cell
		}

		if isGoalEdge(side, sq, n) {
			raw = cost
			break // stop at first goal-edge cell popped
		}

		curOwnedOrEmpty := b.Occupant(sq) == own || b.Occupant(sq) == hexboard.Empty

		for _, nb := range hexboard.Neighbors(n, sq) {
			nbCell := b.Occupant(nb)
			if nbCell == opp {
				continue // impassable
			}
			step := 1
			if nbCell == own {
				step = 0
			}
			nbIdx := nb.Row*n + nb.Col
			relax(dist, pq, nbIdx, nb, cost+step)
		}

		if bridgeEnabled && curOwnedOrEmpty {
			for _, edge := range hexboard.Bridges(n, sq) {
				if b.Occupant(edge.Target) != hexboard.Empty {
					continue
				}
				if b.Occupant(edge.Carrier1) != hexboard.Empty || b.Occupant(edge.Carrier2) != hexboard.Empty {
					continue
				}
				tIdx := edge.Target.Row*n + edge.Target.Col
				relax(dist, pq, tIdx, edge.Target, cost+1)
			}
		}
	}

	if raw != sentinel && raw <= 1 {
		return 0 // one move from winning counts as 0
	}
	return raw
}

func isGoalEdge(side hexboard.Side, sq hexboard.Square, n int) bool {
	if side == hexboard.SideA {
		return sq.Row == n-1
	}
	return sq.Col == n-1
}

func relax(dist []int, pq *heapq.MinHeap[int, hexboard.Square], idx int, sq hexboard.Square, cost int) {
	if cost < dist[idx] {
		dist[idx] = cost
		pq.Push(cost, sq)
	}
}
