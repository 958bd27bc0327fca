package search

import (
	"context"

	"github.com/hexmind/hexcore/pkg/eval"
	"github.com/hexmind/hexcore/pkg/hexboard"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// negInf and posInf bound the fail-soft search window; they sit just
// outside WIN so a terminal score is always strictly more extreme
// than any heuristic value.
const (
	negInf = -(eval.WIN + 1)
	posInf = eval.WIN + 1
)

// AlphaBeta implements fixed-depth, fail-soft negamax alpha-beta
// search. There is no quiescence extension or pondering: Hex has no
// quiet/tactical split and no randomized move selection.
type AlphaBeta struct{}

// Search implements the Search interface.
func (AlphaBeta) Search(ctx context.Context, tt TranspositionTable, b *hexboard.Board, depth int, coef eval.Coefficients, bridgeEnabled bool) (uint64, eval.Score, []hexboard.Move, error) {
	run := &runAlphaBeta{tt: tt, b: b, coef: coef, bridgeEnabled: bridgeEnabled, rootPly: b.Ply()}
	score, pv := run.search(ctx, depth, negInf, posInf)
	if contextx.IsCancelled(ctx) {
		return run.nodes, 0, nil, ErrHalted
	}
	return run.nodes, score, pv, nil
}

type runAlphaBeta struct {
	tt            TranspositionTable
	b             *hexboard.Board
	coef          eval.Coefficients
	bridgeEnabled bool
	nodes         uint64
	rootPly       int
}

// search returns the fail-soft value for the side to move at the
// current node, and the principal variation realizing it (nil on a
// leaf or on a transposition table cutoff below the root; on
// cancellation, whatever line was best before it). The root never
// takes a table cutoff, so a completed search always reports a move.
func (m *runAlphaBeta) search(ctx context.Context, depth int, alpha, beta eval.Score) (eval.Score, []hexboard.Move) {
	if contextx.IsCancelled(ctx) {
		return 0, nil
	}

	if m.b.IsTerminal() {
		// Only the side that just moved can have won: a board is never
		// left terminal on the winner's own turn, so the side to move
		// here has lost.
		return -eval.WIN, nil
	}

	var best hexboard.Move
	hash := m.b.Hash()
	if bound, d, value, bm, ok := m.tt.Read(hash); ok {
		best = bm
		if d >= depth && m.b.Ply() > m.rootPly {
			switch {
			case bound == ExactBound:
				return value, nil
			case bound == LowerBound && value >= beta:
				return value, nil
			case bound == UpperBound && value <= alpha:
				return value, nil
			}
		}
	}

	if depth == 0 {
		m.nodes++
		value := eval.Crop(eval.Heuristic(m.b, m.b.SideToMove(), m.coef, m.bridgeEnabled))
		m.tt.Write(hash, ExactBound, m.b.Ply(), 0, value, hexboard.Move{})
		return value, nil
	}

	origAlpha := alpha
	value := negInf
	var pv []hexboard.Move

	priority := First{Move: best, Base: CenterBias(m.b.Size())}.Priority
	moves := NewMoveList(m.b.LegalMoves(), priority)

	for {
		move, ok := moves.Next()
		if !ok {
			break
		}
		if !m.b.PushMove(move) {
			continue
		}

		childValue, childPV := m.search(ctx, depth-1, beta.Negate(), alpha.Negate())
		childValue = childValue.Negate()

		m.b.PopMove()

		if contextx.IsCancelled(ctx) {
			return value, pv
		}

		if childValue > value {
			value = childValue
			best = move
			pv = append([]hexboard.Move{move}, childPV...)
		}
		if value > alpha {
			alpha = value
		}
		if alpha >= beta {
			break // beta cutoff
		}
	}

	bound := ExactBound
	switch {
	case value <= origAlpha:
		bound = UpperBound
	case value >= beta:
		bound = LowerBound
	}
	m.tt.Write(hash, bound, m.b.Ply(), depth, value, best)

	return value, pv
}
