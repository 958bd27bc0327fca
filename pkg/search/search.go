// Package search implements iterative-deepening alpha-beta search over
// a hexboard.Board, backed by a transposition table and a connection-
// distance heuristic (see pkg/eval).
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hexmind/hexcore/pkg/eval"
	"github.com/hexmind/hexcore/pkg/hexboard"
)

// ErrHalted is returned by a Search call that observed cancellation
// mid-flight; callers must discard the (incomplete) result, never
// commit it.
var ErrHalted = errors.New("search: halted")

// PV represents the principal variation for some completed iteration.
type PV struct {
	Moves []hexboard.Move
	Score eval.Score
	Nodes uint64
	Depth int
	Time  time.Duration
}

func (p PV) String() string {
	pv := hexboard.FormatMoves(p.Moves, func(m hexboard.Move) string { return m.String() })
	return fmt.Sprintf("depth=%v score=%v nodes=%v time=%v pv=%v", p.Depth, p.Score, p.Nodes, p.Time, pv)
}

// BestMove returns the committed move, if any.
func (p PV) BestMove() (hexboard.Move, bool) {
	if len(p.Moves) == 0 {
		return hexboard.Move{}, false
	}
	return p.Moves[0], true
}

// Options hold per-search parameters the caller may vary.
type Options struct {
	// DepthLimit caps the iterative deepener. 0 == unbounded (practical cap MaxPracticalDepth).
	DepthLimit int
}

// MaxPracticalDepth is the practical cap applied when max_depth is
// configured as "unbounded".
const MaxPracticalDepth = 64

// Search is the alpha-beta kernel contract: search a fixed depth from
// the root and report the best line found.
type Search interface {
	Search(ctx context.Context, tt TranspositionTable, b *hexboard.Board, depth int, coef eval.Coefficients, bridgeEnabled bool) (nodes uint64, value eval.Score, pv []hexboard.Move, err error)
}

// Launcher generates iterative-deepening searches. Launch
// expects an exclusive (forked) board and returns a PV channel fed
// once per completed iteration; the channel closes when the search
// exhausts itself or is halted.
type Launcher interface {
	Launch(ctx context.Context, b *hexboard.Board, tt TranspositionTable, opt Options, coef eval.Coefficients, bridgeEnabled bool) (Handle, <-chan PV)
}

// Handle lets the caller stop a running search and retrieve the
// committed principal variation.
type Handle interface {
	// Halt stops the search, if running, and returns the last committed
	// PV. Idempotent.
	Halt() PV
}
