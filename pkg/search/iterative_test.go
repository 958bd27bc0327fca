package search_test

import (
	"context"
	"testing"
	"time"

	"github.com/hexmind/hexcore/pkg/eval"
	"github.com/hexmind/hexcore/pkg/hexboard"
	"github.com/hexmind/hexcore/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIterativeRespectsDepthLimit: the deepener never reports a PV
// past the configured limit.
func TestIterativeRespectsDepthLimit(t *testing.T) {
	b := emptyBoard(t, 4, 11, hexboard.SideA)
	it := &search.Iterative{Root: search.AlphaBeta{}}

	_, out := it.Launch(context.Background(), b, search.NoTranspositionTable{}, search.Options{DepthLimit: 2}, eval.DefaultCoefficients, true)

	var last search.PV
	for pv := range out {
		last = pv
		assert.LessOrEqual(t, pv.Depth, 2)
	}
	assert.Equal(t, 2, last.Depth)
}

// TestIterativeCommitsOnlyCompleteIterations: halting mid-flight
// never yields a PV from an iteration that did not finish, only the
// last one that did (or none, if halted before depth 1 completes).
func TestIterativeCommitsOnlyCompleteIterations(t *testing.T) {
	b := emptyBoard(t, 7, 13, hexboard.SideA)
	it := &search.Iterative{Root: search.AlphaBeta{}}

	h, out := it.Launch(context.Background(), b, search.NoTranspositionTable{}, search.Options{DepthLimit: 0}, eval.DefaultCoefficients, true)

	// Let at least one shallow iteration land, then halt immediately.
	var seen int
	for pv := range out {
		seen++
		_ = pv
		if seen == 1 {
			break
		}
	}

	final := h.Halt()
	require.GreaterOrEqual(t, final.Depth, 1)

	// Halt is idempotent.
	again := h.Halt()
	assert.Equal(t, final, again)
}

// TestIterativeAccumulatesNodesAcrossIterations: the reported node
// count is the sum over every completed iteration, not just the
// deepest one.
func TestIterativeAccumulatesNodesAcrossIterations(t *testing.T) {
	b := emptyBoard(t, 3, 17, hexboard.SideA)
	it := &search.Iterative{Root: search.AlphaBeta{}}

	h, out := it.Launch(context.Background(), b, search.NoTranspositionTable{}, search.Options{DepthLimit: 3}, eval.DefaultCoefficients, true)
	var last search.PV
	for pv := range out {
		last = pv
	}
	h.Halt()

	var want uint64
	for depth := 1; depth <= 3; depth++ {
		ab := search.AlphaBeta{}
		nodes, _, _, err := ab.Search(context.Background(), search.NoTranspositionTable{}, b.Fork(), depth, eval.DefaultCoefficients, true)
		require.NoError(t, err)
		want += nodes
	}

	assert.Equal(t, want, last.Nodes, "node count must accumulate across depths 1..3, not just report the last iteration")
}

// TestIterativeHaltsOnForcedResult covers the short-circuit once a
// side's win is proven at full width: deeper iterations cannot change
// a proven forced outcome, so the deepener stops early.
func TestIterativeHaltsOnForcedResult(t *testing.T) {
	n := 4
	grid := make([]hexboard.Cell, n*n)
	for r := 0; r < n-1; r++ {
		grid[r*n+1] = hexboard.StoneA
	}
	zt := hexboard.NewZobristTable(n, 21)
	b, err := hexboard.NewBoardFromGrid(n, zt, grid, hexboard.SideA)
	require.NoError(t, err)

	it := &search.Iterative{Root: search.AlphaBeta{}}
	h, out := it.Launch(context.Background(), b, search.NoTranspositionTable{}, search.Options{DepthLimit: 0}, eval.DefaultCoefficients, true)

	deadline := time.After(2 * time.Second)
	var last search.PV
	done := false
	for !done {
		select {
		case pv, ok := <-out:
			if !ok {
				done = true
				break
			}
			last = pv
		case <-deadline:
			t.Fatal("iterative search did not converge on a forced win in time")
		}
	}

	assert.Equal(t, eval.WIN, last.Score)
	h.Halt()
}
