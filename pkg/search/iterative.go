package search

import (
	"context"
	"sync"
	"time"

	"github.com/hexmind/hexcore/pkg/eval"
	"github.com/hexmind/hexcore/pkg/hexboard"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

// Iterative is a search harness implementing iterative deepening: it
// runs Root at depth 1, 2, 3, ... publishing a PV after each completed
// iteration, and commits nothing from an iteration that does not
// finish. Pacing is left entirely to the caller's context deadline or
// stop signal.
type Iterative struct {
	Root Search
}

// Launch implements the Launcher interface.
func (i *Iterative) Launch(ctx context.Context, b *hexboard.Board, tt TranspositionTable, opt Options, coef eval.Coefficients, bridgeEnabled bool) (Handle, <-chan PV) {
	out := make(chan PV, 1)
	h := &handle{
		init: iox.NewAsyncCloser(),
		quit: iox.NewAsyncCloser(),
		done: iox.NewAsyncCloser(),
	}
	go h.process(ctx, i.Root, b, tt, opt, coef, bridgeEnabled, out)

	return h, out
}

type handle struct {
	init, quit, done iox.AsyncCloser

	pv PV
	mu sync.Mutex
}

func (h *handle) process(ctx context.Context, root Search, b *hexboard.Board, tt TranspositionTable, opt Options, coef eval.Coefficients, bridgeEnabled bool, out chan PV) {
	defer h.done.Close()
	defer h.init.Close()
	defer close(out)

	limit := opt.DepthLimit
	if limit <= 0 || limit > MaxPracticalDepth {
		limit = MaxPracticalDepth
	}

	wctx, cancel := contextx.WithQuitCancel(ctx, h.quit.Closed())
	defer cancel()

	var totalNodes uint64

	for depth := 1; depth <= limit; depth++ {
		if h.quit.IsClosed() {
			return
		}

		start := time.Now()
		nodes, score, moves, err := root.Search(wctx, tt, b, depth, coef, bridgeEnabled)
		totalNodes += nodes
		if err != nil {
			// An incomplete iteration's moves and score are discarded,
			// but the nodes it explored still count toward the total
			// reported for this move call.
			h.mu.Lock()
			h.pv.Nodes = totalNodes
			h.mu.Unlock()
			return
		}

		pv := PV{
			Depth: depth,
			Nodes: totalNodes,
			Score: score,
			Moves: moves,
			Time:  time.Since(start),
		}

		logw.Debugf(ctx, "Searched %v: %v", b, pv)

		h.mu.Lock()
		h.pv = pv
		h.mu.Unlock()

		select {
		case <-out:
		default:
		}
		out <- pv

		h.init.Close()

		if score >= eval.WIN || score <= -eval.WIN {
			return // forced result found at full width; deeper search cannot improve it
		}
	}
}

func (h *handle) Halt() PV {
	<-h.init.Closed()
	h.quit.Close()
	<-h.done.Closed()

	h.mu.Lock()
	defer h.mu.Unlock()

	return h.pv
}
