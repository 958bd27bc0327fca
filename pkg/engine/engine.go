// Package engine wires board state, the transposition table and the
// iterative deepener into a single agent-facing surface: a named
// engine that is handed a position and a stop signal and returns a
// move.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/hexmind/hexcore/pkg/eval"
	"github.com/hexmind/hexcore/pkg/hexboard"
	"github.com/hexmind/hexcore/pkg/search"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
)

var version = build.NewVersion(0, 1, 0)

// Options are search creation options.
type Options struct {
	// Depth is the search depth limit. Zero means unbounded.
	Depth int
	// TTCapacity is the transposition table size in entries. Zero
	// disables the table.
	TTCapacity uint64
	// Coefficients are the heuristic weights.
	Coefficients eval.Coefficients
	// BridgeEnabled toggles bridge carrier edges.
	BridgeEnabled bool
}

func (o Options) String() string {
	return fmt.Sprintf("{depth=%v, tt=%v, coef=(%v,%v), bridges=%v}", o.Depth, o.TTCapacity, o.Coefficients.A, o.Coefficients.B, o.BridgeEnabled)
}

// DefaultOptions returns the engine's default search options.
func DefaultOptions() Options {
	return Options{
		Depth:         0,
		TTCapacity:    1 << 20,
		Coefficients:  eval.DefaultCoefficients,
		BridgeEnabled: true,
	}
}

// Engine encapsulates board state, search and evaluation behind the
// agent-to-harness surface: Name, Move, OnTimeout.
type Engine struct {
	name string
	size int

	launcher search.Launcher
	factory  search.TranspositionTableFactory
	zt       *hexboard.ZobristTable
	seed     uint64
	opts     Options

	b      *hexboard.Board
	tt     search.TranspositionTable
	active search.Handle
	mu     sync.Mutex
}

// Option is an engine construction option.
type Option func(*Engine)

// WithTable configures the transposition table factory.
func WithTable(factory search.TranspositionTableFactory) Option {
	return func(e *Engine) { e.factory = factory }
}

// WithOptions sets default runtime options.
func WithOptions(opts Options) Option {
	return func(e *Engine) { e.opts = opts }
}

// WithZobrist configures the engine to use the given seed instead of
// the default of zero.
func WithZobrist(seed uint64) Option {
	return func(e *Engine) { e.seed = seed }
}

// WithPersistentTable replaces the default in-memory transposition
// table with a BadgerDB-backed one rooted at path, so search results
// survive process restarts. Given the transaction cost per write,
// this trades hot-path speed for cross-session reuse; prefer it for
// an opening-book-style cache, not tight time controls.
func WithPersistentTable(path string) Option {
	return func(e *Engine) {
		e.factory = func(ctx context.Context, size uint64) search.TranspositionTable {
			tt, err := search.NewBadgerTranspositionTable(path)
			if err != nil {
				logw.Errorf(ctx, "Falling back to in-memory TT: %v", err)
				return search.NewTranspositionTable(ctx, size)
			}
			return tt
		}
	}
}

// New constructs an engine for an n*n board, starting with side A to
// move.
func New(ctx context.Context, name string, n int, root search.Search, opts ...Option) *Engine {
	e := &Engine{
		name:     name,
		size:     n,
		launcher: &search.Iterative{Root: root},
		factory:  search.NewTranspositionTable,
		opts:     DefaultOptions(),
	}
	for _, fn := range opts {
		fn(e)
	}
	e.zt = hexboard.NewZobristTable(n, e.seed)
	e.reset(ctx)

	logw.Infof(ctx, "Initialized engine: %v, options=%v", e.Name(), e.opts)
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Board returns a forked copy of the current position.
func (e *Engine) Board() *hexboard.Board {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.b.Fork()
}

// Reset restores an empty board with side A to move.
func (e *Engine) Reset(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.reset(ctx)
}

func (e *Engine) reset(ctx context.Context) {
	_, _ = e.haltSearchIfActive(ctx)

	e.b = hexboard.NewBoard(e.size, e.zt, hexboard.SideA)

	e.tt = search.NoTranspositionTable{}
	if e.opts.TTCapacity > 0 {
		e.tt = e.factory(ctx, e.opts.TTCapacity*40)
	}

	logw.Infof(ctx, "New board: %v", e.b)
}

// ApplyMove plays an external move (typically the opponent's) onto
// the live board.
func (e *Engine) ApplyMove(ctx context.Context, m hexboard.Move) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, _ = e.haltSearchIfActive(ctx)

	if !e.b.PushMove(m) {
		return fmt.Errorf("engine: illegal move %v", m)
	}
	logw.Infof(ctx, "Move %v: %v", m, e.b)
	return nil
}

// TakeBack undoes the latest move.
func (e *Engine) TakeBack(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, _ = e.haltSearchIfActive(ctx)

	m, ok := e.b.PopMove()
	if !ok {
		return fmt.Errorf("engine: no move to take back")
	}
	logw.Infof(ctx, "Takeback %v", m)
	return nil
}

// Move launches an iterative deepening search on the live position
// and blocks until either the search exhausts itself (forced result
// or depth limit) or stop fires, then returns the best committed move
// and its statistics. stop may be nil, in which case only the
// depth/result limit applies.
func (e *Engine) Move(ctx context.Context, stop <-chan struct{}) (hexboard.Move, search.PV, error) {
	e.mu.Lock()
	if e.active != nil {
		e.mu.Unlock()
		return hexboard.Move{}, search.PV{}, fmt.Errorf("engine: search already active")
	}

	b := e.b.Fork()
	opt := search.Options{DepthLimit: e.opts.Depth}
	handle, out := e.launcher.Launch(ctx, b, e.tt, opt, e.opts.Coefficients, e.opts.BridgeEnabled)
	e.active = handle
	e.mu.Unlock()

	var last search.PV
	if stop != nil {
		for {
			select {
			case pv, ok := <-out:
				if !ok {
					return e.commitMove(ctx, last)
				}
				last = pv
			case <-stop:
				last = handle.Halt()
				return e.commitMove(ctx, last)
			}
		}
	}
	for pv := range out {
		last = pv
	}
	return e.commitMove(ctx, last)
}

func (e *Engine) commitMove(ctx context.Context, pv search.PV) (hexboard.Move, search.PV, error) {
	e.mu.Lock()
	e.active = nil
	e.mu.Unlock()

	m, ok := pv.BestMove()
	if !ok {
		return hexboard.Move{}, pv, fmt.Errorf("engine: no move found")
	}
	if err := e.ApplyMove(ctx, m); err != nil {
		return hexboard.Move{}, pv, err
	}
	return m, pv, nil
}

// OnTimeout halts the active search, if any, and returns the best move
// and PV it had committed to. With no search active it returns the
// zero Move and an empty PV.
func (e *Engine) OnTimeout(ctx context.Context) (hexboard.Move, search.PV) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pv, _ := e.haltSearchIfActive(ctx)
	m, _ := pv.BestMove()
	return m, pv
}

// Halt stops the active search, if any, and returns its last
// committed PV.
func (e *Engine) Halt(ctx context.Context) (search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pv, ok := e.haltSearchIfActive(ctx)
	if !ok {
		return search.PV{}, fmt.Errorf("engine: no active search")
	}
	return pv, nil
}

func (e *Engine) haltSearchIfActive(ctx context.Context) (search.PV, bool) {
	if e.active != nil {
		pv := e.active.Halt()
		logw.Infof(ctx, "Search %v halted: %v", e.b, pv)

		e.active = nil
		return pv, true
	}
	return search.PV{}, false
}
