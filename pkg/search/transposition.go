package search

import (
	"context"
	"fmt"
	"math/bits"
	"sync/atomic"
	"unsafe"

	"github.com/hexmind/hexcore/pkg/eval"
	"github.com/hexmind/hexcore/pkg/hexboard"
	"github.com/seekerror/logw"
)

// Bound represents the precision of a stored search value.
type Bound uint8

const (
	ExactBound Bound = iota
	LowerBound
	UpperBound
)

func (b Bound) String() string {
	switch b {
	case ExactBound:
		return "Exact"
	case LowerBound:
		return "Lower"
	case UpperBound:
		return "Upper"
	default:
		return "?"
	}
}

// TranspositionTable maps Zobrist keys to previously computed search
// results. Must be thread-safe; the full key is always stored and
// verified on read — a matching short key or index alone is never
// sufficient.
type TranspositionTable interface {
	// Read returns the bound, depth, value and best move for the given
	// position hash, if present.
	Read(hash hexboard.ZobristHash) (Bound, int, eval.Score, hexboard.Move, bool)
	// Write stores the entry, subject to the table's replacement policy.
	// ply is the number of stones placed when the entry was produced,
	// used as a tie-breaking aging signal.
	Write(hash hexboard.ZobristHash, bound Bound, ply, depth int, value eval.Score, move hexboard.Move) bool

	// Size returns the size of the table in bytes.
	Size() uint64
	// Used returns the utilization as a fraction in [0;1].
	Used() float64
}

// TranspositionTableFactory builds a table of the requested capacity
// in bytes.
type TranspositionTableFactory func(ctx context.Context, size uint64) TranspositionTable

// metadata captures node metadata besides the value itself.
type metadata struct {
	bound      Bound
	move       hexboard.Move
	ply, depth uint16
}

// node is one stored search result.
type node struct {
	hash  hexboard.ZobristHash // full key, verified on every read
	value eval.Score
	md    metadata
}

// table is an open-addressed, power-of-two-capacity transposition
// table using atomic pointer swaps.
type table struct {
	slots []*node
	mask  uint64
	used  uint64
}

// NewTranspositionTable allocates a table sized to the nearest power
// of two entries that fit within size bytes.
func NewTranspositionTable(ctx context.Context, size uint64) TranspositionTable {
	const entrySize = 40 // bytes/slot, approx: pointer + node fields
	n := uint64(1)
	if size > entrySize {
		n = uint64(1) << (63 - bits.LeadingZeros64(size/entrySize))
	}

	logw.Infof(ctx, "Allocating %vB TT with %v entries", size, n)

	return &table{
		slots: make([]*node, n),
		mask:  n - 1,
	}
}

// NewTranspositionTableWithCapacity allocates exactly capacity entries
// (capacity must be a power of two), taking an entry count directly
// instead of a byte budget.
func NewTranspositionTableWithCapacity(ctx context.Context, capacity uint64) (TranspositionTable, error) {
	if capacity == 0 || capacity&(capacity-1) != 0 {
		return nil, fmt.Errorf("search: tt_capacity must be a power of two, got %v", capacity)
	}
	logw.Infof(ctx, "Allocating TT with %v entries", capacity)
	return &table{
		slots: make([]*node, capacity),
		mask:  capacity - 1,
	}, nil
}

func (t *table) Size() uint64 {
	return uint64(len(t.slots)) * 40
}

func (t *table) Used() float64 {
	return float64(t.used) / float64(len(t.slots))
}

func (t *table) Read(hash hexboard.ZobristHash) (Bound, int, eval.Score, hexboard.Move, bool) {
	key := uint64(hash) & t.mask
	addr := (*unsafe.Pointer)(unsafe.Pointer(&t.slots[key]))

	ptr := (*node)(atomic.LoadPointer(addr))
	if ptr != nil && hash == ptr.hash {
		return ptr.md.bound, int(ptr.md.depth), ptr.value, ptr.md.move, true
	}
	return 0, 0, 0, hexboard.Move{}, false
}

func (t *table) Write(hash hexboard.ZobristHash, bound Bound, ply, depth int, value eval.Score, move hexboard.Move) bool {
	key := uint64(hash) & t.mask
	addr := (*unsafe.Pointer)(unsafe.Pointer(&t.slots[key]))

	fresh := &node{
		hash:  hash,
		value: value,
		md: metadata{
			bound: bound,
			move:  move,
			ply:   uint16(ply),
			depth: uint16(depth),
		},
	}

	for {
		ptr := (*node)(atomic.LoadPointer(addr))
		if ptr != nil && rank(ptr) > rank(fresh) {
			return false // keep the higher-ranked existing entry
		}
		if atomic.CompareAndSwapPointer(addr, unsafe.Pointer(ptr), unsafe.Pointer(fresh)) {
			if ptr == nil {
				t.used++
			}
			return true
		} // else: lost the race, retry
	}
}

func (t *table) String() string {
	return fmt.Sprintf("TT[%v @ %v%%]", t.Size(), int(100*t.Used()))
}

// rank implements a depth-preferred-with-aging replacement policy as
// ply + 2*depth: one ply of depth weighs as much as two plies of game
// progress, so among equal depths the later ply ranks higher, and a
// shallower entry outranks a deeper one only when it was produced
// more than twice the depth difference plies later.
func rank(n *node) uint16 {
	if n == nil {
		return 0
	}
	return n.md.ply + (n.md.depth << 1)
}

// NoTranspositionTable is a Nop implementation, used when tt_capacity
// is configured to disable the table entirely.
type NoTranspositionTable struct{}

func (NoTranspositionTable) Read(hexboard.ZobristHash) (Bound, int, eval.Score, hexboard.Move, bool) {
	return 0, 0, 0, hexboard.Move{}, false
}

func (NoTranspositionTable) Write(hexboard.ZobristHash, Bound, int, int, eval.Score, hexboard.Move) bool {
	return false
}

func (NoTranspositionTable) Size() uint64 { return 0 }
func (NoTranspositionTable) Used() float64 { return 0 }
