package search

import (
	"encoding/binary"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/hexmind/hexcore/pkg/eval"
	"github.com/hexmind/hexcore/pkg/hexboard"
)

// BadgerTranspositionTable persists search results across runs using
// an embedded BadgerDB store. Unlike the in-memory table, every write
// costs a disk transaction, so this is meant for opening-book-style
// reuse between sessions rather than the search hot path; it is wired
// in as an explicit opt-in via engine.WithPersistentTable.
type BadgerTranspositionTable struct {
	db *badger.DB
}

// NewBadgerTranspositionTable opens (or creates) a BadgerDB store at
// path for use as a transposition table.
func NewBadgerTranspositionTable(path string) (*BadgerTranspositionTable, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("search: open badger TT at %v: %w", path, err)
	}
	return &BadgerTranspositionTable{db: db}, nil
}

// Close releases the underlying database handle.
func (t *BadgerTranspositionTable) Close() error {
	return t.db.Close()
}

func badgerKey(hash hexboard.ZobristHash) []byte {
	var k [8]byte
	binary.BigEndian.PutUint64(k[:], uint64(hash))
	return k[:]
}

// entry layout: bound(1) depth(2) value(4) move.Row(2) move.Col(2) = 11 bytes.
func encodeEntry(bound Bound, depth int, value eval.Score, move hexboard.Move) []byte {
	buf := make([]byte, 11)
	buf[0] = byte(bound)
	binary.BigEndian.PutUint16(buf[1:3], uint16(depth))
	binary.BigEndian.PutUint32(buf[3:7], uint32(value))
	binary.BigEndian.PutUint16(buf[7:9], uint16(move.Row))
	binary.BigEndian.PutUint16(buf[9:11], uint16(move.Col))
	return buf
}

func decodeEntry(buf []byte) (Bound, int, eval.Score, hexboard.Move, error) {
	if len(buf) != 11 {
		return 0, 0, 0, hexboard.Move{}, fmt.Errorf("search: corrupt TT entry (%v bytes)", len(buf))
	}
	bound := Bound(buf[0])
	depth := int(binary.BigEndian.Uint16(buf[1:3]))
	value := eval.Score(int32(binary.BigEndian.Uint32(buf[3:7])))
	move := hexboard.Move{
		Row: int(binary.BigEndian.Uint16(buf[7:9])),
		Col: int(binary.BigEndian.Uint16(buf[9:11])),
	}
	return bound, depth, value, move, nil
}

// Read implements TranspositionTable.
func (t *BadgerTranspositionTable) Read(hash hexboard.ZobristHash) (Bound, int, eval.Score, hexboard.Move, bool) {
	var bound Bound
	var depth int
	var value eval.Score
	var move hexboard.Move
	found := false

	_ = t.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(hash))
		if err != nil {
			return nil // not found, or any other lookup error: treat as a miss
		}
		return item.Value(func(val []byte) error {
			b, d, v, m, err := decodeEntry(val)
			if err != nil {
				return err
			}
			bound, depth, value, move, found = b, d, v, m, true
			return nil
		})
	})
	return bound, depth, value, move, found
}

// Write implements TranspositionTable. It always overwrites: disk
// persistence has no in-memory replacement race to arbitrate, and the
// depth/ply aging policy that matters for the hot-path in-memory table
// is not needed for an opt-in cross-session cache.
func (t *BadgerTranspositionTable) Write(hash hexboard.ZobristHash, bound Bound, ply, depth int, value eval.Score, move hexboard.Move) bool {
	err := t.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerKey(hash), encodeEntry(bound, depth, value, move))
	})
	return err == nil
}

// Size reports the on-disk size of the log and value files.
func (t *BadgerTranspositionTable) Size() uint64 {
	lsm, vlog := t.db.Size()
	return uint64(lsm + vlog)
}

// Used is not tracked for the disk-backed table; callers interested in
// cache pressure should watch Size against available disk instead.
func (t *BadgerTranspositionTable) Used() float64 {
	return 0
}
