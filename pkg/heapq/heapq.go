// Package heapq provides a small generic priority queue shared by the
// Dijkstra frontier in pkg/eval and the move-ordering list in
// pkg/search, so both reuse the same container/heap plumbing instead
// of each hand-rolling a heap.Interface.
package heapq

import (
	"container/heap"

	"golang.org/x/exp/constraints"
)

// Item pairs a priority with an arbitrary payload.
type Item[P constraints.Integer, V any] struct {
	Priority P
	Value    V
}

type impl[P constraints.Integer, V any] []Item[P, V]

func (h impl[P, V]) Len() int           { return len(h) }
func (h impl[P, V]) Less(i, j int) bool { return h[i].Priority < h[j].Priority }
func (h impl[P, V]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *impl[P, V]) Push(x interface{}) {
	*h = append(*h, x.(Item[P, V]))
}

func (h *impl[P, V]) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// MinHeap is a min-priority queue: Pop returns the lowest priority
// first. Used directly by the Dijkstra frontier in pkg/eval.
type MinHeap[P constraints.Integer, V any] struct {
	h impl[P, V]
}

func NewMinHeap[P constraints.Integer, V any]() *MinHeap[P, V] {
	return &MinHeap[P, V]{}
}

func (m *MinHeap[P, V]) Len() int {
	return m.h.Len()
}

func (m *MinHeap[P, V]) Push(priority P, value V) {
	heap.Push(&m.h, Item[P, V]{Priority: priority, Value: value})
}

// Pop removes and returns the lowest-priority item. ok is false if empty.
func (m *MinHeap[P, V]) Pop() (priority P, value V, ok bool) {
	if m.h.Len() == 0 {
		return priority, value, false
	}
	item := heap.Pop(&m.h).(Item[P, V])
	return item.Priority, item.Value, true
}

// MaxHeap is a max-priority queue built on MinHeap by negating the
// priority, used for move ordering (highest priority first) in
// pkg/search/movelist.go.
type MaxHeap[P constraints.Signed, V any] struct {
	min MinHeap[P, V]
}

func NewMaxHeap[P constraints.Signed, V any]() *MaxHeap[P, V] {
	return &MaxHeap[P, V]{}
}

func (m *MaxHeap[P, V]) Len() int {
	return m.min.Len()
}

func (m *MaxHeap[P, V]) Push(priority P, value V) {
	m.min.Push(-priority, value)
}

func (m *MaxHeap[P, V]) Pop() (priority P, value V, ok bool) {
	p, v, ok := m.min.Pop()
	return -p, v, ok
}
