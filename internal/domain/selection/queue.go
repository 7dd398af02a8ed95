// Package selection picks the best element of a small sequence by a numeric key.
package selection

import "container/heap"

// Option configures a Queue.
type Option[T any] func(*Queue[T])

// WithTieBreak orders elements with equal keys by less instead of insertion order.
// Elements less does not separate still fall back to insertion order.
func WithTieBreak[T any](less func(a, b T) bool) Option[T] {
	return func(q *Queue[T]) { q.h.tie = less }
}

// Queue is a min-priority queue keyed by float64.
type Queue[T any] struct {
	h   entries[T]
	seq int
}

// NewQueue creates an empty queue.
func NewQueue[T any](opts ...Option[T]) *Queue[T] {
	q := &Queue[T]{}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Push inserts v with the given key.
func (q *Queue[T]) Push(v T, key float64) {
	heap.Push(&q.h, entry[T]{value: v, key: key, seq: q.seq})
	q.seq++
}

// Pop removes and returns the element with the smallest key.
// ok is false when the queue is empty.
func (q *Queue[T]) Pop() (v T, key float64, ok bool) {
	if len(q.h.items) == 0 {
		return v, 0, false
	}
	e := heap.Pop(&q.h).(entry[T])
	return e.value, e.key, true
}

// Len returns the number of queued elements.
func (q *Queue[T]) Len() int { return len(q.h.items) }

// Min returns the element of items with the smallest key, building the heap in
// one pass and popping once. ok is false when items is empty.
func Min[T any](items []T, key func(T) float64, opts ...Option[T]) (best T, bestKey float64, ok bool) {
	q := NewQueue(opts...)
	q.h.items = make([]entry[T], len(items))
	for i, it := range items {
		q.h.items[i] = entry[T]{value: it, key: key(it), seq: i}
	}
	q.seq = len(items)
	heap.Init(&q.h)
	return q.Pop()
}

type entry[T any] struct {
	value T
	key   float64
	seq   int
}

// entries implements heap.Interface.
type entries[T any] struct {
	items []entry[T]
	tie   func(a, b T) bool
}

func (h *entries[T]) Len() int { return len(h.items) }

func (h *entries[T]) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if a.key != b.key {
		return a.key < b.key
	}
	if h.tie != nil {
		if h.tie(a.value, b.value) {
			return true
		}
		if h.tie(b.value, a.value) {
			return false
		}
	}
	return a.seq < b.seq
}

func (h *entries[T]) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *entries[T]) Push(x any) { h.items = append(h.items, x.(entry[T])) }

func (h *entries[T]) Pop() any {
	old := h.items
	n := len(old)
	e := old[n-1]
	h.items = old[:n-1]
	return e
}
