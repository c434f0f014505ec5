// Package pqueue provides an indexed binary min-heap with decrease-key.
//
// Elements are dense integer ids in [0, size). A slot index kept alongside
// the heap lets Update lower an element's priority in place instead of
// pushing a duplicate entry.
package pqueue

import "container/heap"

const absent = -1

// Indexed is a min-heap of ids ordered by a caller-supplied priority order.
// Equal priorities pop in ascending id order. It is not safe for concurrent use.
type Indexed[P any] struct {
	h entries[P]
}

type entry[P any] struct {
	id       int
	priority P
}

// entries implements heap.Interface and keeps slot in step with every move.
type entries[P any] struct {
	items []entry[P]
	slot  []int
	less  func(a, b P) bool
}

// New returns an empty queue for ids in [0, size).
func New[P any](size int, less func(a, b P) bool) *Indexed[P] {
	slot := make([]int, size)
	for i := range slot {
		slot[i] = absent
	}
	return &Indexed[P]{h: entries[P]{slot: slot, less: less}}
}

// Len returns the number of queued ids.
func (q *Indexed[P]) Len() int {
	return len(q.h.items)
}

// Contains reports whether id is currently queued.
func (q *Indexed[P]) Contains(id int) bool {
	return q.h.slot[id] != absent
}

// Priority returns the queued priority of id.
func (q *Indexed[P]) Priority(id int) (P, bool) {
	k := q.h.slot[id]
	if k == absent {
		var zero P
		return zero, false
	}
	return q.h.items[k].priority, true
}

// Update inserts id with priority p, or lowers its priority when p is
// smaller than the queued one. It reports whether the queue changed.
func (q *Indexed[P]) Update(id int, p P) bool {
	k := q.h.slot[id]
	if k == absent {
		heap.Push(&q.h, entry[P]{id: id, priority: p})
		return true
	}
	if !q.h.less(p, q.h.items[k].priority) {
		return false
	}
	q.h.items[k].priority = p
	heap.Fix(&q.h, k)
	return true
}

// Pop removes and returns the id with the smallest priority.
// ok is false when the queue is empty.
func (q *Indexed[P]) Pop() (id int, p P, ok bool) {
	if len(q.h.items) == 0 {
		return 0, p, false
	}
	e := heap.Pop(&q.h).(entry[P])
	return e.id, e.priority, true
}

func (h *entries[P]) Len() int { return len(h.items) }

func (h *entries[P]) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if h.less(a.priority, b.priority) {
		return true
	}
	if h.less(b.priority, a.priority) {
		return false
	}
	return a.id < b.id
}

func (h *entries[P]) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.slot[h.items[i].id] = i
	h.slot[h.items[j].id] = j
}

func (h *entries[P]) Push(x any) {
	e := x.(entry[P])
	h.slot[e.id] = len(h.items)
	h.items = append(h.items, e)
}

func (h *entries[P]) Pop() any {
	n := len(h.items) - 1
	e := h.items[n]
	h.items = h.items[:n]
	h.slot[e.id] = absent
	return e
}
