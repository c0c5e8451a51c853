// Package heap provides an array backed binary min-heap keyed by a caller
// supplied function, with removal of arbitrary items.
package heap

import (
	stdheap "container/heap"
)

// BinaryHeap orders items of type T by key, smallest first. Each item may be
// present at most once.
type BinaryHeap[T comparable] struct {
	q queue[T]
}

// New creates an empty heap ordered by key.
func New[T comparable](key func(T) int) *BinaryHeap[T] {
	return &BinaryHeap[T]{q: queue[T]{key: key, index: make(map[T]int)}}
}

// Len returns the number of items.
func (h *BinaryHeap[T]) Len() int {
	return h.q.Len()
}

// IsEmpty returns true if the heap holds no items.
func (h *BinaryHeap[T]) IsEmpty() bool {
	return h.q.Len() == 0
}

// Push adds an item. Pushing an item that is already present repositions it
// according to its current key instead of adding it twice.
func (h *BinaryHeap[T]) Push(item T) {
	if i, ok := h.q.index[item]; ok {
		stdheap.Fix(&h.q, i)
		return
	}
	stdheap.Push(&h.q, item)
}

// PushAll pushes every item.
func (h *BinaryHeap[T]) PushAll(items []T) {
	for _, item := range items {
		h.Push(item)
	}
}

// Pop removes and returns the item with the smallest key.
func (h *BinaryHeap[T]) Pop() (T, bool) {
	if h.q.Len() == 0 {
		var zero T
		return zero, false
	}
	return stdheap.Pop(&h.q).(T), true
}

// Peek returns the item at position offset of the backing array without
// removing it. Offset 0 is the minimum; other offsets follow heap order, not
// sorted order.
func (h *BinaryHeap[T]) Peek(offset int) (T, bool) {
	if offset < 0 || offset >= h.q.Len() {
		var zero T
		return zero, false
	}
	return h.q.items[offset], true
}

// Contains reports whether item is in the heap.
func (h *BinaryHeap[T]) Contains(item T) bool {
	_, ok := h.q.index[item]
	return ok
}

// Remove deletes item from the heap. Returns false if it was not present.
func (h *BinaryHeap[T]) Remove(item T) bool {
	i, ok := h.q.index[item]
	if !ok {
		return false
	}
	stdheap.Remove(&h.q, i)
	return true
}

// Fix restores heap order after item's key changed.
func (h *BinaryHeap[T]) Fix(item T) {
	if i, ok := h.q.index[item]; ok {
		stdheap.Fix(&h.q, i)
	}
}

// Clear removes every item.
func (h *BinaryHeap[T]) Clear() {
	clear(h.q.items)
	h.q.items = h.q.items[:0]
	clear(h.q.index)
}

// queue implements container/heap.Interface and tracks each item's array position.
type queue[T comparable] struct {
	items []T
	index map[T]int
	key   func(T) int
}

func (q queue[T]) Len() int { return len(q.items) }

func (q queue[T]) Less(i, j int) bool {
	return q.key(q.items[i]) < q.key(q.items[j])
}

func (q queue[T]) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	q.index[q.items[i]] = i
	q.index[q.items[j]] = j
}

func (q *queue[T]) Push(x any) {
	item := x.(T)
	q.index[item] = len(q.items)
	q.items = append(q.items, item)
}

func (q *queue[T]) Pop() any {
	old := q.items
	n := len(old)
	item := old[n-1]
	var zero T
	old[n-1] = zero // avoid memory leak
	q.items = old[:n-1]
	delete(q.index, item)
	return item
}
