// Package queue provides the bounded best-set and unbounded candidate
// frontier LayerSearch walks a graph layer with.
package queue

import "container/heap"

var _ heap.Interface = (*PriorityQueue)(nil)

// PriorityQueueItem is one candidate or result node in a layer search:
// a node's index within the layer and its (squared) distance to the query.
type PriorityQueueItem struct {
	Node     uint32
	Distance float64
}

// PriorityQueue is a binary heap of PriorityQueueItem, ordered either as a
// min-heap (the candidate frontier: always expand the closest unexplored
// node next) or a max-heap (the best-set: the current worst of the top-ef
// results sits at the top, so it's the first one evicted when a closer
// node is found). container/heap drives both orderings through Less.
type PriorityQueue struct {
	isMaxHeap bool
	items     []PriorityQueueItem
}

// NewMin builds an empty min-heap candidate frontier with room for
// capacity items before it must grow.
func NewMin(capacity int) *PriorityQueue {
	return &PriorityQueue{items: make([]PriorityQueueItem, 0, capacity)}
}

// NewMax builds an empty max-heap best-set with room for capacity items
// before it must grow.
func NewMax(capacity int) *PriorityQueue {
	return &PriorityQueue{isMaxHeap: true, items: make([]PriorityQueueItem, 0, capacity)}
}

// Len reports the number of items currently in the queue.
func (pq *PriorityQueue) Len() int { return len(pq.items) }

// Less implements heap.Interface: for a max-heap, larger Distance sorts
// first; for a min-heap, smaller Distance sorts first.
func (pq *PriorityQueue) Less(i, j int) bool {
	if pq.isMaxHeap {
		return pq.items[i].Distance > pq.items[j].Distance
	}
	return pq.items[i].Distance < pq.items[j].Distance
}

// Swap implements heap.Interface.
func (pq *PriorityQueue) Swap(i, j int) {
	pq.items[i], pq.items[j] = pq.items[j], pq.items[i]
}

// Push implements heap.Interface; callers use PushItem instead.
func (pq *PriorityQueue) Push(x any) {
	pq.items = append(pq.items, x.(PriorityQueueItem))
}

// Pop implements heap.Interface; callers use PopItem instead.
func (pq *PriorityQueue) Pop() any {
	n := len(pq.items) - 1
	item := pq.items[n]
	pq.items[n] = PriorityQueueItem{}
	pq.items = pq.items[:n]
	return item
}

// PushItem inserts item, restoring the heap invariant via container/heap.
func (pq *PriorityQueue) PushItem(item PriorityQueueItem) {
	heap.Push(pq, item)
}

// PopItem removes and returns the top item, restoring the heap invariant
// via container/heap. The second return is false on an empty queue.
func (pq *PriorityQueue) PopItem() (PriorityQueueItem, bool) {
	if len(pq.items) == 0 {
		return PriorityQueueItem{}, false
	}
	return heap.Pop(pq).(PriorityQueueItem), true
}

// TopItem returns the top item without removing it.
func (pq *PriorityQueue) TopItem() (PriorityQueueItem, bool) {
	if len(pq.items) == 0 {
		return PriorityQueueItem{}, false
	}
	return pq.items[0], true
}

// Top implements the any-returning counterpart to TopItem, matching the
// Push/Pop any-based shape heap.Interface imposes on this type.
func (pq *PriorityQueue) Top() any {
	if len(pq.items) == 0 {
		return PriorityQueueItem{}
	}
	return pq.items[0]
}

// MinItem returns the item with the smallest Distance currently in the
// queue. For a min-heap this is the top item; a max-heap has no ordering
// guarantee over anything but its top, so this scans the backing slice.
func (pq *PriorityQueue) MinItem() (PriorityQueueItem, bool) {
	if len(pq.items) == 0 {
		return PriorityQueueItem{}, false
	}
	if !pq.isMaxHeap {
		return pq.items[0], true
	}

	min := pq.items[0]
	for _, item := range pq.items[1:] {
		if item.Distance < min.Distance {
			min = item
		}
	}
	return min, true
}

// Reset empties the queue, keeping its backing array for reuse.
func (pq *PriorityQueue) Reset() {
	pq.items = pq.items[:0]
}
