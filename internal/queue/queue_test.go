package queue

import (
	"container/heap"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinHeapOrdering(t *testing.T) {
	pq := NewMin(0)
	items := []PriorityQueueItem{
		{Node: 1, Distance: 5},
		{Node: 2, Distance: 1},
		{Node: 3, Distance: 3},
		{Node: 4, Distance: 2},
	}
	for _, it := range items {
		pq.PushItem(it)
	}

	var got []float64
	for pq.Len() > 0 {
		it, ok := pq.PopItem()
		assert.True(t, ok)
		got = append(got, it.Distance)
	}

	assert.Equal(t, []float64{1, 2, 3, 5}, got)
}

func TestMaxHeapOrdering(t *testing.T) {
	pq := NewMax(0)
	items := []PriorityQueueItem{
		{Node: 1, Distance: 5},
		{Node: 2, Distance: 1},
		{Node: 3, Distance: 3},
	}
	for _, it := range items {
		pq.PushItem(it)
	}

	top, ok := pq.TopItem()
	assert.True(t, ok)
	assert.Equal(t, 5.0, top.Distance)

	var got []float64
	for pq.Len() > 0 {
		it, ok := pq.PopItem()
		assert.True(t, ok)
		got = append(got, it.Distance)
	}

	assert.Equal(t, []float64{5, 3, 1}, got)
}

func TestMinItem(t *testing.T) {
	pq := NewMax(0)
	items := []PriorityQueueItem{
		{Node: 1, Distance: 5},
		{Node: 2, Distance: 1},
		{Node: 3, Distance: 3},
	}
	for _, it := range items {
		pq.PushItem(it)
	}

	min, ok := pq.MinItem()
	assert.True(t, ok)
	assert.Equal(t, 1.0, min.Distance)
}

func TestEmptyQueue(t *testing.T) {
	pq := NewMin(0)
	_, ok := pq.TopItem()
	assert.False(t, ok)
	_, ok = pq.PopItem()
	assert.False(t, ok)
	_, ok = pq.MinItem()
	assert.False(t, ok)
}

func TestReset(t *testing.T) {
	pq := NewMin(0)
	pq.PushItem(PriorityQueueItem{Node: 1, Distance: 1})
	pq.PushItem(PriorityQueueItem{Node: 2, Distance: 2})
	assert.Equal(t, 2, pq.Len())

	pq.Reset()
	assert.Equal(t, 0, pq.Len())
	_, ok := pq.TopItem()
	assert.False(t, ok)
}

func TestSatisfiesHeapInterface(t *testing.T) {
	// PushItem/PopItem delegate to container/heap; heap.Init/heap.Push must
	// also work directly against a PriorityQueue built by hand.
	pq := &PriorityQueue{items: []PriorityQueueItem{
		{Node: 1, Distance: 9}, {Node: 2, Distance: 4}, {Node: 3, Distance: 7},
	}}
	heap.Init(pq)

	top, ok := pq.TopItem()
	assert.True(t, ok)
	assert.Equal(t, 4.0, top.Distance)

	heap.Push(pq, PriorityQueueItem{Node: 4, Distance: 1})
	top, _ = pq.TopItem()
	assert.Equal(t, 1.0, top.Distance)
}

func TestHeapInterfaceSortStability(t *testing.T) {
	pq := NewMin(0)
	dists := []float64{9, 2, 7, 1, 5, 3}
	for i, d := range dists {
		pq.PushItem(PriorityQueueItem{Node: uint32(i), Distance: d})
	}

	sorted := append([]float64(nil), dists...)
	sort.Float64s(sorted)

	var got []float64
	for pq.Len() > 0 {
		it, _ := pq.PopItem()
		got = append(got, it.Distance)
	}

	assert.Equal(t, sorted, got)
}
