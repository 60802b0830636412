package core

import (
	"sort"

	"github.com/hupe1980/simplehnsw/distance"
	"github.com/hupe1980/simplehnsw/internal/queue"
	"github.com/hupe1980/simplehnsw/internal/visited"
)

// LayerSearch runs the greedy-plus-beam traversal shared by insert and
// query: starting from entry, it returns up to ef nodes in layer closest to
// query, sorted ascending by squared distance.
//
// vis is reset and (re)sized to layer's length at the start of the call; it
// may be reused across calls to avoid repeated allocation, but must never be
// shared between concurrently running searches.
func LayerSearch(layer Layer, entry uint32, query []float64, ef int, vis *visited.VisitedSet) ([]queue.PriorityQueueItem, error) {
	if len(layer) == 0 {
		return nil, nil
	}
	if ef <= 0 {
		return nil, nil
	}
	if int(entry) >= len(layer) {
		return nil, &ErrInvalidArgument{Message: "invalid entry"}
	}

	vis.EnsureCapacity(len(layer))
	vis.Reset()
	vis.Visit(entry)

	d0, err := distance.SquaredL2(layer[entry].Vector, query)
	if err != nil {
		return nil, err
	}

	best := queue.NewMax(ef)
	cand := queue.NewMin(len(layer))

	seed := queue.PriorityQueueItem{Node: entry, Distance: d0}
	best.PushItem(seed)
	cand.PushItem(seed)

	for cand.Len() > 0 {
		c, _ := cand.PopItem()

		if best.Len() >= ef {
			top, _ := best.TopItem()
			if c.Distance > top.Distance {
				break
			}
		}

		for _, n := range layer[c.Node].Connections {
			if int(n) >= len(layer) {
				// Defensive: invariants forbid this, but imported data is
				// external input and must not crash a query.
				continue
			}
			if vis.Visited(n) {
				continue
			}
			vis.Visit(n)

			dn, err := distance.SquaredL2(layer[n].Vector, query)
			if err != nil {
				return nil, err
			}

			full := best.Len() >= ef
			if full {
				top, _ := best.TopItem()
				if dn >= top.Distance {
					continue
				}
			}

			cand.PushItem(queue.PriorityQueueItem{Node: n, Distance: dn})
			tryInsertBest(best, ef, queue.PriorityQueueItem{Node: n, Distance: dn})
		}
	}

	return drainSorted(best), nil
}

// tryInsertBest pushes item into best if best has room, or replaces the
// current worst entry if item is closer.
func tryInsertBest(best *queue.PriorityQueue, ef int, item queue.PriorityQueueItem) {
	if best.Len() < ef {
		best.PushItem(item)
		return
	}

	top, _ := best.TopItem()
	if item.Distance < top.Distance {
		best.PopItem()
		best.PushItem(item)
	}
}

// drainSorted empties best (a max-heap) into ascending order. Ties break on
// node index so that results are reproducible regardless of heap internals.
func drainSorted(best *queue.PriorityQueue) []queue.PriorityQueueItem {
	n := best.Len()
	result := make([]queue.PriorityQueueItem, n)

	for i := n - 1; i >= 0; i-- {
		item, _ := best.PopItem()
		result[i] = item
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Distance != result[j].Distance {
			return result[i].Distance < result[j].Distance
		}
		return result[i].Node < result[j].Node
	})

	return result
}
