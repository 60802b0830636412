package simplehnsw

import (
	"sync"
)

// IndexResult pairs a search hit's distance and payload.
type IndexResult[T any] struct {
	Distance float64
	Payload  T
}

// Index wraps HNSW with a caller-supplied payload of type T associated
// with each inserted vector. The underlying HNSW stays vector-only;
// Index is a thin association table keyed by node index, populated
// alongside each successful Insert/InsertBatch call.
type Index[T any] struct {
	mu sync.RWMutex

	underlying *HNSW
	payloads   map[int]T
}

// NewIndex builds a generic Index with the given options.
func NewIndex[T any](optFns ...Option) (*Index[T], error) {
	h, err := New(optFns...)
	if err != nil {
		return nil, err
	}

	return &Index[T]{
		underlying: h,
		payloads:   make(map[int]T),
	}, nil
}

// Insert adds vector with its associated payload, returning the node
// index it was assigned. Concurrent calls run one at a time under the
// index's lock.
func (idx *Index[T]) Insert(vector []float64, payload T) (int, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	node := idx.underlying.Size()
	if err := idx.underlying.Insert(vector); err != nil {
		return 0, err
	}

	idx.payloads[node] = payload
	return node, nil
}

// InsertBatch inserts vectors and their payloads sequentially, stopping at
// the first error (typically a dimension mismatch) and returning the node
// indices assigned to the vectors successfully inserted so far, plus that
// error. len(payloads) must equal len(vectors).
func (idx *Index[T]) InsertBatch(vectors [][]float64, payloads []T) ([]int, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	indices := make([]int, 0, len(vectors))
	for i, v := range vectors {
		node := idx.underlying.Size()
		if err := idx.underlying.Insert(v); err != nil {
			return indices, err
		}
		idx.payloads[node] = payloads[i]
		indices = append(indices, node)
	}

	return indices, nil
}

// Search returns the ef nearest neighbors of query, each paired with its
// stored payload, sorted ascending by distance.
func (idx *Index[T]) Search(query []float64, ef int) ([]IndexResult[T], error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	hits, err := idx.underlying.Search(query, ef)
	if err != nil {
		return nil, err
	}

	results := make([]IndexResult[T], len(hits))
	for i, hit := range hits {
		results[i] = IndexResult[T]{
			Distance: hit.Distance,
			Payload:  idx.payloads[int(hit.Node)],
		}
	}

	return results, nil
}

// Size returns the number of vectors stored in the index.
func (idx *Index[T]) Size() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.underlying.Size()
}

// Dimension returns the dimensionality fixed by the first inserted vector,
// or -1 if the index is still empty.
func (idx *Index[T]) Dimension() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.underlying.Dimension()
}

// Payload returns the payload associated with node, and whether it exists.
func (idx *Index[T]) Payload(node int) (T, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	p, ok := idx.payloads[node]
	return p, ok
}

// Close releases the underlying index's WAL and persistence resources.
func (idx *Index[T]) Close() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.underlying.Close()
}
