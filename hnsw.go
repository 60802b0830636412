package simplehnsw

import (
	"context"
	"sync"
	"time"

	"github.com/hupe1980/simplehnsw/codec"
	"github.com/hupe1980/simplehnsw/internal/core"
	"github.com/hupe1980/simplehnsw/internal/resource"
	"github.com/hupe1980/simplehnsw/persistence"
	"github.com/hupe1980/simplehnsw/wal"
)

// HNSW is an in-memory Hierarchical Navigable Small World index over dense
// float64 vectors under Euclidean distance. A readers-writer lock guards
// it: Insert calls run one at a time, and Search calls run concurrently
// with each other while no Insert holds the lock.
type HNSW struct {
	mu sync.RWMutex

	graph *core.Graph

	codec            codec.Codec
	logger           *Logger
	metricsCollector MetricsCollector
	resourceCtl      *resource.Controller
	cache            any

	wal     *wal.WAL
	persist *persistence.Manager

	seed int64
}

// New builds an HNSW index with the given options. Defaults: L=5, mL=0.62,
// EFConstruction=10, MaxConnections=16, and a non-deterministic seed.
func New(optFns ...Option) (*HNSW, error) {
	o := applyOptions(optFns)

	graph, err := core.NewGraph(o.l, o.mL, o.efc, o.maxConnections, o.seed)
	if err != nil {
		return nil, err
	}

	c := o.codec
	if c == nil {
		c = codec.Default
	}

	h := &HNSW{
		graph:            graph,
		codec:            c,
		logger:           o.logger,
		metricsCollector: o.metricsCollector,
		resourceCtl:      o.resourceCtl,
		cache:            o.cache,
		seed:             o.seed,
	}

	if o.walPath != "" {
		walOptFns := []func(*wal.Options){func(opt *wal.Options) { opt.Path = o.walPath }}
		for _, fn := range o.walOptions {
			if fn != nil {
				walOptFns = append(walOptFns, fn)
			}
		}

		w, err := wal.New(walOptFns...)
		if err != nil {
			return nil, err
		}
		h.wal = w
	}

	if o.snapshotStore != nil || h.wal != nil {
		h.persist = persistence.NewManager(persistence.ManagerOptions{
			Store:              o.snapshotStore,
			SnapshotName:       o.snapshotName,
			Codec:              c,
			WAL:                h.wal,
			ResourceController: o.resourceCtl,
		})
		h.persist.SetCheckpointCallback(func() error {
			return h.snapshotLocked(context.Background())
		})
	}

	if h.persist != nil {
		if err := h.recover(context.Background()); err != nil {
			return nil, err
		}
	}

	return h, nil
}

// recover loads the most recent snapshot (if any) into the graph, then
// inserts every vector recorded in the WAL after that point, in order.
func (h *HNSW) recover(ctx context.Context) error {
	var wire core.WireIndex
	var walVectors [][]float64

	err := h.persist.Recover(ctx, &wire, func(vector []float64) error {
		walVectors = append(walVectors, vector)
		return nil
	})
	if err != nil {
		return err
	}

	if wire.Version != 0 {
		g, err := core.FromWire(wire, h.seed)
		if err != nil {
			return err
		}
		h.graph = g
	}

	for _, v := range walVectors {
		if err := h.graph.Insert(v); err != nil {
			return err
		}
	}

	return nil
}

// Dimension returns the dimensionality fixed by the first inserted vector,
// or -1 if the index is still empty.
func (h *HNSW) Dimension() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.graph.Dimension()
}

// Size returns the number of vectors stored in the index.
func (h *HNSW) Size() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.graph.Size()
}

// Cache returns the external cache attached via WithCache, or nil.
func (h *HNSW) Cache() any {
	return h.cache
}

// Insert adds v to the index. It holds the index's write lock, so
// concurrent Insert calls run one at a time.
func (h *HNSW) Insert(v []float64) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	start := time.Now()
	err := h.insertLocked(v)
	h.metricsCollector.RecordInsert(time.Since(start), err)
	h.logger.LogInsert(context.Background(), len(v), err)

	return err
}

func (h *HNSW) insertLocked(v []float64) error {
	if err := h.graph.Insert(v); err != nil {
		return err
	}

	if h.wal != nil {
		if err := h.wal.LogInsert(v); err != nil {
			return err
		}
	}

	return nil
}

// InsertBatch inserts vectors sequentially. On the first error (typically a
// dimension mismatch) it stops and returns the number of vectors inserted
// so far and the error.
func (h *HNSW) InsertBatch(vectors [][]float64) (inserted int, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	start := time.Now()
	for _, v := range vectors {
		if err = h.insertLocked(v); err != nil {
			break
		}
		inserted++
	}
	h.metricsCollector.RecordBatchInsert(len(vectors), len(vectors)-inserted, time.Since(start))
	h.logger.LogBatchInsert(context.Background(), len(vectors), len(vectors)-inserted)

	return inserted, err
}

// Search returns the ef nearest neighbors of query, sorted ascending by
// Euclidean distance. ef defaults to 1 when <= 0. Safe for concurrent use
// with other Search calls, provided no Insert is in flight.
func (h *HNSW) Search(query []float64, ef int) ([]core.Result, error) {
	if ef <= 0 {
		ef = 1
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	start := time.Now()
	results, err := h.graph.Search(query, ef)
	h.metricsCollector.RecordSearch(ef, time.Since(start), err)
	h.logger.LogSearch(context.Background(), ef, len(results), err)

	return results, err
}

// SearchBatch runs Search for each query concurrently, returning results
// in the same order as queries. If a resource.Controller was configured,
// it bounds how many queries run at once; otherwise all queries run
// concurrently. The first error encountered is returned alongside
// whatever partial results were computed for the other queries.
func (h *HNSW) SearchBatch(queries [][]float64, ef int) ([][]core.Result, error) {
	results := make([][]core.Result, len(queries))
	errs := make([]error, len(queries))

	var wg sync.WaitGroup
	for i, q := range queries {
		wg.Add(1)
		go func(i int, q []float64) {
			defer wg.Done()

			if h.resourceCtl != nil {
				if err := h.resourceCtl.AcquireBackground(context.Background()); err != nil {
					errs[i] = err
					return
				}
				defer h.resourceCtl.ReleaseBackground()
			}

			results[i], errs[i] = h.Search(q, ef)
		}(i, q)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

// ToJSON serializes the full layered adjacency to JSON.
func (h *HNSW) ToJSON() (string, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	data, err := h.codec.Marshal(core.ToWire(h.graph))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FromJSON reconstructs an HNSW index from data previously produced by
// ToJSON. L/ML/EFC/MaxConnections come from the wire format. Of the
// options, only Codec, Seed, Logger, MetricsCollector, ResourceController
// and Cache are applied; WAL and SnapshotStore options are ignored, so the
// returned index has no WAL and no snapshot store.
func FromJSON(data string, optFns ...Option) (*HNSW, error) {
	o := applyOptions(optFns)

	c := o.codec
	if c == nil {
		c = codec.Default
	}

	var wire core.WireIndex
	if err := c.Unmarshal([]byte(data), &wire); err != nil {
		return nil, err
	}

	g, err := core.FromWire(wire, o.seed)
	if err != nil {
		return nil, err
	}

	return &HNSW{
		graph:            g,
		codec:            c,
		logger:           o.logger,
		metricsCollector: o.metricsCollector,
		resourceCtl:      o.resourceCtl,
		cache:            o.cache,
		seed:             o.seed,
	}, nil
}

// ToBinary is not implemented.
func (h *HNSW) ToBinary() ([]byte, error) {
	return nil, &ErrNotImplemented{Operation: "ToBinary"}
}

// FromBinary is not implemented.
func FromBinary(data []byte, optFns ...Option) (*HNSW, error) {
	return nil, &ErrNotImplemented{Operation: "FromBinary"}
}

// Snapshot writes the current graph to the configured snapshot store and
// truncates the WAL. Returns ErrNoStore if no store was configured.
func (h *HNSW) Snapshot(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.snapshotLocked(ctx)
}

func (h *HNSW) snapshotLocked(ctx context.Context) error {
	if h.persist == nil {
		return persistence.ErrNoStore
	}

	if h.resourceCtl != nil {
		if err := h.resourceCtl.AcquireBackground(ctx); err != nil {
			return err
		}
		defer h.resourceCtl.ReleaseBackground()
	}

	err := h.persist.Snapshot(ctx, core.ToWire(h.graph))
	h.logger.LogSnapshot(ctx, "index", err)

	return err
}

// Close releases the index's WAL and persistence resources, if any.
func (h *HNSW) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.persist != nil {
		return h.persist.Close()
	}
	if h.wal != nil {
		return h.wal.Close()
	}
	return nil
}
