// Package simplehnsw provides an in-memory Hierarchical Navigable Small
// World (HNSW) approximate nearest neighbor index for dense float64
// vectors under Euclidean distance.
//
// # Quick Start
//
//	idx, err := simplehnsw.New()
//	if err != nil {
//	    // handle err
//	}
//	if err := idx.Insert([]float64{0, 1, 2}); err != nil {
//	    // handle err
//	}
//	results, err := idx.Search([]float64{0, 1, 2}, 10)
//
// The Builder offers a fluent alternative for the common case:
//
//	idx, err := simplehnsw.NewBuilder().
//	    L(5).
//	    MaxConnections(16).
//	    EFConstruction(200).
//	    Seed(42).
//	    Build()
//
// # Durability
//
// Insert and Search are guarded by a readers-writer lock: Insert calls run
// one at a time, and Search calls run concurrently with each other while
// no Insert is in flight. An optional write-ahead log durably records every
// insert between snapshots:
//
//	idx, err := simplehnsw.New(simplehnsw.WithWAL("./data/wal", func(o *wal.Options) {
//	    o.DurabilityMode = wal.DurabilityGroupCommit
//	}))
//
// Snapshotting and recovery route through a blobstore.Store:
//
//	store, _ := blobstore.NewLocal("./data/snapshots")
//	idx, err := simplehnsw.New(
//	    simplehnsw.WithWAL("./data/wal", nil),
//	    simplehnsw.WithSnapshotStore(store, "index.json"),
//	)
//	err = idx.Snapshot(ctx)
//
// # Serialization
//
// ToJSON/FromJSON losslessly round-trip the full layered adjacency.
// ToBinary/FromBinary are an explicit "not implemented" surface.
//
// # Non-goals
//
// Deletion and update of inserted vectors, concurrent multi-writer
// mutation, non-Euclidean metrics in the core index, compressed or
// quantized vector storage, on-disk paging, and binary serialization of
// the core index are all out of scope.
package simplehnsw
