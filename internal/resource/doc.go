// Package resource bounds the background work an HNSW index can generate
// outside of the caller's own Insert/Search goroutine: concurrent
// SearchBatch fan-out and snapshot/WAL I/O.
//
// A Controller is entirely optional. The facade passes a nil *Controller
// through every call in this package by default, and every method is
// nil-safe: with no Controller configured, SearchBatch runs every query
// concurrently and snapshots write at full speed.
//
// # Background worker limit
//
// SearchBatch spawns one goroutine per query; Snapshot runs on whatever
// goroutine calls it. A shared weighted semaphore caps how many of these
// run at once, independent of how many queries or snapshots are in
// flight:
//
//	rc := resource.NewController(resource.Config{MaxBackgroundWorkers: 4})
//
//	if err := rc.AcquireBackground(ctx); err != nil {
//	    return err
//	}
//	defer rc.ReleaseBackground()
//
// # Snapshot IO budget
//
// A token-bucket rate limiter throttles the number of bytes the
// persistence manager may write during Snapshot or read during Recover
// per second, so a large index doesn't saturate disk IO that foreground
// Search calls also depend on:
//
//	rc := resource.NewController(resource.Config{IOLimitBytesPerSec: 50 << 20})
//
//	if err := rc.AcquireIO(ctx, len(payload)); err != nil {
//	    return err
//	}
//
// # Memory accounting
//
// AcquireMemory/ReleaseMemory track byte usage against an optional hard
// limit. Unlike the other two limits this is non-blocking: AcquireMemory
// fails fast with ErrMemoryLimitExceeded instead of waiting, since the
// caller (typically accounting for an in-flight batch insert) is in a
// better position to decide whether to wait, shed the batch, or grow the
// limit than the controller is.
//
// All methods are safe for concurrent use, and a nil *Controller behaves
// as an unbounded one.
package resource
