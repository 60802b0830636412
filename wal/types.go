package wal

import "time"

// DurabilityMode defines the fsync behavior for WAL writes.
type DurabilityMode int

const (
	// DurabilityAsync performs no fsync: fastest writes, but data since the
	// last sync is lost on crash.
	DurabilityAsync DurabilityMode = iota

	// DurabilityGroupCommit batches fsync at regular intervals, amortizing
	// the fsync cost across multiple inserts. Recommended for most
	// workloads.
	DurabilityGroupCommit

	// DurabilitySync fsyncs after every insert. Slowest, strongest guarantee.
	DurabilitySync
)

// OperationType identifies the kind of a single on-disk WAL entry.
type OperationType uint8

const (
	// OpInsert records a single inserted vector.
	OpInsert OperationType = iota
	// OpCheckpoint marks the point up to which a snapshot has captured state;
	// replay stops here.
	OpCheckpoint
)

// Entry is a single logical operation recorded in the WAL. Only inserts are
// logged: update, delete, and other mutating operations are not part of
// this index's operation set.
type Entry struct {
	Type   OperationType
	Vector []float64
	SeqNum uint64
}

// Options configures a WAL.
type Options struct {
	// Path is the directory where the WAL file is stored.
	Path string

	// Compress enables zstd compression of the entry stream.
	Compress bool

	// CompressionLevel sets the zstd compression level (1-22, teacher default 3).
	CompressionLevel int

	// AutoCheckpointOps triggers an automatic checkpoint after N inserts.
	// 0 disables operation-count-based checkpoints.
	AutoCheckpointOps int

	// AutoCheckpointMB triggers an automatic checkpoint once the WAL file
	// exceeds N megabytes. 0 disables size-based checkpoints.
	AutoCheckpointMB int

	// DurabilityMode controls fsync behavior.
	DurabilityMode DurabilityMode

	// GroupCommitInterval is the maximum time to wait before fsync in
	// GroupCommit mode.
	GroupCommitInterval time.Duration

	// GroupCommitMaxOps is the maximum number of inserts to batch before
	// forcing an fsync in GroupCommit mode.
	GroupCommitMaxOps int
}

// DefaultOptions returns the default WAL configuration.
var DefaultOptions = Options{
	Path:                ".",
	Compress:            false,
	CompressionLevel:    3,
	AutoCheckpointOps:   10000,
	AutoCheckpointMB:    100,
	DurabilityMode:      DurabilityGroupCommit,
	GroupCommitInterval: 10 * time.Millisecond,
	GroupCommitMaxOps:   100,
}
