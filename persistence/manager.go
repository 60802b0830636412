// Package persistence coordinates snapshot storage and write-ahead-log
// replay into a single recovery path: load the most recent snapshot, if
// any, then replay every WAL entry written after it.
package persistence

import (
	"context"
	"errors"

	"github.com/hupe1980/simplehnsw/blobstore"
	"github.com/hupe1980/simplehnsw/codec"
	"github.com/hupe1980/simplehnsw/internal/resource"
	"github.com/hupe1980/simplehnsw/wal"
)

// ErrManagerClosed is returned by Snapshot, Recover and Checkpoint once
// Close has run.
var ErrManagerClosed = errors.New("persistence: manager is closed")

// ErrNoWAL is returned by Checkpoint when the manager was built without a WAL.
var ErrNoWAL = errors.New("persistence: manager has no WAL")

// ErrNoStore is returned by Snapshot when the manager was built without a
// blobstore.Store. Recover without a store skips the snapshot and only
// replays the WAL.
var ErrNoStore = errors.New("persistence: manager has no snapshot store")

// ManagerOptions configures a Manager.
type ManagerOptions struct {
	// Store is where snapshots are written and read from. Optional: a
	// manager with a WAL but no store can still checkpoint, just never
	// snapshot.
	Store blobstore.Store

	// SnapshotName is the object name the snapshot is stored under.
	SnapshotName string

	// Codec encodes/decodes the snapshot payload. Defaults to codec.Default.
	Codec codec.Codec

	// WAL is the write-ahead log replayed during Recover and truncated by
	// Checkpoint. Optional.
	WAL *wal.WAL

	// ResourceController, if set, throttles the byte throughput of
	// Snapshot writes and Recover reads against its IOLimitBytesPerSec.
	// Optional; a nil controller never blocks.
	ResourceController *resource.Controller
}

// Manager ties a snapshot store, a codec, and a WAL together behind a single
// Snapshot/Recover/Checkpoint surface.
type Manager struct {
	store        blobstore.Store
	snapshotName string
	codec        codec.Codec
	wal          *wal.WAL
	resourceCtl  *resource.Controller
	closed       bool
}

// NewManager builds a Manager from opts.
func NewManager(opts ManagerOptions) *Manager {
	c := opts.Codec
	if c == nil {
		c = codec.Default
	}

	return &Manager{
		store:        opts.Store,
		snapshotName: opts.SnapshotName,
		codec:        c,
		wal:          opts.WAL,
		resourceCtl:  opts.ResourceController,
	}
}

// WAL returns the manager's write-ahead log, or nil if none was configured.
func (m *Manager) WAL() *wal.WAL {
	return m.wal
}

// Codec returns the manager's snapshot codec.
func (m *Manager) Codec() codec.Codec {
	return m.codec
}

// SetCheckpointCallback wires fn to be invoked by the WAL's own
// auto-checkpoint threshold (op count or file size). A typical fn calls
// Snapshot, which also checkpoints the WAL.
func (m *Manager) SetCheckpointCallback(fn func() error) {
	if m.wal != nil {
		m.wal.SetCheckpointCallback(fn)
	}
}

// Snapshot marshals v with the manager's codec and writes it to the store
// under SnapshotName, then truncates the WAL (if any) so that a subsequent
// Recover replays only entries written after this point. If a
// ResourceController with an IO limit was configured, the write blocks
// until that many bytes are available in its rate budget.
func (m *Manager) Snapshot(ctx context.Context, v any) error {
	if m.closed {
		return ErrManagerClosed
	}
	if m.store == nil {
		return ErrNoStore
	}

	data, err := m.codec.Marshal(v)
	if err != nil {
		return err
	}

	if err := m.resourceCtl.AcquireIO(ctx, len(data)); err != nil {
		return err
	}

	if err := m.store.Put(ctx, m.snapshotName, data); err != nil {
		return err
	}

	if m.wal != nil {
		if err := m.wal.Checkpoint(); err != nil {
			return err
		}
	}

	return nil
}

// Recover loads the most recent snapshot (if any) into dst via the
// manager's codec, then replays every WAL entry after it through apply.
// A missing snapshot is not an error: dst is left untouched and every WAL
// entry is replayed from the beginning.
func (m *Manager) Recover(ctx context.Context, dst any, apply func(vector []float64) error) error {
	if m.closed {
		return ErrManagerClosed
	}

	if m.store != nil {
		data, err := m.store.Get(ctx, m.snapshotName)
		switch {
		case err == nil:
			if err := m.resourceCtl.AcquireIO(ctx, len(data)); err != nil {
				return err
			}
			if err := m.codec.Unmarshal(data, dst); err != nil {
				return err
			}
		case errors.Is(err, blobstore.ErrNotFound):
			// No snapshot yet; replay the WAL from the beginning.
		default:
			return err
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if m.wal != nil {
		if err := m.wal.Replay(apply); err != nil {
			return err
		}
	}

	return nil
}

// Checkpoint truncates the WAL without writing a snapshot. Callers that
// snapshot through some other path (e.g. the facade's own save routine)
// use this to reclaim WAL space afterward.
func (m *Manager) Checkpoint() error {
	if m.closed {
		return ErrManagerClosed
	}
	if m.wal == nil {
		return ErrNoWAL
	}
	return m.wal.Checkpoint()
}

// Close closes the manager's WAL, if any. Safe to call multiple times.
func (m *Manager) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true

	if m.wal != nil {
		return m.wal.Close()
	}
	return nil
}
