// This file implements a fluent builder API for configuring and
// constructing an HNSW index. The builder is immutable: each method
// returns a new Builder with the updated configuration, so a partially
// configured Builder can be shared and specialized along different
// branches without the branches interfering with each other.
package simplehnsw

import (
	"log/slog"

	"github.com/hupe1980/simplehnsw/blobstore"
	"github.com/hupe1980/simplehnsw/codec"
	"github.com/hupe1980/simplehnsw/internal/resource"
	"github.com/hupe1980/simplehnsw/wal"
)

// Builder configures and constructs an HNSW index.
//
// Example:
//
//	idx, err := simplehnsw.NewBuilder().
//	    L(5).
//	    MaxConnections(16).
//	    EFConstruction(200).
//	    Seed(42).
//	    Build()
type Builder struct {
	optFns []Option
}

// NewBuilder creates a new Builder with the library defaults.
func NewBuilder() Builder {
	return Builder{}
}

func (b Builder) with(fn Option) Builder {
	next := Builder{optFns: make([]Option, len(b.optFns), len(b.optFns)+1)}
	copy(next.optFns, b.optFns)
	next.optFns = append(next.optFns, fn)
	return next
}

// L sets the number of layers.
func (b Builder) L(l int) Builder {
	return b.with(WithL(l))
}

// ML sets the layer-assignment exponential decay parameter.
func (b Builder) ML(mL float64) Builder {
	return b.with(WithML(mL))
}

// MaxConnections sets the maximum number of neighbors retained per node
// per layer.
func (b Builder) MaxConnections(m int) Builder {
	return b.with(WithMaxConnections(m))
}

// EFConstruction sets the width of the candidate search performed during
// Insert.
func (b Builder) EFConstruction(efc int) Builder {
	return b.with(WithEFConstruction(efc))
}

// Seed sets the seed for the layer-assignment sampler.
func (b Builder) Seed(seed int64) Builder {
	return b.with(WithSeed(seed))
}

// Codec sets the codec used for ToJSON/FromJSON and snapshot payloads.
func (b Builder) Codec(c codec.Codec) Builder {
	return b.with(WithCodec(c))
}

// Logger sets the structured logger used for operations.
func (b Builder) Logger(logger *Logger) Builder {
	return b.with(WithLogger(logger))
}

// LogLevel creates and sets a text logger at the given level.
func (b Builder) LogLevel(level slog.Level) Builder {
	return b.with(WithLogLevel(level))
}

// Metrics sets the metrics collector used for operations.
func (b Builder) Metrics(mc MetricsCollector) Builder {
	return b.with(WithMetricsCollector(mc))
}

// Cache attaches an arbitrary external cache, exposed via HNSW.Cache.
func (b Builder) Cache(c any) Builder {
	return b.with(WithCache(c))
}

// WAL enables write-ahead logging at path, configured via optFns.
func (b Builder) WAL(path string, optFns ...func(*wal.Options)) Builder {
	return b.with(WithWAL(path, optFns...))
}

// SnapshotStore configures where Snapshot writes and Recover reads the
// index's JSON encoding.
func (b Builder) SnapshotStore(store blobstore.Store, name string) Builder {
	return b.with(WithSnapshotStore(store, name))
}

// ResourceController attaches a resource.Controller bounding background
// snapshot work.
func (b Builder) ResourceController(rc *resource.Controller) Builder {
	return b.with(WithResourceController(rc))
}

// Build constructs the configured HNSW index.
func (b Builder) Build() (*HNSW, error) {
	return New(b.optFns...)
}

// MustBuild is like Build but panics on error. Intended for tests and
// program initialization where a build failure is unrecoverable.
func (b Builder) MustBuild() *HNSW {
	idx, err := b.Build()
	if err != nil {
		panic(err)
	}
	return idx
}
