package simplehnsw

import (
	"log/slog"

	"github.com/hupe1980/simplehnsw/blobstore"
	"github.com/hupe1980/simplehnsw/codec"
	"github.com/hupe1980/simplehnsw/internal/resource"
	"github.com/hupe1980/simplehnsw/wal"
)

type options struct {
	l              int
	mL             float64
	efc            int
	maxConnections int
	seed           int64

	codec            codec.Codec
	metricsCollector MetricsCollector
	logger           *Logger
	resourceCtl      *resource.Controller
	cache            any
	walPath          string
	walOptions       []func(*wal.Options)
	snapshotStore    blobstore.Store
	snapshotName     string
}

// Option configures an Index's construction.
//
// Breaking changes are expected while this module is pre-release.
type Option func(*options)

// WithL sets the number of layers. Default: 5.
func WithL(l int) Option {
	return func(o *options) {
		o.l = l
	}
}

// WithML sets the layer-assignment exponential decay parameter. Default: 0.62.
func WithML(mL float64) Option {
	return func(o *options) {
		o.mL = mL
	}
}

// WithEFConstruction sets the width of the candidate search performed at
// and below a newly sampled node's target layer during Insert. Default: 10.
func WithEFConstruction(efc int) Option {
	return func(o *options) {
		o.efc = efc
	}
}

// WithMaxConnections sets the maximum number of neighbors retained per
// node per layer. Default: 16.
func WithMaxConnections(maxConnections int) Option {
	return func(o *options) {
		o.maxConnections = maxConnections
	}
}

// WithSeed sets the seed for the layer-assignment sampler, making
// construction deterministic across runs given the same insert sequence.
// Default: 0, which seeds from a non-deterministic source.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithCodec configures the codec used to encode/decode ToJSON/FromJSON and
// snapshot payloads. If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations. Pass nil to
// disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithResourceController attaches a resource.Controller bounding
// concurrent background snapshot/WAL work and rate-limiting its IO. Pass
// nil to run unbounded (the default).
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.resourceCtl = rc
	}
}

// WithCache attaches an arbitrary cache (typically a *cache.LRU[K, V]) as
// an external collaborator. The index never reads from or writes to it;
// it is exposed purely for callers to retrieve via HNSW.Cache.
func WithCache(c any) Option {
	return func(o *options) {
		o.cache = c
	}
}

// WithWAL enables write-ahead logging for durability of inserts between
// snapshots. optFns configure the underlying wal.Options (durability mode,
// compression, auto-checkpoint thresholds).
func WithWAL(path string, optFns ...func(*wal.Options)) Option {
	return func(o *options) {
		o.walPath = path
		o.walOptions = optFns
	}
}

// WithSnapshotStore configures where Snapshot writes the index's JSON
// encoding and where Recover reads it back from. name is the object name
// within store.
func WithSnapshotStore(store blobstore.Store, name string) Option {
	return func(o *options) {
		o.snapshotStore = store
		o.snapshotName = name
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		l:                5,
		mL:               0.62,
		efc:              10,
		maxConnections:   16,
		seed:             0,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
