package simplehnsw

import (
	"fmt"

	"github.com/hupe1980/simplehnsw/distance"
	"github.com/hupe1980/simplehnsw/internal/core"
)

// ErrDimensionMismatch indicates a vector/query dimensionality mismatch.
// It is an alias for the same type distance and core already produce, so
// callers can match on a single name regardless of which layer raised it.
type ErrDimensionMismatch = distance.ErrDimensionMismatch

// ErrInvalidArgument indicates a bad constructor or entry-point argument,
// such as a non-positive L.
type ErrInvalidArgument = core.ErrInvalidArgument

// ErrSchemaViolation indicates malformed or internally inconsistent
// deserialized index data.
type ErrSchemaViolation = core.ErrSchemaViolation

// ErrUnsupportedVersion indicates fromJSON encountered a version it does
// not implement.
type ErrUnsupportedVersion = core.ErrUnsupportedVersion

// ErrNotImplemented indicates an operation that is an explicit
// "not implemented" surface: binary (de)serialization.
type ErrNotImplemented struct {
	Operation string
}

func (e *ErrNotImplemented) Error() string {
	return fmt.Sprintf("%s: not implemented", e.Operation)
}
