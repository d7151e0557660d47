package collection

import (
	"errors"
	"fmt"
)

var (
	// ErrShardNotFound is returned when a shard selection names a shard the
	// collection does not have.
	ErrShardNotFound = errors.New("shard not found")

	// ErrConsistencyUnsatisfiable is returned when a read consistency
	// requires more replicas than the collection is configured with.
	ErrConsistencyUnsatisfiable = errors.New("read consistency cannot be satisfied")

	// ErrUnknownVector is returned when a point carries a vector name that
	// is not configured.
	ErrUnknownVector = errors.New("unknown vector name")

	// ErrCollectionExists is returned when registering a duplicate name.
	ErrCollectionExists = errors.New("collection already exists")

	// ErrCollectionNotFound is returned by registry operations on unknown names.
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrInvalidConfig is returned when a collection config fails validation.
	ErrInvalidConfig = errors.New("invalid collection config")
)

// ErrDimensionMismatch indicates a vector/config dimensionality mismatch.
type ErrDimensionMismatch struct {
	Vector   string
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch for vector %q: expected %d, got %d", e.Vector, e.Expected, e.Actual)
}
