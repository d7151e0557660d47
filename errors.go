package pointstore

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is matched by errors returned when a collection cannot be
	// resolved.
	ErrNotFound = errors.New("not found")
)

// CollectionNotFoundError indicates the resolver had no collection by that name.
type CollectionNotFoundError struct {
	Name string
}

func (e *CollectionNotFoundError) Error() string {
	return fmt.Sprintf("Collection %s not found", e.Name)
}

// Is reports ErrNotFound equivalence.
func (e *CollectionNotFoundError) Is(target error) bool { return target == ErrNotFound }

// RetrievalError indicates the storage layer failed to retrieve points.
//
// The storage error is available via errors.Unwrap.
type RetrievalError struct {
	Collection string
	cause      error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieve from collection %s: %v", e.Collection, e.cause)
}

func (e *RetrievalError) Unwrap() error { return e.cause }

// IsNotFound reports whether err indicates an unresolvable collection.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
