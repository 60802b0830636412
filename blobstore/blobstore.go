// Package blobstore abstracts the storage backend snapshots are written to
// and read from. The core index never imports this package directly: only
// the persistence manager's explicit snapshot/restore path does.
package blobstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get and Delete when name does not exist.
var ErrNotFound = errors.New("blobstore: object not found")

// Store is the minimal contract a snapshot backend must satisfy.
type Store interface {
	// Put writes data under name, replacing any existing object.
	Put(ctx context.Context, name string, data []byte) error

	// Get reads the object stored under name. Returns ErrNotFound if absent.
	Get(ctx context.Context, name string) ([]byte, error)

	// Delete removes the object stored under name. Returns ErrNotFound if absent.
	Delete(ctx context.Context, name string) error

	// List returns the names of all objects whose name starts with prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}
