// Package store provides the persistent key-value byte store backing the
// song repositories. Values are opaque blobs; the repositories decide the
// serialized shape.
package store

import "context"

// Store is a minimal durable key-value byte store.
type Store interface {
	// Get returns the blob for key. The second result is false when the
	// key is absent, which is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set writes the blob for key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Remove deletes the key. Removing an absent key is a no-op.
	Remove(ctx context.Context, key string) error
}
