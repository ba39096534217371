// Package storage defines the durable key/value medium the session store
// persists into. It mirrors what a browser's localStorage offers.
package storage

import "context"

// Store is a string key/value store.
type Store interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set creates or replaces the value for key.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}
