// Package cache stores computed layouts and rendered artifacts between runs.
//
// # Backends
//
//   - [FileCache]: JSON entry files under a directory, for the CLI.
//   - [RedisCache]: a shared Redis instance, for servers and teams.
//   - [NullCache]: stores nothing; used with --no-cache.
//
// # Keys
//
// A [Keyer] turns stage inputs into keys. Layout keys hash the sizes
// together with the strategy and center; artifact keys hash the layout
// document together with the format and renderer settings. Wrapping a
// keyer in [NewScopedKeyer] namespaces every key, which is how entries from
// different releases are kept apart.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store with per-entry TTL.
type Cache interface {
	// Get returns the data for key and whether it was found. A miss is not
	// an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by backends that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// Default entry lifetimes.
const (
	// TTLLayout keeps layouts for a week; they only depend on their inputs.
	TTLLayout = 7 * 24 * time.Hour

	// TTLArtifact keeps rendered outputs for a day.
	TTLArtifact = 24 * time.Hour
)
