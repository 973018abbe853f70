package cache

import (
	"context"
	"time"
)

// NullCache backs --no-cache and cache.enabled: false. Every lookup misses,
// so the runner recomputes layouts and renders on each call.
//
// It does not implement [Clearer]: "tagcloud cache clear"
// uses that to report that caching is disabled rather than claiming to
// have removed zero entries.
type NullCache struct{}

// NewNullCache returns the disabled backend.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get misses. A cancelled context is still reported so callers observe
// cancellation the same way with or without a cache.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, ctx.Err()
}

// Set discards data.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return ctx.Err()
}

// Delete has nothing to remove.
func (c *NullCache) Delete(ctx context.Context, key string) error {
	return ctx.Err()
}

func (c *NullCache) Close() error {
	return nil
}

var _ Cache = (*NullCache)(nil)
