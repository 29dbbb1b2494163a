package cachemanager

import (
	"context"
	"time"
)

// ReadThroughCache pairs a CacheManager with the function that computes a
// missing value. The fragment loader wires its YAML parse in as fn: a hit
// skips the parse, a miss parses and stores the result.
type ReadThroughCache[K ~string, V any, I any] struct {
	cache CacheManager[K, V]
	fn    func(ctx context.Context, input I) (V, error)
	skip  bool
}

// NewReadThroughCache wraps cache with fn. skipCache bypasses the cache
// entirely, for callers that know every lookup is fresh anyway (watch
// re-parses on every file event).
func NewReadThroughCache[K ~string, V any, I any](
	cache CacheManager[K, V],
	fn func(ctx context.Context, input I) (V, error),
	skipCache bool,
) *ReadThroughCache[K, V, I] {
	return &ReadThroughCache[K, V, I]{cache: cache, fn: fn, skip: skipCache}
}

// Get returns the value for key, computing and storing it on a miss.
// Failed computations are returned as-is and never cached.
func (r *ReadThroughCache[K, V, I]) Get(ctx context.Context, key K, input I, ttl time.Duration) (V, error) {
	if r.skip {
		return r.fn(ctx, input)
	}

	if value, ok := r.cache.Get(ctx, key); ok {
		return value, nil
	}

	value, err := r.fn(ctx, input)
	if err != nil {
		return value, err
	}
	r.cache.Set(ctx, key, value, ttl)
	return value, nil
}
