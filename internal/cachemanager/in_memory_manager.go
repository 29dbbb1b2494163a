package cachemanager

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/espalier/internal/log"
)

// Defaults sized for fragment parsing: an entry outlives many reload
// cycles, and expired parses are swept long before memory matters.
const (
	DefaultExpiration      = 10 * time.Minute
	DefaultCleanupInterval = 30 * time.Minute
)

// InMemoryCacheManager backs CacheManager with patrickmn/go-cache. The
// useCase tag names the cache in log entries, keeping separate caches
// tellable apart in one debug log.
type InMemoryCacheManager[K ~string, V any] struct {
	useCase string
	cache   *gocache.Cache
}

// NewInMemoryCacheManager creates a cache that expires entries after
// defaultExpiration and sweeps expired ones every cleanupInterval.
func NewInMemoryCacheManager[K ~string, V any](useCase string, defaultExpiration, cleanupInterval time.Duration) *InMemoryCacheManager[K, V] {
	return &InMemoryCacheManager[K, V]{
		useCase: useCase,
		cache:   gocache.New(defaultExpiration, cleanupInterval),
	}
}

// Get returns the value stored under key, if present and unexpired.
func (c *InMemoryCacheManager[K, V]) Get(_ context.Context, key K) (V, bool) {
	var zero V

	raw, found := c.cache.Get(string(key))
	if !found {
		return zero, false
	}

	v, ok := raw.(V)
	if !ok {
		// Two caches sharing a key space is a wiring bug; miss rather
		// than serve the wrong type.
		log.Error(log.CatCache, "cached value has unexpected type", "cache", c.useCase, "key", string(key))
		return zero, false
	}

	log.Debug(log.CatCache, "cache hit", "cache", c.useCase, "key", string(key))
	return v, true
}

// Set stores value under key for ttl.
func (c *InMemoryCacheManager[K, V]) Set(_ context.Context, key K, value V, ttl time.Duration) {
	c.cache.Set(string(key), value, ttl)
}
