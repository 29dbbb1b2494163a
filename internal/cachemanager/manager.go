// Package cachemanager provides the read-through parse cache behind the
// fragment loader. Cache keys carry the source file's mtime, so an edited
// fragment is a natural miss and untouched files skip re-parsing across
// reloads.
package cachemanager

import (
	"context"
	"time"
)

// CacheManager stores values by key with a per-entry TTL.
type CacheManager[K ~string, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
}
