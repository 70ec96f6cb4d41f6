package cachemanager

import (
	"context"
	"time"
)

// LoadFunc fetches the value for key on a cache miss.
type LoadFunc[K ~string, V any] func(ctx context.Context, key K) (V, error)

// ReadThroughCache serves values from a CacheManager, loading and storing
// them on a miss. Errors from the loader are returned and never cached.
type ReadThroughCache[K ~string, V any] struct {
	cache CacheManager[K, V]
	load  LoadFunc[K, V]
	ttl   time.Duration
}

// NewReadThroughCache wraps load with cache. A ttl of zero or less bypasses
// the cache entirely.
func NewReadThroughCache[K ~string, V any](cache CacheManager[K, V], load LoadFunc[K, V], ttl time.Duration) *ReadThroughCache[K, V] {
	return &ReadThroughCache[K, V]{cache: cache, load: load, ttl: ttl}
}

// Enabled reports whether lookups go through the cache.
func (r *ReadThroughCache[K, V]) Enabled() bool {
	return r.ttl > 0
}

// Get returns the value for key and whether it came from the cache.
func (r *ReadThroughCache[K, V]) Get(ctx context.Context, key K) (V, bool, error) {
	if !r.Enabled() {
		v, err := r.load(ctx, key)
		return v, false, err
	}

	if v, ok := r.cache.GetWithRefresh(ctx, key, r.ttl); ok {
		return v, true, nil
	}

	v, err := r.load(ctx, key)
	if err != nil {
		return v, false, err
	}
	r.cache.Set(ctx, key, v, r.ttl)
	return v, false, nil
}

// Invalidate drops key so the next Get reloads it.
func (r *ReadThroughCache[K, V]) Invalidate(ctx context.Context, key K) {
	r.cache.Delete(ctx, key)
}
