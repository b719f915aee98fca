package reconcile

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// ReconcileCache holds pre-built indices.
type ReconcileCache struct {
	// SourceIndex is the indexed map of source records by key.
	SourceIndex map[string]Item

	// CatalogIndex is the indexed map of catalog records by key.
	CatalogIndex map[string]Item

	// StorageSet is the set of keys present in storage.
	StorageSet map[string]struct{}

	// Built is the timestamp when this cache was built.
	Built time.Time

	// TTL is the time-to-live for this cache.
	TTL time.Duration
}

// IsExpired returns true if this cache has expired based on its TTL.
func (c *ReconcileCache) IsExpired() bool {
	if c.TTL == 0 {
		return true // No caching
	}
	return time.Since(c.Built) > c.TTL
}

// cacheStore holds all reconcile caches keyed by spec cache key.
type cacheStore struct {
	mu     sync.RWMutex
	caches map[string]*ReconcileCache
	sf     singleflight.Group
}

var globalCacheStore = &cacheStore{
	caches: make(map[string]*ReconcileCache),
}

// BuildCache loads all three indices concurrently. It does not store the
// cache; use GetOrBuildCache for that.
func BuildCache(ctx context.Context, spec *Spec) (*ReconcileCache, error) {
	cache := &ReconcileCache{Built: time.Now(), TTL: spec.CacheTTL}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cache.SourceIndex, err = spec.Adapter.LoadSourceIndex(gctx, spec.Scope)
		return err
	})
	g.Go(func() error {
		var err error
		cache.CatalogIndex, err = spec.Adapter.LoadCatalogIndex(gctx, spec.Scope)
		return err
	})
	g.Go(func() error {
		var err error
		cache.StorageSet, err = spec.Adapter.LoadStorageSet(gctx, spec.Scope)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return cache, nil
}

// GetOrBuildCache retrieves a fresh cache for the spec, building it if needed.
// Concurrent callers for the same spec share one build.
func GetOrBuildCache(ctx context.Context, spec *Spec) (*ReconcileCache, error) {
	cacheKey := spec.CacheKey()

	globalCacheStore.mu.RLock()
	cache, exists := globalCacheStore.caches[cacheKey]
	globalCacheStore.mu.RUnlock()

	if exists && !cache.IsExpired() {
		return cache, nil
	}

	result, err, _ := globalCacheStore.sf.Do(cacheKey, func() (interface{}, error) {
		globalCacheStore.mu.RLock()
		cache, exists := globalCacheStore.caches[cacheKey]
		globalCacheStore.mu.RUnlock()

		if exists && !cache.IsExpired() {
			return cache, nil
		}

		newCache, err := BuildCache(ctx, spec)
		if err != nil {
			return nil, err
		}

		globalCacheStore.mu.Lock()
		globalCacheStore.caches[cacheKey] = newCache
		globalCacheStore.mu.Unlock()

		return newCache, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*ReconcileCache), nil
}

// InvalidateCache removes the cache for the given spec from the store.
func InvalidateCache(spec *Spec) {
	globalCacheStore.mu.Lock()
	delete(globalCacheStore.caches, spec.CacheKey())
	globalCacheStore.mu.Unlock()
}
