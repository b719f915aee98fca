package reconcile

import (
	"context"
	"sort"
)

// ReconcileAll reconciles every key of the spec's scope. Results are sorted by key.
func ReconcileAll(ctx context.Context, spec *Spec) ([]ReconcileResult, error) {
	cache, err := GetOrBuildCache(ctx, spec)
	if err != nil {
		return nil, err
	}
	return reconcileFromCache(cache, spec.Adapter), nil
}

// ReconcileOne reconciles a single key.
func ReconcileOne(ctx context.Context, spec *Spec, key string) (*ReconcileResult, error) {
	cache, err := GetOrBuildCache(ctx, spec)
	if err != nil {
		return nil, err
	}
	result := buildResult(key, cache, spec.Adapter)
	return &result, nil
}

func reconcileFromCache(cache *ReconcileCache, adapter Adapter) []ReconcileResult {
	union := buildUnion(cache)

	results := make([]ReconcileResult, 0, len(union))
	for key := range union {
		results = append(results, buildResult(key, cache, adapter))
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].ID < results[j].ID
	})
	return results
}

// buildUnion creates a union of all keys from source, catalog and storage.
func buildUnion(cache *ReconcileCache) map[string]struct{} {
	union := make(map[string]struct{}, len(cache.SourceIndex))
	for key := range cache.SourceIndex {
		union[key] = struct{}{}
	}
	for key := range cache.CatalogIndex {
		union[key] = struct{}{}
	}
	for key := range cache.StorageSet {
		union[key] = struct{}{}
	}
	return union
}

// buildResult creates a ReconcileResult for a single key.
func buildResult(key string, cache *ReconcileCache, adapter Adapter) ReconcileResult {
	src, srcPresent := cache.SourceIndex[key]
	cat, catPresent := cache.CatalogIndex[key]
	_, storagePresent := cache.StorageSet[key]

	result := ReconcileResult{
		ID:             key,
		SourcePresent:  srcPresent,
		CatalogPresent: catPresent,
		StoragePresent: storagePresent,
		Mismatch:       []string{},
	}

	if srcPresent && catPresent {
		result.Mismatch = adapter.CompareFields(src, cat)
	}
	return result
}
