// Package reconcile compares three views of the same records: the dataset
// source, the catalog database and the storage bucket.
//
// # Architecture
//
// 1. Engine: Builds the union of keys from all sources, detects presence and
// absence, and identifies field mismatches between source and catalog.
//
// 2. Adapter: Scope-specific implementations that load each index and compare
// fields. The scope is opaque to the engine (a shard index for LAION ingestion).
//
// 3. Cache: TTL-based caching of the indices with stampede protection.
//
// 4. Plan: Turns results into actions. Purge deletes catalog rows and storage
// objects that have no source record. Sync rewrites records that are missing
// from a sink or whose catalog fields differ from the source.
//
// # Usage Example
//
//	spec := &reconcile.Spec{Adapter: adapter, Scope: "42"}
//	plan, err := reconcile.ReconcileWithPlan(ctx, spec, reconcile.ReconcileOptions{DoPurge: true})
//	...
//	executed, err := reconcile.ApplyPlan(ctx, spec, plan, opts)
package reconcile
