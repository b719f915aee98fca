package reconcile

import "time"

// ReconcileResult represents the reconciliation output for a single record.
type ReconcileResult struct {
	// ID is the record key.
	ID string `json:"id"`

	// SourcePresent indicates whether the dataset source yields the record.
	SourcePresent bool `json:"source_present"`

	// CatalogPresent indicates whether the catalog holds the record.
	CatalogPresent bool `json:"catalog_present"`

	// StoragePresent indicates whether the record's object exists in storage.
	StoragePresent bool `json:"storage_present"`

	// Mismatch describes field differences between source and catalog, e.g.
	// "caption: source=a catalog=b".
	Mismatch []string `json:"mismatch"`
}

// Complete reports whether the record is present everywhere without mismatches.
func (r ReconcileResult) Complete() bool {
	return r.SourcePresent && r.CatalogPresent && r.StoragePresent && len(r.Mismatch) == 0
}

// Spec defines the configuration for a reconciliation operation.
type Spec struct {
	// Adapter provides scope-specific loading and comparison.
	Adapter Adapter

	// Scope selects the records to reconcile (e.g. one shard).
	Scope string

	// CacheTTL is the time-to-live for cached indices.
	// If zero, caching is disabled.
	CacheTTL time.Duration
}

// CacheKey returns a unique key for caching based on spec parameters.
func (s *Spec) CacheKey() string {
	return s.Adapter.Name() + "|" + s.Scope
}

// Item is a source or catalog record. Adapters define the concrete type.
type Item any

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionDeleteCatalog deletes an orphaned record from the catalog.
	ActionDeleteCatalog ActionType = "delete_catalog"
	// ActionDeleteStorage deletes an orphaned record's objects from storage.
	ActionDeleteStorage ActionType = "delete_storage"
	// ActionSyncCatalog rewrites a catalog record from the source.
	ActionSyncCatalog ActionType = "sync_catalog"
	// ActionSyncStorage rewrites a record's objects from the source.
	ActionSyncStorage ActionType = "sync_storage"
)

// Action represents a planned mutation operation.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Key is the record key.
	Key string `json:"key"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`

	// Source holds the source record for sync actions.
	Source Item `json:"-"`
}

// ReconcilePlan contains reconciliation results and planned actions.
type ReconcilePlan struct {
	Results []ReconcileResult `json:"results"`
	Actions []Action          `json:"actions"`
	Summary PlanSummary       `json:"summary"`
}

// PlanSummary provides aggregate statistics for a reconcile plan.
type PlanSummary struct {
	// TotalItems is the number of distinct keys across all sources.
	TotalItems int `json:"total_items"`

	// MissingCatalog counts source records absent from the catalog.
	MissingCatalog int `json:"missing_catalog"`

	// MissingStorage counts source records absent from storage.
	MissingStorage int `json:"missing_storage"`

	// Orphans counts catalog or storage records without a source record.
	Orphans int `json:"orphans"`

	// Mismatches counts records whose catalog fields differ from the source.
	Mismatches int `json:"mismatches"`

	// PurgeActions counts planned purge (delete) actions.
	PurgeActions int `json:"purge_actions"`

	// SyncActions counts planned sync (rewrite) actions.
	SyncActions int `json:"sync_actions"`
}

// ReconcileOptions controls reconcile behavior for purge/sync operations.
type ReconcileOptions struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool

	// DoPurge enables deletion of orphaned records.
	DoPurge bool

	// DoSync enables rewriting missing and mismatched records from the source.
	DoSync bool

	// Confirmed indicates user has confirmed destructive actions.
	// If false, mutations will not execute regardless of DryRun.
	Confirmed bool
}
