package reconcile

import "context"

// Adapter defines the interface for scope-specific reconciliation logic.
type Adapter interface {
	// Name returns the unique name of this adapter.
	Name() string

	// LoadSourceIndex loads the records the dataset yields for scope, indexed by key.
	LoadSourceIndex(ctx context.Context, scope string) (map[string]Item, error)

	// LoadCatalogIndex loads the catalog records of scope, indexed by key.
	LoadCatalogIndex(ctx context.Context, scope string) (map[string]Item, error)

	// LoadStorageSet lists the keys of scope that have objects in storage.
	// Implementations should use a single paginated listing.
	LoadStorageSet(ctx context.Context, scope string) (map[string]struct{}, error)

	// CompareFields compares a source record with its catalog record and
	// returns mismatch descriptions. Both items are non-nil.
	CompareFields(source, catalog Item) []string
}

// Mutator is implemented by adapters that can apply plans.
type Mutator interface {
	// DeleteCatalog removes catalog records.
	DeleteCatalog(ctx context.Context, keys []string) error
	// DeleteStorage removes the storage objects of records.
	DeleteStorage(ctx context.Context, keys []string) error
	// Sync rewrites records from their source. Every action is a sync action.
	Sync(ctx context.Context, scope string, actions []Action) error
}
