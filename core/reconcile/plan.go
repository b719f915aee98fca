package reconcile

import (
	"context"
	"fmt"
	"strings"
)

// ReconcileWithPlan performs reconciliation and returns a plan with results and actions.
// It does NOT execute actions; use ApplyPlan for that.
func ReconcileWithPlan(ctx context.Context, spec *Spec, opts ReconcileOptions) (*ReconcilePlan, error) {
	cache, err := GetOrBuildCache(ctx, spec)
	if err != nil {
		return nil, err
	}

	results := reconcileFromCache(cache, spec.Adapter)
	summary, actions := buildPlanFromResults(results, cache, opts)

	return &ReconcilePlan{
		Results: results,
		Actions: actions,
		Summary: summary,
	}, nil
}

// ApplyPlan executes the actions in a reconcile plan.
// Returns the number of actions executed and any error encountered.
// Requires opts.Confirmed=true and opts.DryRun=false to actually execute.
func ApplyPlan(ctx context.Context, spec *Spec, plan *ReconcilePlan, opts ReconcileOptions) (executed int, err error) {
	if !opts.Confirmed || opts.DryRun || len(plan.Actions) == 0 {
		return 0, nil
	}

	mutator, ok := spec.Adapter.(Mutator)
	if !ok {
		return 0, fmt.Errorf("adapter %s does not implement Mutator interface", spec.Adapter.Name())
	}

	var (
		deleteCatalogKeys []string
		deleteStorageKeys []string
		syncActions       []Action
	)
	for _, action := range plan.Actions {
		switch action.Type {
		case ActionDeleteCatalog:
			deleteCatalogKeys = append(deleteCatalogKeys, action.Key)
		case ActionDeleteStorage:
			deleteStorageKeys = append(deleteStorageKeys, action.Key)
		case ActionSyncCatalog, ActionSyncStorage:
			syncActions = append(syncActions, action)
		}
	}

	// Any mutation makes the cached indices stale.
	defer InvalidateCache(spec)

	if len(deleteCatalogKeys) > 0 {
		if err := mutator.DeleteCatalog(ctx, deleteCatalogKeys); err != nil {
			return executed, fmt.Errorf("failed to delete catalog keys: %w", err)
		}
		executed += len(deleteCatalogKeys)
	}

	if len(deleteStorageKeys) > 0 {
		if err := mutator.DeleteStorage(ctx, deleteStorageKeys); err != nil {
			return executed, fmt.Errorf("failed to delete storage keys: %w", err)
		}
		executed += len(deleteStorageKeys)
	}

	if len(syncActions) > 0 {
		if err := mutator.Sync(ctx, spec.Scope, syncActions); err != nil {
			return executed, fmt.Errorf("failed to sync: %w", err)
		}
		executed += len(syncActions)
	}

	return executed, nil
}

// ReconcileAndApply is a convenience wrapper that plans and optionally applies actions.
func ReconcileAndApply(ctx context.Context, spec *Spec, opts ReconcileOptions) (*ReconcilePlan, int, error) {
	plan, err := ReconcileWithPlan(ctx, spec, opts)
	if err != nil {
		return nil, 0, err
	}

	executed, err := ApplyPlan(ctx, spec, plan, opts)
	return plan, executed, err
}

// buildPlanFromResults generates a summary and action plan from reconciliation results.
func buildPlanFromResults(results []ReconcileResult, cache *ReconcileCache, opts ReconcileOptions) (PlanSummary, []Action) {
	var summary PlanSummary
	var actions []Action

	summary.TotalItems = len(results)

	for _, result := range results {
		if !result.SourcePresent {
			summary.Orphans++

			// The source is read-only, so orphans can only be purged.
			if opts.DoPurge {
				reason := orphanReason(result)
				if result.CatalogPresent {
					actions = append(actions, Action{Type: ActionDeleteCatalog, Key: result.ID, Reason: reason})
					summary.PurgeActions++
				}
				if result.StoragePresent {
					actions = append(actions, Action{Type: ActionDeleteStorage, Key: result.ID, Reason: reason})
					summary.PurgeActions++
				}
			}
			continue
		}

		if !result.CatalogPresent {
			summary.MissingCatalog++
		}
		if !result.StoragePresent {
			summary.MissingStorage++
		}
		if len(result.Mismatch) > 0 {
			summary.Mismatches++
		}

		if !opts.DoSync {
			continue
		}
		src := cache.SourceIndex[result.ID]
		switch {
		case !result.CatalogPresent:
			actions = append(actions, Action{Type: ActionSyncCatalog, Key: result.ID, Reason: "missing in catalog", Source: src})
			summary.SyncActions++
		case len(result.Mismatch) > 0:
			actions = append(actions, Action{
				Type:   ActionSyncCatalog,
				Key:    result.ID,
				Reason: "mismatch: " + strings.Join(result.Mismatch, "; "),
				Source: src,
			})
			summary.SyncActions++
		}
		if !result.StoragePresent {
			actions = append(actions, Action{Type: ActionSyncStorage, Key: result.ID, Reason: "missing in storage", Source: src})
			summary.SyncActions++
		}
	}

	return summary, actions
}

// orphanReason describes where an orphaned record was found.
func orphanReason(result ReconcileResult) string {
	var found []string
	if result.CatalogPresent {
		found = append(found, "catalog")
	}
	if result.StoragePresent {
		found = append(found, "storage")
	}
	return fmt.Sprintf("not in source, found in: %s", strings.Join(found, ", "))
}
