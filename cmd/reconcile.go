package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"laion-dataset/core/catalog"
	"laion-dataset/core/database"
	"laion-dataset/core/reconcile"
	"laion-dataset/core/shards"
	"laion-dataset/core/storage"
	"laion-dataset/feature/ingest"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	purgeShard  bool
	syncShard   bool
	dryRunShard bool
	yesConfirm  bool
)

// reconcileCmd compares one ingested shard with its source files
var reconcileCmd = &cobra.Command{
	Use:   "reconcile [shard]",
	Short: "Reconcile an ingested shard between source files, catalog and storage",
	Long: `Reconcile a shard to detect records missing in the catalog or storage, orphans, and mismatches.

Examples:
  # Report only
  reconcile 42

  # Delete catalog rows and objects that have no source record
  reconcile 42 --purge

  # Rewrite missing and stale records, non-interactively
  reconcile 42 --sync --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runReconcile,
}

func init() {
	f := reconcileCmd.Flags()
	f.BoolVar(&purgeShard, "purge", false, "Enable purge (delete orphaned catalog rows and objects)")
	f.BoolVar(&syncShard, "sync", false, "Enable sync (rewrite missing and mismatched records from the source)")
	f.BoolVar(&dryRunShard, "dry-run", false, "Force dry-run (no mutations even with --yes)")
	f.BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")
	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	shardIdx, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid shard index %q", args[0])
	}
	if err := shards.Validate(shardIdx); err != nil {
		return err
	}

	rt, err := newSession()
	if err != nil {
		return err
	}
	defer rt.Close()
	cfg, l := rt.cfg, rt.logger
	ctx := cmd.Context()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}

	adapter, err := ingest.NewShardAdapter(rt.builder(), ingest.Backends{
		Storage: client,
		Bucket:  cfg.Storage.Bucket,
		Region:  cfg.Storage.Region,
		Catalog: catalog.NewRepository(db),
	}, cfg.Pipeline.BatchSize)
	if err != nil {
		return err
	}
	if err := adapter.Prepare(ctx); err != nil {
		return err
	}

	spec := adapter.Spec(shardIdx)
	opts := reconcile.ReconcileOptions{
		DoPurge: purgeShard,
		DoSync:  syncShard,
		DryRun:  dryRunShard,
	}

	l.Info("Planning reconciliation...", zap.Int("shard", shardIdx))
	plan, err := reconcile.ReconcileWithPlan(ctx, spec, opts)
	if err != nil {
		return fmt.Errorf("failed to plan reconciliation: %w", err)
	}
	printReconcileReport(l, plan)

	if !purgeShard && !syncShard {
		l.Info("No actions requested. Use --purge to delete orphans or --sync to repair missing and stale records.")
		return nil
	}
	if dryRunShard {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}
	if len(plan.Actions) == 0 {
		l.Info("No actions required based on current flags.")
		return nil
	}

	if !confirmDestructiveAction(cmd.InOrStdin(), cmd.OutOrStdout()) {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}
	opts.Confirmed = true

	l.Info("Applying actions...")
	executed, err := reconcile.ApplyPlan(ctx, spec, plan, opts)
	if err != nil {
		return fmt.Errorf("failed to apply plan: %w", err)
	}
	l.Info("Successfully executed actions", zap.Int("count", executed))
	return nil
}

// printReconcileReport prints a formatted reconciliation report using logger.
func printReconcileReport(l *zap.Logger, plan *reconcile.ReconcilePlan) {
	s := plan.Summary

	l.Info("Reconciliation report",
		zap.Int("total_items", s.TotalItems),
		zap.Int("missing_catalog", s.MissingCatalog),
		zap.Int("missing_storage", s.MissingStorage),
		zap.Int("orphans", s.Orphans),
		zap.Int("mismatches", s.Mismatches),
	)

	if len(plan.Actions) == 0 {
		return
	}
	l.Info("Planned actions",
		zap.Int("purge_actions", s.PurgeActions),
		zap.Int("sync_actions", s.SyncActions),
		zap.Int("total_actions", len(plan.Actions)),
	)

	shown := head(plan.Actions, 5)
	for _, action := range shown {
		l.Info("Sample action",
			zap.String("type", string(action.Type)),
			zap.String("key", action.Key),
			zap.String("reason", action.Reason),
		)
	}
	if len(plan.Actions) > len(shown) {
		l.Info("Additional actions not shown", zap.Int("count", len(plan.Actions)-len(shown)))
	}
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction(in io.Reader, out io.Writer) bool {
	if yesConfirm {
		fmt.Fprintln(out, "\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Fprint(out, "\n⚠️  Type 'yes' to confirm destructive actions: ")
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(response) == "yes"
}
