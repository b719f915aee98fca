package cmd

import (
	"context"
	"fmt"

	"laion-dataset/core/shards"
	"laion-dataset/core/storage"
	"laion-dataset/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on the shards and sinks",
	Long:  `Checks that the shard files are present in the manual directory, that the bucket has the required folder structure and that the catalog schema matches.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return cmd.Help()
		}
		return runIntegrityChecks(cmd.Context(), true, true, true)
	},
}

// shardsCheckCmd represents the integrity shards command
var shardsCheckCmd = &cobra.Command{
	Use:   "shards",
	Short: "Check for missing shard files",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, false, false)
	},
}

// structureCmd represents the integrity structure command
var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Check and fix folder structure",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, true, false)
	},
}

// catalogCmd represents the integrity catalog command
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Check the catalog database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, false, true)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(shardsCheckCmd)
	integrityCmd.AddCommand(structureCmd)
	integrityCmd.AddCommand(catalogCmd)

	integrityCmd.PersistentFlags().BoolVar(&fixFlag, "fix", false, "Fix missing folders")
}

func runIntegrityChecks(ctx context.Context, runShards, runStructure, runCatalog bool) error {
	rt, err := newSession()
	if err != nil {
		return err
	}
	defer rt.Close()
	cfg, logg := rt.cfg, rt.logger

	var store storage.Client
	if runStructure {
		if store, err = storage.NewClient(cfg.Storage); err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}
	}
	db := rt.catalogDB()
	if runCatalog && db == nil {
		logg.Warn("Catalog check skipped: no database connection")
	}

	svc := integrity.NewService(store, cfg.Storage.Bucket, db, cfg.Dataset.ManualDir, cfg.Dataset.Range(), logg)

	if runShards {
		logg.Info("Checking shard files...", zap.String("manual_dir", cfg.Dataset.ManualDir))
		report, err := svc.CheckShards(ctx, shards.Range{})
		if err != nil {
			logg.Error("Shard check failed", zap.Error(err))
		} else if report.Matched() {
			logg.Info("All shard files present.", zap.Int("checked", report.Checked))
		} else {
			logg.Warn("Missing shard files",
				zap.Int("checked", report.Checked),
				zap.Int("complete", report.Complete),
				zap.Ints("missing_archives", head(report.MissingArchives, 20)),
				zap.Ints("missing_metadata", head(report.MissingMetadata, 20)))
		}
	}

	if runStructure {
		logg.Info("Checking storage structure...", zap.String("bucket", cfg.Storage.Bucket))
		missing, err := svc.CheckStructure(ctx)
		if err != nil {
			logg.Error("Structure check failed", zap.Error(err))
		} else if len(missing) == 0 {
			logg.Info("Storage structure is valid.")
		} else {
			logg.Warn("Missing folders", zap.Strings("folders", missing))
			if fixFlag {
				logg.Info("Fixing missing folders...")
				if err := svc.FixStructure(ctx, missing); err != nil {
					return fmt.Errorf("failed to fix structure: %w", err)
				}
				logg.Info("Structure fixed successfully.")
			} else {
				logg.Info("Run with --fix to create missing folders.")
			}
		}
	}

	if runCatalog && db != nil {
		logg.Info("Checking catalog schema integrity...", zap.String("driver", cfg.Database.Driver))
		report, err := svc.CheckCatalog()
		if err != nil {
			logg.Error("Catalog schema check failed", zap.Error(err))
		} else if report.Matched {
			logg.Info("Catalog schema matches expected definition.")
		} else {
			logg.Warn("Catalog schema mismatches found")
			for table, tblReport := range report.Tables {
				if tblReport.Status != "ok" {
					if len(tblReport.MissingColumns) > 0 {
						logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tblReport.MissingColumns))
					}
					if len(tblReport.TypeMismatches) > 0 {
						logg.Warn("Type Mismatches", zap.String("table", table), zap.Strings("mismatches", tblReport.TypeMismatches))
					}
				}
			}
			for _, e := range report.Errors {
				logg.Error("Inspection Error", zap.String("error", e))
			}
		}
	}

	return nil
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
