package cmd

import (
	"fmt"

	"laion-dataset/core/catalog"
	"laion-dataset/core/database"
	"laion-dataset/core/shards"
	"laion-dataset/core/storage"
	"laion-dataset/feature/ingest"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	ingestStart   int
	ingestEnd     int
	ingestWorkers int
	ingestSinks   string
	ingestClean   bool
)

// ingestCmd feeds shards into the configured sinks
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest a range of shards into object storage and the catalog",
	Long: `Generates every record of the selected shards and writes it to each enabled sink.
Flags override the dataset and pipeline configuration. The first error aborts the run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newSession()
		if err != nil {
			return err
		}
		defer rt.Close()
		cfg, logg := rt.cfg, rt.logger

		flags := cmd.Flags()
		if flags.Changed("start") {
			cfg.Dataset.Start = ingestStart
		}
		if flags.Changed("end") {
			cfg.Dataset.End = ingestEnd
		}
		if flags.Changed("workers") {
			cfg.Pipeline.Workers = ingestWorkers
		}
		if flags.Changed("sinks") {
			cfg.Pipeline.Sinks = ingestSinks
		}
		if flags.Changed("clean") {
			cfg.Pipeline.Clean = ingestClean
		}

		backends := ingest.Backends{Bucket: cfg.Storage.Bucket, Region: cfg.Storage.Region}
		for _, name := range cfg.Pipeline.SinkNames() {
			switch name {
			case ingest.SinkStorage:
				client, err := storage.NewClient(cfg.Storage)
				if err != nil {
					return err
				}
				backends.Storage = client
			case ingest.SinkCatalog:
				db, err := database.Connect(cfg.Database)
				if err != nil {
					return fmt.Errorf("catalog sink: %w", err)
				}
				backends.Catalog = catalog.NewRepository(db)
			}
		}

		sinks, err := ingest.BuildSinks(cfg.Pipeline, backends)
		if err != nil {
			return err
		}

		r := cfg.Dataset.Range()
		logg.Info("Ingesting shards",
			zap.Int("start", r.Start),
			zap.Int("end", r.End),
			zap.Strings("sinks", cfg.Pipeline.SinkNames()))

		pipeline := ingest.NewPipeline(rt.builder(), cfg.Pipeline, logg, sinks...)
		summary, err := pipeline.Run(cmd.Context(), r)
		if summary != nil {
			fmt.Fprintln(cmd.OutOrStdout(), summary.String())
		}
		return err
	},
}

func init() {
	f := ingestCmd.Flags()
	f.IntVar(&ingestStart, "start", 0, "First shard index")
	f.IntVar(&ingestEnd, "end", shards.Count, "End of the shard range (exclusive)")
	f.IntVar(&ingestWorkers, "workers", 4, "Number of shards processed concurrently")
	f.StringVar(&ingestSinks, "sinks", "storage,catalog", "Comma separated sinks (storage, catalog)")
	f.BoolVar(&ingestClean, "clean", false, "Remove previously ingested records of each shard first")
	RootCmd.AddCommand(ingestCmd)
}
