package cmd

import (
	"fmt"
	"os"

	"laion-dataset/feature/laion"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var recordImageOut string

// recordCmd prints one record
var recordCmd = &cobra.Command{
	Use:   "record [key]",
	Short: "Print one record by its <shard>_<row> key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newSession()
		if err != nil {
			return err
		}
		defer rt.Close()

		svc := laion.NewService(rt.builder(), rt.logger)
		rec, err := svc.Record(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(laion.NewRecordView(*rec), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))

		if recordImageOut != "" {
			if err := os.WriteFile(recordImageOut, rec.Image, 0o644); err != nil {
				return fmt.Errorf("failed to write image: %w", err)
			}
			rt.logger.Info("Image written", zap.String("file", recordImageOut), zap.Int("bytes", len(rec.Image)))
		}
		return nil
	},
}

func init() {
	recordCmd.Flags().StringVarP(&recordImageOut, "out", "o", "", "Write the image bytes to this file")
	RootCmd.AddCommand(recordCmd)
}
