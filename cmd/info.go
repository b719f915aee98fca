package cmd

import (
	"fmt"

	"laion-dataset/feature/laion"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

// infoCmd prints the dataset description
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the dataset description and feature schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := json.MarshalIndent(laion.NewInfo(), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal info: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(infoCmd)
}
