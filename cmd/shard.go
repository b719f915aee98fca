package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"laion-dataset/feature/laion"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var shardLimit int

// shardCmd lists the records of one shard
var shardCmd = &cobra.Command{
	Use:   "shard [idx]",
	Short: "List the records of one shard",
	Long:  `Joins the images of a shard archive with its metadata table and prints one line per record, in archive order.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid shard index %q: %w", args[0], err)
		}

		rt, err := newSession()
		if err != nil {
			return err
		}
		defer rt.Close()

		b := rt.builder()
		if err := b.DownloadData(cmd.Context()); err != nil {
			return err
		}

		out := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(out, "KEY\tSIZE\tNSFW\tSIMILARITY\tCAPTION")

		var count int
		var total uint64
		for rec, err := range b.GenerateShard(cmd.Context(), idx) {
			if err != nil {
				return err
			}
			count++
			total += uint64(len(rec.Image))
			fmt.Fprintf(out, "%s\t%s\t%v\t%.4f\t%s\n",
				rec.Key,
				humanize.Bytes(uint64(len(rec.Image))),
				rec.Fields[laion.FieldNSFW],
				rec.Fields[laion.FieldSimilarity],
				truncate(fmt.Sprint(rec.Fields[laion.FieldCaption]), 60))
			if shardLimit > 0 && count >= shardLimit {
				break
			}
		}
		if err := out.Flush(); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\n%s records, %s of images\n", humanize.Comma(int64(count)), humanize.Bytes(total))
		return nil
	},
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func init() {
	shardCmd.Flags().IntVar(&shardLimit, "limit", 20, "Maximum number of records to print (0 for all)")
	RootCmd.AddCommand(shardCmd)
}
