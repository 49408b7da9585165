package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/banshee-data/leveldump/internal/dump"
	"github.com/banshee-data/leveldump/internal/monitoring"
)

func (a *app) newKNNCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "knn [dump-file]",
		Short: "List the points nearest to a query point",
		Long:  "Index every point of a dump in a k-d tree and print the k nearest to (--x, --y), nearest first, with the level each came from.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, _ := cmd.Flags().GetInt("k")
			if k < 0 {
				return fmt.Errorf("k must be non-negative, got %d", k)
			}
			var q dump.Point
			q.X, _ = cmd.Flags().GetFloat64("x")
			q.Y, _ = cmd.Flags().GetFloat64("y")

			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			in := inputPath(cfg, args)
			levels, err := dump.ParseFile(a.fsys, in)
			if err != nil {
				return err
			}

			ix := dump.NewIndex(levels)
			if skipped := levels.PointCount() - ix.Len(); skipped > 0 {
				monitoring.Logf("%s: %d non-finite points not indexed", in, skipped)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "RANK\tLEVEL\tX\tY\tDISTANCE")
			for i, n := range ix.Nearest(q, k) {
				fmt.Fprintf(tw, "%d\t%s\t%g\t%g\t%.6g\n", i+1, levelName(n.Level), n.Point.X, n.Point.Y, n.Distance)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntP("k", "k", 10, "Number of neighbours")
	cmd.Flags().Float64("x", 0, "Query x")
	cmd.Flags().Float64("y", 0, "Query y")
	return cmd
}
