package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/banshee-data/leveldump/internal/dump"
)

func (a *app) newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [dump-file]",
		Short: "Print per-level point statistics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			levels, err := dump.ParseFile(a.fsys, inputPath(cfg, args))
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "LEVEL\tPOINTS\tMEAN X\tMEAN Y\tSTD X\tSTD Y\tMIN X\tMAX X\tMIN Y\tMAX Y")
			for _, s := range dump.Summarize(levels) {
				fmt.Fprintf(tw, "%s\t%d\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\n",
					levelName(s.Level), s.Count, s.MeanX, s.MeanY, s.StdDevX, s.StdDevY, s.MinX, s.MaxX, s.MinY, s.MaxY)
			}
			fmt.Fprintf(tw, "total\t%d\n", levels.PointCount())
			return tw.Flush()
		},
	}
}

func levelName(id int) string {
	if id == dump.RootLevel {
		return "root"
	}
	return fmt.Sprint(id)
}
