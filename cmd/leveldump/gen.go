package main

import (
	"github.com/spf13/cobra"

	"github.com/banshee-data/leveldump/internal/dump"
)

func (a *app) newGenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a synthetic dump of normally distributed points",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var opts dump.GenerateOptions
			opts.Levels, _ = cmd.Flags().GetInt("levels")
			opts.TopLevel, _ = cmd.Flags().GetInt("top")
			opts.Points, _ = cmd.Flags().GetInt("points")
			opts.Sigma, _ = cmd.Flags().GetFloat64("sigma")
			opts.Seed, _ = cmd.Flags().GetUint64("seed")
			out, _ := cmd.Flags().GetString("output")

			levels, err := dump.Generate(opts)
			if err != nil {
				return err
			}
			return a.writeDump(cmd, out, levels)
		},
	}

	cmd.Flags().Int("levels", 6, "Number of levels (0 puts every point at the root)")
	cmd.Flags().Int("top", 0, "Id of the coarsest level")
	cmd.Flags().Int("points", 1000, "Total number of points")
	cmd.Flags().Float64("sigma", 1, "Standard deviation of the coordinates")
	cmd.Flags().Uint64("seed", 1, "Random seed")
	cmd.Flags().StringP("output", "o", "-", "Output file, - for stdout")
	return cmd
}
