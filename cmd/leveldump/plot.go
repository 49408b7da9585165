package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/banshee-data/leveldump/internal/config"
	"github.com/banshee-data/leveldump/internal/dump"
	"github.com/banshee-data/leveldump/internal/monitoring"
	"github.com/banshee-data/leveldump/internal/render"
)

func (a *app) newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot [dump-file]",
		Short: "Render a dump as a scatter plot",
		Long:  "Parse a dump (default dump.txt) and draw one scatter layer per level, marker size growing with the level id. Root points are sized one level above the highest level.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.runPlot,
	}

	cmd.Flags().StringP("output", "o", "", "Output file (default dump.png)")
	cmd.Flags().StringP("format", "f", "", "Output format: png or html (default from the output extension, else png)")
	cmd.Flags().String("title", "", "Plot title")
	cmd.Flags().Float64("base-size", config.DefaultBaseMarkerSize, "Base marker size; area is (base·2^level)²")
	cmd.Flags().Float64("max-radius", config.DefaultMaxMarkerRadius, "Largest marker radius in points")

	for _, name := range []string{"output", "format", "title", "base-size", "max-radius"} {
		_ = a.v.BindPFlag(name, cmd.Flags().Lookup(name))
	}
	return cmd
}

func (a *app) runPlot(cmd *cobra.Command, args []string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	in := inputPath(cfg, args)
	levels, err := dump.ParseFile(a.fsys, in)
	if err != nil {
		return err
	}

	out := cfg.GetOutputPath()
	format := cfg.GetFormat()
	if cfg.Format == nil && strings.EqualFold(filepath.Ext(out), ".html") {
		format = config.FormatHTML
	}

	if err := render.Save(a.fsys, out, format, levels, render.OptionsFromConfig(cfg)); err != nil {
		return err
	}
	monitoring.Logf("plotted %d points in %d levels from %s to %s", levels.PointCount(), len(levels), in, out)
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
