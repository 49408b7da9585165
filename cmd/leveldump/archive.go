package main

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/banshee-data/leveldump/internal/dump"
	"github.com/banshee-data/leveldump/internal/fsutil"
	"github.com/banshee-data/leveldump/internal/monitoring"
)

func (a *app) newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [dump-file]",
		Short: "Parse a dump and archive it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			in := inputPath(cfg, args)
			levels, err := dump.ParseFile(a.fsys, in)
			if err != nil {
				return err
			}

			name, _ := cmd.Flags().GetString("name")
			if name == "" {
				name = filepath.Base(in)
			}

			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			id, err := s.SaveDump(name, in, levels)
			if err != nil {
				return err
			}
			monitoring.Logf("archived %s as %s (%d points)", in, id, levels.PointCount())
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	cmd.Flags().String("name", "", "Archive name (default the file name)")
	return cmd
}

func (a *app) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List archived dumps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			infos, err := s.ListDumps()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tLEVELS\tPOINTS\tCREATED\tSOURCE")
			for _, info := range infos {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\n",
					info.ID, info.Name, info.Levels, info.Points, info.CreatedAt.UTC().Format(time.RFC3339), info.SourcePath)
			}
			return tw.Flush()
		},
	}
}

func (a *app) newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Write an archived dump back out in dump format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			levels, err := s.LoadDump(args[0])
			if err != nil {
				return err
			}
			out, _ := cmd.Flags().GetString("output")
			return a.writeDump(cmd, out, levels)
		},
	}
	cmd.Flags().StringP("output", "o", "-", "Output file, - for stdout")
	return cmd
}

// writeDump writes levels in dump format to path, or to the command's
// output when path is "-".
func (a *app) writeDump(cmd *cobra.Command, path string, levels dump.Levels) (err error) {
	if path == "-" || path == "" {
		return dump.Write(cmd.OutOrStdout(), levels)
	}

	w, err := fsutil.CreateAll(a.fsys, path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return dump.Write(w, levels)
}
