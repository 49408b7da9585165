package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/banshee-data/leveldump/internal/config"
	"github.com/banshee-data/leveldump/internal/fsutil"
	"github.com/banshee-data/leveldump/internal/monitoring"
	"github.com/banshee-data/leveldump/internal/store"
)

// app carries what every subcommand needs. Each root command gets its own
// viper instance so tests can build several roots side by side.
type app struct {
	v    *viper.Viper
	fsys fsutil.FileSystem
}

func newRootCmd(fsys fsutil.FileSystem) *cobra.Command {
	a := &app{v: viper.New(), fsys: fsys}
	a.v.SetEnvPrefix("LEVELDUMP")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:          "leveldump",
		Short:        "Plot level/point debug dumps",
		Long:         "leveldump reads brace-scoped Level/Point debug dumps, plots them with marker size scaled by level, and archives them in sqlite.",
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			monitoring.SetVerbose(a.v.GetBool("verbose"))
		},
	}

	cmd.PersistentFlags().String("config", "", "JSON config file")
	cmd.PersistentFlags().String("db", "", "sqlite archive path (default leveldump.db)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	_ = a.v.BindPFlag("config", cmd.PersistentFlags().Lookup("config"))
	_ = a.v.BindPFlag("db", cmd.PersistentFlags().Lookup("db"))
	_ = a.v.BindPFlag("verbose", cmd.PersistentFlags().Lookup("verbose"))

	cmd.AddCommand(
		a.newPlotCmd(),
		a.newStatsCmd(),
		a.newKNNCmd(),
		a.newGenCmd(),
		a.newImportCmd(),
		a.newListCmd(),
		a.newExportCmd(),
		newVersionCmd(),
	)
	return cmd
}

// loadConfig reads --config (if any) and applies flag and environment
// overrides on top.
func (a *app) loadConfig() (*config.Config, error) {
	cfg := config.Empty()
	if path := a.v.GetString("config"); path != "" {
		loaded, err := config.Load(a.fsys, path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	overrideString(a.v, "db", &cfg.DBPath)
	overrideString(a.v, "output", &cfg.OutputPath)
	overrideString(a.v, "format", &cfg.Format)
	overrideString(a.v, "title", &cfg.Title)
	overrideFloat(a.v, "base-size", &cfg.BaseMarkerSize)
	overrideFloat(a.v, "max-radius", &cfg.MaxMarkerRadius)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openStore opens the configured archive and brings its schema up to date.
func (a *app) openStore() (*store.Store, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	s, err := store.Open(cfg.GetDBPath())
	if err != nil {
		return nil, err
	}
	if err := s.MigrateUp(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// inputPath prefers a positional argument over the configured input file.
func inputPath(cfg *config.Config, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.GetInputPath()
}

func overrideString(v *viper.Viper, key string, dst **string) {
	if v.IsSet(key) {
		s := v.GetString(key)
		*dst = &s
	}
}

func overrideFloat(v *viper.Viper, key string, dst **float64) {
	if v.IsSet(key) {
		f := v.GetFloat64(key)
		*dst = &f
	}
}
