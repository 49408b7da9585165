package render

import (
	"fmt"
	"io"

	"github.com/banshee-data/leveldump/internal/config"
	"github.com/banshee-data/leveldump/internal/dump"
	"github.com/banshee-data/leveldump/internal/fsutil"
	"github.com/banshee-data/leveldump/internal/monitoring"
)

// OptionsFromConfig builds render options from a loaded config.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Title:        cfg.GetTitle(),
		WidthInches:  cfg.GetWidthInches(),
		HeightInches: cfg.GetHeightInches(),
		BaseSize:     cfg.GetBaseMarkerSize(),
		MaxRadius:    cfg.GetMaxMarkerRadius(),
	}
}

// Save renders levels in the given format ("png" or "html") to path on fsys,
// creating parent directories as needed.
func Save(fsys fsutil.FileSystem, path, format string, levels dump.Levels, opts Options) (err error) {
	var draw func(io.Writer, dump.Levels, Options) error
	switch format {
	case config.FormatPNG:
		draw = PNG
	case config.FormatHTML:
		draw = HTML
	default:
		return fmt.Errorf("unsupported plot format %q", format)
	}

	w, err := fsutil.CreateAll(fsys, path)
	if err != nil {
		return fmt.Errorf("create plot file: %w", err)
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close plot file: %w", cerr)
		}
	}()

	if err := draw(w, levels, opts); err != nil {
		return err
	}
	monitoring.Debugf("wrote %s plot of %d levels to %s", format, len(levels), path)
	return nil
}
