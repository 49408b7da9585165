package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/banshee-data/leveldump/internal/fsutil"
)

// Output formats understood by the plot command.
const (
	FormatPNG  = "png"
	FormatHTML = "html"
)

// Defaults applied by the Get* accessors when a field is unset.
const (
	DefaultInputPath       = "dump.txt"
	DefaultOutputPath      = "dump.png"
	DefaultFormat          = FormatPNG
	DefaultBaseMarkerSize  = 1.0
	DefaultMaxMarkerRadius = 40.0
	DefaultWidthInches     = 8.0
	DefaultHeightInches    = 8.0
	DefaultTitle           = "Level dump"
	DefaultDBPath          = "leveldump.db"
)

const maxConfigBytes = 1 * 1024 * 1024 // 1MB

// Config is the leveldump configuration file. Every field is optional;
// omitted fields fall back to the defaults above.
type Config struct {
	// Input / output
	InputPath  *string `json:"input_path,omitempty"`
	OutputPath *string `json:"output_path,omitempty"`
	Format     *string `json:"format,omitempty"` // "png" or "html"

	// Marker sizing
	BaseMarkerSize  *float64 `json:"base_marker_size,omitempty"`
	MaxMarkerRadius *float64 `json:"max_marker_radius,omitempty"` // points

	// Canvas
	WidthInches  *float64 `json:"width_inches,omitempty"`
	HeightInches *float64 `json:"height_inches,omitempty"`
	Title        *string  `json:"title,omitempty"`

	// Archive
	DBPath *string `json:"db_path,omitempty"`
}

// Empty returns a Config with every field unset.
func Empty() *Config {
	return &Config{}
}

// Load reads a Config from a JSON file on fsys. The file must have a .json
// extension and be at most 1MB.
func Load(fsys fsutil.FileSystem, path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := fsys.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxConfigBytes {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigBytes)
	}

	data, err := fsys.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Empty()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the values that are set.
func (c *Config) Validate() error {
	if c.Format != nil {
		switch *c.Format {
		case FormatPNG, FormatHTML:
		default:
			return fmt.Errorf("format must be %q or %q, got %q", FormatPNG, FormatHTML, *c.Format)
		}
	}
	if c.BaseMarkerSize != nil && *c.BaseMarkerSize <= 0 {
		return fmt.Errorf("base_marker_size must be positive, got %f", *c.BaseMarkerSize)
	}
	if c.MaxMarkerRadius != nil && *c.MaxMarkerRadius <= 0 {
		return fmt.Errorf("max_marker_radius must be positive, got %f", *c.MaxMarkerRadius)
	}
	if c.WidthInches != nil && *c.WidthInches <= 0 {
		return fmt.Errorf("width_inches must be positive, got %f", *c.WidthInches)
	}
	if c.HeightInches != nil && *c.HeightInches <= 0 {
		return fmt.Errorf("height_inches must be positive, got %f", *c.HeightInches)
	}
	return nil
}

// GetInputPath returns the dump file to read.
func (c *Config) GetInputPath() string {
	if c.InputPath == nil || *c.InputPath == "" {
		return DefaultInputPath
	}
	return *c.InputPath
}

// GetOutputPath returns the plot file to write.
func (c *Config) GetOutputPath() string {
	if c.OutputPath == nil || *c.OutputPath == "" {
		return DefaultOutputPath
	}
	return *c.OutputPath
}

// GetFormat returns the plot output format.
func (c *Config) GetFormat() string {
	if c.Format == nil || *c.Format == "" {
		return DefaultFormat
	}
	return *c.Format
}

func (c *Config) GetBaseMarkerSize() float64 {
	if c.BaseMarkerSize == nil {
		return DefaultBaseMarkerSize
	}
	return *c.BaseMarkerSize
}

func (c *Config) GetMaxMarkerRadius() float64 {
	if c.MaxMarkerRadius == nil {
		return DefaultMaxMarkerRadius
	}
	return *c.MaxMarkerRadius
}

func (c *Config) GetWidthInches() float64 {
	if c.WidthInches == nil {
		return DefaultWidthInches
	}
	return *c.WidthInches
}

func (c *Config) GetHeightInches() float64 {
	if c.HeightInches == nil {
		return DefaultHeightInches
	}
	return *c.HeightInches
}

func (c *Config) GetTitle() string {
	if c.Title == nil {
		return DefaultTitle
	}
	return *c.Title
}

// GetDBPath returns the sqlite archive path.
func (c *Config) GetDBPath() string {
	if c.DBPath == nil || *c.DBPath == "" {
		return DefaultDBPath
	}
	return *c.DBPath
}
