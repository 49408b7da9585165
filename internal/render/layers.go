// Package render draws a parsed dump as a scatter plot, one layer per level,
// with marker size growing geometrically with the level id.
package render

import (
	"fmt"
	"math"

	"github.com/banshee-data/leveldump/internal/dump"
)

// Options controls how a dump is drawn.
type Options struct {
	Title string
	// WidthInches and HeightInches size the canvas. HTML output uses 96 px
	// per inch.
	WidthInches  float64
	HeightInches float64
	// BaseSize scales every marker: area = (BaseSize·2^level)² points².
	BaseSize float64
	// MaxRadius caps the drawn marker radius in points.
	MaxRadius float64
}

// DefaultOptions matches the config package defaults.
func DefaultOptions() Options {
	return Options{
		Title:        "Level dump",
		WidthInches:  8,
		HeightInches: 8,
		BaseSize:     1,
		MaxRadius:    40,
	}
}

const minRadius = 0.5 // points; keeps deep levels visible

// Layer is one level ready to draw.
type Layer struct {
	Level int
	// SizeLevel is the level used for marker sizing. It equals Level except
	// for dump.RootLevel, which sizes one above the highest real level.
	SizeLevel int
	Label     string
	Size      float64 // marker area in points²
	Points    []dump.Point
}

// MarkerSize returns the marker area in points² for a level:
// (base·2^level)².
func MarkerSize(level int, base float64) float64 {
	d := base * math.Pow(2, float64(level))
	return d * d
}

// SizeLevel returns the level used to size markers of id. The root sentinel
// maps to one above the highest real level, or 0 when there is none.
func SizeLevel(levels dump.Levels, id int) int {
	if id != dump.RootLevel {
		return id
	}
	max, ok := levels.MaxLevel()
	if !ok {
		return 0
	}
	return max + 1
}

// Layers orders the non-empty levels by id and sizes them.
func Layers(levels dump.Levels, base float64) []Layer {
	out := make([]Layer, 0, len(levels))
	for _, id := range levels.IDs() {
		pts := levels[id]
		if len(pts) == 0 {
			continue
		}
		sl := SizeLevel(levels, id)
		out = append(out, Layer{
			Level:     id,
			SizeLevel: sl,
			Label:     levelLabel(id),
			Size:      MarkerSize(sl, base),
			Points:    pts,
		})
	}
	return out
}

// Radius converts a marker area to a glyph radius in points, clamped to
// [0.5, maxRadius].
func (l Layer) Radius(maxRadius float64) float64 {
	r := math.Sqrt(l.Size) / 2
	if r < minRadius {
		return minRadius
	}
	if maxRadius > 0 && r > maxRadius {
		return maxRadius
	}
	return r
}

func levelLabel(id int) string {
	if id == dump.RootLevel {
		return "root"
	}
	return fmt.Sprintf("level %d", id)
}
