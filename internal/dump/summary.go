package dump

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// LevelSummary describes the points of one level.
type LevelSummary struct {
	Level   int
	Count   int
	MeanX   float64
	MeanY   float64
	StdDevX float64 // zero for a single point
	StdDevY float64
	MinX    float64
	MinY    float64
	MaxX    float64
	MaxY    float64
}

// Summarize returns one summary per non-empty level, ordered by level id.
func Summarize(levels Levels) []LevelSummary {
	out := make([]LevelSummary, 0, len(levels))
	for _, id := range levels.IDs() {
		xs, ys := levels.XY(id)
		if len(xs) == 0 {
			continue
		}
		s := LevelSummary{
			Level: id,
			Count: len(xs),
			MeanX: stat.Mean(xs, nil),
			MeanY: stat.Mean(ys, nil),
			MinX:  floats.Min(xs),
			MinY:  floats.Min(ys),
			MaxX:  floats.Max(xs),
			MaxY:  floats.Max(ys),
		}
		if len(xs) > 1 {
			s.StdDevX = stat.StdDev(xs, nil)
			s.StdDevY = stat.StdDev(ys, nil)
		}
		out = append(out, s)
	}
	return out
}
