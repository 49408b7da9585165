package dump

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// maxGenerateLevels keeps the per-level weights (powers of two) well inside int.
const maxGenerateLevels = 30

// GenerateOptions controls Generate.
type GenerateOptions struct {
	// Levels is the number of consecutive level ids to fill. Zero puts every
	// point under RootLevel.
	Levels int
	// TopLevel is the id of the coarsest level; lower levels count down from it.
	TopLevel int
	// Points is the total number of points across all levels.
	Points int
	// Sigma is the standard deviation of both coordinates. Defaults to 1.
	Sigma float64
	Seed  uint64
}

// Validate checks the options before generation.
func (o GenerateOptions) Validate() error {
	if o.Levels < 0 || o.Levels > maxGenerateLevels {
		return fmt.Errorf("levels must be between 0 and %d, got %d", maxGenerateLevels, o.Levels)
	}
	if o.Points < 0 {
		return fmt.Errorf("points must be non-negative, got %d", o.Points)
	}
	if o.Sigma < 0 {
		return fmt.Errorf("sigma must be non-negative, got %f", o.Sigma)
	}
	return nil
}

// Generate produces a synthetic dump of normally distributed points shaped
// like a cover tree: each level holds roughly twice as many points as the
// level above it. The same options always give the same dump.
func Generate(opts GenerateOptions) (Levels, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	sigma := opts.Sigma
	if sigma == 0 {
		sigma = 1
	}
	normal := distuv.Normal{Mu: 0, Sigma: sigma, Src: rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)}

	levels := make(Levels)
	if opts.Levels == 0 {
		for i := 0; i < opts.Points; i++ {
			levels.Append(RootLevel, Point{X: normal.Rand(), Y: normal.Rand()})
		}
		return levels, nil
	}

	for i, n := range levelCounts(opts.Levels, opts.Points) {
		id := opts.TopLevel - i
		for j := 0; j < n; j++ {
			levels.Append(id, Point{X: normal.Rand(), Y: normal.Rand()})
		}
	}
	return levels, nil
}

// levelCounts splits total over n levels with weights 1, 2, 4, ... from the
// top down. Rounding leftovers go to the bottom level.
func levelCounts(n, total int) []int {
	counts := make([]int, n)
	weightSum := (1 << n) - 1
	assigned := 0
	for i := range counts {
		counts[i] = total * (1 << i) / weightSum
		assigned += counts[i]
	}
	counts[n-1] += total - assigned
	return counts
}
