package dump

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Shape(t *testing.T) {
	levels, err := Generate(GenerateOptions{Levels: 3, TopLevel: 2, Points: 70, Seed: 1})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2}, levels.IDs())
	assert.Equal(t, 70, levels.PointCount())
	// Weights 1:2:4 over 70 points, leftovers to the bottom level.
	assert.Len(t, levels[2], 10)
	assert.Len(t, levels[1], 20)
	assert.Len(t, levels[0], 40)
}

func TestGenerate_Deterministic(t *testing.T) {
	opts := GenerateOptions{Levels: 5, TopLevel: 0, Points: 200, Sigma: 2.5, Seed: 42}

	a, err := Generate(opts)
	require.NoError(t, err)
	b, err := Generate(opts)
	require.NoError(t, err)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed gave different dumps (-a +b):\n%s", diff)
	}

	opts.Seed = 43
	c, err := Generate(opts)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestGenerate_RootOnly(t *testing.T) {
	levels, err := Generate(GenerateOptions{Points: 5, Seed: 3})
	require.NoError(t, err)
	assert.Equal(t, []int{RootLevel}, levels.IDs())
	assert.Len(t, levels[RootLevel], 5)
}

func TestGenerate_InvalidOptions(t *testing.T) {
	for _, opts := range []GenerateOptions{
		{Levels: -1},
		{Levels: maxGenerateLevels + 1},
		{Levels: 2, Points: -3},
		{Levels: 2, Sigma: -1},
	} {
		_, err := Generate(opts)
		assert.Error(t, err, "options %+v", opts)
	}
}

func TestLevelCounts(t *testing.T) {
	assert.Equal(t, []int{5}, levelCounts(1, 5))
	assert.Equal(t, []int{0, 0, 3}, levelCounts(3, 3))
	assert.Equal(t, []int{1, 2, 4, 8}, levelCounts(4, 15))
}
