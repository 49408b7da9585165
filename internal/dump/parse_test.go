package dump

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/leveldump/internal/fsutil"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  Levels
	}{
		{
			name:  "two levels",
			lines: []string{"Level 1:", "Point 0.0 0.0", "Level 2:", "Point 1.0 1.0"},
			want:  Levels{1: {{0, 0}}, 2: {{1, 1}}},
		},
		{
			name:  "no level line goes to root",
			lines: []string{"Point 5.0 5.0"},
			want:  Levels{RootLevel: {{5, 5}}},
		},
		{
			name:  "root then level",
			lines: []string{"Point 1 2", "{", "Level 3:", "Point 1.5 2.25", "}"},
			want:  Levels{RootLevel: {{1, 2}}, 3: {{1.5, 2.25}}},
		},
		{
			name: "closing a scope keeps the current level",
			lines: []string{
				"Level 4:",
				"{",
				"Level 3:",
				"Point 1 1",
				"}",
				"Point 2 2",
			},
			want: Levels{3: {{1, 1}, {2, 2}}},
		},
		{
			name:  "level without colon",
			lines: []string{"Level 7", "Point 0 1"},
			want:  Levels{7: {{0, 1}}},
		},
		{
			name:  "negative level",
			lines: []string{"Level -2:", "Point 3e-1 -4"},
			want:  Levels{-2: {{0.3, -4}}},
		},
		{
			name:  "revisiting a level appends in dump order",
			lines: []string{"Level 1:", "Point 1 1", "Level 2:", "Point 2 2", "Level 1:", "Point 3 3"},
			want:  Levels{1: {{1, 1}, {3, 3}}, 2: {{2, 2}}},
		},
		{
			name:  "surrounding whitespace and unknown lines",
			lines: []string{"  {  ", "# comment", "\tLevel 5:\r", "", "Point   6   7  ", "Node 8 9", "}"},
			want:  Levels{5: {{6, 7}}},
		},
		{
			name:  "empty input",
			lines: nil,
			want:  Levels{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.lines)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_PointCountMatchesPointLines(t *testing.T) {
	lines := []string{
		"Point 0 0",
		"{",
		"Level 2:",
		"Point 1 1",
		"Point 1 2",
		"{",
		"Level 1:",
		"Point 2 1",
		"}",
		"Point 2 2",
		"}",
	}
	want := 0
	for _, l := range lines {
		if strings.HasPrefix(l, "Point") {
			want++
		}
	}

	got, err := Parse(lines)
	require.NoError(t, err)
	assert.Equal(t, want, got.PointCount())
	assert.Equal(t, []int{1, 2, RootLevel}, got.IDs())
}

func TestParse_Idempotent(t *testing.T) {
	lines := []string{"Point 9 9", "{", "Level 0:", "Point 1 2", "{", "Level -1:", "Point 3 4", "}", "}"}

	first, err := Parse(lines)
	require.NoError(t, err)
	second, err := Parse(lines)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("re-parse differs (-first +second):\n%s", diff)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		wantKind error
		wantLine int
	}{
		{"non-integer level", []string{"Level abc:"}, ErrMalformedLevel, 1},
		{"missing level id", []string{"Point 1 1", "Level"}, ErrMalformedLevel, 2},
		{"colon only", []string{"Level :"}, ErrMalformedLevel, 1},
		{"non-numeric point", []string{"Level 1:", "Point 1.0 abc"}, ErrMalformedPoint, 2},
		{"one coordinate", []string{"Point 1.0"}, ErrMalformedPoint, 1},
		{"three coordinates", []string{"Point 1 2 3"}, ErrMalformedPoint, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.lines)
			require.Error(t, err)
			assert.Nil(t, got, "no partial result on failure")
			assert.ErrorIs(t, err, tt.wantKind)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.wantLine, perr.Line)
		})
	}
}

func TestParse_ConversionErrorIsReachable(t *testing.T) {
	_, err := Parse([]string{"Level abc:"})

	var numErr *strconv.NumError
	require.True(t, errors.As(err, &numErr), "expected strconv.NumError in chain, got %v", err)
	assert.Equal(t, "abc", numErr.Num)
	assert.Contains(t, err.Error(), `line 1: malformed level line "Level abc:"`)

	_, err = Parse([]string{"Point 1 y"})
	require.True(t, errors.As(err, &numErr))
	assert.Equal(t, "y", numErr.Num)
}

func TestParseReader(t *testing.T) {
	input := "{\nLevel 3:\nPoint 1.5 2.25\n}\n"

	got, err := ParseReader(strings.NewReader(input))
	require.NoError(t, err)
	if diff := cmp.Diff(Levels{3: {{1.5, 2.25}}}, got); diff != "" {
		t.Errorf("ParseReader() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseReader_LongLine(t *testing.T) {
	input := "Point 1 2\n# " + strings.Repeat("x", 200*1024) + "\nPoint 3 4\n"

	got, err := ParseReader(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, got.PointCount())
}

func TestParseFile(t *testing.T) {
	mfs := fsutil.NewMemoryFileSystem()
	require.NoError(t, mfs.WriteFile("/dump.txt", []byte("Level 1:\nPoint 0 0\nLevel 2:\nPoint 1 1\n"), 0644))
	require.NoError(t, mfs.WriteFile("/bad.txt", []byte("Level 1:\nPoint x 0\n"), 0644))

	got, err := ParseFile(mfs, "/dump.txt")
	require.NoError(t, err)
	if diff := cmp.Diff(Levels{1: {{0, 0}}, 2: {{1, 1}}}, got); diff != "" {
		t.Errorf("ParseFile() mismatch (-want +got):\n%s", diff)
	}

	_, err = ParseFile(mfs, "/bad.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedPoint)
	assert.Contains(t, err.Error(), "/bad.txt: line 2")

	_, err = ParseFile(mfs, "/missing.txt")
	require.Error(t, err)
}
