package main

import (
	"bytes"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/leveldump/internal/dump"
	"github.com/banshee-data/leveldump/internal/fsutil"
	"github.com/banshee-data/leveldump/internal/monitoring"
	"github.com/banshee-data/leveldump/internal/store"
	"github.com/banshee-data/leveldump/internal/version"
)

const sampleDump = `Point 5.0 5.0
{
Level 2:
Point 0.0 0.0
Point 1.0 -1.0
{
Level 1:
Point 1.5 2.25
}
}
`

func runCLI(t *testing.T, fsys fsutil.FileSystem, args ...string) (string, error) {
	t.Helper()
	original := monitoring.Logf
	monitoring.SetLogger(t.Logf)
	t.Cleanup(func() {
		monitoring.Logf = original
		monitoring.SetVerbose(false)
	})

	cmd := newRootCmd(fsys)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func memFS(t *testing.T, files map[string]string) *fsutil.MemoryFileSystem {
	t.Helper()
	mfs := fsutil.NewMemoryFileSystem()
	for name, content := range files {
		require.NoError(t, mfs.WriteFile(name, []byte(content), 0644))
	}
	return mfs
}

func TestPlot_Defaults(t *testing.T) {
	mfs := memFS(t, map[string]string{"dump.txt": sampleDump})

	out, err := runCLI(t, mfs, "plot")
	require.NoError(t, err)
	assert.Equal(t, "dump.png\n", out)

	data, err := mfs.ReadFile("dump.png")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}

func TestPlot_HTMLFromExtension(t *testing.T) {
	mfs := memFS(t, map[string]string{"/dumps/tree.txt": sampleDump})

	_, err := runCLI(t, mfs, "plot", "/dumps/tree.txt", "-o", "/plots/tree.html", "--title", "Cover tree")
	require.NoError(t, err)

	data, err := mfs.ReadFile("/plots/tree.html")
	require.NoError(t, err)
	assert.Contains(t, string(data), "Cover tree")
	assert.Contains(t, string(data), "level 1")
}

func TestPlot_ExplicitFormatWins(t *testing.T) {
	mfs := memFS(t, map[string]string{"dump.txt": sampleDump})

	_, err := runCLI(t, mfs, "plot", "-o", "out.html", "--format", "png")
	require.NoError(t, err)

	data, err := mfs.ReadFile("out.html")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}

func TestPlot_ConfigAndEnv(t *testing.T) {
	mfs := memFS(t, map[string]string{
		"/etc/leveldump.json": `{"input_path": "/data/tree.txt", "output_path": "/data/tree.out", "format": "html", "title": "from config"}`,
		"/data/tree.txt":      sampleDump,
	})
	t.Setenv("LEVELDUMP_TITLE", "from env")

	_, err := runCLI(t, mfs, "plot", "--config", "/etc/leveldump.json")
	require.NoError(t, err)

	data, err := mfs.ReadFile("/data/tree.out")
	require.NoError(t, err)
	assert.Contains(t, string(data), "from env")
	assert.NotContains(t, string(data), "from config")
}

func TestPlot_Errors(t *testing.T) {
	mfs := memFS(t, map[string]string{
		"bad.txt": "Level abc:\nPoint 1 1\n",
	})

	_, err := runCLI(t, mfs, "plot", "missing.txt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	_, err = runCLI(t, mfs, "plot", "bad.txt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, dump.ErrMalformedLevel))
	assert.False(t, mfs.Exists("dump.png"), "no plot on a failed parse")

	_, err = runCLI(t, memFS(t, map[string]string{"dump.txt": sampleDump}), "plot", "--format", "svg")
	require.Error(t, err)
}

func TestStats(t *testing.T) {
	mfs := memFS(t, map[string]string{"dump.txt": sampleDump})

	out, err := runCLI(t, mfs, "stats")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "LEVEL"))
	assert.Equal(t, []string{"1", "1"}, strings.Fields(lines[1])[:2])
	assert.Equal(t, []string{"2", "2"}, strings.Fields(lines[2])[:2])
	assert.Equal(t, []string{"root", "1"}, strings.Fields(lines[3])[:2])
	assert.Equal(t, []string{"total", "4"}, strings.Fields(lines[4]))
}

func TestGen(t *testing.T) {
	out, err := runCLI(t, fsutil.NewMemoryFileSystem(), "gen", "--levels", "4", "--top", "3", "--points", "150", "--seed", "9")
	require.NoError(t, err)

	levels, err := dump.ParseReader(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 150, levels.PointCount())
	assert.Equal(t, []int{0, 1, 2, 3}, levels.IDs())
}

func TestGen_ToFile(t *testing.T) {
	mfs := fsutil.NewMemoryFileSystem()

	_, err := runCLI(t, mfs, "gen", "--levels", "0", "--points", "3", "-o", "/gen/dump.txt")
	require.NoError(t, err)

	levels, err := dump.ParseFile(mfs, "/gen/dump.txt")
	require.NoError(t, err)
	assert.Equal(t, []int{dump.RootLevel}, levels.IDs())
	assert.Len(t, levels[dump.RootLevel], 3)

	_, err = runCLI(t, mfs, "gen", "--levels=-2")
	require.Error(t, err)
}

func TestArchive_ImportListExport(t *testing.T) {
	dir := t.TempDir()
	dumpPath := filepath.Join(dir, "tree.txt")
	dbPath := filepath.Join(dir, "archive.db")
	osfs := fsutil.OSFileSystem{}
	require.NoError(t, osfs.WriteFile(dumpPath, []byte(sampleDump), 0644))

	out, err := runCLI(t, osfs, "--db", dbPath, "import", dumpPath, "--name", "first tree")
	require.NoError(t, err)
	id := strings.TrimSpace(out)
	require.NotEmpty(t, id)

	out, err = runCLI(t, osfs, "--db", dbPath, "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], id)
	assert.Contains(t, lines[1], "first tree")
	assert.Contains(t, lines[1], dumpPath)

	exportPath := filepath.Join(dir, "out", "tree.txt")
	_, err = runCLI(t, osfs, "--db", dbPath, "export", id, "-o", exportPath)
	require.NoError(t, err)

	want, err := dump.ParseFile(osfs, dumpPath)
	require.NoError(t, err)
	got, err := dump.ParseFile(osfs, exportPath)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("exported dump mismatch (-want +got):\n%s", diff)
	}

	_, err = runCLI(t, osfs, "--db", dbPath, "export", "no-such-id")
	require.Error(t, err)
}

func TestArchive_DBFromEnv(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "env.db")
	t.Setenv("LEVELDUMP_DB", dbPath)

	_, err := runCLI(t, fsutil.OSFileSystem{}, "list")
	require.NoError(t, err)
	assert.True(t, fsutil.OSFileSystem{}.Exists(dbPath))
}

func TestVerboseFlag(t *testing.T) {
	mfs := memFS(t, map[string]string{"dump.txt": sampleDump})

	_, err := runCLI(t, mfs, "-v", "stats")
	require.NoError(t, err)
	assert.True(t, monitoring.Verbose())
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, fsutil.NewMemoryFileSystem(), "version")
	require.NoError(t, err)
	assert.Equal(t, version.String()+"\n", out)
}

func TestKNN(t *testing.T) {
	mfs := memFS(t, map[string]string{"dump.txt": sampleDump})

	out, err := runCLI(t, mfs, "knn", "-k", "2", "--x", "1", "--y", "-1")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "RANK"))
	assert.Equal(t, []string{"1", "2", "1", "-1", "0"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"2", "2", "0", "0"}, strings.Fields(lines[2])[:4])

	out, err = runCLI(t, mfs, "knn", "-k", "20")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 5, "header plus all four points")

	_, err = runCLI(t, mfs, "knn", "--k=-1")
	require.Error(t, err)
}

func TestImport_NonFinite(t *testing.T) {
	dir := t.TempDir()
	dumpPath := filepath.Join(dir, "nan.txt")
	osfs := fsutil.OSFileSystem{}
	require.NoError(t, osfs.WriteFile(dumpPath, []byte("Level 1:\nPoint nan 0\n"), 0644))

	_, err := runCLI(t, osfs, "--db", filepath.Join(dir, "archive.db"), "import", dumpPath)
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrNonFinite))
}
