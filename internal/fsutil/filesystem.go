// Package fsutil provides the filesystem seam used to read dumps and write
// rendered plots, so both can be exercised in memory by tests.
package fsutil

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// FileSystem abstracts the filesystem operations leveldump needs.
// Use OSFileSystem for production; MemoryFileSystem for testing.
type FileSystem interface {
	// Open opens the named file for reading.
	Open(name string) (fs.File, error)

	// Create creates or truncates the named file.
	Create(name string) (io.WriteCloser, error)

	// ReadFile reads the named file and returns its contents.
	ReadFile(name string) ([]byte, error)

	// WriteFile writes data to the named file, creating it if necessary.
	WriteFile(name string, data []byte, perm os.FileMode) error

	// Stat returns a FileInfo describing the named file.
	Stat(name string) (fs.FileInfo, error)

	// MkdirAll creates a directory and all necessary parents.
	MkdirAll(path string, perm os.FileMode) error

	// Exists checks if a file or directory exists.
	Exists(name string) bool
}

// CreateAll creates the parent directories of name and then the file itself.
func CreateAll(fsys FileSystem, name string) (io.WriteCloser, error) {
	if dir := filepath.Dir(name); dir != "." {
		if err := fsys.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	return fsys.Create(name)
}

// OSFileSystem implements FileSystem using the os package.
type OSFileSystem struct{}

func (OSFileSystem) Open(name string) (fs.File, error)         { return os.Open(name) }
func (OSFileSystem) Create(name string) (io.WriteCloser, error) { return os.Create(name) }
func (OSFileSystem) ReadFile(name string) ([]byte, error)      { return os.ReadFile(name) }
func (OSFileSystem) Stat(name string) (fs.FileInfo, error)     { return os.Stat(name) }
func (OSFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (OSFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

func (OSFileSystem) Exists(name string) bool {
	_, err := os.Stat(name)
	return err == nil
}

// MemoryFileSystem keeps files in a map. Writes through Create become
// visible when the writer is closed.
type MemoryFileSystem struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]bool
}

// NewMemoryFileSystem creates an empty in-memory filesystem.
func NewMemoryFileSystem() *MemoryFileSystem {
	return &MemoryFileSystem{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

func (m *MemoryFileSystem) Open(name string) (fs.File, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	name = filepath.Clean(name)
	data, ok := m.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return &memReader{name: name, r: strings.NewReader(string(data)), size: int64(len(data))}, nil
}

func (m *MemoryFileSystem) Create(name string) (io.WriteCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	name = filepath.Clean(name)
	m.files[name] = nil
	return &memWriter{fs: m, name: name}, nil
}

func (m *MemoryFileSystem) ReadFile(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	name = filepath.Clean(name)
	data, ok := m.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}

func (m *MemoryFileSystem) WriteFile(name string, data []byte, _ os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[filepath.Clean(name)] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryFileSystem) Stat(name string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	name = filepath.Clean(name)
	if m.dirs[name] {
		return &memInfo{name: filepath.Base(name), isDir: true}, nil
	}
	data, ok := m.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return &memInfo{name: filepath.Base(name), size: int64(len(data))}, nil
}

func (m *MemoryFileSystem) MkdirAll(path string, _ os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for p := filepath.Clean(path); p != "." && p != "/"; p = filepath.Dir(p) {
		m.dirs[p] = true
	}
	return nil
}

func (m *MemoryFileSystem) Exists(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	name = filepath.Clean(name)
	_, ok := m.files[name]
	return ok || m.dirs[name]
}

type memReader struct {
	name string
	r    *strings.Reader
	size int64
}

func (f *memReader) Read(p []byte) (int, error) { return f.r.Read(p) }
func (f *memReader) Close() error               { return nil }
func (f *memReader) Stat() (fs.FileInfo, error) {
	return &memInfo{name: filepath.Base(f.name), size: f.size}, nil
}

type memWriter struct {
	fs   *MemoryFileSystem
	name string
	buf  []byte
}

func (f *memWriter) Write(p []byte) (int, error) {
	f.buf = append(f.buf, p...)
	return len(p), nil
}

func (f *memWriter) Close() error {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()
	f.fs.files[f.name] = f.buf
	return nil
}

type memInfo struct {
	name  string
	size  int64
	isDir bool
}

func (i *memInfo) Name() string { return i.name }
func (i *memInfo) Size() int64  { return i.size }
func (i *memInfo) Mode() os.FileMode {
	if i.isDir {
		return fs.ModeDir | 0755
	}
	return 0644
}
func (i *memInfo) ModTime() time.Time { return time.Time{} }
func (i *memInfo) IsDir() bool        { return i.isDir }
func (i *memInfo) Sys() any           { return nil }
