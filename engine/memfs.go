package engine

import (
	"bytes"
	"io/fs"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemFS is the native module's addressable storage: a host-memory filesystem
// mounted into the guest. The host writes asset bytes by path; the guest
// reads them back through WASI during native registration calls.
//
// Public paths use a leading slash ("/marker_0"); fs.FS names are the same
// paths with the slash stripped.
type MemFS struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemFS creates an empty storage namespace.
func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

// WriteFile stores data at path, overwriting any existing content.
// The write is binary; data is copied so callers may reuse the slice.
func (m *MemFS) WriteFile(path string, data []byte) error {
	name, ok := normalize(path)
	if !ok {
		return &fs.PathError{Op: "write", Path: path, Err: fs.ErrInvalid}
	}

	buf := make([]byte, len(data))
	copy(buf, data)

	m.mu.Lock()
	m.files[name] = buf
	m.mu.Unlock()
	return nil
}

// ReadFile returns the content stored at path.
func (m *MemFS) ReadFile(path string) ([]byte, error) {
	name, ok := normalize(path)
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: path, Err: fs.ErrInvalid}
	}

	m.mu.RLock()
	data, exists := m.files[name]
	m.mu.RUnlock()
	if !exists {
		return nil, &fs.PathError{Op: "read", Path: path, Err: fs.ErrNotExist}
	}

	buf := make([]byte, len(data))
	copy(buf, data)
	return buf, nil
}

// Remove deletes the file at path. Removing a missing file is an error.
func (m *MemFS) Remove(path string) error {
	name, ok := normalize(path)
	if !ok {
		return &fs.PathError{Op: "remove", Path: path, Err: fs.ErrInvalid}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.files[name]; !exists {
		return &fs.PathError{Op: "remove", Path: path, Err: fs.ErrNotExist}
	}
	delete(m.files, name)
	return nil
}

// Len returns the number of stored files.
func (m *MemFS) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.files)
}

// Open implements fs.FS for the wazero mount.
func (m *MemFS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}

	if name == "." {
		return m.openRoot(), nil
	}

	m.mu.RLock()
	data, exists := m.files[name]
	m.mu.RUnlock()
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}

	return &memFile{
		name:   name,
		size:   int64(len(data)),
		reader: bytes.NewReader(data),
	}, nil
}

// normalize converts a public "/kind_n" path to an fs.FS name.
func normalize(path string) (string, bool) {
	name := strings.TrimPrefix(path, "/")
	if name == "" || !fs.ValidPath(name) || name == "." {
		return "", false
	}
	return name, true
}

func (m *MemFS) openRoot() fs.File {
	m.mu.RLock()
	names := make([]string, 0, len(m.files))
	for name := range m.files {
		names = append(names, name)
	}
	m.mu.RUnlock()
	sort.Strings(names)

	entries := make([]fs.DirEntry, len(names))
	for i, name := range names {
		size := int64(0)
		m.mu.RLock()
		size = int64(len(m.files[name]))
		m.mu.RUnlock()
		entries[i] = fileInfo{name: name, size: size}
	}
	return &memDir{entries: entries}
}

type memFile struct {
	name   string
	size   int64
	reader *bytes.Reader
}

func (f *memFile) Stat() (fs.FileInfo, error) {
	return fileInfo{name: f.name, size: f.size}, nil
}

func (f *memFile) Read(p []byte) (int, error) { return f.reader.Read(p) }

func (f *memFile) Seek(offset int64, whence int) (int64, error) {
	return f.reader.Seek(offset, whence)
}

func (f *memFile) Close() error { return nil }

type memDir struct {
	entries []fs.DirEntry
	offset  int
}

func (d *memDir) Stat() (fs.FileInfo, error) {
	return fileInfo{name: ".", dir: true}, nil
}

func (d *memDir) Read([]byte) (int, error) {
	return 0, &fs.PathError{Op: "read", Path: ".", Err: fs.ErrInvalid}
}

func (d *memDir) Close() error { return nil }

func (d *memDir) ReadDir(n int) ([]fs.DirEntry, error) {
	remaining := d.entries[d.offset:]
	if n <= 0 {
		d.offset = len(d.entries)
		return remaining, nil
	}
	if len(remaining) == 0 {
		return nil, nil
	}
	if n > len(remaining) {
		n = len(remaining)
	}
	d.offset += n
	return remaining[:n], nil
}

type fileInfo struct {
	name string
	size int64
	dir  bool
}

func (i fileInfo) Name() string { return i.name }
func (i fileInfo) Size() int64  { return i.size }
func (i fileInfo) Mode() fs.FileMode {
	if i.dir {
		return fs.ModeDir | 0o555
	}
	return 0o444
}
func (i fileInfo) ModTime() time.Time { return time.Time{} }
func (i fileInfo) IsDir() bool        { return i.dir }
func (i fileInfo) Sys() any           { return nil }

func (i fileInfo) Type() fs.FileMode          { return i.Mode().Type() }
func (i fileInfo) Info() (fs.FileInfo, error) { return i, nil }
