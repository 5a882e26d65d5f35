package vfs

import (
	"os"
	"sort"
	"strings"
	"time"
)

type memFile struct {
	data      []byte
	modTime   time.Time
	birthTime time.Time
}

// MemoryHost implements Host with an in-memory file map. Directories
// are implicit: a directory exists iff some file lives beneath it.
type MemoryHost struct {
	files map[Path]*memFile
}

// NewMemoryHost creates an empty MemoryHost.
func NewMemoryHost() *MemoryHost {
	return &MemoryHost{files: make(map[Path]*memFile)}
}

// Read returns the contents of the file at p.
func (m *MemoryHost) Read(p Path) ([]byte, error) {
	f, ok := m.files[Normalize(string(p))]
	if !ok {
		return nil, os.ErrNotExist
	}
	return f.data, nil
}

// Write stores data at p, creating or replacing the file.
func (m *MemoryHost) Write(p Path, data []byte) error {
	p = Normalize(string(p))
	now := time.Now()
	if f, ok := m.files[p]; ok {
		f.data = data
		f.modTime = now
		return nil
	}
	m.files[p] = &memFile{data: data, modTime: now, birthTime: now}
	return nil
}

// Delete removes the file at p, or every file beneath p when p is a
// directory.
func (m *MemoryHost) Delete(p Path) error {
	p = Normalize(string(p))
	if _, ok := m.files[p]; ok {
		delete(m.files, p)
		return nil
	}
	if !m.IsDirectory(p) {
		return os.ErrNotExist
	}
	prefix := string(p) + "/"
	for k := range m.files {
		if strings.HasPrefix(string(k), prefix) {
			delete(m.files, k)
		}
	}
	return nil
}

// Stat returns metadata for the file or directory at p.
func (m *MemoryHost) Stat(p Path) (Stats, error) {
	p = Normalize(string(p))
	if f, ok := m.files[p]; ok {
		return Stats{
			Size:      int64(len(f.data)),
			ModTime:   f.modTime,
			ATime:     f.modTime,
			BirthTime: f.birthTime,
			IsFile:    true,
		}, nil
	}
	if m.IsDirectory(p) {
		return Stats{IsDir: true, ModTime: time.Now()}, nil
	}
	return Stats{}, os.ErrNotExist
}

// List returns the names of the immediate children of the directory
// at p, sorted.
func (m *MemoryHost) List(p Path) ([]string, error) {
	p = Normalize(string(p))
	if !m.IsDirectory(p) {
		return nil, os.ErrNotExist
	}
	prefix := string(p) + "/"
	if p == "" || p == "/" {
		prefix = strings.TrimSuffix(string(p), "/") + "/"
	}
	seen := make(map[string]bool)
	for k := range m.files {
		if !strings.HasPrefix(string(k), prefix) {
			continue
		}
		rest := strings.TrimPrefix(string(k), prefix)
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			rest = rest[:i]
		}
		seen[rest] = true
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Exists reports whether p is a file or a directory.
func (m *MemoryHost) Exists(p Path) bool {
	return m.IsFile(p) || m.IsDirectory(p)
}

// IsFile reports whether p is a file.
func (m *MemoryHost) IsFile(p Path) bool {
	_, ok := m.files[Normalize(string(p))]
	return ok
}

// IsDirectory reports whether p is a directory.
func (m *MemoryHost) IsDirectory(p Path) bool {
	p = Normalize(string(p))
	if p == "" || p == "/" {
		return true
	}
	prefix := string(p) + "/"
	for k := range m.files {
		if strings.HasPrefix(string(k), prefix) {
			return true
		}
	}
	return false
}
