package vfs

import (
	"os"
	"path/filepath"
)

// LocalHost implements Host using the local filesystem rooted at a
// directory. Relative paths resolve beneath the root; absolute paths
// are used as given, whether or not they fall inside it.
type LocalHost struct {
	root string
}

// NewLocalHost creates a LocalHost rooted at the given directory.
func NewLocalHost(root string) *LocalHost {
	return &LocalHost{root: root}
}

func (l *LocalHost) abs(p Path) string {
	s := Denormalize(p)
	if s == "" || s == "." {
		return l.root
	}
	if filepath.IsAbs(s) {
		return s
	}
	return filepath.Join(l.root, s)
}

// Read reads the contents of the file at p.
func (l *LocalHost) Read(p Path) ([]byte, error) {
	return os.ReadFile(l.abs(p))
}

// Write writes data to the file at p, creating parent directories as
// needed.
func (l *LocalHost) Write(p Path, data []byte) error {
	target := l.abs(p)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	return os.WriteFile(target, data, 0o644)
}

// Delete removes the file or directory tree at p.
func (l *LocalHost) Delete(p Path) error {
	return os.RemoveAll(l.abs(p))
}

// Stat returns metadata for the file or directory at p.
func (l *LocalHost) Stat(p Path) (Stats, error) {
	info, err := os.Stat(l.abs(p))
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		Size:      info.Size(),
		ModTime:   info.ModTime(),
		ATime:     info.ModTime(),
		BirthTime: info.ModTime(),
		IsDir:     info.IsDir(),
		IsFile:    info.Mode().IsRegular(),
	}, nil
}

// List returns the names of the immediate children of the directory
// at p.
func (l *LocalHost) List(p Path) ([]string, error) {
	entries, err := os.ReadDir(l.abs(p))
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names, nil
}

// Exists reports whether p exists.
func (l *LocalHost) Exists(p Path) bool {
	_, err := os.Stat(l.abs(p))
	return err == nil
}

// IsFile reports whether p is a regular file.
func (l *LocalHost) IsFile(p Path) bool {
	info, err := os.Stat(l.abs(p))
	return err == nil && info.Mode().IsRegular()
}

// IsDirectory reports whether p is a directory.
func (l *LocalHost) IsDirectory(p Path) bool {
	info, err := os.Stat(l.abs(p))
	return err == nil && info.IsDir()
}
