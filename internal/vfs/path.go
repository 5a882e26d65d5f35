package vfs

import (
	"path"
	"path/filepath"
	"strings"
)

// Path is a normalized filesystem path: cleaned, forward slashes only.
// All hosts in this package key their entries by Path so that two
// spellings of the same location resolve to the same entry.
type Path string

// Normalize converts a raw path string into a Path. Backslashes are
// rewritten to forward slashes and the result is cleaned. Normalizing
// an already-normalized path returns it unchanged.
func Normalize(p string) Path {
	cleaned := path.Clean(strings.ReplaceAll(p, "\\", "/"))
	if cleaned == "." {
		return Path("")
	}
	return Path(cleaned)
}

// Denormalize converts a Path back to the host OS representation,
// using the native path separator.
func Denormalize(p Path) string {
	return filepath.FromSlash(string(p))
}

// Join appends path fragments to p and normalizes the result.
func Join(p Path, elems ...string) Path {
	parts := append([]string{string(p)}, elems...)
	return Normalize(path.Join(parts...))
}

// IsAbsolute reports whether p is an absolute path. Both POSIX roots
// and drive-letter roots are recognized so Windows-origin paths keep
// resolving after normalization.
func (p Path) IsAbsolute() bool {
	s := string(p)
	if strings.HasPrefix(s, "/") {
		return true
	}
	return len(s) >= 2 && s[1] == ':' &&
		(('a' <= s[0] && s[0] <= 'z') || ('A' <= s[0] && s[0] <= 'Z'))
}

// Base returns the last element of p.
func (p Path) Base() string {
	return path.Base(string(p))
}

// Dir returns p without its last element.
func (p Path) Dir() Path {
	return Normalize(path.Dir(string(p)))
}

// String returns the normalized string form of p.
func (p Path) String() string {
	return string(p)
}
