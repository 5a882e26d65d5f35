// Package vfs provides a layered virtual filesystem: hosts backed by
// memory or local disk, composed as a writable overlay on top of a
// read-only backing store, with a change log for the overlay layer.
package vfs

import "time"

// Stats holds the metadata a host tracks for a single entry.
type Stats struct {
	Size      int64
	ModTime   time.Time
	ATime     time.Time
	BirthTime time.Time
	IsDir     bool
	IsFile    bool
}

// Host abstracts file operations so callers can work against memory,
// local disk, or a layered composition of both.
type Host interface {
	Read(p Path) ([]byte, error)
	Write(p Path, data []byte) error
	Delete(p Path) error
	Stat(p Path) (Stats, error)
	List(p Path) ([]string, error)
	Exists(p Path) bool
	IsFile(p Path) bool
	IsDirectory(p Path) bool
}
