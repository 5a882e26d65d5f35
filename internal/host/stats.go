package host

import (
	"time"

	"hostbridge/internal/vfs"
)

// Stat block size used for the synthesized Blocks field.
const statBlockSize = 512

// Stats is a stat-like record synthesized from virtual filesystem
// metadata. Device, inode, mode, link, and owner fields are fixed
// placeholders: the virtual filesystem does not track them, and no
// consumer may depend on their values.
type Stats struct {
	Dev     uint64
	Ino     uint64
	Mode    uint32
	Nlink   uint64
	UID     uint32
	GID     uint32
	Rdev    uint64
	Size    int64
	BlkSize int64
	Blocks  int64

	ATime     time.Time
	MTime     time.Time
	CTime     time.Time
	BirthTime time.Time

	isFile bool
	isDir  bool
}

func newStats(st vfs.Stats) *Stats {
	return &Stats{
		Size:      st.Size,
		BlkSize:   statBlockSize,
		Blocks:    (st.Size + statBlockSize - 1) / statBlockSize,
		ATime:     st.ATime,
		MTime:     st.ModTime,
		CTime:     st.ModTime,
		BirthTime: st.BirthTime,
		isFile:    st.IsFile,
		isDir:     st.IsDir,
	}
}

// IsFile reports whether the entry is a regular file.
func (s *Stats) IsFile() bool { return s.isFile }

// IsDirectory reports whether the entry is a directory.
func (s *Stats) IsDirectory() bool { return s.isDir }
