package vfs

import (
	"os"
	"sort"
)

// OverlayHost layers a writable in-memory overlay on top of a backing
// store. Reads consult the overlay first and fall through to the
// backing host; writes always land in the overlay. The overlay keeps a
// change log, and both layers stay independently queryable so callers
// can tell generated files apart from backing ones.
type OverlayHost struct {
	overlay *RecordingHost
	backing Host
}

// NewOverlayHost creates an OverlayHost over the given backing store.
func NewOverlayHost(backing Host) *OverlayHost {
	return NewOverlayHostWith(NewMemoryHost(), backing)
}

// NewOverlayHostWith creates an OverlayHost whose overlay layer is the
// given host instead of a fresh in-memory one.
func NewOverlayHostWith(overlay, backing Host) *OverlayHost {
	return &OverlayHost{
		overlay: NewRecordingHost(overlay),
		backing: backing,
	}
}

// Overlay returns the writable overlay layer.
func (o *OverlayHost) Overlay() *RecordingHost {
	return o.overlay
}

// Backing returns the backing layer.
func (o *OverlayHost) Backing() Host {
	return o.backing
}

// Records returns the overlay layer's change log.
func (o *OverlayHost) Records() []ChangeRecord {
	return o.overlay.Records()
}

// Read returns the contents of p from the overlay if present, else
// from the backing store.
func (o *OverlayHost) Read(p Path) ([]byte, error) {
	if o.overlay.IsFile(p) {
		return o.overlay.Read(p)
	}
	return o.backing.Read(p)
}

// Write stores data at p in the overlay layer.
func (o *OverlayHost) Write(p Path, data []byte) error {
	return o.overlay.Write(p, data)
}

// Delete removes p from the overlay. Backing entries are read-only
// through this host.
func (o *OverlayHost) Delete(p Path) error {
	if !o.overlay.Exists(p) {
		return os.ErrNotExist
	}
	return o.overlay.Delete(p)
}

// Stat returns metadata for p, preferring the overlay layer.
func (o *OverlayHost) Stat(p Path) (Stats, error) {
	if o.overlay.Exists(p) {
		return o.overlay.Stat(p)
	}
	return o.backing.Stat(p)
}

// List returns the merged immediate children of p across both layers.
func (o *OverlayHost) List(p Path) ([]string, error) {
	seen := make(map[string]bool)
	found := false
	if names, err := o.overlay.List(p); err == nil {
		found = true
		for _, n := range names {
			seen[n] = true
		}
	}
	if names, err := o.backing.List(p); err == nil {
		found = true
		for _, n := range names {
			seen[n] = true
		}
	}
	if !found {
		return nil, os.ErrNotExist
	}
	merged := make([]string, 0, len(seen))
	for n := range seen {
		merged = append(merged, n)
	}
	sort.Strings(merged)
	return merged, nil
}

// Exists reports whether p exists in either layer.
func (o *OverlayHost) Exists(p Path) bool {
	return o.overlay.Exists(p) || o.backing.Exists(p)
}

// IsFile reports whether p is a file in either layer.
func (o *OverlayHost) IsFile(p Path) bool {
	return o.overlay.IsFile(p) || o.backing.IsFile(p)
}

// IsDirectory reports whether p is a directory in either layer.
func (o *OverlayHost) IsDirectory(p Path) bool {
	return o.overlay.IsDirectory(p) || o.backing.IsDirectory(p)
}
