package vfs

// RecordKind tags a change-log entry.
type RecordKind int

// Change-log entry kinds.
const (
	RecordCreate RecordKind = iota
	RecordOverwrite
	RecordDelete
)

// ChangeRecord is one entry in a RecordingHost's change log.
type ChangeRecord struct {
	Kind RecordKind
	Path Path
}

// RecordingHost wraps a Host and logs every mutation. The log lets
// callers recover the set of files created through this host after the
// fact, since Host itself has no listing primitive for that.
type RecordingHost struct {
	Host
	records []ChangeRecord
}

// NewRecordingHost wraps delegate with an empty change log.
func NewRecordingHost(delegate Host) *RecordingHost {
	return &RecordingHost{Host: delegate}
}

// Write delegates to the wrapped host and logs a create or overwrite
// record depending on whether p already existed.
func (r *RecordingHost) Write(p Path, data []byte) error {
	kind := RecordCreate
	if r.Host.Exists(p) {
		kind = RecordOverwrite
	}
	if err := r.Host.Write(p, data); err != nil {
		return err
	}
	r.records = append(r.records, ChangeRecord{Kind: kind, Path: Normalize(string(p))})
	return nil
}

// Delete delegates to the wrapped host and logs a delete record.
func (r *RecordingHost) Delete(p Path) error {
	if err := r.Host.Delete(p); err != nil {
		return err
	}
	r.records = append(r.records, ChangeRecord{Kind: RecordDelete, Path: Normalize(string(p))})
	return nil
}

// Records returns a snapshot of the change log.
func (r *RecordingHost) Records() []ChangeRecord {
	out := make([]ChangeRecord, len(r.records))
	copy(out, r.records)
	return out
}

// ClearRecords empties the change log.
func (r *RecordingHost) ClearRecords() {
	r.records = nil
}
