package vfs

import (
	"testing"
)

func TestMemoryHost_WriteRead(t *testing.T) {
	m := NewMemoryHost()

	if err := m.Write("/project/src/a.ts", []byte("export const x = 1;")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := m.Read("/project/src/a.ts")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(data) != "export const x = 1;" {
		t.Errorf("unexpected content: %q", data)
	}

	// Different spelling of the same path resolves to the same entry
	data, err = m.Read("/project//src/./a.ts")
	if err != nil {
		t.Fatalf("Read with unclean path failed: %v", err)
	}
	if string(data) != "export const x = 1;" {
		t.Errorf("unexpected content via unclean path: %q", data)
	}
}

func TestMemoryHost_ImplicitDirectories(t *testing.T) {
	m := NewMemoryHost()
	if err := m.Write("/project/src/sub/a.ts", nil); err != nil {
		t.Fatal(err)
	}

	if !m.IsDirectory("/project/src") {
		t.Error("expected /project/src to be a directory")
	}
	if m.IsFile("/project/src") {
		t.Error("expected /project/src not to be a file")
	}
	if m.IsDirectory("/project/src/sub/a.ts") {
		t.Error("expected file not to be a directory")
	}
}

func TestMemoryHost_List(t *testing.T) {
	m := NewMemoryHost()
	for _, p := range []string{"/project/a.ts", "/project/src/b.ts", "/project/src/c.ts"} {
		if err := m.Write(Path(p), nil); err != nil {
			t.Fatal(err)
		}
	}

	names, err := m.List("/project")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []string{"a.ts", "src"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("expected %v, got %v", want, names)
			break
		}
	}

	if _, err := m.List("/missing"); err == nil {
		t.Error("expected error listing missing directory")
	}
}

func TestRecordingHost_Records(t *testing.T) {
	r := NewRecordingHost(NewMemoryHost())

	if err := r.Write("/a.ts", []byte("1")); err != nil {
		t.Fatal(err)
	}
	if err := r.Write("/a.ts", []byte("2")); err != nil {
		t.Fatal(err)
	}
	if err := r.Delete("/a.ts"); err != nil {
		t.Fatal(err)
	}

	records := r.Records()
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	wantKinds := []RecordKind{RecordCreate, RecordOverwrite, RecordDelete}
	for i, rec := range records {
		if rec.Kind != wantKinds[i] {
			t.Errorf("record %d kind = %v, want %v", i, rec.Kind, wantKinds[i])
		}
		if rec.Path != "/a.ts" {
			t.Errorf("record %d path = %q, want /a.ts", i, rec.Path)
		}
	}

	r.ClearRecords()
	if len(r.Records()) != 0 {
		t.Error("expected empty records after clear")
	}
}

func TestOverlayHost_Layering(t *testing.T) {
	backing := NewMemoryHost()
	if err := backing.Write("/project/real.ts", []byte("real")); err != nil {
		t.Fatal(err)
	}
	o := NewOverlayHost(backing)

	// Backing content reads through
	data, err := o.Read("/project/real.ts")
	if err != nil || string(data) != "real" {
		t.Fatalf("expected backing read-through, got %q, %v", data, err)
	}

	// Writes land in the overlay, not the backing store
	if err := o.Write("/project/gen.ts", []byte("generated")); err != nil {
		t.Fatal(err)
	}
	if backing.Exists("/project/gen.ts") {
		t.Error("write leaked into backing store")
	}
	if !o.Overlay().IsFile("/project/gen.ts") {
		t.Error("expected file in overlay layer")
	}

	// Overlay shadows backing on overwrite
	if err := o.Write("/project/real.ts", []byte("shadowed")); err != nil {
		t.Fatal(err)
	}
	data, err = o.Read("/project/real.ts")
	if err != nil || string(data) != "shadowed" {
		t.Fatalf("expected overlay to shadow backing, got %q, %v", data, err)
	}
	data, err = o.Backing().Read("/project/real.ts")
	if err != nil || string(data) != "real" {
		t.Fatalf("expected backing unchanged, got %q, %v", data, err)
	}
}

func TestOverlayHost_ListMergesLayers(t *testing.T) {
	backing := NewMemoryHost()
	if err := backing.Write("/project/a.ts", nil); err != nil {
		t.Fatal(err)
	}
	o := NewOverlayHost(backing)
	if err := o.Write("/project/b.ts", nil); err != nil {
		t.Fatal(err)
	}
	if err := o.Write("/project/a.ts", nil); err != nil {
		t.Fatal(err)
	}

	names, err := o.List("/project")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(names) != 2 || names[0] != "a.ts" || names[1] != "b.ts" {
		t.Errorf("expected [a.ts b.ts], got %v", names)
	}
}

func TestOverlayHost_StatPrefersOverlay(t *testing.T) {
	backing := NewMemoryHost()
	if err := backing.Write("/a.ts", []byte("12345")); err != nil {
		t.Fatal(err)
	}
	o := NewOverlayHost(backing)
	if err := o.Write("/a.ts", []byte("1")); err != nil {
		t.Fatal(err)
	}

	st, err := o.Stat("/a.ts")
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if st.Size != 1 {
		t.Errorf("expected overlay size 1, got %d", st.Size)
	}
}
