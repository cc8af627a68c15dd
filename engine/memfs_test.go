package engine

import (
	stderrors "errors"
	"io"
	"io/fs"
	"testing"
	"testing/fstest"
)

func TestMemFS_WriteReadBack(t *testing.T) {
	m := NewMemFS()

	data := []byte{0x00, 0xFF, 0x10, '\n'}
	if err := m.WriteFile("/camera_param_0", data); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := m.ReadFile("/camera_param_0")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("read back %v, want %v", got, data)
	}
}

func TestMemFS_WriteCopiesData(t *testing.T) {
	m := NewMemFS()

	data := []byte("pattern")
	if err := m.WriteFile("/marker_0", data); err != nil {
		t.Fatalf("write: %v", err)
	}
	data[0] = 'X'

	got, _ := m.ReadFile("/marker_0")
	if string(got) != "pattern" {
		t.Errorf("stored data aliased caller slice: %q", got)
	}
}

func TestMemFS_Overwrite(t *testing.T) {
	m := NewMemFS()

	_ = m.WriteFile("/marker_0", []byte("old"))
	if err := m.WriteFile("/marker_0", []byte("new")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, _ := m.ReadFile("/marker_0")
	if string(got) != "new" {
		t.Errorf("got %q, want overwrite to win", got)
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}

func TestMemFS_InvalidPaths(t *testing.T) {
	m := NewMemFS()

	for _, path := range []string{"", "/", "/../escape", "/a/../../b"} {
		if err := m.WriteFile(path, []byte("x")); err == nil {
			t.Errorf("WriteFile(%q) succeeded, want error", path)
		}
	}
}

func TestMemFS_ReadMissing(t *testing.T) {
	m := NewMemFS()

	_, err := m.ReadFile("/multi_marker_0")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	var pathErr *fs.PathError
	if !stderrors.As(err, &pathErr) {
		t.Fatalf("expected *fs.PathError, got %T", err)
	}
	if !stderrors.Is(err, fs.ErrNotExist) {
		t.Error("expected fs.ErrNotExist")
	}
}

func TestMemFS_Remove(t *testing.T) {
	m := NewMemFS()

	_ = m.WriteFile("/markerNFT_0.fset", []byte("fset"))
	if err := m.Remove("/markerNFT_0.fset"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := m.Remove("/markerNFT_0.fset"); err == nil {
		t.Error("second remove succeeded, want error")
	}
}

func TestMemFS_ImplementsFS(t *testing.T) {
	m := NewMemFS()
	_ = m.WriteFile("/camera_param_0", []byte("cam"))
	_ = m.WriteFile("/marker_0", []byte("patt"))

	if err := fstest.TestFS(m, "camera_param_0", "marker_0"); err != nil {
		t.Fatalf("fstest: %v", err)
	}
}

func TestMemFS_OpenGuestView(t *testing.T) {
	m := NewMemFS()
	_ = m.WriteFile("/marker_3", []byte("guest visible"))

	f, err := m.Open("marker_3")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "guest visible" {
		t.Errorf("got %q", data)
	}

	info, err := f.Stat()
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() != int64(len("guest visible")) {
		t.Errorf("Size() = %d", info.Size())
	}
}
