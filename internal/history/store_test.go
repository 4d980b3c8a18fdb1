package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/google/go-cmp/cmp"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "history.yaml")
	store := FileStore{Path: path}

	m := newTestManager(store, 10)
	if err := m.Add("#ff0000", "#00ff00", "#ff0000"); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	loaded := NewManager(store, 10)
	if err := loaded.Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	got := loaded.All()
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %v", got)
	}
	if got[0].Color != "#ff0000" || got[0].Count != 2 {
		t.Errorf("entry 0 = %+v, want #ff0000 x2", got[0])
	}
	if !got[0].LastUsed.Equal(t0) {
		t.Errorf("LastUsed = %v, want %v", got[0].LastUsed, t0)
	}
}

func TestFileStoreMissingFile(t *testing.T) {
	store := FileStore{Path: filepath.Join(t.TempDir(), "missing.yaml")}
	entries, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if entries != nil {
		t.Errorf("Load() = %v, want nil", entries)
	}
}

func TestFileStoreInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.yaml")
	if err := os.WriteFile(path, []byte("colors: [\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := (FileStore{Path: path}).Load(); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadDropsInvalidEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.yaml")
	src := `colors:
  - color: ""
    count: 1
  - color: "#ABC"
    count: 2
  - color: red
    count: 1
  - color: "#aabbcc"
    count: 3
  - color: "#00ff00"
`
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	m := NewManager(FileStore{Path: path}, 10)
	if err := m.Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	want := []Entry{
		{Color: "#aabbcc", Count: 5},
		{Color: "#00ff00", Count: 1},
	}
	if diff := cmp.Diff(want, m.All()); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}
}

func TestExportSwatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swatch.png")
	entries := []Entry{{Color: "#ff0000"}, {Color: "#0000ff"}}

	if err := ExportSwatch(path, entries, 4); err != nil {
		t.Fatalf("ExportSwatch() error: %v", err)
	}

	img, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("opening swatch: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Fatalf("swatch size = %dx%d, want 8x4", b.Dx(), b.Dy())
	}

	r, g, b, _ := img.At(1, 1).RGBA()
	if r>>8 != 0xff || g != 0 || b != 0 {
		t.Errorf("first square = (%d, %d, %d), want red", r>>8, g>>8, b>>8)
	}
	r, g, b, _ = img.At(6, 2).RGBA()
	if r != 0 || g != 0 || b>>8 != 0xff {
		t.Errorf("second square = (%d, %d, %d), want blue", r>>8, g>>8, b>>8)
	}
}

func TestExportSwatchErrors(t *testing.T) {
	dir := t.TempDir()
	if err := ExportSwatch(filepath.Join(dir, "a.png"), nil, 4); err == nil {
		t.Error("expected error for empty history")
	}
	if err := ExportSwatch(filepath.Join(dir, "b.png"), []Entry{{Color: "#fff"}}, 0); err == nil {
		t.Error("expected error for zero size")
	}
	if err := ExportSwatch(filepath.Join(dir, "c.png"), []Entry{{Color: "nope"}}, 4); err == nil {
		t.Error("expected error for an invalid color")
	}
}
