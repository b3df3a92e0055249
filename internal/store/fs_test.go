package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/starford/dagaz/internal/apperr"
)

func tempSlot(t *testing.T) *File {
	t.Helper()
	slot, err := NewFile(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	return slot
}

func TestLoadBeforeFirstSave(t *testing.T) {
	slot := tempSlot(t)
	if _, err := slot.Load(); !errors.Is(err, apperr.ErrNoState) {
		t.Errorf("Load on empty slot = %v, want ErrNoState", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	slot := tempSlot(t)
	content := []byte(`{"pages":[]}`)
	if err := slot.Save(content); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := slot.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("content = %q", got)
	}
}

func TestSaveOverwritesWholeValue(t *testing.T) {
	slot := tempSlot(t)
	_ = slot.Save([]byte("a much longer first value"))
	if err := slot.Save([]byte("short")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, _ := slot.Load()
	if string(got) != "short" {
		t.Errorf("content = %q, want full overwrite", got)
	}

	// No leftover temp files after the rename.
	matches, _ := filepath.Glob(filepath.Join(filepath.Dir(slot.Path()), ".dagaz-tmp-*"))
	if len(matches) != 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}

func TestNewFileCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "state.json")
	slot, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	if err := slot.Save([]byte("x")); err != nil {
		t.Fatalf("Save into created dir: %v", err)
	}
}

func TestPathIsAbsolute(t *testing.T) {
	slot := tempSlot(t)
	if !filepath.IsAbs(slot.Path()) {
		t.Errorf("path = %q, want absolute", slot.Path())
	}
}
