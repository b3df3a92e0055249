// Package store persists the checklist state as a single whole-value
// JSON slot on the local file system.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/starford/dagaz/internal/apperr"
)

// Slot is the durable key-value slot the document is persisted to.
// Writes are complete overwrites; there are no partial updates.
type Slot interface {
	// Load returns the raw stored state, or apperr.ErrNoState when
	// the slot was never written.
	Load() ([]byte, error)
	// Save atomically overwrites the slot.
	Save(data []byte) error
	// Path returns the backing file path.
	Path() string
}

// File implements Slot backed by one file on disk.
type File struct {
	path string
}

var _ Slot = (*File)(nil)

// NewFile creates a file-backed slot, creating the parent directory
// if needed.
func NewFile(path string) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("store: resolve state path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return nil, fmt.Errorf("store: create state dir: %w", err)
	}
	return &File{path: abs}, nil
}

// Path returns the absolute state file path.
func (f *File) Path() string {
	return f.path
}

// Load reads the whole slot.
func (f *File) Load() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, apperr.ErrNoState
	}
	if err != nil {
		return nil, fmt.Errorf("store: read state: %w", err)
	}
	return data, nil
}

// Save atomically overwrites the slot: tmp file → fsync → rename.
func (f *File) Save(data []byte) error {
	dir := filepath.Dir(f.path)

	tmp, err := os.CreateTemp(dir, ".dagaz-tmp-*")
	if err != nil {
		return fmt.Errorf("store: create temp: %w", err)
	}
	tmpName := tmp.Name()

	// Clean up on any failure path.
	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("store: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("store: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("store: close temp: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("store: rename: %w", err)
	}
	success = true
	return nil
}
