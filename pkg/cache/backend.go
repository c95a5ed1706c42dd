package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoSnapshot indicates that no cache snapshot has been persisted yet.
var ErrNoSnapshot = errors.New("no cache snapshot")

// Backend persists the full cache snapshot as an opaque byte blob. The
// store reads the whole snapshot once at load and replaces the whole
// snapshot on every write; backends never see individual entries.
type Backend interface {
	// ReadAll returns the persisted snapshot, or ErrNoSnapshot if nothing
	// has been written yet.
	ReadAll(ctx context.Context) ([]byte, error)

	// WriteAll replaces the persisted snapshot.
	WriteAll(ctx context.Context, data []byte) error
}

// FileBackend stores the snapshot in a single file on local disk.
type FileBackend struct {
	path string
}

// NewFileBackend creates a file backend at path, creating the parent
// directory if needed.
func NewFileBackend(path string) (*FileBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &FileBackend{path: path}, nil
}

// Path returns the snapshot file location.
func (b *FileBackend) Path() string {
	return b.path
}

// ReadAll implements Backend.
func (b *FileBackend) ReadAll(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("read cache snapshot: %w", err)
	}
	return data, nil
}

// WriteAll implements Backend. The snapshot is written to a temp file and
// renamed into place so a crash mid-write never corrupts the previous one.
func (b *FileBackend) WriteAll(_ context.Context, data []byte) error {
	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write cache snapshot: %w", err)
	}
	if err := os.Rename(tmp, b.path); err != nil {
		return fmt.Errorf("replace cache snapshot: %w", err)
	}
	return nil
}
