package cache

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileBackend_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "wbdata", "responses.json")

	backend, err := NewFileBackend(path)
	if err != nil {
		t.Fatalf("NewFileBackend() error = %v", err)
	}

	// Nothing persisted yet
	if _, err := backend.ReadAll(ctx); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("ReadAll() on empty backend = %v, want ErrNoSnapshot", err)
	}

	want := []byte(`{"key":{"day":1,"body":"{}"}}`)
	if err := backend.WriteAll(ctx, want); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}

	got, err := backend.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("ReadAll() = %s, want %s", got, want)
	}

	// The temp file must not survive the rename
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind after WriteAll")
	}
}

func TestFileBackend_OverwriteReplacesSnapshot(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "responses.json")

	backend, err := NewFileBackend(path)
	if err != nil {
		t.Fatalf("NewFileBackend() error = %v", err)
	}

	if err := backend.WriteAll(ctx, []byte("first")); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	if err := backend.WriteAll(ctx, []byte("second")); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}

	got, err := backend.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(got) != "second" {
		t.Errorf("ReadAll() = %q, want %q", got, "second")
	}
}
