package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestDiskStore_PutGetDelete(t *testing.T) {
	store, err := NewDiskStore(filepath.Join(t.TempDir(), "uploads"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := context.Background()

	if err := store.Put(ctx, "avatar.png", pngHeader, "image/png"); err != nil {
		t.Fatalf("put: %v", err)
	}

	data, contentType, err := store.Get(ctx, "avatar.png")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !bytes.Equal(data, pngHeader) {
		t.Fatalf("unexpected data: %q", data)
	}
	if contentType != "image/png" {
		t.Fatalf("expected image/png, got %s", contentType)
	}

	if err := store.Delete(ctx, "avatar.png"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, _, err := store.Get(ctx, "avatar.png"); !errors.Is(err, ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}
	if err := store.Delete(ctx, "avatar.png"); err != nil {
		t.Fatalf("delete of missing object should succeed: %v", err)
	}
}

func TestDiskStore_RejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{"", "../escape.png", "nested/file.png", ".hidden"} {
		if err := store.Put(context.Background(), name, pngHeader, "image/png"); err == nil {
			t.Fatalf("expected error for name %q", name)
		}
		if _, _, err := store.Get(context.Background(), name); !errors.Is(err, ErrObjectNotFound) {
			t.Fatalf("expected ErrObjectNotFound for name %q, got %v", name, err)
		}
	}

	if _, err := os.Stat(filepath.Join(filepath.Dir(dir), "escape.png")); err == nil {
		t.Fatalf("file escaped the store root")
	}
}
