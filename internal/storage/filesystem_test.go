package storage

import (
	"context"
	"os"
	"testing"
)

func TestWriteReadRemove(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}
	ctx := context.Background()

	key, err := store.Write(ctx, "session/images/logo.jpg", []byte("jpeg-bytes"))
	if err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if key != "session/images/logo.jpg" {
		t.Fatalf("unexpected key %q", key)
	}

	data, err := store.Read(ctx, key)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if string(data) != "jpeg-bytes" {
		t.Fatalf("unexpected data %q", data)
	}

	if err := store.Remove(ctx, key); err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	if _, err := store.Read(ctx, key); !os.IsNotExist(err) {
		t.Fatalf("expected not-exist after remove, got %v", err)
	}
	// Removing twice must stay silent.
	if err := store.Remove(ctx, key); err != nil {
		t.Fatalf("second Remove error: %v", err)
	}
}

func TestSanitizeKeyRejectsTraversal(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}
	if _, err := store.Write(context.Background(), "../outside", []byte("x")); err == nil {
		t.Fatal("expected traversal key to be rejected")
	}
	if _, err := store.Read(context.Background(), ""); err == nil {
		t.Fatal("expected empty key to be rejected")
	}
}
