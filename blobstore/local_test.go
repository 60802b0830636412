package blobstore

import (
	"context"
	"testing"
)

func TestLocalPutGet(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocal(dir)
	if err != nil {
		t.Fatalf("NewLocal failed: %v", err)
	}

	ctx := context.Background()
	if err := store.Put(ctx, "snapshot.json", []byte("hello")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	data, err := store.Get(ctx, "snapshot.json")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("got %q, want %q", data, "hello")
	}
}

func TestLocalGetMissing(t *testing.T) {
	dir := t.TempDir()
	store, _ := NewLocal(dir)

	_, err := store.Get(context.Background(), "missing.json")
	if err != ErrNotFound {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestLocalOverwriteIsAtomic(t *testing.T) {
	dir := t.TempDir()
	store, _ := NewLocal(dir)
	ctx := context.Background()

	if err := store.Put(ctx, "snapshot.json", []byte("v1")); err != nil {
		t.Fatalf("Put v1 failed: %v", err)
	}
	if err := store.Put(ctx, "snapshot.json", []byte("v2-longer")); err != nil {
		t.Fatalf("Put v2 failed: %v", err)
	}

	data, err := store.Get(ctx, "snapshot.json")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(data) != "v2-longer" {
		t.Fatalf("got %q, want %q", data, "v2-longer")
	}

	names, err := store.List(ctx, "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	for _, n := range names {
		if n != "snapshot.json" {
			t.Fatalf("leftover temp file in listing: %v", names)
		}
	}
}

func TestLocalDelete(t *testing.T) {
	dir := t.TempDir()
	store, _ := NewLocal(dir)
	ctx := context.Background()

	_ = store.Put(ctx, "a", []byte("x"))
	if err := store.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "a"); err != ErrNotFound {
		t.Fatalf("got %v, want ErrNotFound after delete", err)
	}
	if err := store.Delete(ctx, "a"); err != ErrNotFound {
		t.Fatalf("second delete: got %v, want ErrNotFound", err)
	}
}

func TestLocalListPrefix(t *testing.T) {
	dir := t.TempDir()
	store, _ := NewLocal(dir)
	ctx := context.Background()

	_ = store.Put(ctx, "snapshots/a.json", []byte("1"))
	_ = store.Put(ctx, "snapshots/b.json", []byte("2"))
	_ = store.Put(ctx, "other/c.json", []byte("3"))

	names, err := store.List(ctx, "snapshots/")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("got %d names, want 2: %v", len(names), names)
	}
}
