package blobstore

import (
	"context"
	"sync"
	"testing"
)

func TestMemoryPutGetDelete(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	if _, err := store.Get(ctx, "a"); err != ErrNotFound {
		t.Fatalf("got %v, want ErrNotFound", err)
	}

	if err := store.Put(ctx, "a", []byte("v1")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	data, err := store.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(data) != "v1" {
		t.Fatalf("got %q, want %q", data, "v1")
	}

	if err := store.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "a"); err != ErrNotFound {
		t.Fatalf("got %v, want ErrNotFound after delete", err)
	}
}

func TestMemoryGetReturnsCopy(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	original := []byte("hello")
	_ = store.Put(ctx, "a", original)
	original[0] = 'X'

	data, _ := store.Get(ctx, "a")
	if string(data) != "hello" {
		t.Fatalf("mutation of caller's buffer leaked into store: got %q", data)
	}

	data[0] = 'Y'
	data2, _ := store.Get(ctx, "a")
	if string(data2) != "hello" {
		t.Fatalf("mutation of returned buffer leaked into store: got %q", data2)
	}
}

func TestMemoryConcurrentAccess(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = store.Put(ctx, "key", []byte{byte(i)})
			_, _ = store.Get(ctx, "key")
		}(i)
	}
	wg.Wait()
}

func TestMemoryList(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	_ = store.Put(ctx, "snapshots/a", []byte("1"))
	_ = store.Put(ctx, "snapshots/b", []byte("2"))
	_ = store.Put(ctx, "other/c", []byte("3"))

	names, err := store.List(ctx, "snapshots/")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("got %d names, want 2: %v", len(names), names)
	}
}
