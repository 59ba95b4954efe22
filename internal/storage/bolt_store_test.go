package storage

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T, opts Options) *boltStore {
	t.Helper()
	storeRaw, err := openBolt(filepath.Join(t.TempDir(), "nested", "mirror.db"), normalizeOptions(opts))
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	store := storeRaw.(*boltStore)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestBoltStoreMarksAndExpiresTodos(t *testing.T) {
	store := openTestStore(t, Options{TodoTTL: time.Minute, CleanupInterval: time.Hour})
	clock := time.Now()
	store.now = func() time.Time { return clock }

	seen, err := store.SeenTodo("1:abc")
	if err != nil || seen {
		t.Fatalf("expected unseen todo, seen=%v err=%v", seen, err)
	}

	if err := store.MarkTodo("1:abc"); err != nil {
		t.Fatalf("MarkTodo: %v", err)
	}

	seen, err = store.SeenTodo("1:abc")
	if err != nil || !seen {
		t.Fatalf("expected todo marked as seen, got seen=%v err=%v", seen, err)
	}

	clock = clock.Add(2 * time.Minute)
	seen, err = store.SeenTodo("1:abc")
	if err != nil {
		t.Fatalf("SeenTodo after expiry: %v", err)
	}
	if seen {
		t.Fatalf("expected entry to expire")
	}
}

func TestBoltStoreCleanupSweepsExpiredKeys(t *testing.T) {
	store := openTestStore(t, Options{TodoTTL: time.Minute, CleanupInterval: time.Hour})
	clock := time.Now()
	store.now = func() time.Time { return clock }

	for _, key := range []string{"1:a", "2:b", "3:c", "4:d"} {
		if err := store.MarkTodo(key); err != nil {
			t.Fatalf("MarkTodo(%s): %v", key, err)
		}
	}
	clock = clock.Add(30 * time.Second)
	if err := store.MarkTodo("5:e"); err != nil {
		t.Fatalf("MarkTodo: %v", err)
	}

	// Past the first four expiries but not the fifth.
	store.lastCleanup.Store(clock.Add(-2 * time.Hour).Unix())
	if err := store.maybeCleanupExpired(clock.Add(45 * time.Second)); err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	n, err := store.count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected only the fresh key to survive cleanup, got %d keys", n)
	}
}

func TestNewStoreSupportsNoop(t *testing.T) {
	store, err := NewStore("none", "", Options{})
	if err != nil {
		t.Fatalf("NewStore none: %v", err)
	}
	if err := store.MarkTodo("x"); err != nil {
		t.Fatalf("noop store MarkTodo: %v", err)
	}
	if seen, _ := store.SeenTodo("x"); seen {
		t.Fatalf("noop store should never report seen")
	}
}

func TestNewStoreValidatesInput(t *testing.T) {
	if _, err := NewStore("bbolt", " ", Options{}); err == nil {
		t.Fatalf("expected error for empty bbolt path")
	}
	if _, err := NewStore("redis", "x", Options{}); err == nil {
		t.Fatalf("expected error for unsupported type")
	}
}
