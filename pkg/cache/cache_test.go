package cache

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache.Get should always miss")
	}
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Errorf("empty cache: hit=%v err=%v", hit, err)
	}

	want := []byte(`{"index":6}`)
	if err := c.Set(ctx, "model:abc", want, time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	got, hit, err := c.Get(ctx, "model:abc")
	if err != nil || !hit {
		t.Fatalf("Get after Set: hit=%v err=%v", hit, err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Get = %q, want %q", got, want)
	}

	// Expired entries are misses.
	if err := c.Set(ctx, "stale", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "stale"); hit {
		t.Error("expired entry should miss")
	}

	entries, size, err := c.Info()
	if err != nil {
		t.Fatalf("Info error: %v", err)
	}
	if entries != 1 || size == 0 {
		t.Errorf("Info = (%d, %d), want one non-empty entry", entries, size)
	}

	if err := c.Delete(ctx, "model:abc"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "model:abc"); hit {
		t.Error("deleted entry should miss")
	}
	if err := c.Delete(ctx, "model:abc"); err != nil {
		t.Errorf("double Delete error: %v", err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	entries, _, err := c.Info()
	if err != nil {
		t.Fatal(err)
	}
	if entries != 0 {
		t.Errorf("entries after Clear = %d, want 0", entries)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}
	if h3 := Hash([]byte("world")); h1 == h3 {
		t.Error("different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("hash length should be 64, got %d", len(h1))
	}
}

func TestModelKey(t *testing.T) {
	k1 := ModelKey([]int{2, 1}, []int{1, 2})
	k2 := ModelKey([]int{2, 1}, []int{1, 2})
	if k1 != k2 {
		t.Error("ModelKey should be deterministic")
	}
	if k3 := ModelKey([]int{1, 2}, []int{2, 1}); k1 == k3 {
		t.Error("swapped generators should produce a different key")
	}
	if k1[:6] != "model:" {
		t.Errorf("key prefix unexpected: %s", k1)
	}
	if g := Gamma0Key(5); g[:7] != "gamma0:" {
		t.Errorf("gamma0 key prefix unexpected: %s", g)
	}
	if Gamma0Key(5) == Gamma0Key(6) {
		t.Error("different levels should produce different keys")
	}
}
