package cache

import (
	"testing"
	"time"
)

func TestKey_ChangesWithFileIdentity(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	k := Key("assets/props/crate.fbx", 4096, base)
	if k == "" {
		t.Fatal("expected a non-empty key")
	}
	if k[:len("fbxlint:v1:")] != "fbxlint:v1:" {
		t.Errorf("expected versioned key prefix, got %q", k)
	}

	if Key("assets/props/crate.fbx", 4096, base) != k {
		t.Error("same identity should produce the same key")
	}

	variants := []string{
		Key("assets/props/barrel.fbx", 4096, base),
		Key("assets/props/crate.fbx", 4097, base),
		Key("assets/props/crate.fbx", 4096, base.Add(time.Nanosecond)),
	}
	for i, v := range variants {
		if v == k {
			t.Errorf("variant %d: expected a different key", i)
		}
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("expected a miss for an unknown key")
	}

	if err := c.Set("report", []byte(`{"status":"pass"}`), time.Minute); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	val, found := c.Get("report")
	if !found {
		t.Fatal("expected a hit after Set")
	}
	if string(val) != `{"status":"pass"}` {
		t.Errorf("got %q", val)
	}

	if err := c.Delete("report"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, found := c.Get("report"); found {
		t.Error("expected a miss after Delete")
	}
}

func TestDiskCache_PersistsAndExpires(t *testing.T) {
	dir := t.TempDir()

	c := NewDiskCache(dir, time.Hour)
	if err := c.Set("report", []byte("payload"), 0); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// A new instance over the same directory sees the entry.
	c2 := NewDiskCache(dir, time.Hour)
	val, found := c2.Get("report")
	if !found {
		t.Fatal("expected a hit from a fresh instance")
	}
	if string(val) != "payload" {
		t.Errorf("got %q", val)
	}

	// An expired entry reads as a miss and is removed.
	if err := c.Set("stale", []byte("old"), -time.Second); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, found := c.Get("stale"); found {
		t.Error("expected a miss for an expired entry")
	}
	if _, found := c.Get("stale"); found {
		t.Error("expected the expired entry to stay gone")
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, found := c.Get("report"); found {
		t.Error("expected a miss after Clear")
	}
}

func TestLayeredCache_PromotesFromDisk(t *testing.T) {
	dir := t.TempDir()

	seed := NewDiskCache(dir, time.Hour)
	if err := seed.Set("report", []byte("from disk"), 0); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	c := NewLayeredCache(time.Minute, dir, time.Hour)
	val, found := c.Get("report")
	if !found {
		t.Fatal("expected a hit through the disk layer")
	}
	if string(val) != "from disk" {
		t.Errorf("got %q", val)
	}

	// After promotion the entry survives the disk copy being removed.
	if err := seed.Delete("report"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, found := c.Get("report"); !found {
		t.Error("expected the promoted entry to hit in memory")
	}

	if err := c.Set("fresh", []byte("both layers"), time.Minute); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, found := NewDiskCache(dir, time.Hour).Get("fresh"); !found {
		t.Error("expected Set to write through to disk")
	}
}
