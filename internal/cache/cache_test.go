package cache

import (
	"testing"
	"time"
)

func TestQueryKey_Normalization(t *testing.T) {
	base := QueryKey("show denied claims")

	same := []string{
		"Show Denied Claims",
		"  show denied claims  ",
		"show   denied\tclaims",
	}
	for _, q := range same {
		if QueryKey(q) != base {
			t.Errorf("Expected %q to map to the same key", q)
		}
	}

	if QueryKey("show approved claims") == base {
		t.Error("Expected different queries to map to different keys")
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("Expected miss for unknown key")
	}

	if err := c.Set("k", []byte("answer"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	val, found := c.Get("k")
	if !found || string(val) != "answer" {
		t.Errorf("Expected hit with 'answer', got %q found=%v", val, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("Expected miss after delete")
	}
}

func TestDiskCache(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Minute)

	if err := c.Set(QueryKey("q1"), []byte("cached answer"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, found := c.Get(QueryKey("q1"))
	if !found || string(val) != "cached answer" {
		t.Errorf("Expected hit with 'cached answer', got %q found=%v", val, found)
	}

	// Expired entries are treated as misses and removed
	if err := c.Set(QueryKey("q2"), []byte("stale"), -time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, found := c.Get(QueryKey("q2")); found {
		t.Error("Expected miss for expired entry")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Hour)

	key := QueryKey("how many claims were denied")
	if err := c.Set(key, []byte("42"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// Drop the memory layer; the disk layer should still serve the value
	// and repopulate memory.
	_ = c.memory.Clear()

	val, found := c.Get(key)
	if !found || string(val) != "42" {
		t.Fatalf("Expected disk hit with '42', got %q found=%v", val, found)
	}

	if _, found := c.memory.Get(key); !found {
		t.Error("Expected disk hit to be promoted into memory")
	}
}
