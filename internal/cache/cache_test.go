package cache

import (
	"strings"
	"testing"
	"time"
)

func TestKey_StableAndPrefixed(t *testing.T) {
	k1 := Key("https://www.nosdeputes.fr/deputes/json")
	k2 := Key("https://www.nosdeputes.fr/deputes/json")
	if k1 != k2 {
		t.Error("Expected identical URLs to produce identical keys")
	}
	if !strings.HasPrefix(k1, "deputes:v1:") {
		t.Errorf("Expected versioned prefix, got %s", k1)
	}
	if k1 == Key("https://www.nosdeputes.fr/synthese/data/json") {
		t.Error("Expected different URLs to produce different keys")
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("Expected miss on empty cache")
	}

	if err := c.Set("k", []byte("body"), time.Minute); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	val, found := c.Get("k")
	if !found || string(val) != "body" {
		t.Errorf("Expected hit with 'body', got (%q, %v)", val, found)
	}

	_ = c.Delete("k")
	if _, found := c.Get("k"); found {
		t.Error("Expected miss after delete")
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set("fresh", []byte("a"), time.Minute); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, found := c.Get("fresh"); !found {
		t.Error("Expected hit for fresh entry")
	}

	if err := c.Set("stale", []byte("b"), -time.Minute); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, found := c.Get("stale"); found {
		t.Error("Expected expired entry to miss")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Minute)

	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Fresh layered cache over the same dir: memory is cold, disk warm.
	c2 := NewLayeredCache(time.Minute, dir, time.Minute)
	val, found := c2.Get("k")
	if !found || string(val) != "v" {
		t.Fatalf("Expected disk hit, got (%q, %v)", val, found)
	}

	// Now it should be in memory too.
	if _, found := c2.memory.Get("k"); !found {
		t.Error("Expected promotion to memory layer")
	}
}
