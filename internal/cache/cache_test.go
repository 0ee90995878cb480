package cache

import (
	"testing"
	"time"
)

func TestKey_DependsOnLimits(t *testing.T) {
	a := Key("spez", 100, 200)
	b := Key("spez", 50, 200)
	c := Key("spez", 100, 200)

	if a == b {
		t.Error("expected different keys for different limits")
	}
	if a != c {
		t.Error("expected identical keys for identical inputs")
	}
}

func TestMemoryCache_RoundTrip(t *testing.T) {
	mc := NewMemoryCache(time.Minute)

	if _, found := mc.Get("missing"); found {
		t.Error("expected miss for unknown key")
	}

	if err := mc.Set("k", []byte("profile"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	val, found := mc.Get("k")
	if !found || string(val) != "profile" {
		t.Errorf("expected hit with stored value, got %q found=%v", val, found)
	}

	if err := mc.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := mc.Get("k"); found {
		t.Error("expected miss after delete")
	}
}

func TestDiskCache_RoundTrip(t *testing.T) {
	dc := NewDiskCache(t.TempDir(), time.Minute)

	if err := dc.Set("k", []byte("snapshot"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	val, found := dc.Get("k")
	if !found || string(val) != "snapshot" {
		t.Errorf("expected hit, got %q found=%v", val, found)
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	dc := NewDiskCache(t.TempDir(), time.Minute)

	if err := dc.Set("k", []byte("stale"), -time.Second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, found := dc.Get("k"); found {
		t.Error("expected expired entry to miss")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	lc := NewLayeredCache(time.Minute, dir, time.Minute)

	// Seed only the disk layer
	if err := lc.disk.Set("k", []byte("cold"), time.Minute); err != nil {
		t.Fatalf("seed disk: %v", err)
	}

	val, found := lc.Get("k")
	if !found || string(val) != "cold" {
		t.Fatalf("expected disk hit, got %q found=%v", val, found)
	}

	// Now present in memory too
	if _, found := lc.memory.Get("k"); !found {
		t.Error("expected disk hit promoted to memory")
	}
}

func TestLayeredCache_SetWritesBothLayers(t *testing.T) {
	lc := NewLayeredCache(time.Minute, t.TempDir(), time.Minute)

	if err := lc.Set("k", []byte("warm"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, found := lc.memory.Get("k"); !found {
		t.Error("expected memory layer hit")
	}
	if _, found := lc.disk.Get("k"); !found {
		t.Error("expected disk layer hit")
	}
}
