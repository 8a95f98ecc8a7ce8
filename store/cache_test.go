package store

import "testing"

func TestMemoryCache(t *testing.T) {
	cache := NewMemoryCache()

	if _, ok := cache.Get("missing"); ok {
		t.Errorf("expected a miss for an unknown key")
	}

	if err := cache.Set("yield:TB27:900", "0.0638"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	val, ok := cache.Get("yield:TB27:900")
	if !ok {
		t.Fatalf("expected a hit after Set")
	}
	if val != "0.0638" {
		t.Errorf("expected 0.0638, got %q", val)
	}

	// overwrite
	if err := cache.Set("yield:TB27:900", "0.0700"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if val, _ := cache.Get("yield:TB27:900"); val != "0.0700" {
		t.Errorf("expected overwritten value, got %q", val)
	}
}
