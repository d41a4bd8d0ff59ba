package cache

import (
	"testing"
	"time"
)

func TestAddGetMiss(t *testing.T) {
	c := New(2, time.Hour)
	if _, ok := c.Get("a", 0); ok {
		t.Fatal("expected miss on empty cache")
	}

	c.Add("a", nil, "slabA", []uint32{10, 20}, []uint32{5, 6})
	loc, ok := c.Get("a", 1)
	if !ok || loc.Offset != 20 || loc.Size != 6 {
		t.Fatalf("unexpected location: %+v ok=%v", loc, ok)
	}

	if _, ok := c.Get("a", 5); ok {
		t.Fatal("expected miss for out-of-range tile index")
	}
}

func TestCapacityEviction(t *testing.T) {
	c := New(2, time.Hour)
	c.Add("a", nil, "A", []uint32{1}, []uint32{1})
	c.Add("b", nil, "B", []uint32{1}, []uint32{1})
	c.Add("c", nil, "C", []uint32{1}, []uint32{1})

	if c.Len() != 2 {
		t.Fatalf("expected capacity-bound length 2, got %d", c.Len())
	}
	if _, ok := c.Get("a", 0); ok {
		t.Fatal("expected oldest entry 'a' to be evicted")
	}
	if _, ok := c.Get("c", 0); !ok {
		t.Fatal("expected most recent entry 'c' to remain")
	}
}

func TestTTLExpiry(t *testing.T) {
	c := New(10, 10*time.Millisecond)
	c.Add("a", nil, "A", []uint32{1}, []uint32{1})
	time.Sleep(30 * time.Millisecond)
	if _, ok := c.Get("a", 0); ok {
		t.Fatal("expected entry to be expired")
	}
	if c.Len() != 0 {
		t.Fatal("expected expired entry to be purged on access")
	}
}

func TestOrderForWarmupPreservesSet(t *testing.T) {
	coords := []SlabCoord{{0, 0}, {3, 3}, {1, 2}, {2, 1}}
	ordered := OrderForWarmup(coords, 4)
	if len(ordered) != len(coords) {
		t.Fatalf("expected same length, got %d", len(ordered))
	}
	seen := map[SlabCoord]bool{}
	for _, c := range ordered {
		seen[c] = true
	}
	for _, c := range coords {
		if !seen[c] {
			t.Fatalf("lost coordinate %+v during ordering", c)
		}
	}
}
