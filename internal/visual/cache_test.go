package visual

import (
	"fmt"
	"testing"
	"time"
)

func TestCache_FIFOEviction(t *testing.T) {
	s := NewSelector()

	for i := range 21 {
		s.CacheVisual(fmt.Sprintf("task-%d", i), i)
	}

	if got := s.CacheLen(); got != 20 {
		t.Fatalf("CacheLen = %d, want 20", got)
	}
	if _, ok := s.CachedVisual("task-0"); ok {
		t.Error("first inserted key should have been evicted")
	}
	for i := 1; i < 21; i++ {
		v, ok := s.CachedVisual(fmt.Sprintf("task-%d", i))
		if !ok {
			t.Errorf("task-%d missing", i)
			continue
		}
		if v != i {
			t.Errorf("task-%d = %v, want %d", i, v, i)
		}
	}
}

func TestCache_EvictionIgnoresReads(t *testing.T) {
	s := NewSelector(WithCacheCapacity(2))

	s.CacheVisual("a", 1)
	s.CacheVisual("b", 2)
	s.CachedVisual("a") // Reading does not protect "a".
	s.CacheVisual("c", 3)

	if _, ok := s.CachedVisual("a"); ok {
		t.Error("a should be evicted despite the recent read")
	}
	if _, ok := s.CachedVisual("b"); !ok {
		t.Error("b should still be cached")
	}
}

func TestCache_RecacheReplaces(t *testing.T) {
	s := NewSelector(WithCacheCapacity(2))

	s.CacheVisual("a", 1)
	s.CacheVisual("b", 2)
	s.CacheVisual("a", 10)

	if got := s.CacheLen(); got != 2 {
		t.Fatalf("CacheLen = %d, want 2", got)
	}
	if v, _ := s.CachedVisual("a"); v != 10 {
		t.Errorf("a = %v, want 10", v)
	}

	// "a" is now the newest entry, so "b" goes first.
	s.CacheVisual("c", 3)
	if _, ok := s.CachedVisual("b"); ok {
		t.Error("b should be evicted")
	}
	if _, ok := s.CachedVisual("a"); !ok {
		t.Error("a should still be cached")
	}
}

func TestCache_Expiry(t *testing.T) {
	clock, advance := fakeClock(time.Date(2026, 1, 12, 10, 0, 0, 0, time.UTC))
	s := NewSelector(WithClock(clock))

	s.CacheVisual("task-1", "plot")

	advance(29 * time.Minute)
	if v, ok := s.CachedVisual("task-1"); !ok || v != "plot" {
		t.Fatalf("got (%v, %v), want cached plot before expiry", v, ok)
	}

	advance(time.Minute)
	if _, ok := s.CachedVisual("task-1"); ok {
		t.Fatal("entry should expire after 30 minutes")
	}
	if got := s.CacheLen(); got != 0 {
		t.Errorf("CacheLen = %d, stale entry should be dropped on read", got)
	}
}

func TestCache_Miss(t *testing.T) {
	s := NewSelector()
	if v, ok := s.CachedVisual("nope"); ok || v != nil {
		t.Errorf("got (%v, %v), want (nil, false)", v, ok)
	}
}

func TestCache_Clear(t *testing.T) {
	s := NewSelector()
	s.CacheVisual("a", 1)
	s.CacheVisual("b", 2)

	s.ClearCache()

	if got := s.CacheLen(); got != 0 {
		t.Errorf("CacheLen = %d, want 0", got)
	}
	if _, ok := s.CachedVisual("a"); ok {
		t.Error("a should be gone after clear")
	}

	// The cache stays usable after clearing.
	s.CacheVisual("c", 3)
	if _, ok := s.CachedVisual("c"); !ok {
		t.Error("c should be cached")
	}
}
