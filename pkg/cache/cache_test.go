package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/MohamedSadiq102/context.Orion-LD/errors"
)

func newTestCache(t *testing.T, options ...Option[string]) Cache[string] {
	t.Helper()
	c, err := NewSimple[string](options...)
	if err != nil {
		t.Fatalf("NewSimple: %v", err)
	}
	return c
}

func TestSimpleCache_BasicOperations(t *testing.T) {
	cache := newTestCache(t)

	if value, exists := cache.Get("key1"); exists {
		t.Errorf("Expected cache miss, got value: %s", value)
	}

	isNew, err := cache.Set("key1", "value1")
	if err != nil {
		t.Fatalf("Unexpected error setting key: %v", err)
	}
	if !isNew {
		t.Error("Expected new entry creation")
	}

	if value, exists := cache.Get("key1"); !exists || value != "value1" {
		t.Errorf("Expected 'value1', got value: %s, exists: %t", value, exists)
	}

	isNew, err = cache.Set("key1", "value1_updated")
	if err != nil {
		t.Fatalf("Unexpected error updating key: %v", err)
	}
	if isNew {
		t.Error("Expected existing entry update")
	}

	deleted, err := cache.Delete("key1")
	if err != nil || !deleted {
		t.Errorf("Expected successful deletion, got deleted=%t err=%v", deleted, err)
	}

	deleted, err = cache.Delete("key1")
	if err != nil || deleted {
		t.Errorf("Expected no-op deletion, got deleted=%t err=%v", deleted, err)
	}
}

func TestSimpleCache_EmptyKey(t *testing.T) {
	cache := newTestCache(t)

	if _, err := cache.Set("", "v"); !errors.IsInvalid(err) {
		t.Errorf("Set with empty key: expected invalid error, got %v", err)
	}
	if _, _, err := cache.GetOrSet("", "v"); !errors.IsInvalid(err) {
		t.Errorf("GetOrSet with empty key: expected invalid error, got %v", err)
	}
	if _, err := cache.Delete(""); !errors.IsInvalid(err) {
		t.Errorf("Delete with empty key: expected invalid error, got %v", err)
	}
}

func TestSimpleCache_GetOrSetFirstWriterWins(t *testing.T) {
	cache := newTestCache(t)

	stored, inserted, err := cache.GetOrSet("k", "first")
	if err != nil || !inserted || stored != "first" {
		t.Fatalf("first GetOrSet: stored=%q inserted=%t err=%v", stored, inserted, err)
	}

	stored, inserted, err = cache.GetOrSet("k", "second")
	if err != nil || inserted || stored != "first" {
		t.Fatalf("second GetOrSet: stored=%q inserted=%t err=%v", stored, inserted, err)
	}

	if got := cache.Stats().Races(); got != 1 {
		t.Errorf("Expected 1 race, got %d", got)
	}
}

func TestSimpleCache_GetOrSetConcurrent(t *testing.T) {
	cache := newTestCache(t)

	const goroutines = 32
	results := make([]string, goroutines)
	insertedCount := 0
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			stored, inserted, err := cache.GetOrSet("shared", fmt.Sprintf("writer-%d", id))
			if err != nil {
				t.Errorf("GetOrSet: %v", err)
				return
			}
			results[id] = stored
			if inserted {
				mu.Lock()
				insertedCount++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	if insertedCount != 1 {
		t.Fatalf("Expected exactly one insert, got %d", insertedCount)
	}
	for i, r := range results {
		if r != results[0] {
			t.Errorf("goroutine %d observed %q, want %q", i, r, results[0])
		}
	}
	if cache.Size() != 1 {
		t.Errorf("Expected size 1, got %d", cache.Size())
	}
}

func TestSimpleCache_ClearAndEvictionCallback(t *testing.T) {
	evicted := make(map[string]string)
	cache := newTestCache(t, WithEvictionCallback[string](func(key, value string) {
		evicted[key] = value
	}), WithInitialCapacity[string](4))

	_, _ = cache.Set("a", "1")
	_, _ = cache.Set("b", "2")
	_, _ = cache.Delete("a")

	if err := cache.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if cache.Size() != 0 {
		t.Errorf("Expected empty cache after Clear, got %d", cache.Size())
	}
	if len(evicted) != 2 || evicted["a"] != "1" || evicted["b"] != "2" {
		t.Errorf("Unexpected eviction callbacks: %v", evicted)
	}
}

func TestSimpleCache_Stats(t *testing.T) {
	cache := newTestCache(t)

	_, _ = cache.Set("k1", "v1")
	_, _ = cache.Set("k2", "v2")
	cache.Get("k1")
	cache.Get("missing")

	summary := cache.Stats().Summary()
	if summary.Hits != 1 || summary.Misses != 1 || summary.Sets != 2 {
		t.Errorf("Unexpected summary: %+v", summary)
	}
	if summary.CurrentSize != 2 || summary.MaxSize != 2 {
		t.Errorf("Unexpected size tracking: %+v", summary)
	}
	if summary.HitRatio != 0.5 {
		t.Errorf("Expected hit ratio 0.5, got %f", summary.HitRatio)
	}

	cache.Stats().Reset()
	if cache.Stats().Hits() != 0 {
		t.Error("Expected hits reset to zero")
	}
}

func TestSimpleCache_Keys(t *testing.T) {
	cache := newTestCache(t)
	_, _ = cache.Set("x", "1")
	_, _ = cache.Set("y", "2")

	keys := cache.Keys()
	if len(keys) != 2 {
		t.Fatalf("Expected 2 keys, got %v", keys)
	}
	if err := cache.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
