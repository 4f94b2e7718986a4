package cache

import (
	"github.com/MohamedSadiq102/context.Orion-LD/errors"
)

// Cache represents a generic cache interface that all cache implementations must satisfy.
// The cache is parameterized by value type V for type safety.
type Cache[V any] interface {
	// Get retrieves a value by key. Returns the value and true if found, zero value and false otherwise.
	Get(key string) (V, bool)

	// Set stores a value with the given key. Returns true if a new entry was created, false if updated.
	Set(key string, value V) (bool, error)

	// GetOrSet stores value under key only when the key is absent. It returns the
	// value held by the cache after the call and true when value was the one stored.
	// Concurrent callers racing on the same key all observe the first writer's value.
	GetOrSet(key string, value V) (V, bool, error)

	// Delete removes an entry by key. Returns true if the key existed and was deleted.
	Delete(key string) (bool, error)

	// Clear removes all entries from the cache.
	Clear() error

	// Size returns the current number of entries in the cache.
	Size() int

	// Keys returns a slice of all keys currently in the cache.
	Keys() []string

	// Stats returns cache statistics.
	Stats() *Statistics

	// Close releases any resources held by the cache.
	Close() error
}

// EvictCallback is called when an entry is removed from the cache.
// It receives the key and value of the removed entry.
type EvictCallback[V any] func(key string, value V)

// validateKey validates a cache key for basic requirements.
// Returns a classified error if the key is invalid.
func validateKey(key string) error {
	if key == "" {
		return errors.WrapInvalid(errors.ErrInvalidData, "cache", "validateKey", "key cannot be empty")
	}
	return nil
}
