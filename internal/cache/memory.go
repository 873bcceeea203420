package cache

import (
	"context"
	"sync"

	"github.com/rohmanhakim/aocinput/internal/puzzle"
	"github.com/rohmanhakim/aocinput/pkg/failure"
)

// MemoryCache keeps inputs in a map for the lifetime of the process.
//
// One mutex guards the map, so the existence check and the store in Write
// happen atomically and the conflict policy holds under concurrent callers.
type MemoryCache struct {
	mu     sync.RWMutex
	data   map[puzzle.Key]string
	policy ConflictPolicy
}

var _ Cache = (*MemoryCache)(nil)

// NewMemoryCache creates an empty cache that resolves write conflicts with policy.
func NewMemoryCache(policy ConflictPolicy) *MemoryCache {
	return &MemoryCache{
		data:   make(map[puzzle.Key]string),
		policy: policy,
	}
}

func (c *MemoryCache) Read(_ context.Context, key puzzle.Key) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, exists := c.data[key]
	return value, exists
}

func (c *MemoryCache) Write(_ context.Context, key puzzle.Key, input string) failure.ClassifiedError {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.data[key]; exists {
		switch c.policy {
		case ConflictReject:
			return &CacheError{
				Message:   "entry present and conflict policy is reject",
				Retryable: false,
				Cause:     ErrCauseAlreadyExists,
				Key:       key,
			}
		case ConflictSkip:
			return nil
		}
	}

	c.data[key] = input
	return nil
}

// Size returns the number of entries in the cache.
// This method is primarily useful for testing and diagnostics.
func (c *MemoryCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.data)
}

// Policy reports the conflict policy the cache was built with.
func (c *MemoryCache) Policy() ConflictPolicy {
	return c.policy
}
