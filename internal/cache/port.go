package cache

import (
	"context"

	"github.com/rohmanhakim/aocinput/internal/puzzle"
	"github.com/rohmanhakim/aocinput/pkg/failure"
)

// Cache defines the port interface for puzzle input storage.
// This interface follows the port-adapter pattern, allowing different
// backends to be swapped without changing the fetcher logic.
//
// An entry is one blob of text per puzzle.Key with no expiry.
type Cache interface {
	// Read returns the stored input and true, or "" and false.
	// Read never mutates state and never fails: a storage error
	// is reported as a miss.
	Read(ctx context.Context, key puzzle.Key) (string, bool)

	// Write stores input for key. How an existing entry is treated is
	// up to the backend; every failure comes back as a *CacheError.
	Write(ctx context.Context, key puzzle.Key, input string) failure.ClassifiedError
}

// ConflictPolicy decides what a backend that can detect an existing
// entry does when a write targets it.
type ConflictPolicy int

const (
	ConflictOverwrite ConflictPolicy = iota
	ConflictReject
	ConflictSkip
)

func (p ConflictPolicy) String() string {
	switch p {
	case ConflictOverwrite:
		return "overwrite"
	case ConflictReject:
		return "reject"
	case ConflictSkip:
		return "skip"
	default:
		return "unknown"
	}
}

// ParseConflictPolicy accepts the names String returns.
func ParseConflictPolicy(s string) (ConflictPolicy, bool) {
	switch s {
	case "overwrite":
		return ConflictOverwrite, true
	case "reject":
		return ConflictReject, true
	case "skip":
		return ConflictSkip, true
	default:
		return 0, false
	}
}

// BackendName is the short name of a backend as used in config files
// and log records. Backends defined outside this package are "custom".
func BackendName(c Cache) string {
	switch c.(type) {
	case NoopCache, *NoopCache:
		return "none"
	case *MemoryCache:
		return "memory"
	case *FileCache:
		return "file"
	case *RedisCache:
		return "redis"
	case *S3Cache:
		return "s3"
	default:
		return "custom"
	}
}
