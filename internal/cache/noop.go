package cache

import (
	"context"

	"github.com/rohmanhakim/aocinput/internal/puzzle"
	"github.com/rohmanhakim/aocinput/pkg/failure"
)

// NoopCache is used when caching is disabled.
type NoopCache struct{}

// Compile-time interface check
var _ Cache = NoopCache{}

func NewNoopCache() NoopCache {
	return NoopCache{}
}

func (NoopCache) Read(context.Context, puzzle.Key) (string, bool) {
	return "", false
}

func (NoopCache) Write(context.Context, puzzle.Key, string) failure.ClassifiedError {
	return nil
}
