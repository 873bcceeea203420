package cmd

import (
	"context"
	"fmt"

	"github.com/rohmanhakim/aocinput/internal/cache"
	"github.com/rohmanhakim/aocinput/internal/config"
)

// BuildCache constructs the backend named by cfg. Remote clients are
// created lazily by their libraries, so no connection is made here.
func BuildCache(ctx context.Context, cfg config.Config) (cache.Cache, error) {
	switch cfg.CacheBackend() {
	case config.CacheBackendNone:
		return cache.NewNoopCache(), nil
	case config.CacheBackendMemory:
		return cache.NewMemoryCache(cfg.ConflictPolicy()), nil
	case config.CacheBackendFile:
		return cache.NewFileCache(cache.DayFilePath(cfg.OutputDir())), nil
	case config.CacheBackendRedis:
		client := cache.NewRedisClient(cfg.RedisAddr(), cfg.RedisPassword(), cfg.RedisDB())
		return cache.NewRedisCache(client, cfg.RedisPrefix(), cfg.ConflictPolicy()), nil
	case config.CacheBackendS3:
		client, err := cache.NewS3Client(ctx, cfg.S3Options())
		if err != nil {
			return nil, fmt.Errorf("failed to configure s3 client: %w", err)
		}
		return cache.NewS3Cache(client, cfg.S3Bucket(), cfg.S3Prefix()), nil
	default:
		return nil, fmt.Errorf("%w: unknown cache backend %q", config.ErrInvalidConfig, cfg.CacheBackend())
	}
}
