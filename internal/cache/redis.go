package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rohmanhakim/aocinput/internal/puzzle"
	"github.com/rohmanhakim/aocinput/pkg/failure"
)

const DefaultRedisPrefix = "aocinput:"

// RedisClient is the slice of *redis.Client the cache needs.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// RedisCache shares inputs between machines through a Redis server.
// Entries never expire. Reject and Skip are enforced with SETNX, so the
// existence check is atomic on the server rather than in this process.
type RedisCache struct {
	client RedisClient
	prefix string
	policy ConflictPolicy
}

var _ Cache = (*RedisCache)(nil)

func NewRedisCache(client RedisClient, prefix string, policy ConflictPolicy) *RedisCache {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisCache{
		client: client,
		prefix: prefix,
		policy: policy,
	}
}

func (c *RedisCache) redisKey(key puzzle.Key) string {
	return fmt.Sprintf("%s%d:%d", c.prefix, key.Year, key.Day)
}

// Read treats redis.Nil and every transport error alike: as a miss.
func (c *RedisCache) Read(ctx context.Context, key puzzle.Key) (string, bool) {
	value, err := c.client.Get(ctx, c.redisKey(key)).Result()
	if err != nil {
		return "", false
	}
	return value, true
}

func (c *RedisCache) Write(ctx context.Context, key puzzle.Key, input string) failure.ClassifiedError {
	rk := c.redisKey(key)

	if c.policy == ConflictOverwrite {
		if err := c.client.Set(ctx, rk, input, 0).Err(); err != nil {
			return c.writeError(key, err)
		}
		return nil
	}

	stored, err := c.client.SetNX(ctx, rk, input, 0).Result()
	if err != nil {
		return c.writeError(key, err)
	}
	if !stored && c.policy == ConflictReject {
		return &CacheError{
			Message:   rk,
			Retryable: false,
			Cause:     ErrCauseAlreadyExists,
			Key:       key,
		}
	}
	return nil
}

func (c *RedisCache) writeError(key puzzle.Key, err error) *CacheError {
	return &CacheError{
		Message:   err.Error(),
		Retryable: true,
		Cause:     ErrCauseWriteFailure,
		Key:       key,
	}
}
