package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// SnapshotKey is the Redis key the full cache snapshot is stored under.
const SnapshotKey = "wb:cache:snapshot"

// RedisBackend stores the snapshot under a single Redis key. It exists for
// deployments where several short-lived processes share one cache; the
// snapshot granularity stays the same as the file backend, Redis only
// replaces the disk file.
type RedisBackend struct {
	redis *redis.Client
}

// NewRedisBackend creates a backend on top of an existing Redis client.
func NewRedisBackend(redisClient *redis.Client) *RedisBackend {
	if redisClient == nil {
		panic("redis client cannot be nil")
	}
	return &RedisBackend{redis: redisClient}
}

// ReadAll implements Backend.
func (b *RedisBackend) ReadAll(ctx context.Context) ([]byte, error) {
	data, err := b.redis.Get(ctx, SnapshotKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return data, nil
}

// WriteAll implements Backend. Entry expiry is handled by the store at load
// time, so the snapshot itself never expires.
func (b *RedisBackend) WriteAll(ctx context.Context, data []byte) error {
	if err := b.redis.Set(ctx, SnapshotKey, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
