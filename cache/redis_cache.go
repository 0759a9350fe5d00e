package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type RedisStatsCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisStatsCache(client *redis.Client, ttl time.Duration) *RedisStatsCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisStatsCache{redis: client, ttl: ttl}
}

func entryKey(ownerID uuid.UUID, key string) string {
	return fmt.Sprintf("stats:%s:%s", ownerID, key)
}

// indexKey names the set of entry keys written for an owner.
func indexKey(ownerID uuid.UUID) string {
	return fmt.Sprintf("stats:%s:keys", ownerID)
}

func (c *RedisStatsCache) Get(ctx context.Context, ownerID uuid.UUID, key string, dest any) (bool, error) {
	data, err := c.redis.Get(ctx, entryKey(ownerID, key)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		log.Printf("[CACHE] discarding unreadable entry %s: %v", entryKey(ownerID, key), err)
		return false, nil
	}
	return true, nil
}

func (c *RedisStatsCache) Set(ctx context.Context, ownerID uuid.UUID, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal stats %s: %w", key, err)
	}

	k := entryKey(ownerID, key)
	pipe := c.redis.TxPipeline()
	pipe.Set(ctx, k, data, c.ttl)
	pipe.SAdd(ctx, indexKey(ownerID), k)
	pipe.Expire(ctx, indexKey(ownerID), c.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

func (c *RedisStatsCache) Invalidate(ctx context.Context, ownerID uuid.UUID) error {
	keys, err := c.redis.SMembers(ctx, indexKey(ownerID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	keys = append(keys, indexKey(ownerID))
	return c.redis.Del(ctx, keys...).Err()
}
