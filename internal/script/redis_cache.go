package script

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisCommands is the subset of *redis.Client used by RedisCache.
type redisCommands interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisCache keeps parsed scripts in Redis with a fixed TTL.
type RedisCache struct {
	client redisCommands
	ttl    time.Duration
}

func NewRedisCache(client redisCommands, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func redisKey(key Key) string {
	return "lessonforge:script:" + key.String()
}

func (c *RedisCache) Get(ctx context.Context, key Key) (string, bool, error) {
	value, err := c.client.Get(ctx, redisKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get cached script %s: %w", key, err)
	}
	return value, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key Key, parsedText string) error {
	if err := c.client.Set(ctx, redisKey(key), parsedText, c.ttl).Err(); err != nil {
		return fmt.Errorf("set cached script %s: %w", key, err)
	}
	return nil
}
