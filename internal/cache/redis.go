package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/witlog/witlog/internal/pkg/logger"
)

// keyPrefix namespaces fragment keys inside the shared Redis database.
const keyPrefix = "fragment:"

// RedisCache is a FragmentCache backed by Redis. TTL eviction is
// delegated to Redis key expiry.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a Redis-backed fragment cache.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Get returns the stored fragment. Redis errors (including an
// unavailable backend) are logged and reported as misses.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn().Err(err).Str("key", key).Msg("fragment cache read failed, treating as miss")
		}
		return nil, false
	}
	return val, true
}

// Put stores the fragment with Redis-side expiry. Errors are absorbed.
func (c *RedisCache) Put(ctx context.Context, key string, fragment []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, keyPrefix+key, fragment, ttl).Err(); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("fragment cache write failed")
	}
}

// Clear drops every fragment key.
func (c *RedisCache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
