package utils

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultCacheTTL = time.Minute

// RedisCache is a small JSON cache over Redis. A nil *RedisCache is a valid, always-missing cache.
type RedisCache struct {
	rc  *redis.Client
	ttl time.Duration
}

// NewRedisCache returns nil when rc is nil so callers can skip caching uniformly.
func NewRedisCache(rc *redis.Client, ttl time.Duration) *RedisCache {
	if rc == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &RedisCache{rc: rc, ttl: ttl}
}

// GetJSON decodes the cached value for key into v and reports whether it was found.
func (c *RedisCache) GetJSON(ctx context.Context, key string, v interface{}) bool {
	if c == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	b, err := c.rc.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			Sugar.Debugf("cache get failed key=%s err=%v", key, err)
		}
		return false
	}
	return json.Unmarshal(b, v) == nil
}

// SetJSON marshals v and stores it with the cache TTL.
func (c *RedisCache) SetJSON(ctx context.Context, key string, v interface{}) {
	if c == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := c.rc.Set(ctx, key, b, c.ttl).Err(); err != nil {
		Sugar.Warnf("cache set failed key=%s err=%v", key, err)
	}
}

// InvalidateByPrefix deletes keys that match the given prefix using SCAN.
func (c *RedisCache) InvalidateByPrefix(ctx context.Context, prefix string) {
	if c == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var cursor uint64
	for i := 0; i < 10; i++ { // limit rounds to avoid long loops
		keys, cur, err := c.rc.Scan(ctx, cursor, prefix+"*", 1000).Result()
		if err != nil {
			Sugar.Warnf("cache invalidate scan failed prefix=%s err=%v", prefix, err)
			return
		}
		cursor = cur
		if len(keys) > 0 {
			pipe := c.rc.Pipeline()
			for _, k := range keys {
				pipe.Del(ctx, k)
			}
			_, _ = pipe.Exec(ctx)
		}
		if cursor == 0 {
			return
		}
	}
}
