package analytics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"leadcrm_backend/platform/logger"
)

// Cache memoizes dashboard reports in Redis for a short TTL. Every aggregator
// is deterministic over the lead snapshot, so a cached report is exactly what
// a recomputation would produce until the underlying data changes. The cache
// is best-effort: any Redis or codec failure falls through to recomputation.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logger.Logger
}

func NewCache(client *redis.Client, ttl time.Duration, log *logger.Logger) *Cache {
	return &Cache{client: client, ttl: ttl, logger: log}
}

// Get loads a cached value into dest, reporting whether it was a hit.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil || c.client == nil {
		return false
	}
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("dashboard cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		c.logger.Warn("dashboard cache payload corrupt", "key", key, "error", err)
		return false
	}
	return true
}

// Set stores a value under key for the cache TTL.
func (c *Cache) Set(ctx context.Context, key string, value any) {
	if c == nil || c.client == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("dashboard cache encode failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("dashboard cache write failed", "key", key, "error", err)
	}
}

// Invalidate drops a cached key, typically after a lead mutation.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("dashboard cache invalidation failed", "error", err)
	}
}
