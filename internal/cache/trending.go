package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// TrendingCache caches serialized trending responses in Redis. A nil
// client makes every operation a no-op so the API works without Redis.
type TrendingCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewTrendingCache(client *redis.Client, ttl time.Duration) *TrendingCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &TrendingCache{client: client, ttl: ttl}
}

func (c *TrendingCache) Get(ctx context.Context, period string) ([]byte, bool) {
	if c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, "trending:"+period).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (c *TrendingCache) Set(ctx context.Context, period string, data []byte) {
	if c.client == nil {
		return
	}
	// cache failures are invisible to callers, trending just recomputes
	_ = c.client.Set(ctx, "trending:"+period, data, c.ttl).Err()
}

func (c *TrendingCache) Invalidate(ctx context.Context, periods ...string) {
	if c.client == nil {
		return
	}
	keys := make([]string, 0, len(periods))
	for _, p := range periods {
		keys = append(keys, "trending:"+p)
	}
	if len(keys) > 0 {
		_ = c.client.Del(ctx, keys...).Err()
	}
}
