// Package cache is the short-TTL response cache applied uniformly to
// the aggregated responses. It stores fully rendered JSON payloads, so
// a hit skips the whole fetch-and-score pipeline.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = 5 * time.Minute

// Cache wraps a Redis client and provides get/set for rendered
// response payloads, keyed by view and caller coordinate.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache constructs a Cache with the default 5-minute TTL.
func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client, ttl: defaultTTL}
}

// NewCacheWithTTL constructs a Cache with a custom TTL.
func NewCacheWithTTL(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// key rounds the coordinate to three decimals (~100 m) so nearby
// callers share an entry.
func key(view string, lat, lng float64) string {
	return fmt.Sprintf("conditions:%s:%.3f,%.3f", view, lat, lng)
}

// Get retrieves a cached payload. Returns nil, nil on a cache miss
// (not an error).
func (c *Cache) Get(ctx context.Context, view string, lat, lng float64) ([]byte, error) {
	val, err := c.client.Get(ctx, key(view, lat, lng)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get for view %s: %w", view, err)
	}
	return val, nil
}

// Set stores a payload with the configured TTL. Nil payloads are a no-op.
func (c *Cache) Set(ctx context.Context, view string, lat, lng float64, payload []byte) error {
	if payload == nil {
		return nil
	}
	if err := c.client.Set(ctx, key(view, lat, lng), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set for view %s: %w", view, err)
	}
	return nil
}
