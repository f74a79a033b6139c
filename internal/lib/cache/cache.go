// Package cache stores JSON-encoded values in Redis.
//
// It backs the lookup endpoints: lists that change rarely and are read on
// every page render. A cache failure is never fatal; callers fall back to
// the database.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces every key written by this package.
const KeyPrefix = "storefront:"

// Cache is a JSON cache on top of a Redis client.
type Cache struct {
	client redis.Cmdable
}

// New returns a Cache using client.
func New(client redis.Cmdable) *Cache {
	return &Cache{client: client}
}

// Key builds a namespaced cache key from parts.
func Key(parts ...string) string {
	key := KeyPrefix
	for i, part := range parts {
		if i > 0 {
			key += ":"
		}
		key += part
	}
	return key
}

// Get decodes the value stored at key into dst. found is false when the key
// does not exist.
func (c *Cache) Get(ctx context.Context, key string, dst any) (found bool, err error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return true, nil
}

// Set stores value at key for ttl.
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// Delete removes keys.
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}
