package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/plwgs/apparel_api/internal/models"
)

// productTTL bounds staleness of cached public product reads. Admin writes
// invalidate eagerly; the TTL is a backstop for writes that bypass the API.
const productTTL = 10 * time.Minute

// ProductCache caches serialized product rows in front of the public catalog
// endpoints. It is purely an optimization: every miss falls through to the
// database.
type ProductCache struct {
	redis *RedisClient
}

// NewProductCache creates a new ProductCache.
func NewProductCache(redis *RedisClient) *ProductCache {
	return &ProductCache{redis: redis}
}

func (c *ProductCache) key(id int) string {
	return fmt.Sprintf("catalog:product:%d", id)
}

// Get returns the cached product or (nil, nil) on a miss. A nil cache
// always misses so callers can run without Redis (CLI tooling).
func (c *ProductCache) Get(ctx context.Context, id int) (*models.Product, error) {
	if c == nil {
		return nil, nil
	}
	raw, err := c.redis.Get(ctx, c.key(id))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var p models.Product
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("unmarshal cached product: %w", err)
	}
	return &p, nil
}

// Set stores a product row.
func (c *ProductCache) Set(ctx context.Context, p *models.Product) error {
	if c == nil {
		return nil
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal product for cache: %w", err)
	}
	return c.redis.Set(ctx, c.key(p.ID), string(raw), productTTL)
}

// Invalidate drops a product from the cache after a mutation.
func (c *ProductCache) Invalidate(ctx context.Context, id int) error {
	if c == nil {
		return nil
	}
	return c.redis.Delete(ctx, c.key(id))
}
