package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ngocanhdo/bookstore-api/internal/domain/entity"
)

// ProductCache is a read-through cache for catalog lookups. A cache miss
// or a cache failure is never an error for the caller; the database stays
// authoritative.
type ProductCache interface {
	Get(ctx context.Context, tenantID, productID uuid.UUID) (*entity.Product, error)
	Set(ctx context.Context, tenantID uuid.UUID, product *entity.Product) error
	Invalidate(ctx context.Context, tenantID, productID uuid.UUID) error
}

type redisProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisProductCache creates a product cache backed by Redis
func NewRedisProductCache(client *redis.Client, ttl time.Duration) ProductCache {
	return &redisProductCache{client: client, ttl: ttl}
}

func productKey(tenantID, productID uuid.UUID) string {
	return fmt.Sprintf("tenant:%s:product:%s", tenantID, productID)
}

func (c *redisProductCache) Get(ctx context.Context, tenantID, productID uuid.UUID) (*entity.Product, error) {
	data, err := c.client.Get(ctx, productKey(tenantID, productID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var product entity.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *redisProductCache) Set(ctx context.Context, tenantID uuid.UUID, product *entity.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, productKey(tenantID, product.ID), data, c.ttl).Err()
}

func (c *redisProductCache) Invalidate(ctx context.Context, tenantID, productID uuid.UUID) error {
	return c.client.Del(ctx, productKey(tenantID, productID)).Err()
}

type noopProductCache struct{}

// NewNoopProductCache creates a cache that stores nothing, for deployments
// without Redis and for tests.
func NewNoopProductCache() ProductCache {
	return noopProductCache{}
}

func (noopProductCache) Get(ctx context.Context, tenantID, productID uuid.UUID) (*entity.Product, error) {
	return nil, nil
}

func (noopProductCache) Set(ctx context.Context, tenantID uuid.UUID, product *entity.Product) error {
	return nil
}

func (noopProductCache) Invalidate(ctx context.Context, tenantID, productID uuid.UUID) error {
	return nil
}
