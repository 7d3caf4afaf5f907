package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tu-usuario/fiado-ledger/internal/application/ports"
	"github.com/tu-usuario/fiado-ledger/internal/domain/entity"
)

var _ ports.ProductCache = (*RedisProductCache)(nil)

// RedisProductCache caché read-through de productos sobre Redis.
// Con cliente nil degrada a pass-through (siempre miss, Set/Invalidate no-op):
// la caché es una optimización, nunca una autoridad.
type RedisProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisProductCache construye la caché. client puede ser nil (Redis opcional).
func NewRedisProductCache(client *redis.Client, ttl time.Duration) *RedisProductCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisProductCache{client: client, ttl: ttl}
}

func productKey(id string) string {
	return "product:" + id
}

// Get devuelve el producto cacheado o (nil, nil) en miss.
func (c *RedisProductCache) Get(ctx context.Context, productID string) (*entity.Product, error) {
	if c.client == nil {
		return nil, nil
	}
	data, err := c.client.Get(ctx, productKey(productID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		// Redis caído cuenta como miss: el caller va a la BD
		return nil, nil
	}
	var p entity.Product
	if err := json.Unmarshal(data, &p); err != nil {
		_ = c.client.Del(ctx, productKey(productID)).Err()
		return nil, nil
	}
	return &p, nil
}

// Set guarda el producto con TTL.
func (c *RedisProductCache) Set(ctx context.Context, product *entity.Product) error {
	if c.client == nil || product == nil {
		return nil
	}
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, productKey(product.ID), data, c.ttl).Err()
}

// Invalidate borra las entradas de los productos afectados por una mutación.
func (c *RedisProductCache) Invalidate(ctx context.Context, productIDs ...string) error {
	if c.client == nil || len(productIDs) == 0 {
		return nil
	}
	keys := make([]string, len(productIDs))
	for i, id := range productIDs {
		keys[i] = productKey(id)
	}
	return c.client.Del(ctx, keys...).Err()
}
