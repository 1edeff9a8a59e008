package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/infrastructure/config"
)

const (
	searchKeyPrefix     = "item:search:"
	searchGenerationKey = "item:search:generation"
)

// RedisSearchCache implements SearchCache using Redis. Suitable for
// deployments with multiple instances sharing one cache. Invalidation bumps
// a generation counter instead of scanning keys; stale entries fall out via
// their TTL.
type RedisSearchCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSearchCache creates a new Redis-backed search cache
func NewRedisSearchCache(cfg config.RedisConfig, ttl time.Duration) (*RedisSearchCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisSearchCacheWithClient(client, ttl), nil
}

// NewRedisSearchCacheWithClient creates a cache with an existing Redis client
func NewRedisSearchCacheWithClient(client *redis.Client, ttl time.Duration) *RedisSearchCache {
	return &RedisSearchCache{client: client, ttl: ttl}
}

// Get returns the cached rows for a query
func (c *RedisSearchCache) Get(ctx context.Context, query string) ([]inventory.ItemWithCount, bool, error) {
	key, err := c.key(ctx, query)
	if err != nil {
		return nil, false, err
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read search cache: %w", err)
	}

	var rows []inventory.ItemWithCount
	if err := json.Unmarshal(data, &rows); err != nil {
		// treat a corrupt entry as a miss
		return nil, false, nil
	}
	return rows, true, nil
}

// Set stores the rows for a query
func (c *RedisSearchCache) Set(ctx context.Context, query string, rows []inventory.ItemWithCount) error {
	key, err := c.key(ctx, query)
	if err != nil {
		return err
	}

	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to encode search cache entry: %w", err)
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// Invalidate bumps the generation counter, orphaning all current entries
func (c *RedisSearchCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, searchGenerationKey).Err()
}

// Close releases cache resources
func (c *RedisSearchCache) Close() error {
	return c.client.Close()
}

func (c *RedisSearchCache) key(ctx context.Context, query string) (string, error) {
	gen, err := c.client.Get(ctx, searchGenerationKey).Int64()
	if err != nil && err != redis.Nil {
		return "", fmt.Errorf("failed to read search cache generation: %w", err)
	}
	return fmt.Sprintf("%s%d:%s", searchKeyPrefix, gen, query), nil
}

// Ensure RedisSearchCache implements SearchCache
var _ SearchCache = (*RedisSearchCache)(nil)
