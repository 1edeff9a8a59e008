package cache

import (
	"fmt"

	"github.com/stockroom/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// SearchCacheFactory creates search caches based on configuration
type SearchCacheFactory struct {
	cacheConfig           config.CacheConfig
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// SearchCacheFactoryOption is a functional option for configuring the factory
type SearchCacheFactoryOption func(*SearchCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) SearchCacheFactoryOption {
	return func(f *SearchCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory cache
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) SearchCacheFactoryOption {
	return func(f *SearchCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewSearchCacheFactory creates a new factory
func NewSearchCacheFactory(cacheCfg config.CacheConfig, redisCfg config.RedisConfig, opts ...SearchCacheFactoryOption) *SearchCacheFactory {
	f := &SearchCacheFactory{
		cacheConfig:           cacheCfg,
		redisConfig:           redisCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateCache creates a search cache per the configured backend. With the
// redis backend and fallback enabled, an unreachable Redis degrades to the
// in-memory cache instead of failing startup.
func (f *SearchCacheFactory) CreateCache() (SearchCache, error) {
	if f.cacheConfig.Backend == "memory" {
		return NewInMemorySearchCache(f.cacheConfig.TTL), nil
	}

	redisCache, err := NewRedisSearchCache(f.redisConfig, f.cacheConfig.TTL)
	if err != nil {
		if !f.allowInMemoryFallback {
			return nil, fmt.Errorf("failed to create Redis search cache: %w", err)
		}
		f.logger.Warn("Redis unavailable, falling back to in-memory search cache",
			zap.String("addr", f.redisConfig.Addr()),
			zap.Error(err),
		)
		return NewInMemorySearchCache(f.cacheConfig.TTL), nil
	}

	return redisCache, nil
}
