package cache

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/shipflow/backend/internal/infrastructure/config"
)

// CurrencyCacheFactory creates currency caches based on configuration
type CurrencyCacheFactory struct {
	redisConfig           config.RedisConfig
	ttl                   time.Duration
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// CurrencyCacheFactoryOption is a functional option for configuring the factory
type CurrencyCacheFactoryOption func(*CurrencyCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) CurrencyCacheFactoryOption {
	return func(f *CurrencyCacheFactory) {
		f.logger = logger
	}
}

// WithTTL sets the expiry for cached entries
func WithTTL(ttl time.Duration) CurrencyCacheFactoryOption {
	return func(f *CurrencyCacheFactory) {
		f.ttl = ttl
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory cache
// when Redis is unavailable. Default is true (allow fallback).
func WithInMemoryFallback(allow bool) CurrencyCacheFactoryOption {
	return func(f *CurrencyCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewCurrencyCacheFactory creates a new factory
func NewCurrencyCacheFactory(cfg config.RedisConfig, opts ...CurrencyCacheFactoryOption) *CurrencyCacheFactory {
	f := &CurrencyCacheFactory{
		redisConfig:           cfg,
		ttl:                   defaultCurrencyTTL,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisCache creates a Redis-based currency cache
func (f *CurrencyCacheFactory) CreateRedisCache() (CurrencyCache, error) {
	redisCfg := RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}

	cache, err := NewRedisCurrencyCache(redisCfg, WithCurrencyTTL(f.ttl), WithCacheLogger(f.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis currency cache: %w", err)
	}
	return cache, nil
}

// CreateInMemoryCache creates an in-memory currency cache.
// WARNING: In-memory caches do not share state across process instances;
// stale currencies can be served until the TTL expires on each instance.
func (f *CurrencyCacheFactory) CreateInMemoryCache() CurrencyCache {
	return NewInMemoryCurrencyCache(f.ttl)
}

// CreateCache creates a currency cache based on whether Redis is available.
// It tries Redis first and falls back to in-memory if Redis is not available
// and AllowInMemoryFallback is true.
func (f *CurrencyCacheFactory) CreateCache() (CurrencyCache, error) {
	cache, err := f.CreateRedisCache()
	if err == nil {
		f.logger.Info("using Redis currency cache")
		return cache, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for currency cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory currency cache",
		zap.Error(err),
	)
	return f.CreateInMemoryCache(), nil
}
