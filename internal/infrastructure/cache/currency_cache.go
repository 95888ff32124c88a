package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Default TTL for cached store currencies. Currency changes are rare admin
// actions, so a short TTL is enough to bound staleness without explicit
// invalidation on every write path.
const defaultCurrencyTTL = 5 * time.Minute

// RedisConfig holds the Redis connection settings for cache stores
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// CurrencyCache caches the display currency of stores. The bool result of
// Get distinguishes a miss from a cached empty value.
type CurrencyCache interface {
	Get(ctx context.Context, storeID uuid.UUID) (string, bool, error)
	Set(ctx context.Context, storeID uuid.UUID, currency string) error
	Invalidate(ctx context.Context, storeID uuid.UUID) error
}

// RedisCurrencyCache implements CurrencyCache using Redis
type RedisCurrencyCache struct {
	client     *redis.Client
	ownsClient bool // true if we created the client and should close it
	ttl        time.Duration
	logger     *zap.Logger
}

// RedisCurrencyCacheOption is a functional option for configuring the cache
type RedisCurrencyCacheOption func(*RedisCurrencyCache)

// WithCurrencyTTL sets the expiry for cached entries
func WithCurrencyTTL(ttl time.Duration) RedisCurrencyCacheOption {
	return func(c *RedisCurrencyCache) {
		c.ttl = ttl
	}
}

// WithCacheLogger sets the logger for the cache
func WithCacheLogger(logger *zap.Logger) RedisCurrencyCacheOption {
	return func(c *RedisCurrencyCache) {
		c.logger = logger
	}
}

// NewRedisCurrencyCache creates a new Redis-based currency cache
func NewRedisCurrencyCache(cfg RedisConfig, opts ...RedisCurrencyCacheOption) (*RedisCurrencyCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	cache := &RedisCurrencyCache{
		client:     client,
		ownsClient: true,
		ttl:        defaultCurrencyTTL,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache, nil
}

// NewRedisCurrencyCacheWithClient creates a cache with an existing Redis client.
// Note: The caller retains ownership of the client and is responsible for closing it.
func NewRedisCurrencyCacheWithClient(client *redis.Client, opts ...RedisCurrencyCacheOption) *RedisCurrencyCache {
	cache := &RedisCurrencyCache{
		client:     client,
		ownsClient: false,
		ttl:        defaultCurrencyTTL,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

func (c *RedisCurrencyCache) cacheKey(storeID uuid.UUID) string {
	return fmt.Sprintf("store_settings:currency:%s", storeID.String())
}

// Get retrieves a store currency from cache
func (c *RedisCurrencyCache) Get(ctx context.Context, storeID uuid.UUID) (string, bool, error) {
	currency, err := c.client.Get(ctx, c.cacheKey(storeID)).Result()
	if err == redis.Nil {
		c.logger.Debug("cache miss for store currency", zap.String("store_id", storeID.String()))
		return "", false, nil
	}
	if err != nil {
		c.logger.Error("failed to get store currency from cache",
			zap.String("store_id", storeID.String()),
			zap.Error(err))
		return "", false, fmt.Errorf("failed to get currency from cache: %w", err)
	}
	return currency, true, nil
}

// Set stores a store currency in cache
func (c *RedisCurrencyCache) Set(ctx context.Context, storeID uuid.UUID, currency string) error {
	if err := c.client.Set(ctx, c.cacheKey(storeID), currency, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache currency: %w", err)
	}
	return nil
}

// Invalidate removes a store currency from cache
func (c *RedisCurrencyCache) Invalidate(ctx context.Context, storeID uuid.UUID) error {
	if err := c.client.Del(ctx, c.cacheKey(storeID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate currency cache: %w", err)
	}
	return nil
}

// Close closes the Redis client if this cache owns it
func (c *RedisCurrencyCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

var _ CurrencyCache = (*RedisCurrencyCache)(nil)
