package cache

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shipflow/backend/internal/domain/shared"
	"github.com/shipflow/backend/internal/domain/shipping"
)

// FallbackCurrency is returned for stores that never configured a currency
const FallbackCurrency = "USD"

// CachedCurrencyLookup resolves store currencies through a cache backed by
// the store settings repository. Cache failures degrade to repository reads,
// never to request failures.
type CachedCurrencyLookup struct {
	cache    CurrencyCache
	settings shipping.StoreSettingsRepository
	logger   *zap.Logger
}

// NewCachedCurrencyLookup creates a new CachedCurrencyLookup
func NewCachedCurrencyLookup(cache CurrencyCache, settings shipping.StoreSettingsRepository, logger *zap.Logger) *CachedCurrencyLookup {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedCurrencyLookup{cache: cache, settings: settings, logger: logger}
}

// CurrencyForStore returns the configured currency of a store, reading
// through the cache. Stores without a settings row get FallbackCurrency.
func (l *CachedCurrencyLookup) CurrencyForStore(ctx context.Context, storeID uuid.UUID) (string, error) {
	currency, hit, err := l.cache.Get(ctx, storeID)
	if err != nil {
		l.logger.Warn("currency cache read failed, falling back to database",
			zap.String("store_id", storeID.String()),
			zap.Error(err))
	} else if hit {
		return currency, nil
	}

	settings, err := l.settings.FindByStore(ctx, storeID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			currency = FallbackCurrency
		} else {
			return "", err
		}
	} else {
		currency = settings.Currency
	}

	if cacheErr := l.cache.Set(ctx, storeID, currency); cacheErr != nil {
		l.logger.Warn("failed to cache store currency",
			zap.String("store_id", storeID.String()),
			zap.Error(cacheErr))
	}
	return currency, nil
}
