// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics provides business metrics for the shipping engine.
// It tracks rate quotes, zone sync activity, and method provisioning.
type BusinessMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	quoteTotal        *Counter
	quoteNoZoneTotal  *Counter
	quoteAmountTotal  *Counter
	syncRunTotal      *Counter
	methodEnableTotal *Counter

	// Gauge metrics (point-in-time values)
	pendingSyncZones *Gauge
	systemCopyZones  *Gauge

	// Periodic collector
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	// Data providers for periodic collection
	syncProvider SyncMetricsProvider
}

// SyncMetricsProvider provides zone sync state for periodic metrics collection.
// This interface allows the telemetry layer to query zone state without
// depending on the shipping domain directly.
type SyncMetricsProvider interface {
	// GetPendingSyncZoneCount returns the number of system-copied zones of a
	// store that have platform updates newer than the copy.
	GetPendingSyncZoneCount(ctx context.Context, storeID uuid.UUID) (int64, error)

	// GetSystemCopyZoneCount returns the number of system-copied zones a store has.
	GetSystemCopyZoneCount(ctx context.Context, storeID uuid.UUID) (int64, error)
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter           metric.Meter
	Logger          *zap.Logger
	CollectInterval time.Duration // Default: 5 minutes
	SyncProvider    SyncMetricsProvider
}

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		meter:        cfg.Meter,
		logger:       logger,
		stopChan:     make(chan struct{}),
		syncProvider: cfg.SyncProvider,
	}

	// Initialize counter metrics
	var err error

	// Rate quote metrics
	bm.quoteTotal, err = NewCounter(
		cfg.Meter,
		"shipping_rate_quote_total",
		"Total number of rate calculations performed",
		"{quotes}",
	)
	if err != nil {
		return nil, err
	}

	bm.quoteNoZoneTotal, err = NewCounter(
		cfg.Meter,
		"shipping_rate_quote_no_zone_total",
		"Total number of rate calculations where no zone matched the address",
		"{quotes}",
	)
	if err != nil {
		return nil, err
	}

	bm.quoteAmountTotal, err = NewCounter(
		cfg.Meter,
		"shipping_rate_quote_amount_total",
		"Total quoted shipping cost in minor currency units (cents)",
		"{cents}",
	)
	if err != nil {
		return nil, err
	}

	// Sync metrics
	bm.syncRunTotal, err = NewCounter(
		cfg.Meter,
		"shipping_zone_sync_total",
		"Total number of zone sync runs",
		"{syncs}",
	)
	if err != nil {
		return nil, err
	}

	// Provisioning metrics
	bm.methodEnableTotal, err = NewCounter(
		cfg.Meter,
		"shipping_method_enable_total",
		"Total number of shipping method enablements",
		"{enablements}",
	)
	if err != nil {
		return nil, err
	}

	// Zone gauge metrics
	bm.pendingSyncZones, err = NewGauge(
		cfg.Meter,
		"shipping_zones_pending_sync",
		"Number of system-copied zones with platform updates newer than the copy",
		"{zones}",
	)
	if err != nil {
		return nil, err
	}

	bm.systemCopyZones, err = NewGauge(
		cfg.Meter,
		"shipping_zones_system_copies",
		"Number of system-copied zones per store",
		"{zones}",
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// =============================================================================
// Rate Quote Metrics
// =============================================================================

// QuoteOutcome represents the result of a rate calculation for metrics labeling.
type QuoteOutcome string

const (
	QuoteOutcomeMatched QuoteOutcome = "matched"
	QuoteOutcomeNoZone  QuoteOutcome = "no_zone"
	QuoteOutcomeNoRates QuoteOutcome = "no_rates"
)

// RecordQuote records a rate calculation event.
// This should be called from the application layer after a calculation completes.
func (bm *BusinessMetrics) RecordQuote(ctx context.Context, storeID uuid.UUID, outcome QuoteOutcome) {
	bm.quoteTotal.Inc(ctx,
		AttrStoreID.String(storeID.String()),
		AttrQuoteOutcome.String(string(outcome)),
	)
	if outcome == QuoteOutcomeNoZone {
		bm.quoteNoZoneTotal.Inc(ctx, AttrStoreID.String(storeID.String()))
	}
}

// RecordQuoteAmount records the cheapest quoted cost.
// Amount should be in the smallest currency unit (cents).
func (bm *BusinessMetrics) RecordQuoteAmount(ctx context.Context, storeID uuid.UUID, amountCents int64) {
	bm.quoteAmountTotal.Add(ctx, amountCents,
		AttrStoreID.String(storeID.String()),
	)
}

// RecordQuoteWithAmount is a convenience method that records both the quote and
// its cheapest cost.
func (bm *BusinessMetrics) RecordQuoteWithAmount(ctx context.Context, storeID uuid.UUID, outcome QuoteOutcome, cheapest decimal.Decimal) {
	bm.RecordQuote(ctx, storeID, outcome)

	// Convert to cents (multiply by 100)
	amountCents := cheapest.Mul(decimal.NewFromInt(100)).IntPart()
	bm.RecordQuoteAmount(ctx, storeID, amountCents)
}

// =============================================================================
// Sync Metrics
// =============================================================================

// SyncResult represents the outcome of a zone sync run for metrics labeling.
type SyncResult string

const (
	SyncResultApplied SyncResult = "applied"
	SyncResultFailed  SyncResult = "failed"
)

// RecordSyncRun records a zone sync run.
// This should be called when a store syncs a copied zone against the platform.
func (bm *BusinessMetrics) RecordSyncRun(ctx context.Context, storeID uuid.UUID, result SyncResult) {
	bm.syncRunTotal.Inc(ctx,
		AttrStoreID.String(storeID.String()),
		AttrSyncResult.String(string(result)),
	)
}

// =============================================================================
// Provisioning Metrics
// =============================================================================

// RecordMethodEnabled records a shipping method enablement for a store.
func (bm *BusinessMetrics) RecordMethodEnabled(ctx context.Context, storeID, methodID uuid.UUID) {
	bm.methodEnableTotal.Inc(ctx,
		AttrStoreID.String(storeID.String()),
		AttrMethodID.String(methodID.String()),
	)
}

// RecordPendingSyncZones records the number of zones with pending platform updates.
// This is a gauge metric that should be updated periodically.
func (bm *BusinessMetrics) RecordPendingSyncZones(ctx context.Context, storeID uuid.UUID, count int64) {
	bm.pendingSyncZones.Record(ctx, count,
		AttrStoreID.String(storeID.String()),
	)
}

// RecordSystemCopyZones records the number of system-copied zones a store has.
// This is a gauge metric that should be updated periodically.
func (bm *BusinessMetrics) RecordSystemCopyZones(ctx context.Context, storeID uuid.UUID, count int64) {
	bm.systemCopyZones.Record(ctx, count,
		AttrStoreID.String(storeID.String()),
	)
}

// =============================================================================
// Periodic Collection
// =============================================================================

// StoreProvider provides store IDs for periodic metrics collection.
type StoreProvider interface {
	GetActiveStoreIDs(ctx context.Context) ([]uuid.UUID, error)
}

// StartPeriodicCollection starts periodic collection of gauge metrics.
// It collects zone sync metrics every interval (default: 5 minutes).
// This is non-blocking - use Stop() to stop collection.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, storeProvider StoreProvider, interval time.Duration) {
	bm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}

		go bm.runPeriodicCollection(ctx, storeProvider, interval)
	})
}

// runPeriodicCollection runs the periodic collection loop.
func (bm *BusinessMetrics) runPeriodicCollection(ctx context.Context, storeProvider StoreProvider, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect immediately on start
	bm.collectSyncMetrics(ctx, storeProvider)

	for {
		select {
		case <-bm.stopChan:
			bm.logger.Info("Stopping periodic business metrics collection")
			return
		case <-ctx.Done():
			bm.logger.Info("Context cancelled, stopping periodic business metrics collection")
			return
		case <-ticker.C:
			bm.collectSyncMetrics(ctx, storeProvider)
		}
	}
}

// collectSyncMetrics collects zone sync gauge metrics for all stores.
func (bm *BusinessMetrics) collectSyncMetrics(ctx context.Context, storeProvider StoreProvider) {
	if bm.syncProvider == nil {
		bm.logger.Debug("No sync provider configured, skipping sync metrics collection")
		return
	}

	storeIDs, err := storeProvider.GetActiveStoreIDs(ctx)
	if err != nil {
		bm.logger.Error("Failed to get store IDs for metrics collection", zap.Error(err))
		return
	}

	for _, storeID := range storeIDs {
		bm.collectStoreSyncMetrics(ctx, storeID)
	}
}

// collectStoreSyncMetrics collects zone sync metrics for a single store.
func (bm *BusinessMetrics) collectStoreSyncMetrics(ctx context.Context, storeID uuid.UUID) {
	// Collect pending sync count
	pending, err := bm.syncProvider.GetPendingSyncZoneCount(ctx, storeID)
	if err != nil {
		bm.logger.Warn("Failed to get pending sync zone count for store",
			zap.String("store_id", storeID.String()),
			zap.Error(err),
		)
	} else {
		bm.RecordPendingSyncZones(ctx, storeID, pending)
	}

	// Collect system copy count
	copies, err := bm.syncProvider.GetSystemCopyZoneCount(ctx, storeID)
	if err != nil {
		bm.logger.Warn("Failed to get system copy zone count for store",
			zap.String("store_id", storeID.String()),
			zap.Error(err),
		)
	} else {
		bm.RecordSystemCopyZones(ctx, storeID, copies)
	}
}

// Stop stops the periodic collection.
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopChan)
	})
}

// =============================================================================
// Error Types
// =============================================================================

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}

// =============================================================================
// Attribute Key Constants
// =============================================================================

// Business metrics attribute keys not already defined in metrics.go
var (
	AttrQuoteOutcome = attribute.Key("quote_outcome")
	AttrSyncResult   = attribute.Key("sync_result")
)
