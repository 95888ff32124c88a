package shipping

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shipflow/backend/internal/domain/shared"
	"github.com/shipflow/backend/internal/domain/shipping"
	"github.com/shipflow/backend/internal/infrastructure/telemetry"
)

// StalePolicy decides what happens to store rates whose system source no
// longer exists when a zone is synced.
type StalePolicy string

const (
	// StaleKeep leaves orphaned system copies untouched. Default.
	StaleKeep StalePolicy = "keep"

	// StaleDeactivate deactivates system copies whose source rate is gone
	StaleDeactivate StalePolicy = "deactivate"
)

// SyncService reconciles a store's system-copy zones with their system
// sources. Sync is opt-in and per zone; system edits never propagate to
// stores on their own.
type SyncService struct {
	scope       TransactionScope
	zoneRepo    shipping.ZoneRepository
	logRepo     shipping.UpdateLogRepository
	stalePolicy StalePolicy
	logger      *zap.Logger

	businessMetrics *telemetry.BusinessMetrics
}

// SetBusinessMetrics sets the business metrics recorder (optional)
func (s *SyncService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// NewSyncService creates a new SyncService
func NewSyncService(
	scope TransactionScope,
	zoneRepo shipping.ZoneRepository,
	logRepo shipping.UpdateLogRepository,
	stalePolicy StalePolicy,
	logger *zap.Logger,
) *SyncService {
	if stalePolicy == "" {
		stalePolicy = StaleKeep
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncService{
		scope:       scope,
		zoneRepo:    zoneRepo,
		logRepo:     logRepo,
		stalePolicy: stalePolicy,
		logger:      logger,
	}
}

// GetPendingUpdates returns the system change log entries accumulated since
// the store zone was last aligned with its source. Only system-copy zones
// carry a sync link; everything else is rejected.
func (s *SyncService) GetPendingUpdates(ctx context.Context, storeID, zoneID uuid.UUID) ([]shipping.ZoneUpdateLogEntry, error) {
	zone, err := s.zoneRepo.FindByIDForStore(ctx, storeID, zoneID)
	if err != nil {
		return nil, err
	}
	if !zone.IsSystemCopy() {
		return nil, shared.ErrZoneNotSyncable
	}
	return s.logRepo.FindBySystemZoneSince(ctx, *zone.CopiedFromSystemZoneID, zone.DriftBaseline())
}

// Sync overwrites a system-copy zone and its linked rates with the current
// system values, transactionally. System rates added since provisioning are
// copied in; store edits to linked rates are discarded. Custom rates in the
// zone are never touched. Running Sync on an already aligned zone is a no-op
// beyond refreshing timestamps.
func (s *SyncService) Sync(ctx context.Context, storeID, zoneID uuid.UUID) (*SyncResult, error) {
	result := &SyncResult{}

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		zone, err := repos.ZoneRepo().FindByIDForStore(ctx, storeID, zoneID)
		if err != nil {
			return err
		}
		if !zone.IsSystemCopy() {
			return shared.ErrZoneNotSyncable
		}

		source, err := repos.ZoneRepo().FindSystemByID(ctx, *zone.CopiedFromSystemZoneID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("SOURCE_ZONE_GONE", "The system zone this zone was copied from no longer exists")
			}
			return err
		}

		zone.ApplySystemValues(source)
		if err := repos.ZoneRepo().Save(ctx, zone); err != nil {
			return err
		}
		result.Zone = zone

		systemRates, err := repos.RateRepo().FindByZone(ctx, source.ID)
		if err != nil {
			return err
		}
		synced := make(map[uuid.UUID]bool, len(systemRates))
		for i := range systemRates {
			sysRate := &systemRates[i]
			synced[sysRate.ID] = true

			existing, err := repos.RateRepo().FindByProvenance(ctx, zone.ID, sysRate.ID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					cp := sysRate.CopyForZone(storeID, zone.ID, shipping.SourceTypeSystemCopy)
					if err := repos.RateRepo().Save(ctx, cp); err != nil {
						return err
					}
					result.RatesAdded++
					continue
				}
				return err
			}

			existing.ApplySystemValues(sysRate)
			if err := repos.RateRepo().Save(ctx, existing); err != nil {
				return err
			}
			result.RatesUpdated++
		}

		if s.stalePolicy == StaleDeactivate {
			if err := s.deactivateStale(ctx, repos, zone, synced); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if s.businessMetrics != nil {
			s.businessMetrics.RecordSyncRun(ctx, storeID, telemetry.SyncResultFailed)
		}
		return nil, err
	}
	if s.businessMetrics != nil {
		s.businessMetrics.RecordSyncRun(ctx, storeID, telemetry.SyncResultApplied)
	}

	s.logger.Info("shipping zone synced",
		zap.String("store_id", storeID.String()),
		zap.String("zone_id", zoneID.String()),
		zap.Int("rates_updated", result.RatesUpdated),
		zap.Int("rates_added", result.RatesAdded))

	return result, nil
}

// deactivateStale turns off linked rates whose system source disappeared
func (s *SyncService) deactivateStale(ctx context.Context, repos TransactionalRepositories, zone *shipping.ShippingZone, synced map[uuid.UUID]bool) error {
	rates, err := repos.RateRepo().FindByZone(ctx, zone.ID)
	if err != nil {
		return err
	}
	for i := range rates {
		rate := &rates[i]
		if rate.SourceType != shipping.SourceTypeSystemCopy || rate.CopiedFromSystemRateID == nil {
			continue
		}
		if synced[*rate.CopiedFromSystemRateID] || !rate.IsActive {
			continue
		}
		rate.Deactivate()
		if err := repos.RateRepo().Save(ctx, rate); err != nil {
			return err
		}
	}
	return nil
}
