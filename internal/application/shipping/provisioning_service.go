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

// ProvisioningService manages the lifecycle of a store's adoption of system
// shipping methods: enable (copying the system zones and rates the method
// needs), disable, removal and reordering. Every public operation executes
// as exactly one transaction.
type ProvisioningService struct {
	scope  TransactionScope
	logger *zap.Logger

	businessMetrics *telemetry.BusinessMetrics
}

// SetBusinessMetrics sets the business metrics recorder (optional)
func (s *ProvisioningService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// NewProvisioningService creates a new ProvisioningService
func NewProvisioningService(scope TransactionScope, logger *zap.Logger) *ProvisioningService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProvisioningService{scope: scope, logger: logger}
}

// Enable turns a system shipping method on for a store.
//
// First-time enables create the enablement record and copy every system zone
// owning rates for the method, plus those rates, into store-owned
// system_copy records. Re-enables flip the existing record back to enabled
// and reactivate the previously copied rates instead of recreating them.
// Enabling an already-enabled method is a conflict.
func (s *ProvisioningService) Enable(ctx context.Context, storeID, systemMethodID uuid.UUID, opts shipping.EnableOptions) (*EnableResult, error) {
	var result *EnableResult

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		method, err := repos.MethodRepo().FindSystemByID(ctx, systemMethodID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("INVALID_INPUT", "System shipping method not found")
			}
			return err
		}
		if !method.IsEnableable() {
			return shared.ErrInactiveSystemMethod
		}

		existing, err := repos.StoreMethodRepo().FindBySystemMethod(ctx, storeID, method.ID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		if existing != nil {
			result, err = s.reenable(ctx, repos, storeID, existing, opts)
			return err
		}

		result, err = s.firstEnable(ctx, repos, storeID, method, opts)
		return err
	})
	if err != nil {
		return nil, err
	}

	if s.businessMetrics != nil {
		s.businessMetrics.RecordMethodEnabled(ctx, storeID, systemMethodID)
	}

	s.logger.Info("shipping method enabled",
		zap.String("store_id", storeID.String()),
		zap.String("system_method_id", systemMethodID.String()),
		zap.Int("zones_copied", result.ZonesCopied),
		zap.Int("rates_copied", result.RatesCopied),
		zap.Int("rates_reactivated", result.RatesReactivated),
	)
	return result, nil
}

func (s *ProvisioningService) reenable(ctx context.Context, repos TransactionalRepositories, storeID uuid.UUID, existing *shipping.StoreShippingMethod, opts shipping.EnableOptions) (*EnableResult, error) {
	if err := existing.Reenable(opts); err != nil {
		return nil, err
	}
	if err := repos.StoreMethodRepo().Save(ctx, existing); err != nil {
		return nil, err
	}
	reactivated, err := repos.RateRepo().ReactivateSystemCopiesByMethodForStore(ctx, storeID, existing.SystemShippingMethodID)
	if err != nil {
		return nil, err
	}
	return &EnableResult{StoreMethod: existing, RatesReactivated: int(reactivated)}, nil
}

func (s *ProvisioningService) firstEnable(ctx context.Context, repos TransactionalRepositories, storeID uuid.UUID, method *shipping.ShippingMethod, opts shipping.EnableOptions) (*EnableResult, error) {
	storeMethod, err := shipping.NewStoreShippingMethod(storeID, method, opts)
	if err != nil {
		return nil, err
	}
	if err := repos.StoreMethodRepo().Save(ctx, storeMethod); err != nil {
		return nil, err
	}

	systemZones, err := repos.ZoneRepo().FindSystemZonesForMethod(ctx, method.ID)
	if err != nil {
		return nil, err
	}

	result := &EnableResult{StoreMethod: storeMethod}
	for i := range systemZones {
		systemZone := &systemZones[i]

		target, copied, err := s.findOrCopyZone(ctx, repos, storeID, systemZone)
		if err != nil {
			return nil, err
		}
		if copied {
			result.ZonesCopied++
		}

		copiedRates, err := s.copyZoneRates(ctx, repos, storeID, systemZone, target, method.ID)
		if err != nil {
			return nil, err
		}
		result.RatesCopied += copiedRates
	}
	return result, nil
}

// findOrCopyZone resolves the store's copy of a system zone, creating or
// reactivating it as needed. The find-or-create runs inside the enclosing
// transaction; the unique index on (store_id, copied_from_system_zone_id)
// backstops concurrent enables.
func (s *ProvisioningService) findOrCopyZone(ctx context.Context, repos TransactionalRepositories, storeID uuid.UUID, systemZone *shipping.ShippingZone) (*shipping.ShippingZone, bool, error) {
	target, err := repos.ZoneRepo().FindByProvenance(ctx, storeID, systemZone.ID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, false, err
		}
		target = systemZone.CopyForStore(storeID)
		if err := repos.ZoneRepo().Save(ctx, target); err != nil {
			return nil, false, err
		}
		return target, true, nil
	}

	if !target.IsActive {
		target.Reactivate()
		if err := repos.ZoneRepo().Save(ctx, target); err != nil {
			return nil, false, err
		}
	}
	return target, false, nil
}

func (s *ProvisioningService) copyZoneRates(ctx context.Context, repos TransactionalRepositories, storeID uuid.UUID, systemZone, target *shipping.ShippingZone, methodID uuid.UUID) (int, error) {
	systemRates, err := repos.RateRepo().FindByZoneAndMethod(ctx, systemZone.ID, methodID)
	if err != nil {
		return 0, err
	}

	copied := 0
	for i := range systemRates {
		systemRate := &systemRates[i]

		existing, err := repos.RateRepo().FindByProvenance(ctx, target.ID, systemRate.ID)
		if err != nil {
			if !errors.Is(err, shared.ErrNotFound) {
				return 0, err
			}
			cp := systemRate.CopyForZone(storeID, target.ID, shipping.SourceTypeSystemCopy)
			if err := repos.RateRepo().Save(ctx, cp); err != nil {
				return 0, err
			}
			copied++
			continue
		}

		if !existing.IsActive {
			existing.Reactivate()
			if err := repos.RateRepo().Save(ctx, existing); err != nil {
				return 0, err
			}
		}
	}
	return copied, nil
}

// Disable turns a store shipping method off and deactivates every rate for
// the method across all of the store's zones, including custom rates added
// after the enable. Rates are deactivated, never deleted.
func (s *ProvisioningService) Disable(ctx context.Context, storeID, storeMethodID uuid.UUID) (*shipping.StoreShippingMethod, error) {
	var storeMethod *shipping.StoreShippingMethod

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		storeMethod, err = repos.StoreMethodRepo().FindByIDForStore(ctx, storeID, storeMethodID)
		if err != nil {
			return err
		}
		if err := storeMethod.Disable(); err != nil {
			return err
		}
		if err := repos.StoreMethodRepo().Save(ctx, storeMethod); err != nil {
			return err
		}

		deactivated, err := repos.RateRepo().DeactivateByMethodForStore(ctx, storeID, storeMethod.SystemShippingMethodID)
		if err != nil {
			return err
		}
		s.logger.Info("shipping method disabled",
			zap.String("store_id", storeID.String()),
			zap.String("store_method_id", storeMethodID.String()),
			zap.Int64("rates_deactivated", deactivated),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return storeMethod, nil
}

// Remove hard-deletes the enablement record. No check is made against
// historical order references.
func (s *ProvisioningService) Remove(ctx context.Context, storeID, storeMethodID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		storeMethod, err := repos.StoreMethodRepo().FindByIDForStore(ctx, storeID, storeMethodID)
		if err != nil {
			return err
		}
		return repos.StoreMethodRepo().Delete(ctx, storeMethod.ID)
	})
}

// Reorder assigns display_order = index for the given ordered id list, as
// one transaction
func (s *ProvisioningService) Reorder(ctx context.Context, storeID uuid.UUID, orderedIDs []uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		for index, id := range orderedIDs {
			storeMethod, err := repos.StoreMethodRepo().FindByIDForStore(ctx, storeID, id)
			if err != nil {
				return err
			}
			storeMethod.SetDisplayOrder(index)
			if err := repos.StoreMethodRepo().Save(ctx, storeMethod); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateMetadata changes the display name and custom configuration of an
// enablement record without touching its state
func (s *ProvisioningService) UpdateMetadata(ctx context.Context, storeID, storeMethodID uuid.UUID, displayName, customConfig string) (*shipping.StoreShippingMethod, error) {
	var storeMethod *shipping.StoreShippingMethod

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		storeMethod, err = repos.StoreMethodRepo().FindByIDForStore(ctx, storeID, storeMethodID)
		if err != nil {
			return err
		}
		storeMethod.UpdateMetadata(displayName, customConfig)
		return repos.StoreMethodRepo().Save(ctx, storeMethod)
	})
	if err != nil {
		return nil, err
	}
	return storeMethod, nil
}
