package shipping

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/shipflow/backend/internal/domain/shared"
	"github.com/shipflow/backend/internal/domain/shipping"
)

// ZoneService handles store-owned zone and rate configuration. Every
// mutating operation verifies the target is not a system record before
// writing; system records are read-only to store operations.
type ZoneService struct {
	scope      TransactionScope
	zoneRepo   shipping.ZoneRepository
	rateRepo   shipping.RateRepository
	methodRepo shipping.MethodRepository
}

// NewZoneService creates a new ZoneService
func NewZoneService(
	scope TransactionScope,
	zoneRepo shipping.ZoneRepository,
	rateRepo shipping.RateRepository,
	methodRepo shipping.MethodRepository,
) *ZoneService {
	return &ZoneService{
		scope:      scope,
		zoneRepo:   zoneRepo,
		rateRepo:   rateRepo,
		methodRepo: methodRepo,
	}
}

// ListZones lists the zones of a store
func (s *ZoneService) ListZones(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]shipping.ShippingZone, int64, error) {
	zones, err := s.zoneRepo.FindAllForStore(ctx, storeID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.zoneRepo.CountForStore(ctx, storeID, filter)
	if err != nil {
		return nil, 0, err
	}
	return zones, total, nil
}

// GetZone fetches one zone owned by the store
func (s *ZoneService) GetZone(ctx context.Context, storeID, zoneID uuid.UUID) (*shipping.ShippingZone, error) {
	return s.zoneRepo.FindByIDForStore(ctx, storeID, zoneID)
}

// CreateZone creates a custom zone for the store
func (s *ZoneService) CreateZone(ctx context.Context, storeID uuid.UUID, req CreateZoneRequest) (*shipping.ShippingZone, error) {
	zone, err := shipping.NewStoreZone(storeID, req.Name, req.Countries, req.Regions, req.Cities, req.ZipCodes)
	if err != nil {
		return nil, err
	}
	if req.DisplayName != "" {
		zone.DisplayName = req.DisplayName
	}
	if err := s.zoneRepo.Save(ctx, zone); err != nil {
		return nil, err
	}
	return zone, nil
}

// UpdateZone updates a store-owned zone
func (s *ZoneService) UpdateZone(ctx context.Context, storeID, zoneID uuid.UUID, req UpdateZoneRequest) (*shipping.ShippingZone, error) {
	zone, err := s.writableZone(ctx, storeID, zoneID)
	if err != nil {
		return nil, err
	}
	if err := zone.Update(req.Name, req.DisplayName, req.Countries, req.Regions, req.Cities, req.ZipCodes); err != nil {
		return nil, err
	}
	if req.IsActive != nil {
		if *req.IsActive {
			zone.Reactivate()
		} else {
			zone.Deactivate()
		}
	}
	if err := s.zoneRepo.Save(ctx, zone); err != nil {
		return nil, err
	}
	return zone, nil
}

// DeleteZone deletes a store-owned zone
func (s *ZoneService) DeleteZone(ctx context.Context, storeID, zoneID uuid.UUID) error {
	zone, err := s.writableZone(ctx, storeID, zoneID)
	if err != nil {
		return err
	}
	return s.zoneRepo.Delete(ctx, zone.ID)
}

// DuplicateSystemZone materializes an independent custom snapshot of a
// system zone plus all of its current rates, transactionally. The duplicate
// is not linked for sync; the store fully owns it from here on.
func (s *ZoneService) DuplicateSystemZone(ctx context.Context, storeID, systemZoneID uuid.UUID) (*shipping.ShippingZone, error) {
	var duplicate *shipping.ShippingZone

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		source, err := repos.ZoneRepo().FindSystemByID(ctx, systemZoneID)
		if err != nil {
			return err
		}

		duplicate = source.DuplicateForStore(storeID)
		if err := repos.ZoneRepo().Save(ctx, duplicate); err != nil {
			return err
		}

		rates, err := repos.RateRepo().FindByZone(ctx, source.ID)
		if err != nil {
			return err
		}
		for i := range rates {
			cp := rates[i].CopyForZone(storeID, duplicate.ID, shipping.SourceTypeCustom)
			if err := repos.RateRepo().Save(ctx, cp); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return duplicate, nil
}

// DuplicateSystemRate copies one system rate into an existing store-owned
// zone as a custom rate
func (s *ZoneService) DuplicateSystemRate(ctx context.Context, storeID, systemRateID, targetZoneID uuid.UUID) (*shipping.ShippingRate, error) {
	var duplicate *shipping.ShippingRate

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		source, err := repos.RateRepo().FindSystemByID(ctx, systemRateID)
		if err != nil {
			return err
		}
		target, err := repos.ZoneRepo().FindByIDForStore(ctx, storeID, targetZoneID)
		if err != nil {
			return err
		}
		if target.IsSystem {
			return shared.ErrTargetZoneNotWritable
		}

		duplicate = source.CopyForZone(storeID, target.ID, shipping.SourceTypeCustom)
		return repos.RateRepo().Save(ctx, duplicate)
	})
	if err != nil {
		return nil, err
	}
	return duplicate, nil
}

// ListRates lists the rates of a store-owned zone
func (s *ZoneService) ListRates(ctx context.Context, storeID, zoneID uuid.UUID) ([]shipping.ShippingRate, error) {
	if _, err := s.zoneRepo.FindByIDForStore(ctx, storeID, zoneID); err != nil {
		return nil, err
	}
	return s.rateRepo.FindByZone(ctx, zoneID)
}

// CreateRate creates a custom rate inside a store-owned zone
func (s *ZoneService) CreateRate(ctx context.Context, storeID, zoneID uuid.UUID, req CreateRateRequest) (*shipping.ShippingRate, error) {
	zone, err := s.writableZone(ctx, storeID, zoneID)
	if err != nil {
		return nil, err
	}
	if _, err := s.methodRepo.FindByID(ctx, req.MethodID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_INPUT", "Shipping method not found")
		}
		return nil, err
	}

	rate, err := shipping.NewStoreRate(storeID, zone.ID, req.MethodID, req.Name, req.Type)
	if err != nil {
		return nil, err
	}
	rate.SetPricing(req.Pricing.BaseCost, req.Pricing.PerUnitCost, req.Pricing.MinVal, req.Pricing.MaxVal, req.Pricing.FreeShippingThreshold)
	if err := s.rateRepo.Save(ctx, rate); err != nil {
		return nil, err
	}
	return rate, nil
}

// UpdateRate updates a store-owned rate
func (s *ZoneService) UpdateRate(ctx context.Context, storeID, rateID uuid.UUID, req UpdateRateRequest) (*shipping.ShippingRate, error) {
	rate, err := s.writableRate(ctx, storeID, rateID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		rate.Name = req.Name
	}
	if req.Type != "" {
		rate.Type = req.Type
	}
	rate.SetPricing(req.Pricing.BaseCost, req.Pricing.PerUnitCost, req.Pricing.MinVal, req.Pricing.MaxVal, req.Pricing.FreeShippingThreshold)
	if req.IsActive != nil {
		if *req.IsActive {
			rate.Reactivate()
		} else {
			rate.Deactivate()
		}
	}
	if err := s.rateRepo.Save(ctx, rate); err != nil {
		return nil, err
	}
	return rate, nil
}

// DeleteRate deletes a store-owned rate
func (s *ZoneService) DeleteRate(ctx context.Context, storeID, rateID uuid.UUID) error {
	rate, err := s.writableRate(ctx, storeID, rateID)
	if err != nil {
		return err
	}
	return s.rateRepo.Delete(ctx, rate.ID)
}

// writableZone loads a zone and rejects system records before any mutation
func (s *ZoneService) writableZone(ctx context.Context, storeID, zoneID uuid.UUID) (*shipping.ShippingZone, error) {
	zone, err := s.zoneRepo.FindByID(ctx, zoneID)
	if err != nil {
		return nil, err
	}
	if zone.IsSystem || zone.StoreID == nil {
		return nil, shared.ErrSystemRecordReadOnly
	}
	if !zone.BelongsToStore(storeID) {
		return nil, shared.ErrNotFound
	}
	return zone, nil
}

// writableRate loads a rate and rejects system records before any mutation
func (s *ZoneService) writableRate(ctx context.Context, storeID, rateID uuid.UUID) (*shipping.ShippingRate, error) {
	rate, err := s.rateRepo.FindByID(ctx, rateID)
	if err != nil {
		return nil, err
	}
	if rate.IsSystem || rate.StoreID == nil {
		return nil, shared.ErrSystemRecordReadOnly
	}
	if !rate.BelongsToStore(storeID) {
		return nil, shared.ErrNotFound
	}
	return rate, nil
}
