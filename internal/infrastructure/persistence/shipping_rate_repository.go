package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shipflow/backend/internal/domain/shared"
	"github.com/shipflow/backend/internal/domain/shipping"
)

// GormShippingRateRepository implements RateRepository using GORM
type GormShippingRateRepository struct {
	db *gorm.DB
}

// NewGormShippingRateRepository creates a new GormShippingRateRepository
func NewGormShippingRateRepository(db *gorm.DB) *GormShippingRateRepository {
	return &GormShippingRateRepository{db: db}
}

// FindByID finds a rate by its ID
func (r *GormShippingRateRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipping.ShippingRate, error) {
	var rate shipping.ShippingRate
	if err := r.db.WithContext(ctx).First(&rate, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rate, nil
}

// FindSystemByID finds a system rate by ID
func (r *GormShippingRateRepository) FindSystemByID(ctx context.Context, id uuid.UUID) (*shipping.ShippingRate, error) {
	var rate shipping.ShippingRate
	if err := r.db.WithContext(ctx).
		Where("id = ? AND store_id IS NULL AND is_system = ?", id, true).
		First(&rate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rate, nil
}

// FindByZone finds all rates belonging to a zone
func (r *GormShippingRateRepository) FindByZone(ctx context.Context, zoneID uuid.UUID) ([]shipping.ShippingRate, error) {
	var rates []shipping.ShippingRate
	if err := r.db.WithContext(ctx).
		Where("zone_id = ?", zoneID).
		Order("created_at ASC").
		Find(&rates).Error; err != nil {
		return nil, err
	}
	return rates, nil
}

// FindActiveByZone finds the active rates belonging to a zone
func (r *GormShippingRateRepository) FindActiveByZone(ctx context.Context, zoneID uuid.UUID) ([]shipping.ShippingRate, error) {
	var rates []shipping.ShippingRate
	if err := r.db.WithContext(ctx).
		Where("zone_id = ? AND is_active = ?", zoneID, true).
		Order("created_at ASC").
		Find(&rates).Error; err != nil {
		return nil, err
	}
	return rates, nil
}

// FindByZoneAndMethod finds the rates of a zone that belong to a method
func (r *GormShippingRateRepository) FindByZoneAndMethod(ctx context.Context, zoneID, methodID uuid.UUID) ([]shipping.ShippingRate, error) {
	var rates []shipping.ShippingRate
	if err := r.db.WithContext(ctx).
		Where("zone_id = ? AND method_id = ?", zoneID, methodID).
		Order("created_at ASC").
		Find(&rates).Error; err != nil {
		return nil, err
	}
	return rates, nil
}

// FindByProvenance finds the copy of a system rate inside a zone
func (r *GormShippingRateRepository) FindByProvenance(ctx context.Context, zoneID, systemRateID uuid.UUID) (*shipping.ShippingRate, error) {
	var rate shipping.ShippingRate
	if err := r.db.WithContext(ctx).
		Where("zone_id = ? AND copied_from_system_rate_id = ?", zoneID, systemRateID).
		First(&rate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rate, nil
}

// DeactivateByMethodForStore deactivates every rate for a method across all
// of a store's zones
func (r *GormShippingRateRepository) DeactivateByMethodForStore(ctx context.Context, storeID, methodID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&shipping.ShippingRate{}).
		Where("store_id = ? AND method_id = ? AND is_active = ?", storeID, methodID, true).
		Update("is_active", false)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ReactivateSystemCopiesByMethodForStore reactivates the provisioned
// system-copy rates for a method across a store's zones
func (r *GormShippingRateRepository) ReactivateSystemCopiesByMethodForStore(ctx context.Context, storeID, methodID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&shipping.ShippingRate{}).
		Where("store_id = ? AND method_id = ? AND source_type = ? AND is_active = ?",
			storeID, methodID, shipping.SourceTypeSystemCopy, false).
		Update("is_active", true)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Save creates or updates a rate
func (r *GormShippingRateRepository) Save(ctx context.Context, rate *shipping.ShippingRate) error {
	return r.db.WithContext(ctx).Save(rate).Error
}

// Delete deletes a rate
func (r *GormShippingRateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&shipping.ShippingRate{}, "id = ?", id).Error
}
