package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shipflow/backend/internal/domain/shared"
	"github.com/shipflow/backend/internal/domain/shipping"
)

// GormStoreShippingMethodRepository implements StoreMethodRepository using GORM
type GormStoreShippingMethodRepository struct {
	db *gorm.DB
}

// NewGormStoreShippingMethodRepository creates a new GormStoreShippingMethodRepository
func NewGormStoreShippingMethodRepository(db *gorm.DB) *GormStoreShippingMethodRepository {
	return &GormStoreShippingMethodRepository{db: db}
}

// FindByID finds an enablement record by its ID
func (r *GormStoreShippingMethodRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipping.StoreShippingMethod, error) {
	var method shipping.StoreShippingMethod
	if err := r.db.WithContext(ctx).First(&method, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &method, nil
}

// FindByIDForStore finds an enablement record by ID within a store
func (r *GormStoreShippingMethodRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*shipping.StoreShippingMethod, error) {
	var method shipping.StoreShippingMethod
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND id = ?", storeID, id).
		First(&method).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &method, nil
}

// FindBySystemMethod finds the record binding a store to a system method
func (r *GormStoreShippingMethodRepository) FindBySystemMethod(ctx context.Context, storeID, systemMethodID uuid.UUID) (*shipping.StoreShippingMethod, error) {
	var method shipping.StoreShippingMethod
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND system_shipping_method_id = ?", storeID, systemMethodID).
		First(&method).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &method, nil
}

// FindAllForStore finds all enablement records for a store
func (r *GormStoreShippingMethodRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID) ([]shipping.StoreShippingMethod, error) {
	var methods []shipping.StoreShippingMethod
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("display_order ASC, created_at ASC").
		Find(&methods).Error; err != nil {
		return nil, err
	}
	return methods, nil
}

// FindEnabledForStore finds the enabled records for a store
func (r *GormStoreShippingMethodRepository) FindEnabledForStore(ctx context.Context, storeID uuid.UUID) ([]shipping.StoreShippingMethod, error) {
	var methods []shipping.StoreShippingMethod
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND state = ?", storeID, shipping.StoreMethodStateEnabled).
		Order("display_order ASC, created_at ASC").
		Find(&methods).Error; err != nil {
		return nil, err
	}
	return methods, nil
}

// Save creates or updates an enablement record
func (r *GormStoreShippingMethodRepository) Save(ctx context.Context, method *shipping.StoreShippingMethod) error {
	return r.db.WithContext(ctx).Save(method).Error
}

// Delete hard-deletes an enablement record
func (r *GormStoreShippingMethodRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&shipping.StoreShippingMethod{}, "id = ?", id).Error
}
