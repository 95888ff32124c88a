package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shipflow/backend/internal/domain/shared"
	"github.com/shipflow/backend/internal/domain/shipping"
)

// GormShippingMethodRepository implements MethodRepository using GORM
type GormShippingMethodRepository struct {
	db *gorm.DB
}

// NewGormShippingMethodRepository creates a new GormShippingMethodRepository
func NewGormShippingMethodRepository(db *gorm.DB) *GormShippingMethodRepository {
	return &GormShippingMethodRepository{db: db}
}

// FindByID finds a method by its ID
func (r *GormShippingMethodRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipping.ShippingMethod, error) {
	var method shipping.ShippingMethod
	if err := r.db.WithContext(ctx).First(&method, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &method, nil
}

// FindSystemByID finds a system method by ID
func (r *GormShippingMethodRepository) FindSystemByID(ctx context.Context, id uuid.UUID) (*shipping.ShippingMethod, error) {
	var method shipping.ShippingMethod
	if err := r.db.WithContext(ctx).
		Where("id = ? AND store_id IS NULL AND is_system = ?", id, true).
		First(&method).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &method, nil
}

// FindActiveSystemMethods finds all active system methods
func (r *GormShippingMethodRepository) FindActiveSystemMethods(ctx context.Context) ([]shipping.ShippingMethod, error) {
	var methods []shipping.ShippingMethod
	if err := r.db.WithContext(ctx).
		Where("store_id IS NULL AND is_system = ? AND is_active = ?", true, true).
		Order("name ASC").
		Find(&methods).Error; err != nil {
		return nil, err
	}
	return methods, nil
}

// FindByIDs finds multiple methods by their IDs
func (r *GormShippingMethodRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]shipping.ShippingMethod, error) {
	if len(ids) == 0 {
		return []shipping.ShippingMethod{}, nil
	}

	var methods []shipping.ShippingMethod
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&methods).Error; err != nil {
		return nil, err
	}
	return methods, nil
}

// Save creates or updates a method
func (r *GormShippingMethodRepository) Save(ctx context.Context, method *shipping.ShippingMethod) error {
	return r.db.WithContext(ctx).Save(method).Error
}

// Delete deletes a method
func (r *GormShippingMethodRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&shipping.ShippingMethod{}, "id = ?", id).Error
}
