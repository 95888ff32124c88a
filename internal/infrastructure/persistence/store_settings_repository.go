package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shipflow/backend/internal/domain/shared"
	"github.com/shipflow/backend/internal/domain/shipping"
)

// GormStoreSettingsRepository implements StoreSettingsRepository using GORM
type GormStoreSettingsRepository struct {
	db *gorm.DB
}

// NewGormStoreSettingsRepository creates a new GormStoreSettingsRepository
func NewGormStoreSettingsRepository(db *gorm.DB) *GormStoreSettingsRepository {
	return &GormStoreSettingsRepository{db: db}
}

// FindByStore finds the settings row for a store
func (r *GormStoreSettingsRepository) FindByStore(ctx context.Context, storeID uuid.UUID) (*shipping.StoreSettings, error) {
	var settings shipping.StoreSettings
	if err := r.db.WithContext(ctx).First(&settings, "store_id = ?", storeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &settings, nil
}

// Save creates or updates a settings row
func (r *GormStoreSettingsRepository) Save(ctx context.Context, settings *shipping.StoreSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}
