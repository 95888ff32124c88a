package shipping

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// StoreSettings holds the per-store display configuration this service
// needs: currently only the checkout currency code
type StoreSettings struct {
	StoreID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Currency  string    `gorm:"type:varchar(10);not null;default:'USD'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (StoreSettings) TableName() string {
	return "store_settings"
}

// StoreSettingsRepository defines the interface for store settings persistence
type StoreSettingsRepository interface {
	// FindByStore finds the settings row for a store
	FindByStore(ctx context.Context, storeID uuid.UUID) (*StoreSettings, error)

	// Save creates or updates a settings row
	Save(ctx context.Context, settings *StoreSettings) error
}
