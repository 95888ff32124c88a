package shipping

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shipflow/backend/internal/domain/shared"
)

// StoreMethodState is the enablement state of a store shipping method
type StoreMethodState string

const (
	StoreMethodStateEnabled  StoreMethodState = "enabled"
	StoreMethodStateDisabled StoreMethodState = "disabled"
)

// StoreShippingMethod binds a store to a system shipping method.
// It is created on first enable, toggled between enabled/disabled, and
// hard-deleted on removal; there is no soft-delete or history.
type StoreShippingMethod struct {
	shared.StoreAggregateRoot
	SystemShippingMethodID uuid.UUID        `gorm:"type:uuid;not null;index"`
	DisplayName            string           `gorm:"type:varchar(200)"`
	CustomConfig           string           `gorm:"type:jsonb"`
	State                  StoreMethodState `gorm:"type:varchar(20);not null;default:'enabled'"`
	DisplayOrder           int              `gorm:"not null;default:0"`
	MinOrderAmount         *decimal.Decimal `gorm:"type:decimal(18,4)"`
	MaxOrderAmount         *decimal.Decimal `gorm:"type:decimal(18,4)"`
}

// TableName returns the table name for GORM
func (StoreShippingMethod) TableName() string {
	return "store_shipping_methods"
}

// EnableOptions carries the optional overrides accepted by enable/re-enable
type EnableOptions struct {
	DisplayName    string
	CustomConfig   string
	DisplayOrder   *int
	MinOrderAmount *decimal.Decimal
	MaxOrderAmount *decimal.Decimal
}

// NewStoreShippingMethod creates the enablement record for a store and a
// system method
func NewStoreShippingMethod(storeID uuid.UUID, systemMethod *ShippingMethod, opts EnableOptions) (*StoreShippingMethod, error) {
	if !systemMethod.IsEnableable() {
		if !systemMethod.IsSystem || systemMethod.StoreID != nil {
			return nil, shared.ErrNotSystemRecord
		}
		return nil, shared.ErrInactiveSystemMethod
	}

	sm := &StoreShippingMethod{
		StoreAggregateRoot:     shared.NewStoreAggregateRoot(storeID),
		SystemShippingMethodID: systemMethod.ID,
		DisplayName:            systemMethod.Name,
		CustomConfig:           "{}",
		State:                  StoreMethodStateEnabled,
	}
	sm.applyOptions(opts)
	return sm, nil
}

// IsEnabled reports whether the method is currently enabled
func (sm *StoreShippingMethod) IsEnabled() bool {
	return sm.State == StoreMethodStateEnabled
}

// Disable marks the method as disabled. Rates are deactivated by the caller
// in the same transaction.
func (sm *StoreShippingMethod) Disable() error {
	if sm.State == StoreMethodStateDisabled {
		return shared.ErrMethodNotEnabled
	}
	sm.State = StoreMethodStateDisabled
	sm.UpdatedAt = time.Now()
	sm.IncrementVersion()
	return nil
}

// Reenable transitions a disabled method back to enabled, applying any
// overrides supplied with the call
func (sm *StoreShippingMethod) Reenable(opts EnableOptions) error {
	if sm.State == StoreMethodStateEnabled {
		return shared.ErrMethodAlreadyEnabled
	}
	sm.State = StoreMethodStateEnabled
	sm.applyOptions(opts)
	sm.UpdatedAt = time.Now()
	sm.IncrementVersion()
	return nil
}

// SetDisplayOrder assigns the position of the method in storefront listings
func (sm *StoreShippingMethod) SetDisplayOrder(order int) {
	sm.DisplayOrder = order
	sm.UpdatedAt = time.Now()
	sm.IncrementVersion()
}

// UpdateMetadata changes display name and custom configuration without
// touching enablement state
func (sm *StoreShippingMethod) UpdateMetadata(displayName, customConfig string) {
	if displayName != "" {
		sm.DisplayName = displayName
	}
	if customConfig != "" {
		sm.CustomConfig = customConfig
	}
	sm.UpdatedAt = time.Now()
	sm.IncrementVersion()
}

func (sm *StoreShippingMethod) applyOptions(opts EnableOptions) {
	if opts.DisplayName != "" {
		sm.DisplayName = opts.DisplayName
	}
	if opts.CustomConfig != "" {
		sm.CustomConfig = opts.CustomConfig
	}
	if opts.DisplayOrder != nil {
		sm.DisplayOrder = *opts.DisplayOrder
	}
	if opts.MinOrderAmount != nil {
		sm.MinOrderAmount = opts.MinOrderAmount
	}
	if opts.MaxOrderAmount != nil {
		sm.MaxOrderAmount = opts.MaxOrderAmount
	}
}
