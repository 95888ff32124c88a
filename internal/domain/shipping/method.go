package shipping

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shipflow/backend/internal/domain/shared"
)

// MethodType identifies the delivery mechanism behind a shipping method
type MethodType string

const (
	MethodTypePickup   MethodType = "pickup"
	MethodTypeOwnFleet MethodType = "own_fleet"
	MethodTypeCarrier  MethodType = "carrier"
)

// ShippingMethod represents a delivery mechanism. System methods
// (store_id IS NULL, is_system = true) are platform-wide definitions that
// stores adopt through the provisioning flow; store-owned methods are fully
// private to one store.
type ShippingMethod struct {
	shared.BaseAggregateRoot
	StoreID  *uuid.UUID `gorm:"type:uuid;index"`
	Code     string     `gorm:"type:varchar(50);not null"`
	Name     string     `gorm:"type:varchar(200);not null"`
	Type     MethodType `gorm:"type:varchar(20);not null"`
	IsSystem bool       `gorm:"not null;default:false"`
	IsActive bool       `gorm:"not null;default:true"`
	MinDays  int        `gorm:"not null;default:0"`
	MaxDays  int        `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ShippingMethod) TableName() string {
	return "shipping_methods"
}

// NewSystemMethod creates a platform-wide shipping method
func NewSystemMethod(code, name string, methodType MethodType) (*ShippingMethod, error) {
	if err := validateMethodCode(code); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Method name is required")
	}
	return &ShippingMethod{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToLower(code),
		Name:              name,
		Type:              methodType,
		IsSystem:          true,
		IsActive:          true,
	}, nil
}

// SetDeliveryEstimate sets the min/max delivery day bounds
func (m *ShippingMethod) SetDeliveryEstimate(minDays, maxDays int) error {
	if minDays < 0 || maxDays < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Delivery day bounds cannot be negative")
	}
	if maxDays > 0 && minDays > maxDays {
		return shared.NewDomainError("INVALID_INPUT", "Minimum delivery days cannot exceed maximum")
	}
	m.MinDays = minDays
	m.MaxDays = maxDays
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
	return nil
}

// Deactivate marks the method as inactive
func (m *ShippingMethod) Deactivate() {
	m.IsActive = false
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}

// IsEnableable reports whether a store may enable this method.
// Only active system methods with no owning store qualify.
func (m *ShippingMethod) IsEnableable() bool {
	return m.IsSystem && m.StoreID == nil && m.IsActive
}

func validateMethodCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return shared.NewDomainError("INVALID_INPUT", "Method code is required")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_INPUT", "Method code cannot exceed 50 characters")
	}
	return nil
}
