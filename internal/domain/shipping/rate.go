package shipping

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shipflow/backend/internal/domain/shared"
)

// RateType determines which cart aggregate gates a rate's applicability and
// how its cost is computed
type RateType string

const (
	RateTypeFlat        RateType = "flat"
	RateTypeWeightBased RateType = "weight_based"
	RateTypePriceBased  RateType = "price_based"
	RateTypeFree        RateType = "free"
)

// ShippingRate is a single rate definition belonging to exactly one zone and
// one method. All numeric fields are nullable; zero-initialized records rely
// on max <= 0 meaning "no upper bound".
type ShippingRate struct {
	shared.BaseAggregateRoot
	StoreID                *uuid.UUID       `gorm:"type:uuid;index"`
	ZoneID                 uuid.UUID        `gorm:"type:uuid;not null;index"`
	MethodID               uuid.UUID        `gorm:"type:uuid;not null;index"`
	Name                   string           `gorm:"type:varchar(200)"`
	Type                   RateType         `gorm:"type:varchar(20);not null"`
	BaseCost               *decimal.Decimal `gorm:"type:decimal(18,4)"`
	PerUnitCost            *decimal.Decimal `gorm:"type:decimal(18,4)"`
	MinVal                 *decimal.Decimal `gorm:"type:decimal(18,4)"`
	MaxVal                 *decimal.Decimal `gorm:"type:decimal(18,4)"`
	FreeShippingThreshold  *decimal.Decimal `gorm:"type:decimal(18,4)"`
	IsActive               bool             `gorm:"not null;default:true"`
	IsSystem               bool             `gorm:"not null;default:false"`
	SourceType             SourceType       `gorm:"type:varchar(20);not null;default:'custom'"`
	CopiedFromSystemRateID *uuid.UUID       `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (ShippingRate) TableName() string {
	return "shipping_rates"
}

// NewStoreRate creates a custom rate owned by a store inside one of its zones
func NewStoreRate(storeID, zoneID, methodID uuid.UUID, name string, rateType RateType) (*ShippingRate, error) {
	switch rateType {
	case RateTypeFlat, RateTypeWeightBased, RateTypePriceBased, RateTypeFree:
	default:
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown rate type")
	}
	sid := storeID
	return &ShippingRate{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		StoreID:           &sid,
		ZoneID:            zoneID,
		MethodID:          methodID,
		Name:              name,
		Type:              rateType,
		IsActive:          true,
		SourceType:        SourceTypeCustom,
	}, nil
}

// BelongsToStore reports whether the rate is owned by the given store
func (r *ShippingRate) BelongsToStore(storeID uuid.UUID) bool {
	return r.StoreID != nil && *r.StoreID == storeID
}

// CopyForZone creates a copy of a system rate inside the given store zone.
// The copy carries provenance when sourceType is system_copy.
func (r *ShippingRate) CopyForZone(storeID, zoneID uuid.UUID, sourceType SourceType) *ShippingRate {
	sid := storeID
	cp := &ShippingRate{
		BaseAggregateRoot:     shared.NewBaseAggregateRoot(),
		StoreID:               &sid,
		ZoneID:                zoneID,
		MethodID:              r.MethodID,
		Name:                  r.Name,
		Type:                  r.Type,
		BaseCost:              cloneDecimal(r.BaseCost),
		PerUnitCost:           cloneDecimal(r.PerUnitCost),
		MinVal:                cloneDecimal(r.MinVal),
		MaxVal:                cloneDecimal(r.MaxVal),
		FreeShippingThreshold: cloneDecimal(r.FreeShippingThreshold),
		IsActive:              true,
		SourceType:            sourceType,
	}
	if sourceType == SourceTypeSystemCopy {
		origin := r.ID
		cp.CopiedFromSystemRateID = &origin
	}
	return cp
}

// ApplySystemValues overwrites the pricing fields from the current system
// rate during sync
func (r *ShippingRate) ApplySystemValues(system *ShippingRate) {
	r.Name = system.Name
	r.Type = system.Type
	r.BaseCost = cloneDecimal(system.BaseCost)
	r.PerUnitCost = cloneDecimal(system.PerUnitCost)
	r.MinVal = cloneDecimal(system.MinVal)
	r.MaxVal = cloneDecimal(system.MaxVal)
	r.FreeShippingThreshold = cloneDecimal(system.FreeShippingThreshold)
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// SetPricing assigns the nullable pricing fields
func (r *ShippingRate) SetPricing(baseCost, perUnitCost, minVal, maxVal, freeThreshold *decimal.Decimal) {
	r.BaseCost = baseCost
	r.PerUnitCost = perUnitCost
	r.MinVal = minVal
	r.MaxVal = maxVal
	r.FreeShippingThreshold = freeThreshold
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// Deactivate marks the rate as inactive without deleting it
func (r *ShippingRate) Deactivate() {
	r.IsActive = false
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// Reactivate marks the rate as active again
func (r *ShippingRate) Reactivate() {
	r.IsActive = true
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

func cloneDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}
