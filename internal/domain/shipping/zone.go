package shipping

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/shipflow/backend/internal/domain/shared"
)

// SourceType records how a store-owned zone or rate came to exist.
// system_copy records keep tracking their system origin and are eligible for
// sync; custom records are one-time snapshots the store fully owns.
type SourceType string

const (
	SourceTypeSystemCopy SourceType = "system_copy"
	SourceTypeCustom     SourceType = "custom"
)

// DuplicateNamePrefix is prepended to the name of a zone duplicated as an
// independent custom copy. Stored verbatim for dataset compatibility.
const DuplicateNamePrefix = "Copia de "

// ShippingZone is a named geographic filter. Each dimension holds an
// allow-list of raw stored values; an empty list is a wildcard for that
// dimension. System zones (store_id IS NULL) are read-only to store
// operations.
type ShippingZone struct {
	shared.BaseAggregateRoot
	StoreID                *uuid.UUID     `gorm:"type:uuid;index"`
	Name                   string         `gorm:"type:varchar(200);not null"`
	DisplayName            string         `gorm:"type:varchar(200)"`
	Countries              pq.StringArray `gorm:"type:text[]"`
	Regions                pq.StringArray `gorm:"type:text[]"`
	Cities                 pq.StringArray `gorm:"type:text[]"`
	ZipCodes               pq.StringArray `gorm:"type:text[]"`
	IsActive               bool           `gorm:"not null;default:true"`
	IsSystem               bool           `gorm:"not null;default:false"`
	SourceType             SourceType     `gorm:"type:varchar(20);not null;default:'custom'"`
	CopiedFromSystemZoneID *uuid.UUID     `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (ShippingZone) TableName() string {
	return "shipping_zones"
}

// NewStoreZone creates a custom zone owned by a store
func NewStoreZone(storeID uuid.UUID, name string, countries, regions, cities, zipCodes []string) (*ShippingZone, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Zone name is required")
	}
	sid := storeID
	return &ShippingZone{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		StoreID:           &sid,
		Name:              name,
		DisplayName:       name,
		Countries:         countries,
		Regions:           regions,
		Cities:            cities,
		ZipCodes:          zipCodes,
		IsActive:          true,
		SourceType:        SourceTypeCustom,
	}, nil
}

// BelongsToStore reports whether the zone is owned by the given store
func (z *ShippingZone) BelongsToStore(storeID uuid.UUID) bool {
	return z.StoreID != nil && *z.StoreID == storeID
}

// IsSystemCopy reports whether the zone is a provisioned copy still tracking
// a system origin
func (z *ShippingZone) IsSystemCopy() bool {
	return z.SourceType == SourceTypeSystemCopy && z.CopiedFromSystemZoneID != nil
}

// DriftBaseline is the timestamp pending system updates are compared
// against: the copy's own last modification, falling back to its creation.
func (z *ShippingZone) DriftBaseline() time.Time {
	if z.UpdatedAt.After(z.CreatedAt) {
		return z.UpdatedAt
	}
	return z.CreatedAt
}

// CopyForStore creates a full field copy of a system zone for a store,
// linked back to its origin and eligible for sync
func (z *ShippingZone) CopyForStore(storeID uuid.UUID) *ShippingZone {
	sid := storeID
	origin := z.ID
	return &ShippingZone{
		BaseAggregateRoot:      shared.NewBaseAggregateRoot(),
		StoreID:                &sid,
		Name:                   z.Name,
		DisplayName:            z.DisplayName,
		Countries:              cloneList(z.Countries),
		Regions:                cloneList(z.Regions),
		Cities:                 cloneList(z.Cities),
		ZipCodes:               cloneList(z.ZipCodes),
		IsActive:               true,
		SourceType:             SourceTypeSystemCopy,
		CopiedFromSystemZoneID: &origin,
	}
}

// DuplicateForStore creates an independent custom snapshot of a system zone.
// The duplicate is not linked for sync and the store fully owns it.
func (z *ShippingZone) DuplicateForStore(storeID uuid.UUID) *ShippingZone {
	dup := z.CopyForStore(storeID)
	dup.Name = DuplicateNamePrefix + z.Name
	dup.DisplayName = DuplicateNamePrefix + z.DisplayName
	dup.SourceType = SourceTypeCustom
	dup.CopiedFromSystemZoneID = nil
	return dup
}

// ApplySystemValues overwrites the geographic definition and names with the
// current system zone values. Full overwrite, not a merge: store edits to
// these fields are discarded.
func (z *ShippingZone) ApplySystemValues(system *ShippingZone) {
	z.Name = system.Name
	z.DisplayName = system.DisplayName
	z.Countries = cloneList(system.Countries)
	z.Regions = cloneList(system.Regions)
	z.Cities = cloneList(system.Cities)
	z.ZipCodes = cloneList(system.ZipCodes)
	z.UpdatedAt = time.Now()
	z.IncrementVersion()
}

// Update changes the zone definition. Callers must reject system zones
// before invoking this.
func (z *ShippingZone) Update(name, displayName string, countries, regions, cities, zipCodes []string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Zone name is required")
	}
	z.Name = name
	if displayName != "" {
		z.DisplayName = displayName
	}
	z.Countries = countries
	z.Regions = regions
	z.Cities = cities
	z.ZipCodes = zipCodes
	z.UpdatedAt = time.Now()
	z.IncrementVersion()
	return nil
}

// Deactivate marks the zone as inactive
func (z *ShippingZone) Deactivate() {
	z.IsActive = false
	z.UpdatedAt = time.Now()
	z.IncrementVersion()
}

// Reactivate marks the zone as active again
func (z *ShippingZone) Reactivate() {
	z.IsActive = true
	z.UpdatedAt = time.Now()
	z.IncrementVersion()
}

func cloneList(in pq.StringArray) pq.StringArray {
	if in == nil {
		return nil
	}
	out := make(pq.StringArray, len(in))
	copy(out, in)
	return out
}
