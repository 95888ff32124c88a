package shipping

import (
	"context"

	"github.com/google/uuid"
)

// RateRepository defines the interface for shipping rate persistence
type RateRepository interface {
	// FindByID finds a rate by its ID regardless of scope
	FindByID(ctx context.Context, id uuid.UUID) (*ShippingRate, error)

	// FindSystemByID finds a system rate by ID (store_id IS NULL)
	FindSystemByID(ctx context.Context, id uuid.UUID) (*ShippingRate, error)

	// FindByZone finds all rates belonging to a zone
	FindByZone(ctx context.Context, zoneID uuid.UUID) ([]ShippingRate, error)

	// FindActiveByZone finds the active rates belonging to a zone
	FindActiveByZone(ctx context.Context, zoneID uuid.UUID) ([]ShippingRate, error)

	// FindByZoneAndMethod finds the rates of a zone that belong to a method
	FindByZoneAndMethod(ctx context.Context, zoneID, methodID uuid.UUID) ([]ShippingRate, error)

	// FindByProvenance finds the copy of a system rate inside a zone, keyed
	// by (zone_id, copied_from_system_rate_id). Includes inactive copies.
	FindByProvenance(ctx context.Context, zoneID, systemRateID uuid.UUID) (*ShippingRate, error)

	// DeactivateByMethodForStore deactivates every rate for a method across
	// all of a store's zones, both system copies and custom rates. Returns
	// the number of rates touched.
	DeactivateByMethodForStore(ctx context.Context, storeID, methodID uuid.UUID) (int64, error)

	// ReactivateSystemCopiesByMethodForStore reactivates the previously
	// provisioned system-copy rates for a method across a store's zones.
	// Returns the number of rates touched.
	ReactivateSystemCopiesByMethodForStore(ctx context.Context, storeID, methodID uuid.UUID) (int64, error)

	// Save creates or updates a rate
	Save(ctx context.Context, rate *ShippingRate) error

	// Delete deletes a rate
	Delete(ctx context.Context, id uuid.UUID) error
}
