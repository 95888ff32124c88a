package shipping

import (
	"context"

	"github.com/google/uuid"

	"github.com/shipflow/backend/internal/domain/shared"
)

// ZoneRepository defines the interface for shipping zone persistence.
// Store-scoped lookups auto-filter by store_id; the System* lookups read the
// shared platform records and are the only unscoped access path.
type ZoneRepository interface {
	// FindByID finds a zone by its ID regardless of scope
	FindByID(ctx context.Context, id uuid.UUID) (*ShippingZone, error)

	// FindByIDForStore finds a zone by ID within a store
	FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*ShippingZone, error)

	// FindAllForStore finds all zones for a store
	FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]ShippingZone, error)

	// FindActiveForStore finds the active zones for a store, the candidate
	// set for address resolution
	FindActiveForStore(ctx context.Context, storeID uuid.UUID) ([]ShippingZone, error)

	// FindSystemByID finds a system zone by ID (store_id IS NULL)
	FindSystemByID(ctx context.Context, id uuid.UUID) (*ShippingZone, error)

	// FindSystemZonesForMethod finds the system zones owning at least one
	// rate for the given method
	FindSystemZonesForMethod(ctx context.Context, methodID uuid.UUID) ([]ShippingZone, error)

	// FindByProvenance finds the store copy of a system zone, keyed by
	// (store_id, copied_from_system_zone_id). Includes inactive copies.
	FindByProvenance(ctx context.Context, storeID, systemZoneID uuid.UUID) (*ShippingZone, error)

	// CountForStore counts zones for a store
	CountForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (int64, error)

	// Save creates or updates a zone
	Save(ctx context.Context, zone *ShippingZone) error

	// Delete deletes a zone
	Delete(ctx context.Context, id uuid.UUID) error
}
