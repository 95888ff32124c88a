package shipping

import (
	"context"

	"github.com/google/uuid"
)

// StoreMethodRepository defines the interface for store shipping method
// enablement persistence
type StoreMethodRepository interface {
	// FindByID finds an enablement record by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*StoreShippingMethod, error)

	// FindByIDForStore finds an enablement record by ID within a store
	FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*StoreShippingMethod, error)

	// FindBySystemMethod finds the enablement record binding a store to a
	// system method, if any
	FindBySystemMethod(ctx context.Context, storeID, systemMethodID uuid.UUID) (*StoreShippingMethod, error)

	// FindAllForStore finds all enablement records for a store ordered by
	// display_order
	FindAllForStore(ctx context.Context, storeID uuid.UUID) ([]StoreShippingMethod, error)

	// FindEnabledForStore finds the enabled records for a store ordered by
	// display_order
	FindEnabledForStore(ctx context.Context, storeID uuid.UUID) ([]StoreShippingMethod, error)

	// Save creates or updates an enablement record
	Save(ctx context.Context, method *StoreShippingMethod) error

	// Delete hard-deletes an enablement record. No history is retained.
	Delete(ctx context.Context, id uuid.UUID) error
}
