package shipping

import (
	"context"

	"github.com/google/uuid"
)

// MethodRepository defines the interface for shipping method persistence
type MethodRepository interface {
	// FindByID finds a method by its ID regardless of scope
	FindByID(ctx context.Context, id uuid.UUID) (*ShippingMethod, error)

	// FindSystemByID finds a system method by ID (store_id IS NULL)
	FindSystemByID(ctx context.Context, id uuid.UUID) (*ShippingMethod, error)

	// FindActiveSystemMethods finds all active system methods available for
	// stores to enable
	FindActiveSystemMethods(ctx context.Context) ([]ShippingMethod, error)

	// FindByIDs finds multiple methods by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]ShippingMethod, error)

	// Save creates or updates a method
	Save(ctx context.Context, method *ShippingMethod) error

	// Delete deletes a method
	Delete(ctx context.Context, id uuid.UUID) error
}
