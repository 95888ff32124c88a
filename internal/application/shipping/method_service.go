package shipping

import (
	"context"

	"github.com/google/uuid"

	"github.com/shipflow/backend/internal/domain/shipping"
)

// StoreMethodView is an enablement record joined with the system method it
// points at, for the admin UI listing
type StoreMethodView struct {
	StoreMethod  *shipping.StoreShippingMethod `json:"store_method"`
	SystemMethod *shipping.ShippingMethod      `json:"system_method"`
}

// MethodService is the read surface over the shipping method catalog: the
// platform-wide system methods a store can enable, and the store's own
// enablement records.
type MethodService struct {
	methodRepo      shipping.MethodRepository
	storeMethodRepo shipping.StoreMethodRepository
}

// NewMethodService creates a new MethodService
func NewMethodService(
	methodRepo shipping.MethodRepository,
	storeMethodRepo shipping.StoreMethodRepository,
) *MethodService {
	return &MethodService{
		methodRepo:      methodRepo,
		storeMethodRepo: storeMethodRepo,
	}
}

// ListAvailableMethods returns the active system methods a store can enable
func (s *MethodService) ListAvailableMethods(ctx context.Context) ([]shipping.ShippingMethod, error) {
	return s.methodRepo.FindActiveSystemMethods(ctx)
}

// ListStoreMethods returns the store's enablement records ordered by
// display_order, each joined with its system method. Records whose system
// method has been deleted out from under them are returned without the
// system half rather than dropped.
func (s *MethodService) ListStoreMethods(ctx context.Context, storeID uuid.UUID) ([]StoreMethodView, error) {
	storeMethods, err := s.storeMethodRepo.FindAllForStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if len(storeMethods) == 0 {
		return []StoreMethodView{}, nil
	}

	ids := make([]uuid.UUID, 0, len(storeMethods))
	for _, sm := range storeMethods {
		ids = append(ids, sm.SystemShippingMethodID)
	}
	methods, err := s.methodRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*shipping.ShippingMethod, len(methods))
	for i := range methods {
		byID[methods[i].ID] = &methods[i]
	}

	views := make([]StoreMethodView, 0, len(storeMethods))
	for i := range storeMethods {
		views = append(views, StoreMethodView{
			StoreMethod:  &storeMethods[i],
			SystemMethod: byID[storeMethods[i].SystemShippingMethodID],
		})
	}
	return views, nil
}
