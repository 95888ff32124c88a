package shipping

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/shipflow/backend/internal/domain/shared"
	"github.com/shipflow/backend/internal/domain/shipping"
)

// MockMethodRepository is a mock implementation of MethodRepository
type MockMethodRepository struct {
	mock.Mock
}

func (m *MockMethodRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipping.ShippingMethod, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.ShippingMethod), args.Error(1)
}

func (m *MockMethodRepository) FindSystemByID(ctx context.Context, id uuid.UUID) (*shipping.ShippingMethod, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.ShippingMethod), args.Error(1)
}

func (m *MockMethodRepository) FindActiveSystemMethods(ctx context.Context) ([]shipping.ShippingMethod, error) {
	args := m.Called(ctx)
	return args.Get(0).([]shipping.ShippingMethod), args.Error(1)
}

func (m *MockMethodRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]shipping.ShippingMethod, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]shipping.ShippingMethod), args.Error(1)
}

func (m *MockMethodRepository) Save(ctx context.Context, method *shipping.ShippingMethod) error {
	args := m.Called(ctx, method)
	return args.Error(0)
}

func (m *MockMethodRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockStoreMethodRepository is a mock implementation of StoreMethodRepository
type MockStoreMethodRepository struct {
	mock.Mock
}

func (m *MockStoreMethodRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipping.StoreShippingMethod, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.StoreShippingMethod), args.Error(1)
}

func (m *MockStoreMethodRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*shipping.StoreShippingMethod, error) {
	args := m.Called(ctx, storeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.StoreShippingMethod), args.Error(1)
}

func (m *MockStoreMethodRepository) FindBySystemMethod(ctx context.Context, storeID, systemMethodID uuid.UUID) (*shipping.StoreShippingMethod, error) {
	args := m.Called(ctx, storeID, systemMethodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.StoreShippingMethod), args.Error(1)
}

func (m *MockStoreMethodRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID) ([]shipping.StoreShippingMethod, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).([]shipping.StoreShippingMethod), args.Error(1)
}

func (m *MockStoreMethodRepository) FindEnabledForStore(ctx context.Context, storeID uuid.UUID) ([]shipping.StoreShippingMethod, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).([]shipping.StoreShippingMethod), args.Error(1)
}

func (m *MockStoreMethodRepository) Save(ctx context.Context, method *shipping.StoreShippingMethod) error {
	args := m.Called(ctx, method)
	return args.Error(0)
}

func (m *MockStoreMethodRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockZoneRepository is a mock implementation of ZoneRepository
type MockZoneRepository struct {
	mock.Mock
}

func (m *MockZoneRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipping.ShippingZone, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.ShippingZone), args.Error(1)
}

func (m *MockZoneRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*shipping.ShippingZone, error) {
	args := m.Called(ctx, storeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.ShippingZone), args.Error(1)
}

func (m *MockZoneRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]shipping.ShippingZone, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).([]shipping.ShippingZone), args.Error(1)
}

func (m *MockZoneRepository) FindActiveForStore(ctx context.Context, storeID uuid.UUID) ([]shipping.ShippingZone, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).([]shipping.ShippingZone), args.Error(1)
}

func (m *MockZoneRepository) FindSystemByID(ctx context.Context, id uuid.UUID) (*shipping.ShippingZone, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.ShippingZone), args.Error(1)
}

func (m *MockZoneRepository) FindSystemZonesForMethod(ctx context.Context, methodID uuid.UUID) ([]shipping.ShippingZone, error) {
	args := m.Called(ctx, methodID)
	return args.Get(0).([]shipping.ShippingZone), args.Error(1)
}

func (m *MockZoneRepository) FindByProvenance(ctx context.Context, storeID, systemZoneID uuid.UUID) (*shipping.ShippingZone, error) {
	args := m.Called(ctx, storeID, systemZoneID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.ShippingZone), args.Error(1)
}

func (m *MockZoneRepository) CountForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockZoneRepository) Save(ctx context.Context, zone *shipping.ShippingZone) error {
	args := m.Called(ctx, zone)
	return args.Error(0)
}

func (m *MockZoneRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRateRepository is a mock implementation of RateRepository
type MockRateRepository struct {
	mock.Mock
}

func (m *MockRateRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipping.ShippingRate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.ShippingRate), args.Error(1)
}

func (m *MockRateRepository) FindSystemByID(ctx context.Context, id uuid.UUID) (*shipping.ShippingRate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.ShippingRate), args.Error(1)
}

func (m *MockRateRepository) FindByZone(ctx context.Context, zoneID uuid.UUID) ([]shipping.ShippingRate, error) {
	args := m.Called(ctx, zoneID)
	return args.Get(0).([]shipping.ShippingRate), args.Error(1)
}

func (m *MockRateRepository) FindActiveByZone(ctx context.Context, zoneID uuid.UUID) ([]shipping.ShippingRate, error) {
	args := m.Called(ctx, zoneID)
	return args.Get(0).([]shipping.ShippingRate), args.Error(1)
}

func (m *MockRateRepository) FindByZoneAndMethod(ctx context.Context, zoneID, methodID uuid.UUID) ([]shipping.ShippingRate, error) {
	args := m.Called(ctx, zoneID, methodID)
	return args.Get(0).([]shipping.ShippingRate), args.Error(1)
}

func (m *MockRateRepository) FindByProvenance(ctx context.Context, zoneID, systemRateID uuid.UUID) (*shipping.ShippingRate, error) {
	args := m.Called(ctx, zoneID, systemRateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.ShippingRate), args.Error(1)
}

func (m *MockRateRepository) DeactivateByMethodForStore(ctx context.Context, storeID, methodID uuid.UUID) (int64, error) {
	args := m.Called(ctx, storeID, methodID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRateRepository) ReactivateSystemCopiesByMethodForStore(ctx context.Context, storeID, methodID uuid.UUID) (int64, error) {
	args := m.Called(ctx, storeID, methodID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRateRepository) Save(ctx context.Context, rate *shipping.ShippingRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockRateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUpdateLogRepository is a mock implementation of UpdateLogRepository
type MockUpdateLogRepository struct {
	mock.Mock
}

func (m *MockUpdateLogRepository) FindBySystemZoneSince(ctx context.Context, systemZoneID uuid.UUID, since time.Time) ([]shipping.ZoneUpdateLogEntry, error) {
	args := m.Called(ctx, systemZoneID, since)
	return args.Get(0).([]shipping.ZoneUpdateLogEntry), args.Error(1)
}

func (m *MockUpdateLogRepository) Append(ctx context.Context, entry *shipping.ZoneUpdateLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockCurrencyLookup is a mock implementation of CurrencyLookup
type MockCurrencyLookup struct {
	mock.Mock
}

func (m *MockCurrencyLookup) CurrencyForStore(ctx context.Context, storeID uuid.UUID) (string, error) {
	args := m.Called(ctx, storeID)
	return args.String(0), args.Error(1)
}

// newMockScope wires a set of mocked repositories into a pass-through
// transaction scope
func newMockScope(
	methodRepo *MockMethodRepository,
	storeMethodRepo *MockStoreMethodRepository,
	zoneRepo *MockZoneRepository,
	rateRepo *MockRateRepository,
	logRepo *MockUpdateLogRepository,
) TransactionScope {
	return NewNoOpTransactionScope(methodRepo, storeMethodRepo, zoneRepo, rateRepo, logRepo)
}
