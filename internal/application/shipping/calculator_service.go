package shipping

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/shipflow/backend/internal/domain/shipping"
	"github.com/shipflow/backend/internal/infrastructure/telemetry"
)

// CurrencyLookup resolves the display currency configured for a store
type CurrencyLookup interface {
	CurrencyForStore(ctx context.Context, storeID uuid.UUID) (string, error)
}

// CalculatorService is the storefront read path: it resolves the delivery
// zone for an address and evaluates the zone's rates into shipping options.
// It performs no writes and holds no state; it is safe for unlimited
// parallel invocation.
type CalculatorService struct {
	zoneRepo        shipping.ZoneRepository
	rateRepo        shipping.RateRepository
	methodRepo      shipping.MethodRepository
	storeMethodRepo shipping.StoreMethodRepository
	currency        CurrencyLookup
	resolver        *shipping.ZoneResolver
	evaluator       *shipping.RateEvaluator
	businessMetrics *telemetry.BusinessMetrics
}

// SetBusinessMetrics sets the business metrics recorder (optional)
func (s *CalculatorService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// NewCalculatorService creates a new CalculatorService
func NewCalculatorService(
	zoneRepo shipping.ZoneRepository,
	rateRepo shipping.RateRepository,
	methodRepo shipping.MethodRepository,
	storeMethodRepo shipping.StoreMethodRepository,
	currency CurrencyLookup,
) *CalculatorService {
	return &CalculatorService{
		zoneRepo:        zoneRepo,
		rateRepo:        rateRepo,
		methodRepo:      methodRepo,
		storeMethodRepo: storeMethodRepo,
		currency:        currency,
		resolver:        shipping.NewZoneResolver(),
		evaluator:       shipping.NewRateEvaluator(),
	}
}

// CalculateRates computes the shipping options for a cart and address.
// "Cannot ship here" is an expected business outcome: when no zone matches,
// or no rate applies, the result is an empty list and a nil error.
func (s *CalculatorService) CalculateRates(ctx context.Context, storeID uuid.UUID, req CalculateRequest) ([]shipping.ShippingOption, error) {
	zones, err := s.zoneRepo.FindActiveForStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	zone := s.resolver.Resolve(zones, req.Address)
	if zone == nil {
		s.recordQuote(ctx, storeID, telemetry.QuoteOutcomeNoZone, nil)
		return []shipping.ShippingOption{}, nil
	}

	rates, err := s.rateRepo.FindActiveByZone(ctx, zone.ID)
	if err != nil {
		return nil, err
	}
	if len(rates) == 0 {
		s.recordQuote(ctx, storeID, telemetry.QuoteOutcomeNoRates, nil)
		return []shipping.ShippingOption{}, nil
	}

	methods, err := s.loadMethods(ctx, rates)
	if err != nil {
		return nil, err
	}

	currency, err := s.currency.CurrencyForStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	options := s.evaluator.Evaluate(rates, methods, req.Totals(), currency)
	if err := s.orderOptions(ctx, storeID, options); err != nil {
		return nil, err
	}

	if len(options) == 0 {
		s.recordQuote(ctx, storeID, telemetry.QuoteOutcomeNoRates, nil)
	} else {
		s.recordQuote(ctx, storeID, telemetry.QuoteOutcomeMatched, options)
	}
	return options, nil
}

// recordQuote reports the quote outcome, and the cheapest cost when options
// were produced
func (s *CalculatorService) recordQuote(ctx context.Context, storeID uuid.UUID, outcome telemetry.QuoteOutcome, options []shipping.ShippingOption) {
	if s.businessMetrics == nil {
		return
	}
	if len(options) == 0 {
		s.businessMetrics.RecordQuote(ctx, storeID, outcome)
		return
	}
	cheapest := options[0].Cost
	for _, opt := range options[1:] {
		if opt.Cost.LessThan(cheapest) {
			cheapest = opt.Cost
		}
	}
	s.businessMetrics.RecordQuoteWithAmount(ctx, storeID, outcome, cheapest)
}

func (s *CalculatorService) loadMethods(ctx context.Context, rates []shipping.ShippingRate) (map[uuid.UUID]*shipping.ShippingMethod, error) {
	seen := make(map[uuid.UUID]struct{}, len(rates))
	ids := make([]uuid.UUID, 0, len(rates))
	for i := range rates {
		if _, ok := seen[rates[i].MethodID]; ok {
			continue
		}
		seen[rates[i].MethodID] = struct{}{}
		ids = append(ids, rates[i].MethodID)
	}

	methods, err := s.methodRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*shipping.ShippingMethod, len(methods))
	for i := range methods {
		byID[methods[i].ID] = &methods[i]
	}
	return byID, nil
}

// orderOptions sorts options by the store's configured display order for the
// owning method, then by method name, so the storefront receives a stable
// list without re-sorting.
func (s *CalculatorService) orderOptions(ctx context.Context, storeID uuid.UUID, options []shipping.ShippingOption) error {
	if len(options) < 2 {
		return nil
	}

	storeMethods, err := s.storeMethodRepo.FindEnabledForStore(ctx, storeID)
	if err != nil {
		return err
	}
	orderByMethod := make(map[uuid.UUID]int, len(storeMethods))
	for i := range storeMethods {
		orderByMethod[storeMethods[i].SystemShippingMethodID] = storeMethods[i].DisplayOrder
	}

	displayOrder := func(methodID uuid.UUID) int {
		if order, ok := orderByMethod[methodID]; ok {
			return order
		}
		// Methods without an enablement record (custom rates on store-owned
		// methods) sort after configured ones.
		return int(^uint(0) >> 1)
	}

	sort.SliceStable(options, func(i, j int) bool {
		oi, oj := displayOrder(options[i].MethodID), displayOrder(options[j].MethodID)
		if oi != oj {
			return oi < oj
		}
		return options[i].MethodName < options[j].MethodName
	})
	return nil
}
