package shipping

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartTotals holds the cart aggregates used to gate and price rates. Both
// values are sums of line totals: weight and price are expected to be
// quantity-multiplied by the caller already.
type CartTotals struct {
	Weight decimal.Decimal
	Price  decimal.Decimal
}

// EstimatedDays is the delivery estimate attached to a shipping option
type EstimatedDays struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// ShippingOption is one deliverable choice produced by rate evaluation
type ShippingOption struct {
	ID            uuid.UUID       `json:"id"`
	MethodID      uuid.UUID       `json:"method_id"`
	MethodName    string          `json:"method_name"`
	MethodType    MethodType      `json:"method_type"`
	Cost          decimal.Decimal `json:"cost"`
	Currency      string          `json:"currency"`
	EstimatedDays EstimatedDays   `json:"estimated_days"`
}

// InRange reports whether value falls within the nullable [min, max] bounds.
// A nil min imposes no lower bound. A nil max, or a max of zero or less, is
// treated as unbounded: zero-initialized rate records rely on this, so the
// rule must hold even for large values.
func InRange(value decimal.Decimal, min, max *decimal.Decimal) bool {
	if min != nil && value.LessThan(*min) {
		return false
	}
	if max == nil || max.Sign() <= 0 {
		return true
	}
	return !value.GreaterThan(*max)
}

// RateEvaluator turns rate definitions into shipping options
type RateEvaluator struct{}

// NewRateEvaluator creates a RateEvaluator
func NewRateEvaluator() *RateEvaluator {
	return &RateEvaluator{}
}

// EvaluateRate evaluates a single rate against the cart totals. It returns
// the computed cost and whether the rate applies; inactivity checks are the
// caller's concern.
func (e *RateEvaluator) EvaluateRate(rate *ShippingRate, totals CartTotals) (decimal.Decimal, bool) {
	var cost decimal.Decimal

	switch rate.Type {
	case RateTypeFlat:
		cost = valueOrZero(rate.BaseCost)
	case RateTypeWeightBased:
		if !InRange(totals.Weight, rate.MinVal, rate.MaxVal) {
			return decimal.Zero, false
		}
		cost = valueOrZero(rate.BaseCost).Add(valueOrZero(rate.PerUnitCost).Mul(totals.Weight))
	case RateTypePriceBased:
		if !InRange(totals.Price, rate.MinVal, rate.MaxVal) {
			return decimal.Zero, false
		}
		// per-unit cost is ignored for price-based rates
		cost = valueOrZero(rate.BaseCost)
	case RateTypeFree:
		if !InRange(totals.Price, rate.MinVal, rate.MaxVal) {
			return decimal.Zero, false
		}
		cost = decimal.Zero
	default:
		return decimal.Zero, false
	}

	// The threshold override applies to every rate type, including rates
	// whose computed cost is already zero.
	if rate.FreeShippingThreshold != nil && totals.Price.GreaterThanOrEqual(*rate.FreeShippingThreshold) {
		cost = decimal.Zero
	}
	return cost, true
}

// Evaluate produces zero or one option per active rate whose method is
// active. The methods map is keyed by method id and supplies names, types and
// delivery estimates.
func (e *RateEvaluator) Evaluate(rates []ShippingRate, methods map[uuid.UUID]*ShippingMethod, totals CartTotals, currency string) []ShippingOption {
	options := make([]ShippingOption, 0, len(rates))
	for i := range rates {
		rate := &rates[i]
		if !rate.IsActive {
			continue
		}
		method, ok := methods[rate.MethodID]
		if !ok || !method.IsActive {
			continue
		}

		cost, applicable := e.EvaluateRate(rate, totals)
		if !applicable {
			continue
		}

		name := rate.Name
		if name == "" {
			name = method.Name
		}
		options = append(options, ShippingOption{
			ID:         rate.ID,
			MethodID:   method.ID,
			MethodName: name,
			MethodType: method.Type,
			Cost:       cost,
			Currency:   currency,
			EstimatedDays: EstimatedDays{
				Min: method.MinDays,
				Max: method.MaxDays,
			},
		})
	}
	return options
}

func valueOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
