package shipping

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shipflow/backend/internal/domain/shipping"
)

// LineItem is one cart line as supplied by the checkout flow. Weight and
// Price are line totals, already multiplied by quantity upstream; Quantity
// is carried for logging only.
type LineItem struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Weight    decimal.Decimal `json:"weight"`
	Price     decimal.Decimal `json:"price"`
}

// CalculateRequest is the input of the rate calculation read path
type CalculateRequest struct {
	Items   []LineItem       `json:"items"`
	Address shipping.Address `json:"address"`
}

// Totals aggregates the cart line totals
func (r CalculateRequest) Totals() shipping.CartTotals {
	totals := shipping.CartTotals{Weight: decimal.Zero, Price: decimal.Zero}
	for _, item := range r.Items {
		totals.Weight = totals.Weight.Add(item.Weight)
		totals.Price = totals.Price.Add(item.Price)
	}
	return totals
}

// EnableResult is returned by Enable for caller feedback
type EnableResult struct {
	StoreMethod      *shipping.StoreShippingMethod `json:"store_method"`
	ZonesCopied      int                           `json:"zones_copied"`
	RatesCopied      int                           `json:"rates_copied"`
	RatesReactivated int                           `json:"rates_reactivated"`
}

// SyncResult is returned by Sync for caller feedback
type SyncResult struct {
	Zone         *shipping.ShippingZone `json:"zone"`
	RatesUpdated int                    `json:"rates_updated"`
	RatesAdded   int                    `json:"rates_added"`
}

// CreateZoneRequest is the input for creating a custom store zone
type CreateZoneRequest struct {
	Name        string
	DisplayName string
	Countries   []string
	Regions     []string
	Cities      []string
	ZipCodes    []string
}

// UpdateZoneRequest is the input for updating a store zone
type UpdateZoneRequest struct {
	Name        string
	DisplayName string
	Countries   []string
	Regions     []string
	Cities      []string
	ZipCodes    []string
	IsActive    *bool
}

// RatePricing carries the nullable pricing fields of a rate
type RatePricing struct {
	BaseCost              *decimal.Decimal
	PerUnitCost           *decimal.Decimal
	MinVal                *decimal.Decimal
	MaxVal                *decimal.Decimal
	FreeShippingThreshold *decimal.Decimal
}

// CreateRateRequest is the input for creating a custom store rate
type CreateRateRequest struct {
	MethodID uuid.UUID
	Name     string
	Type     shipping.RateType
	Pricing  RatePricing
}

// UpdateRateRequest is the input for updating a store rate
type UpdateRateRequest struct {
	Name     string
	Type     shipping.RateType
	Pricing  RatePricing
	IsActive *bool
}
