package handler

import (
	"time"

	"github.com/shopspring/decimal"

	appshipping "github.com/shipflow/backend/internal/application/shipping"
	"github.com/shipflow/backend/internal/domain/shipping"
)

// ZoneResponse represents a shipping zone in API responses
// @Description Shipping zone details returned by the API
// @Name HandlerZoneResponse
type ZoneResponse struct {
	ID                     string   `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	StoreID                *string  `json:"store_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440001"`
	Name                   string   `json:"name" example:"Peninsula"`
	DisplayName            string   `json:"display_name" example:"Peninsula"`
	Countries              []string `json:"countries" example:"ES,PT"`
	Regions                []string `json:"regions"`
	Cities                 []string `json:"cities"`
	ZipCodes               []string `json:"zip_codes"`
	IsActive               bool     `json:"is_active" example:"true"`
	IsSystem               bool     `json:"is_system" example:"false"`
	SourceType             string   `json:"source_type" example:"system_copy" enums:"system_copy,custom"`
	CopiedFromSystemZoneID *string  `json:"copied_from_system_zone_id,omitempty"`
	CreatedAt              string   `json:"created_at" example:"2026-01-24T12:00:00Z"`
	UpdatedAt              string   `json:"updated_at" example:"2026-01-24T12:00:00Z"`
}

func toZoneResponse(z *shipping.ShippingZone) ZoneResponse {
	resp := ZoneResponse{
		ID:          z.ID.String(),
		Name:        z.Name,
		DisplayName: z.DisplayName,
		Countries:   z.Countries,
		Regions:     z.Regions,
		Cities:      z.Cities,
		ZipCodes:    z.ZipCodes,
		IsActive:    z.IsActive,
		IsSystem:    z.IsSystem,
		SourceType:  string(z.SourceType),
		CreatedAt:   z.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   z.UpdatedAt.Format(time.RFC3339),
	}
	if z.StoreID != nil {
		s := z.StoreID.String()
		resp.StoreID = &s
	}
	if z.CopiedFromSystemZoneID != nil {
		s := z.CopiedFromSystemZoneID.String()
		resp.CopiedFromSystemZoneID = &s
	}
	return resp
}

func toZoneResponses(zones []shipping.ShippingZone) []ZoneResponse {
	out := make([]ZoneResponse, 0, len(zones))
	for i := range zones {
		out = append(out, toZoneResponse(&zones[i]))
	}
	return out
}

// RateResponse represents a shipping rate in API responses
// @Description Shipping rate details returned by the API
// @Name HandlerRateResponse
type RateResponse struct {
	ID                     string  `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	StoreID                *string `json:"store_id,omitempty"`
	ZoneID                 string  `json:"zone_id"`
	MethodID               string  `json:"method_id"`
	Name                   string  `json:"name" example:"Standard 24-48h"`
	Type                   string  `json:"type" example:"flat" enums:"flat,weight_based,price_based,free"`
	BaseCost               *string `json:"base_cost,omitempty" example:"4.95"`
	PerUnitCost            *string `json:"per_unit_cost,omitempty" example:"0.50"`
	MinVal                 *string `json:"min_val,omitempty" example:"0"`
	MaxVal                 *string `json:"max_val,omitempty" example:"30"`
	FreeShippingThreshold  *string `json:"free_shipping_threshold,omitempty" example:"50"`
	IsActive               bool    `json:"is_active" example:"true"`
	IsSystem               bool    `json:"is_system" example:"false"`
	SourceType             string  `json:"source_type" example:"custom" enums:"system_copy,custom"`
	CopiedFromSystemRateID *string `json:"copied_from_system_rate_id,omitempty"`
	CreatedAt              string  `json:"created_at" example:"2026-01-24T12:00:00Z"`
	UpdatedAt              string  `json:"updated_at" example:"2026-01-24T12:00:00Z"`
}

func decimalString(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func toRateResponse(r *shipping.ShippingRate) RateResponse {
	resp := RateResponse{
		ID:                    r.ID.String(),
		ZoneID:                r.ZoneID.String(),
		MethodID:              r.MethodID.String(),
		Name:                  r.Name,
		Type:                  string(r.Type),
		BaseCost:              decimalString(r.BaseCost),
		PerUnitCost:           decimalString(r.PerUnitCost),
		MinVal:                decimalString(r.MinVal),
		MaxVal:                decimalString(r.MaxVal),
		FreeShippingThreshold: decimalString(r.FreeShippingThreshold),
		IsActive:              r.IsActive,
		IsSystem:              r.IsSystem,
		SourceType:            string(r.SourceType),
		CreatedAt:             r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:             r.UpdatedAt.Format(time.RFC3339),
	}
	if r.StoreID != nil {
		s := r.StoreID.String()
		resp.StoreID = &s
	}
	if r.CopiedFromSystemRateID != nil {
		s := r.CopiedFromSystemRateID.String()
		resp.CopiedFromSystemRateID = &s
	}
	return resp
}

func toRateResponses(rates []shipping.ShippingRate) []RateResponse {
	out := make([]RateResponse, 0, len(rates))
	for i := range rates {
		out = append(out, toRateResponse(&rates[i]))
	}
	return out
}

// MethodResponse represents a system shipping method in API responses
// @Description Shipping method details returned by the API
// @Name HandlerMethodResponse
type MethodResponse struct {
	ID       string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Code     string `json:"code" example:"standard"`
	Name     string `json:"name" example:"Standard Shipping"`
	Type     string `json:"type" example:"carrier" enums:"pickup,own_fleet,carrier"`
	IsActive bool   `json:"is_active" example:"true"`
	MinDays  int    `json:"min_days" example:"1"`
	MaxDays  int    `json:"max_days" example:"3"`
}

func toMethodResponse(m *shipping.ShippingMethod) MethodResponse {
	return MethodResponse{
		ID:       m.ID.String(),
		Code:     m.Code,
		Name:     m.Name,
		Type:     string(m.Type),
		IsActive: m.IsActive,
		MinDays:  m.MinDays,
		MaxDays:  m.MaxDays,
	}
}

// StoreMethodResponse represents a store's method enablement record
// @Description Store shipping method enablement returned by the API
// @Name HandlerStoreMethodResponse
type StoreMethodResponse struct {
	ID                     string          `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	StoreID                string          `json:"store_id"`
	SystemShippingMethodID string          `json:"system_shipping_method_id"`
	DisplayName            string          `json:"display_name" example:"Express"`
	CustomConfig           string          `json:"custom_config,omitempty" example:"{}"`
	State                  string          `json:"state" example:"enabled" enums:"enabled,disabled"`
	DisplayOrder           int             `json:"display_order" example:"0"`
	MinOrderAmount         *string         `json:"min_order_amount,omitempty" example:"10"`
	MaxOrderAmount         *string         `json:"max_order_amount,omitempty" example:"500"`
	Method                 *MethodResponse `json:"method,omitempty"`
	CreatedAt              string          `json:"created_at" example:"2026-01-24T12:00:00Z"`
	UpdatedAt              string          `json:"updated_at" example:"2026-01-24T12:00:00Z"`
}

func toStoreMethodResponse(sm *shipping.StoreShippingMethod, method *shipping.ShippingMethod) StoreMethodResponse {
	resp := StoreMethodResponse{
		ID:                     sm.ID.String(),
		StoreID:                sm.StoreID.String(),
		SystemShippingMethodID: sm.SystemShippingMethodID.String(),
		DisplayName:            sm.DisplayName,
		CustomConfig:           sm.CustomConfig,
		State:                  string(sm.State),
		DisplayOrder:           sm.DisplayOrder,
		MinOrderAmount:         decimalString(sm.MinOrderAmount),
		MaxOrderAmount:         decimalString(sm.MaxOrderAmount),
		CreatedAt:              sm.CreatedAt.Format(time.RFC3339),
		UpdatedAt:              sm.UpdatedAt.Format(time.RFC3339),
	}
	if method != nil {
		m := toMethodResponse(method)
		resp.Method = &m
	}
	return resp
}

// ShippingOptionResponse is one deliverable shipping choice in a quote
// @Description Shipping option priced for the submitted cart and address
// @Name HandlerShippingOptionResponse
type ShippingOptionResponse struct {
	ID            string                `json:"id"`
	MethodID      string                `json:"method_id"`
	MethodName    string                `json:"method_name" example:"Standard Shipping"`
	MethodType    string                `json:"method_type" example:"carrier"`
	Cost          string                `json:"cost" example:"4.95"`
	Currency      string                `json:"currency" example:"EUR"`
	EstimatedDays EstimatedDaysResponse `json:"estimated_days"`
}

// EstimatedDaysResponse is the delivery estimate of an option
// @Name HandlerEstimatedDaysResponse
type EstimatedDaysResponse struct {
	Min int `json:"min" example:"1"`
	Max int `json:"max" example:"3"`
}

func toShippingOptionResponses(options []shipping.ShippingOption) []ShippingOptionResponse {
	out := make([]ShippingOptionResponse, 0, len(options))
	for _, opt := range options {
		out = append(out, ShippingOptionResponse{
			ID:         opt.ID.String(),
			MethodID:   opt.MethodID.String(),
			MethodName: opt.MethodName,
			MethodType: string(opt.MethodType),
			Cost:       opt.Cost.String(),
			Currency:   opt.Currency,
			EstimatedDays: EstimatedDaysResponse{
				Min: opt.EstimatedDays.Min,
				Max: opt.EstimatedDays.Max,
			},
		})
	}
	return out
}

// EnableResultResponse reports what an enable operation did
// @Description Result of enabling a shipping method for a store
// @Name HandlerEnableResultResponse
type EnableResultResponse struct {
	StoreMethod      StoreMethodResponse `json:"store_method"`
	ZonesCopied      int                 `json:"zones_copied" example:"2"`
	RatesCopied      int                 `json:"rates_copied" example:"5"`
	RatesReactivated int                 `json:"rates_reactivated" example:"0"`
}

func toEnableResultResponse(res *appshipping.EnableResult) EnableResultResponse {
	return EnableResultResponse{
		StoreMethod:      toStoreMethodResponse(res.StoreMethod, nil),
		ZonesCopied:      res.ZonesCopied,
		RatesCopied:      res.RatesCopied,
		RatesReactivated: res.RatesReactivated,
	}
}

// SyncResultResponse reports what a zone sync applied
// @Description Result of synchronizing a copied zone with its system source
// @Name HandlerSyncResultResponse
type SyncResultResponse struct {
	Zone         ZoneResponse `json:"zone"`
	RatesUpdated int          `json:"rates_updated" example:"3"`
	RatesAdded   int          `json:"rates_added" example:"1"`
}

func toSyncResultResponse(res *appshipping.SyncResult) SyncResultResponse {
	return SyncResultResponse{
		Zone:         toZoneResponse(res.Zone),
		RatesUpdated: res.RatesUpdated,
		RatesAdded:   res.RatesAdded,
	}
}

// PendingUpdateResponse is one system change log entry awaiting sync
// @Description System zone change recorded since the store copy drifted
// @Name HandlerPendingUpdateResponse
type PendingUpdateResponse struct {
	ID           string `json:"id"`
	SystemZoneID string `json:"system_zone_id"`
	Payload      string `json:"payload" example:"{}"`
	CreatedAt    string `json:"created_at" example:"2026-01-24T12:00:00Z"`
}

func toPendingUpdateResponses(entries []shipping.ZoneUpdateLogEntry) []PendingUpdateResponse {
	out := make([]PendingUpdateResponse, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		out = append(out, PendingUpdateResponse{
			ID:           e.ID.String(),
			SystemZoneID: e.SystemZoneID.String(),
			Payload:      e.Payload,
			CreatedAt:    e.CreatedAt.Format(time.RFC3339),
		})
	}
	return out
}
