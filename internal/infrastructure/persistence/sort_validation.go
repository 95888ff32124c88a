package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// ShippingZoneSortFields contains allowed sort fields for shipping zones
var ShippingZoneSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"display_name": true,
	"is_active":    true,
	"source_type":  true,
}

// ShippingRateSortFields contains allowed sort fields for shipping rates
var ShippingRateSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"type":       true,
	"base_cost":  true,
	"is_active":  true,
}

// ShippingMethodSortFields contains allowed sort fields for shipping methods
var ShippingMethodSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"type":       true,
	"is_active":  true,
}

// StoreShippingMethodSortFields contains allowed sort fields for store method enablements
var StoreShippingMethodSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"display_name":  true,
	"display_order": true,
	"state":         true,
}
