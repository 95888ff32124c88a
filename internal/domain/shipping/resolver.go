package shipping

import (
	"sort"
)

// Address is a delivery address as already validated and normalized by the
// upstream checkout flow. Matching is exact-string over the raw stored
// values; this package performs no normalization of its own.
type Address struct {
	CountryCode   string
	StateProvince string
	City          string
	PostalCode    string
}

// Specificity weights per dimension. The score is an additive weighted sum,
// not a lexicographic hierarchy: zip+country (1001) outranks city+region (110).
const (
	specificityZip     = 1000
	specificityCity    = 100
	specificityRegion  = 10
	specificityCountry = 1
)

// Matches reports whether every defined dimension of the zone accepts the
// address. An empty dimension list is a wildcard. A zone that constrains
// regions rejects addresses that carry no region: the constraint cannot be
// verified, so the zone fails closed rather than widening delivery.
func (z *ShippingZone) Matches(addr Address) bool {
	if len(z.Countries) > 0 && !containsExact(z.Countries, addr.CountryCode) {
		return false
	}
	if len(z.Regions) > 0 {
		if addr.StateProvince == "" {
			return false
		}
		if !containsExact(z.Regions, addr.StateProvince) {
			return false
		}
	}
	if len(z.Cities) > 0 && addr.City != "" && !containsExact(z.Cities, addr.City) {
		return false
	}
	if len(z.ZipCodes) > 0 && addr.PostalCode != "" && !containsExact(z.ZipCodes, addr.PostalCode) {
		return false
	}
	return true
}

// SpecificityScore ranks the zone by how many non-wildcard dimensions it
// constrains, weighted 1000/100/10/1 for zip/city/region/country
func (z *ShippingZone) SpecificityScore() int {
	score := 0
	if len(z.ZipCodes) > 0 {
		score += specificityZip
	}
	if len(z.Cities) > 0 {
		score += specificityCity
	}
	if len(z.Regions) > 0 {
		score += specificityRegion
	}
	if len(z.Countries) > 0 {
		score += specificityCountry
	}
	return score
}

// ZoneResolver selects the best-matching zone for an address
type ZoneResolver struct{}

// NewZoneResolver creates a ZoneResolver
func NewZoneResolver() *ZoneResolver {
	return &ZoneResolver{}
}

// Resolve returns the matching zone with the highest specificity, or nil when
// no zone matches. A nil result means the store does not deliver to the
// address; it is an expected outcome, never an error. Ties on specificity are
// broken by ascending zone id so resolution is deterministic regardless of
// the order zones were loaded in.
func (r *ZoneResolver) Resolve(zones []ShippingZone, addr Address) *ShippingZone {
	candidates := make([]*ShippingZone, 0, len(zones))
	for i := range zones {
		if zones[i].Matches(addr) {
			candidates = append(candidates, &zones[i])
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		si, sj := candidates[i].SpecificityScore(), candidates[j].SpecificityScore()
		if si != sj {
			return si > sj
		}
		return candidates[i].ID.String() < candidates[j].ID.String()
	})
	return candidates[0]
}

func containsExact(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
