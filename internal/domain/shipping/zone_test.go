package shipping

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shipflow/backend/internal/domain/shared"
)

func systemZone(name string) *ShippingZone {
	return &ShippingZone{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		DisplayName:       name,
		Countries:         []string{"US", "CA"},
		Regions:           []string{"NY"},
		IsActive:          true,
		IsSystem:          true,
	}
}

func TestShippingZone_CopyForStore(t *testing.T) {
	storeID := uuid.New()
	src := systemZone("North America")

	cp := src.CopyForStore(storeID)

	require.NotNil(t, cp.StoreID)
	assert.Equal(t, storeID, *cp.StoreID)
	assert.NotEqual(t, src.ID, cp.ID)
	assert.Equal(t, src.Name, cp.Name)
	assert.Equal(t, []string{"US", "CA"}, []string(cp.Countries))
	assert.Equal(t, SourceTypeSystemCopy, cp.SourceType)
	require.NotNil(t, cp.CopiedFromSystemZoneID)
	assert.Equal(t, src.ID, *cp.CopiedFromSystemZoneID)
	assert.False(t, cp.IsSystem)
	assert.True(t, cp.IsActive)
	assert.True(t, cp.IsSystemCopy())

	// Copies must not alias the source lists.
	cp.Countries[0] = "MX"
	assert.Equal(t, "US", src.Countries[0])
}

func TestShippingZone_DuplicateForStore(t *testing.T) {
	storeID := uuid.New()
	src := systemZone("Europa")

	dup := src.DuplicateForStore(storeID)

	assert.Equal(t, "Copia de Europa", dup.Name)
	assert.Equal(t, SourceTypeCustom, dup.SourceType)
	assert.Nil(t, dup.CopiedFromSystemZoneID)
	assert.False(t, dup.IsSystemCopy())
}

func TestShippingZone_ApplySystemValues(t *testing.T) {
	storeID := uuid.New()
	src := systemZone("Zona Norte")
	cp := src.CopyForStore(storeID)

	// Store edits to geography are discarded on sync.
	require.NoError(t, cp.Update("Renamed", "", []string{"BR"}, nil, nil, nil))

	src.Countries = []string{"US"}
	src.Name = "Zona Norte v2"
	cp.ApplySystemValues(src)

	assert.Equal(t, "Zona Norte v2", cp.Name)
	assert.Equal(t, []string{"US"}, []string(cp.Countries))
	assert.Equal(t, SourceTypeSystemCopy, cp.SourceType)
	require.NotNil(t, cp.CopiedFromSystemZoneID)
	assert.Equal(t, src.ID, *cp.CopiedFromSystemZoneID)
}

func TestShippingRate_CopyForZone(t *testing.T) {
	storeID := uuid.New()
	zoneID := uuid.New()

	src := testRate(RateTypeWeightBased)
	src.Name = "Por peso"
	src.BaseCost = dec("5")
	src.PerUnitCost = dec("0.5")
	src.IsSystem = true

	t.Run("system copy keeps provenance", func(t *testing.T) {
		cp := src.CopyForZone(storeID, zoneID, SourceTypeSystemCopy)

		assert.Equal(t, zoneID, cp.ZoneID)
		assert.Equal(t, src.MethodID, cp.MethodID)
		require.NotNil(t, cp.CopiedFromSystemRateID)
		assert.Equal(t, src.ID, *cp.CopiedFromSystemRateID)
		assert.False(t, cp.IsSystem)
		assert.True(t, cp.IsActive)
		require.NotNil(t, cp.BaseCost)
		assert.True(t, cp.BaseCost.Equal(*src.BaseCost))
	})

	t.Run("custom copy severs provenance", func(t *testing.T) {
		cp := src.CopyForZone(storeID, zoneID, SourceTypeCustom)
		assert.Nil(t, cp.CopiedFromSystemRateID)
		assert.Equal(t, SourceTypeCustom, cp.SourceType)
	})
}

func TestShippingRate_ApplySystemValues(t *testing.T) {
	storeID := uuid.New()
	zoneID := uuid.New()

	src := testRate(RateTypeFlat)
	src.BaseCost = dec("10")
	cp := src.CopyForZone(storeID, zoneID, SourceTypeSystemCopy)

	src.BaseCost = dec("12")
	src.FreeShippingThreshold = dec("100")
	cp.ApplySystemValues(src)

	require.NotNil(t, cp.BaseCost)
	assert.True(t, cp.BaseCost.Equal(decimal.RequireFromString("12")))
	require.NotNil(t, cp.FreeShippingThreshold)
	assert.True(t, cp.FreeShippingThreshold.Equal(decimal.RequireFromString("100")))
}
