package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/shipflow/backend/internal/domain/shared"
)

// newMockZoneRepository creates a GormShippingZoneRepository with a mocked SQL connection
func newMockZoneRepository(t *testing.T) (*GormShippingZoneRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormShippingZoneRepository(gormDB), mock, mockDB
}

func TestGormShippingZoneRepository_FindByID(t *testing.T) {
	t.Run("finds existing zone", func(t *testing.T) {
		repo, mock, mockDB := newMockZoneRepository(t)
		defer mockDB.Close()

		zoneID := uuid.New()
		storeID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "store_id", "name", "display_name", "countries", "is_active", "is_system", "source_type"}).
			AddRow(zoneID, storeID, "Peninsula", "Peninsula", "{ES,PT}", true, false, "system_copy")

		mock.ExpectQuery(`SELECT \* FROM "shipping_zones" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(zoneID, 1).
			WillReturnRows(rows)

		zone, err := repo.FindByID(context.Background(), zoneID)

		assert.NoError(t, err)
		require.NotNil(t, zone)
		assert.Equal(t, zoneID, zone.ID)
		assert.Equal(t, "Peninsula", zone.Name)
		assert.Equal(t, []string{"ES", "PT"}, []string(zone.Countries))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing zone", func(t *testing.T) {
		repo, mock, mockDB := newMockZoneRepository(t)
		defer mockDB.Close()

		zoneID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "shipping_zones" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(zoneID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		zone, err := repo.FindByID(context.Background(), zoneID)

		assert.Nil(t, zone)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormShippingZoneRepository_FindByIDForStore(t *testing.T) {
	t.Run("scopes by store", func(t *testing.T) {
		repo, mock, mockDB := newMockZoneRepository(t)
		defer mockDB.Close()

		zoneID := uuid.New()
		storeID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "store_id", "name", "is_active", "is_system", "source_type"}).
			AddRow(zoneID, storeID, "Peninsula", true, false, "custom")

		mock.ExpectQuery(`SELECT \* FROM "shipping_zones" WHERE store_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(storeID, zoneID, 1).
			WillReturnRows(rows)

		zone, err := repo.FindByIDForStore(context.Background(), storeID, zoneID)

		assert.NoError(t, err)
		require.NotNil(t, zone)
		require.NotNil(t, zone.StoreID)
		assert.Equal(t, storeID, *zone.StoreID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("other store's zone is not visible", func(t *testing.T) {
		repo, mock, mockDB := newMockZoneRepository(t)
		defer mockDB.Close()

		zoneID := uuid.New()
		storeID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "shipping_zones" WHERE store_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(storeID, zoneID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		zone, err := repo.FindByIDForStore(context.Background(), storeID, zoneID)

		assert.Nil(t, zone)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormShippingZoneRepository_FindSystemByID(t *testing.T) {
	t.Run("requires null store and system flag", func(t *testing.T) {
		repo, mock, mockDB := newMockZoneRepository(t)
		defer mockDB.Close()

		zoneID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "store_id", "name", "is_active", "is_system", "source_type"}).
			AddRow(zoneID, nil, "Peninsula", true, true, "custom")

		mock.ExpectQuery(`SELECT \* FROM "shipping_zones" WHERE id = \$1 AND store_id IS NULL AND is_system = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(zoneID, true, 1).
			WillReturnRows(rows)

		zone, err := repo.FindSystemByID(context.Background(), zoneID)

		assert.NoError(t, err)
		require.NotNil(t, zone)
		assert.Nil(t, zone.StoreID)
		assert.True(t, zone.IsSystem)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormShippingZoneRepository_FindByProvenance(t *testing.T) {
	t.Run("finds store copy by provenance key", func(t *testing.T) {
		repo, mock, mockDB := newMockZoneRepository(t)
		defer mockDB.Close()

		storeID := uuid.New()
		systemZoneID := uuid.New()
		copyID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "store_id", "name", "is_active", "is_system", "source_type", "copied_from_system_zone_id"}).
			AddRow(copyID, storeID, "Peninsula", false, false, "system_copy", systemZoneID)

		mock.ExpectQuery(`SELECT \* FROM "shipping_zones" WHERE store_id = \$1 AND copied_from_system_zone_id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(storeID, systemZoneID, 1).
			WillReturnRows(rows)

		zone, err := repo.FindByProvenance(context.Background(), storeID, systemZoneID)

		assert.NoError(t, err)
		require.NotNil(t, zone)
		// Inactive copies are included; reactivation is the caller's call.
		assert.False(t, zone.IsActive)
		require.NotNil(t, zone.CopiedFromSystemZoneID)
		assert.Equal(t, systemZoneID, *zone.CopiedFromSystemZoneID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormShippingZoneRepository_FindActiveForStore(t *testing.T) {
	t.Run("returns only active zones", func(t *testing.T) {
		repo, mock, mockDB := newMockZoneRepository(t)
		defer mockDB.Close()

		storeID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "store_id", "name", "is_active", "is_system", "source_type"}).
			AddRow(uuid.New(), storeID, "Peninsula", true, false, "system_copy").
			AddRow(uuid.New(), storeID, "Islas", true, false, "custom")

		mock.ExpectQuery(`SELECT \* FROM "shipping_zones" WHERE store_id = \$1 AND is_active = \$2`).
			WithArgs(storeID, true).
			WillReturnRows(rows)

		zones, err := repo.FindActiveForStore(context.Background(), storeID)

		assert.NoError(t, err)
		assert.Len(t, zones, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormShippingZoneRepository_CountForStore(t *testing.T) {
	t.Run("counts zones", func(t *testing.T) {
		repo, mock, mockDB := newMockZoneRepository(t)
		defer mockDB.Close()

		storeID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "shipping_zones" WHERE store_id = \$1`).
			WithArgs(storeID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		count, err := repo.CountForStore(context.Background(), storeID, shared.Filter{})

		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
