package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shipflow/backend/internal/domain/shared"
	"github.com/shipflow/backend/internal/domain/shipping"
)

// GormShippingZoneRepository implements ZoneRepository using GORM
type GormShippingZoneRepository struct {
	db *gorm.DB
}

// NewGormShippingZoneRepository creates a new GormShippingZoneRepository
func NewGormShippingZoneRepository(db *gorm.DB) *GormShippingZoneRepository {
	return &GormShippingZoneRepository{db: db}
}

// FindByID finds a zone by its ID
func (r *GormShippingZoneRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipping.ShippingZone, error) {
	var zone shipping.ShippingZone
	if err := r.db.WithContext(ctx).First(&zone, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &zone, nil
}

// FindByIDForStore finds a zone by ID within a store
func (r *GormShippingZoneRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*shipping.ShippingZone, error) {
	var zone shipping.ShippingZone
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND id = ?", storeID, id).
		First(&zone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &zone, nil
}

// FindAllForStore finds all zones for a store
func (r *GormShippingZoneRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]shipping.ShippingZone, error) {
	var zones []shipping.ShippingZone
	query := r.applyFilter(r.db.WithContext(ctx).Model(&shipping.ShippingZone{}).Where("store_id = ?", storeID), filter)

	if err := query.Find(&zones).Error; err != nil {
		return nil, err
	}
	return zones, nil
}

// FindActiveForStore finds the active zones for a store
func (r *GormShippingZoneRepository) FindActiveForStore(ctx context.Context, storeID uuid.UUID) ([]shipping.ShippingZone, error) {
	var zones []shipping.ShippingZone
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND is_active = ?", storeID, true).
		Find(&zones).Error; err != nil {
		return nil, err
	}
	return zones, nil
}

// FindSystemByID finds a system zone by ID
func (r *GormShippingZoneRepository) FindSystemByID(ctx context.Context, id uuid.UUID) (*shipping.ShippingZone, error) {
	var zone shipping.ShippingZone
	if err := r.db.WithContext(ctx).
		Where("id = ? AND store_id IS NULL AND is_system = ?", id, true).
		First(&zone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &zone, nil
}

// FindSystemZonesForMethod finds the system zones owning at least one rate
// for the given method
func (r *GormShippingZoneRepository) FindSystemZonesForMethod(ctx context.Context, methodID uuid.UUID) ([]shipping.ShippingZone, error) {
	var zones []shipping.ShippingZone
	if err := r.db.WithContext(ctx).
		Where("store_id IS NULL AND is_system = ?", true).
		Where("id IN (?)", r.db.Model(&shipping.ShippingRate{}).
			Select("zone_id").
			Where("method_id = ? AND store_id IS NULL", methodID)).
		Find(&zones).Error; err != nil {
		return nil, err
	}
	return zones, nil
}

// FindByProvenance finds the store copy of a system zone
func (r *GormShippingZoneRepository) FindByProvenance(ctx context.Context, storeID, systemZoneID uuid.UUID) (*shipping.ShippingZone, error) {
	var zone shipping.ShippingZone
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND copied_from_system_zone_id = ?", storeID, systemZoneID).
		First(&zone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &zone, nil
}

// CountForStore counts zones for a store
func (r *GormShippingZoneRepository) CountForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&shipping.ShippingZone{}).Where("store_id = ?", storeID),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a zone
func (r *GormShippingZoneRepository) Save(ctx context.Context, zone *shipping.ShippingZone) error {
	return r.db.WithContext(ctx).Save(zone).Error
}

// Delete deletes a zone
func (r *GormShippingZoneRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&shipping.ShippingZone{}, "id = ?", id).Error
}

// applyFilter applies filter options to the query
func (r *GormShippingZoneRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ShippingZoneSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormShippingZoneRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR display_name ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "is_active":
			query = query.Where("is_active = ?", value)
		case "source_type":
			query = query.Where("source_type = ?", value)
		case "country":
			if country, ok := value.(string); ok {
				query = query.Where("? = ANY(countries)", strings.ToUpper(country))
			}
		}
	}

	return query
}
