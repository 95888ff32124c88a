// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSyncMetricsProvider implements SyncMetricsProvider using GORM.
// It queries the shipping_zones and system_zone_updates tables directly
// for aggregated metrics.
type GormSyncMetricsProvider struct {
	db *gorm.DB
}

// NewGormSyncMetricsProvider creates a new GormSyncMetricsProvider.
func NewGormSyncMetricsProvider(db *gorm.DB) *GormSyncMetricsProvider {
	return &GormSyncMetricsProvider{db: db}
}

// GetPendingSyncZoneCount returns the number of system-copied zones of a store
// that have platform updates newer than the copy's last sync point.
func (p *GormSyncMetricsProvider) GetPendingSyncZoneCount(ctx context.Context, storeID uuid.UUID) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("shipping_zones AS z").
		Joins("JOIN system_zone_updates u ON u.system_zone_id = z.copied_from_system_zone_id").
		Where("z.store_id = ? AND z.copied_from_system_zone_id IS NOT NULL", storeID).
		Where("u.created_at > GREATEST(z.created_at, z.updated_at)").
		Distinct("z.id").
		Count(&count).Error

	return count, err
}

// GetSystemCopyZoneCount returns the number of system-copied zones a store has.
func (p *GormSyncMetricsProvider) GetSystemCopyZoneCount(ctx context.Context, storeID uuid.UUID) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("shipping_zones").
		Where("store_id = ? AND copied_from_system_zone_id IS NOT NULL", storeID).
		Count(&count).Error

	return count, err
}

// GormStoreProvider implements StoreProvider using GORM.
type GormStoreProvider struct {
	db *gorm.DB
}

// NewGormStoreProvider creates a new GormStoreProvider.
func NewGormStoreProvider(db *gorm.DB) *GormStoreProvider {
	return &GormStoreProvider{db: db}
}

// GetActiveStoreIDs returns the IDs of all stores with at least one enabled
// shipping method.
func (p *GormStoreProvider) GetActiveStoreIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := p.db.WithContext(ctx).
		Table("store_shipping_methods").
		Distinct("store_id").
		Where("state = ?", "enabled").
		Find(&ids).Error

	return ids, err
}
