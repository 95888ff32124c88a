package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shipflow/backend/internal/domain/shipping"
)

// GormZoneUpdateLogRepository implements UpdateLogRepository using GORM
type GormZoneUpdateLogRepository struct {
	db *gorm.DB
}

// NewGormZoneUpdateLogRepository creates a new GormZoneUpdateLogRepository
func NewGormZoneUpdateLogRepository(db *gorm.DB) *GormZoneUpdateLogRepository {
	return &GormZoneUpdateLogRepository{db: db}
}

// FindBySystemZoneSince finds log entries for a system zone created strictly
// after the given timestamp, oldest first
func (r *GormZoneUpdateLogRepository) FindBySystemZoneSince(ctx context.Context, systemZoneID uuid.UUID, since time.Time) ([]shipping.ZoneUpdateLogEntry, error) {
	var entries []shipping.ZoneUpdateLogEntry
	if err := r.db.WithContext(ctx).
		Where("system_zone_id = ? AND created_at > ?", systemZoneID, since).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Append stores a new log entry
func (r *GormZoneUpdateLogRepository) Append(ctx context.Context, entry *shipping.ZoneUpdateLogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
