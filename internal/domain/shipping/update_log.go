package shipping

import (
	"github.com/google/uuid"

	"github.com/shipflow/backend/internal/domain/shared"
)

// ZoneUpdateLogEntry is an append-only record of a change made to a system
// zone. Its payload is opaque to this service; only system_zone_id and
// created_at are used, as the drift signal for store copies.
type ZoneUpdateLogEntry struct {
	shared.BaseEntity
	SystemZoneID uuid.UUID `gorm:"type:uuid;not null;index"`
	Payload      string    `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (ZoneUpdateLogEntry) TableName() string {
	return "system_zone_updates"
}

// NewZoneUpdateLogEntry records a change against a system zone
func NewZoneUpdateLogEntry(systemZoneID uuid.UUID, payload string) *ZoneUpdateLogEntry {
	if payload == "" {
		payload = "{}"
	}
	return &ZoneUpdateLogEntry{
		BaseEntity:   shared.NewBaseEntity(),
		SystemZoneID: systemZoneID,
		Payload:      payload,
	}
}
