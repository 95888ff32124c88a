package shipping

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UpdateLogRepository defines the interface for the system zone change log.
// This service only appends from system-admin tooling and reads the log as a
// drift signal; entries are never updated or deleted.
type UpdateLogRepository interface {
	// FindBySystemZoneSince finds the log entries for a system zone created
	// strictly after the given timestamp, oldest first
	FindBySystemZoneSince(ctx context.Context, systemZoneID uuid.UUID, since time.Time) ([]ZoneUpdateLogEntry, error)

	// Append stores a new log entry
	Append(ctx context.Context, entry *ZoneUpdateLogEntry) error
}
