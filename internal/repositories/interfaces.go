package repositories

import (
	"context"

	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/models"
)

type StaffRepository interface {
	List(ctx context.Context) ([]models.StaffEntry, error)
	GetByID(ctx context.Context, id string) (*models.StaffEntry, error)
	Upsert(ctx context.Context, staff *models.StaffEntry) error
	Count(ctx context.Context) (int, error)
}

type ActivityLogRepository interface {
	Append(ctx context.Context, entry *models.ActivityLogEntry) error
	ListRecent(ctx context.Context, limit int) ([]models.ActivityLogEntry, error)
}

type BotRepository interface {
	List(ctx context.Context) ([]models.BotEntry, error)
	Upsert(ctx context.Context, bot *models.BotEntry) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type PresenceRepository interface {
	SetPresence(ctx context.Context, presence *models.Presence) error
	GetPresence(ctx context.Context, staffID string) (*models.Presence, error)
	DeletePresence(ctx context.Context, staffID string) error
	GetBulkPresence(ctx context.Context, staffIDs []string) (map[string]models.Presence, error)
}
