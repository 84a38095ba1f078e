package services

import (
	"context"
	"time"

	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/models"
	"github.com/rs/zerolog"
)

// LogStore appends activity entries to the persistence collaborator.
type LogStore interface {
	AppendLog(ctx context.Context, entry models.ActivityLogEntry) error
}

// StaffStore upserts staff rows in the persistence collaborator.
type StaffStore interface {
	SyncStaff(ctx context.Context, entry models.StaffEntry) error
}

// EventPublisher fans activity entries out to a message broker.
type EventPublisher interface {
	PublishActivity(ctx context.Context, entry models.ActivityLogEntry) error
}

// PresenceWriter stores live presence records.
type PresenceWriter interface {
	SetPresence(ctx context.Context, presence *models.Presence) error
}

// ActivityService forwards what the poller produces to external
// collaborators through the outbox. Nil collaborators are skipped.
type ActivityService struct {
	outbox    *Outbox
	logs      LogStore
	staff     StaffStore
	publisher EventPublisher
	presence  PresenceWriter
	logger    zerolog.Logger
}

type ActivityServiceConfig struct {
	Outbox    *Outbox
	Logs      LogStore
	Staff     StaffStore
	Publisher EventPublisher
	Presence  PresenceWriter
	Logger    zerolog.Logger
}

func NewActivityService(cfg ActivityServiceConfig) *ActivityService {
	return &ActivityService{
		outbox:    cfg.Outbox,
		logs:      cfg.Logs,
		staff:     cfg.Staff,
		publisher: cfg.Publisher,
		presence:  cfg.Presence,
		logger:    cfg.Logger.With().Str("component", "activity").Logger(),
	}
}

// Record persists and publishes newly emitted log entries, oldest first so
// the store's created_at order matches emission order.
func (s *ActivityService) Record(entries []models.ActivityLogEntry) {
	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		s.logger.Info().
			Str("log_id", entry.ID).
			Str("type", string(entry.Type)).
			Str("staff_id", entry.StaffID).
			Msg(entry.Description)

		if s.logs != nil {
			s.outbox.Enqueue("append_log", func(ctx context.Context) error {
				return s.logs.AppendLog(ctx, entry)
			})
		}
		if s.publisher != nil {
			s.outbox.Enqueue("publish_activity", func(ctx context.Context) error {
				return s.publisher.PublishActivity(ctx, entry)
			})
		}
	}
}

func (s *ActivityService) SyncStaff(entry models.StaffEntry) {
	if s.staff == nil {
		return
	}
	s.outbox.Enqueue("sync_staff", func(ctx context.Context) error {
		return s.staff.SyncStaff(ctx, entry)
	})
}

// PublishPresence writes one live presence record per roster entry.
func (s *ActivityService) PublishPresence(staff []models.StaffEntry, at time.Time, online bool) {
	if s.presence == nil || len(staff) == 0 {
		return
	}
	records := make([]models.Presence, 0, len(staff))
	for _, e := range staff {
		records = append(records, models.Presence{
			StaffID:      e.ID,
			Status:       e.Status,
			MotionActive: e.MotionActive,
			LastSeen:     at,
			Online:       online,
		})
	}
	s.outbox.Enqueue("set_presence", func(ctx context.Context) error {
		for i := range records {
			if err := s.presence.SetPresence(ctx, &records[i]); err != nil {
				return err
			}
		}
		return nil
	})
}
