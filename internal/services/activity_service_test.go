package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingStore struct {
	logs      []models.ActivityLogEntry
	staff     []models.StaffEntry
	presence  []models.Presence
	published []models.ActivityLogEntry
	failLogs  bool
}

func (s *recordingStore) AppendLog(_ context.Context, e models.ActivityLogEntry) error {
	if s.failLogs {
		return errors.New("store unavailable")
	}
	s.logs = append(s.logs, e)
	return nil
}

func (s *recordingStore) SyncStaff(_ context.Context, e models.StaffEntry) error {
	s.staff = append(s.staff, e)
	return nil
}

func (s *recordingStore) PublishActivity(_ context.Context, e models.ActivityLogEntry) error {
	s.published = append(s.published, e)
	return nil
}

func (s *recordingStore) SetPresence(_ context.Context, p *models.Presence) error {
	s.presence = append(s.presence, *p)
	return nil
}

func newTestService(store *recordingStore, withOptional bool) (*ActivityService, *Outbox) {
	ob := NewOutbox(16, time.Second, zerolog.Nop())
	cfg := ActivityServiceConfig{
		Outbox: ob,
		Logs:   store,
		Staff:  store,
		Logger: zerolog.Nop(),
	}
	if withOptional {
		cfg.Publisher = store
		cfg.Presence = store
	}
	return NewActivityService(cfg), ob
}

func TestActivityService_RecordOldestFirst(t *testing.T) {
	// ARRANGE
	store := &recordingStore{}
	svc, ob := newTestService(store, true)
	newestFirst := []models.ActivityLogEntry{
		{ID: "2-motion", Type: models.LogTypeMotion},
		{ID: "1-phone", Type: models.LogTypeNFC},
	}

	// ACT
	svc.Record(newestFirst)
	ob.Drain(context.Background())

	// ASSERT
	require.Len(t, store.logs, 2)
	assert.Equal(t, "1-phone", store.logs[0].ID)
	assert.Equal(t, "2-motion", store.logs[1].ID)
	require.Len(t, store.published, 2)
	assert.Equal(t, "1-phone", store.published[0].ID)
}

func TestActivityService_OptionalCollaboratorsSkipped(t *testing.T) {
	store := &recordingStore{}
	svc, ob := newTestService(store, false)

	svc.Record([]models.ActivityLogEntry{{ID: "1-phone", Type: models.LogTypeNFC}})
	svc.PublishPresence([]models.StaffEntry{{ID: "DEVICE-1"}}, time.Now(), true)

	assert.Equal(t, 1, len(ob.queue), "only the store append is queued")
	ob.Drain(context.Background())
	assert.Len(t, store.logs, 1)
	assert.Empty(t, store.published)
	assert.Empty(t, store.presence)
}

func TestActivityService_StoreFailureDoesNotStopOthers(t *testing.T) {
	store := &recordingStore{failLogs: true}
	svc, ob := newTestService(store, true)

	svc.Record([]models.ActivityLogEntry{{ID: "1-phone", Type: models.LogTypeNFC}})
	svc.SyncStaff(models.StaffEntry{ID: "DEVICE-1", Status: models.StatusWorking})
	ob.Drain(context.Background())

	assert.Empty(t, store.logs)
	assert.Len(t, store.published, 1)
	require.Len(t, store.staff, 1)
	assert.Equal(t, models.StatusWorking, store.staff[0].Status)
}

func TestActivityService_PublishPresence(t *testing.T) {
	store := &recordingStore{}
	svc, ob := newTestService(store, true)
	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	roster := []models.StaffEntry{
		{ID: "DEVICE-1", Status: models.StatusIdle},
		{ID: "BOT-1", Status: models.StatusWorking, MotionActive: true},
	}

	svc.PublishPresence(roster, at, true)
	svc.PublishPresence(nil, at, true)
	ob.Drain(context.Background())

	require.Len(t, store.presence, 2)
	assert.Equal(t, models.Presence{StaffID: "DEVICE-1", Status: models.StatusIdle, LastSeen: at, Online: true}, store.presence[0])
	assert.True(t, store.presence[1].MotionActive)
}
