// Package poller drives the pad polling loop. Each tick fetches the pad
// status, derives presence, emits transition logs and rebuilds the merged
// roster; a failed tick switches the dashboard to offline.
package poller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/bots"
	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/models"
	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/presence"
	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/utils"
	"github.com/rs/zerolog"
)

const (
	DefaultPollInterval   = 2 * time.Second
	DefaultRequestTimeout = 5 * time.Second
)

// DeviceSource fetches one pad reading.
type DeviceSource interface {
	FetchStatus(ctx context.Context) (*models.DeviceReading, error)
}

// ActivitySink receives what each poll produces. Implementations must not
// block; *services.ActivityService queues everything on its outbox.
type ActivitySink interface {
	Record(entries []models.ActivityLogEntry)
	SyncStaff(entry models.StaffEntry)
	PublishPresence(staff []models.StaffEntry, at time.Time, online bool)
}

// HistoryLoader provides the cold-start state kept by the store.
type HistoryLoader interface {
	ListBots(ctx context.Context) ([]models.BotEntry, error)
	ListLogs(ctx context.Context) ([]models.ActivityLogEntry, error)
}

type Config struct {
	Device         DeviceSource
	Bots           *bots.Registry
	Sink           ActivitySink
	PollInterval   time.Duration
	RequestTimeout time.Duration
	Logger         zerolog.Logger

	// Now overrides the wall clock in tests.
	Now func() time.Time
}

type Orchestrator struct {
	device   DeviceSource
	bots     *bots.Registry
	sink     ActivitySink
	interval time.Duration
	timeout  time.Duration
	now      func() time.Time
	logger   zerolog.Logger

	mu        sync.RWMutex
	state     *PollerState
	started   uint64
	committed uint64
}

func New(cfg Config) *Orchestrator {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Sink == nil {
		cfg.Sink = nopSink{}
	}
	if cfg.Bots == nil {
		cfg.Bots = bots.NewRegistry(nil, nil, cfg.Logger)
	}

	return &Orchestrator{
		device:   cfg.Device,
		bots:     cfg.Bots,
		sink:     cfg.Sink,
		interval: cfg.PollInterval,
		timeout:  cfg.RequestTimeout,
		now:      cfg.Now,
		logger:   cfg.Logger.With().Str("component", "poller").Logger(),
		state:    newPollerState(cfg.Now()),
	}
}

// Bootstrap loads bots and recent logs from the store. Failures leave the
// registry or log window empty and are not returned.
func (o *Orchestrator) Bootstrap(ctx context.Context, loader HistoryLoader) {
	if loader == nil {
		return
	}

	if stored, err := loader.ListBots(ctx); err != nil {
		o.logger.Warn().Err(err).Msg("failed to load bots from store")
	} else {
		o.bots.Load(stored)
		o.logger.Info().Int("count", len(stored)).Msg("loaded bots from store")
	}

	if history, err := loader.ListLogs(ctx); err != nil {
		o.logger.Warn().Err(err).Msg("failed to load activity history from store")
	} else {
		o.mu.Lock()
		o.state.logs.Seed(history)
		o.mu.Unlock()
	}
}

// Start polls immediately and then every PollInterval until ctx is
// cancelled. It blocks.
func (o *Orchestrator) Start(ctx context.Context) error {
	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	o.logger.Info().Dur("interval", o.interval).Dur("timeout", o.timeout).Msg("poller started")
	o.Poll(ctx)

	for {
		select {
		case <-ctx.Done():
			o.logger.Info().Msg("poller stopped")
			return nil
		case <-ticker.C:
			o.Poll(ctx)
		}
	}
}

// Poll runs one tick. Transport failures are absorbed into the offline
// state; the only error returned is the parent context's.
func (o *Orchestrator) Poll(ctx context.Context) error {
	o.mu.Lock()
	o.started++
	seq := o.started
	o.mu.Unlock()

	fetchCtx, cancel := context.WithTimeout(ctx, o.timeout)
	reading, err := o.device.FetchStatus(fetchCtx)
	cancel()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	now := o.now()

	o.mu.Lock()
	if seq <= o.committed {
		o.mu.Unlock()
		o.logger.Debug().Uint64("seq", seq).Msg("discarding stale poll result")
		return nil
	}
	o.committed = seq

	var out tickOutput
	if err != nil {
		out = o.markOfflineLocked(now, err)
	} else {
		out = o.applyReadingLocked(*reading, now)
	}
	o.mu.Unlock()

	o.dispatch(out, now)
	return nil
}

// Refetch runs an out-of-band poll.
func (o *Orchestrator) Refetch(ctx context.Context) (models.Snapshot, error) {
	if err := o.Poll(ctx); err != nil {
		return models.Snapshot{}, err
	}
	return o.Snapshot(), nil
}

// tickOutput is what has to leave the lock for the sink.
type tickOutput struct {
	entries  []models.ActivityLogEntry
	sync     *models.StaffEntry
	presence []models.StaffEntry
	online   bool
}

func (o *Orchestrator) applyReadingLocked(r models.DeviceReading, now time.Time) tickOutput {
	s := o.state
	motionRecent := presence.MotionRecent(r.LastMotionAgoSec)
	status := presence.Classify(r)

	s.durations.Tick(now, r.PhoneOnPad)

	tr := s.transitions.Observe(r.PhoneOnPad, motionRecent, now)
	if tr.PadChanged {
		s.durations.Anchor(now)
	}
	s.logs.Prepend(tr.Entries...)

	s.lastReading = &r
	s.latestScan = presence.LatestScan(r.PhoneOnPad, utils.FormatLogTime(now))
	o.rebuildLocked()

	if !s.isOnline {
		o.logger.Info().Str("status", string(status)).Msg("device online")
	}
	s.isOnline = true
	s.isLoading = false
	s.lastUpdate = now

	out := tickOutput{
		entries:  tr.Entries,
		presence: s.staff,
		online:   true,
	}
	if status != s.lastSynced {
		device := s.staff[0]
		out.sync = &device
		s.lastSynced = status
	}
	return out
}

func (o *Orchestrator) markOfflineLocked(now time.Time, cause error) tickOutput {
	s := o.state
	wasUp := s.isOnline || s.isLoading

	s.clearLive()
	s.isOnline = false
	s.isLoading = false
	s.lastUpdate = now

	event := o.logger.Debug()
	if wasUp {
		event = o.logger.Warn()
	}
	event = event.Err(cause)
	if errors.Is(cause, context.DeadlineExceeded) {
		event = event.Dur("timeout", o.timeout)
	}
	event.Msg("device unreachable, switching to offline")

	// Every failed poll is logged; the window cap bounds a long outage.
	entry := presence.OfflineEntry(now)
	s.logs.Prepend(entry)
	return tickOutput{entries: []models.ActivityLogEntry{entry}}
}

// rebuildLocked recomputes roster, zones and stats from the last reading
// and the current bots.
func (o *Orchestrator) rebuildLocked() {
	s := o.state
	if s.lastReading == nil {
		return
	}
	r := *s.lastReading
	current := o.bots.List()

	device := presence.DeviceEntry(r, presence.Classify(r))
	s.staff = presence.MergeRoster(device, current)
	s.rooms = presence.BuildRooms(r, current)
	s.stats = presence.ComputeStats(s.staff, s.rooms)
}

func (o *Orchestrator) dispatch(out tickOutput, now time.Time) {
	if len(out.entries) > 0 {
		o.sink.Record(out.entries)
	}
	if out.sync != nil {
		o.sink.SyncStaff(*out.sync)
	}
	if len(out.presence) > 0 {
		o.sink.PublishPresence(out.presence, now, out.online)
	}
}

// Snapshot returns a copy of the current UI state.
func (o *Orchestrator) Snapshot() models.Snapshot {
	o.mu.RLock()
	defer o.mu.RUnlock()

	s := o.state
	snap := models.Snapshot{
		RoomStatuses:  append([]models.RoomStatus{}, s.rooms...),
		Staff:         append([]models.StaffEntry{}, s.staff...),
		Logs:          s.logs.Entries(),
		MotionHistory: s.logs.ByType(models.LogTypeMotion),
		NFCHistory:    s.logs.ByType(models.LogTypeNFC),
		PadDurations:  s.durations.Counters(),
		Stats:         s.stats,
		Bots:          o.bots.List(),
		IsLoading:     s.isLoading,
		IsOnline:      s.isOnline,
		LastUpdate:    s.lastUpdate,
	}
	if s.latestScan != nil {
		scan := *s.latestScan
		snap.LatestScan = &scan
	}
	return snap
}

func (o *Orchestrator) Bots() []models.BotEntry {
	return o.bots.List()
}

func (o *Orchestrator) AddBot(name, avatar string) (models.BotEntry, error) {
	bot, err := o.bots.Add(name, avatar)
	if err != nil {
		return bot, err
	}
	o.refreshRoster()
	return bot, nil
}

func (o *Orchestrator) ToggleBot(id string, field bots.Field) (models.BotEntry, error) {
	bot, err := o.bots.Toggle(id, field)
	if err != nil {
		return bot, err
	}
	o.refreshRoster()
	return bot, nil
}

func (o *Orchestrator) ResetBot(id string) (models.BotEntry, error) {
	bot, err := o.bots.Reset(id)
	if err != nil {
		return bot, err
	}
	o.refreshRoster()
	return bot, nil
}

func (o *Orchestrator) DeleteBot(id string) error {
	if err := o.bots.Delete(id); err != nil {
		return err
	}
	o.refreshRoster()
	return nil
}

// refreshRoster makes bot changes visible before the next tick. While
// offline the roster stays empty.
func (o *Orchestrator) refreshRoster() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.state.isOnline {
		return
	}
	o.rebuildLocked()
}

type nopSink struct{}

func (nopSink) Record([]models.ActivityLogEntry)                     {}
func (nopSink) SyncStaff(models.StaffEntry)                          {}
func (nopSink) PublishPresence([]models.StaffEntry, time.Time, bool) {}
