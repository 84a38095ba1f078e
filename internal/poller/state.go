package poller

import (
	"time"

	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/models"
	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/presence"
)

// PollerState is everything the orchestrator derives between polls. It is
// only touched with Orchestrator.mu held.
type PollerState struct {
	durations   presence.DurationAccumulator
	transitions presence.TransitionEmitter
	logs        presence.LogBuffer

	lastReading *models.DeviceReading
	latestScan  *models.ScanEvent
	rooms       []models.RoomStatus
	staff       []models.StaffEntry
	stats       models.AggregateStats

	// lastSynced is the device status last sent to the store; empty
	// forces a sync on the next successful poll.
	lastSynced models.PresenceState

	isLoading  bool
	isOnline   bool
	lastUpdate time.Time
}

func newPollerState(now time.Time) *PollerState {
	return &PollerState{
		isLoading:  true,
		lastUpdate: now,
	}
}

// clearLive drops everything derived from the pad, leaving logs alone.
func (s *PollerState) clearLive() {
	s.lastReading = nil
	s.latestScan = nil
	s.rooms = nil
	s.staff = nil
	s.stats = models.AggregateStats{}
	s.lastSynced = ""
	s.durations.Reset()
	s.transitions.Reset()
}
