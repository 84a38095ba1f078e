package models

import "time"

type PresenceState string

const (
	StatusWorking    PresenceState = "working"
	StatusIdle       PresenceState = "idle"
	StatusPresent    PresenceState = "present"
	StatusNotWorking PresenceState = "not_working"
)

// Label is the human readable form shown on the dashboard.
func (s PresenceState) Label() string {
	switch s {
	case StatusWorking:
		return "Working"
	case StatusIdle:
		return "Idle"
	case StatusPresent:
		return "Present"
	default:
		return "Not Working"
	}
}

// OnPad reports whether the state implies a phone/tag on the pad.
func (s PresenceState) OnPad() bool {
	return s == StatusWorking || s == StatusIdle || s == StatusPresent
}

// Presence is the live presence record kept in Redis for one staff entry.
type Presence struct {
	StaffID      string        `json:"staffId"`
	Status       PresenceState `json:"status"`
	MotionActive bool          `json:"motionActive"`
	LastSeen     time.Time     `json:"lastSeen"`
	Online       bool          `json:"online"`
}
