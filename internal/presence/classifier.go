// Package presence turns raw pad readings into presence states, activity
// log entries, pad durations and the merged staff roster. Everything here
// is synchronous and free of I/O; the poller owns the state and calls in.
package presence

import "github.com/apranav1711-byte/Staff-Monitoring-System/internal/models"

const (
	// MotionRecencySec is how recent the last motion must be for the
	// wearer to count as working.
	MotionRecencySec = 10

	// NoMotionSentinel is what the pad reports when it has never seen motion.
	NoMotionSentinel = 999999
)

// MotionRecent reports whether motion was seen within MotionRecencySec.
func MotionRecent(lastMotionAgoSec float64) bool {
	return lastMotionAgoSec <= MotionRecencySec
}

// Classify maps a pad reading to a presence state. A phone off the pad is
// always NotWorking regardless of motion.
func Classify(r models.DeviceReading) models.PresenceState {
	if !r.PhoneOnPad {
		return models.StatusNotWorking
	}
	if MotionRecent(r.LastMotionAgoSec) {
		return models.StatusWorking
	}
	return models.StatusIdle
}

// ClassifyBot applies the same rule to a simulated bot, with NFC standing
// in for the pad and Motion for recent motion.
func ClassifyBot(b models.BotEntry) models.PresenceState {
	switch {
	case !b.NFC:
		return models.StatusNotWorking
	case b.Motion:
		return models.StatusWorking
	default:
		return models.StatusIdle
	}
}
