package presence

import (
	"fmt"
	"time"

	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/models"
	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/utils"
)

const (
	DeviceID   = "DEVICE-1"
	DeviceName = "ESP32 Pad"
	DeviceZone = "ESP32 Zone"
)

// Transition is the outcome of comparing one poll against the previous one.
type Transition struct {
	PadChanged    bool
	MotionChanged bool
	Entries       []models.ActivityLogEntry
}

// TransitionEmitter emits activity log entries only when the pad or motion
// state differs from the previous observation. The zero value has no prior
// observation, so the first Observe emits nothing.
type TransitionEmitter struct {
	prevPhoneOnPad   *bool
	prevMotionRecent *bool
}

// Observe compares the current booleans with the previous poll and records
// them as the new baseline, whether or not anything changed.
func (e *TransitionEmitter) Observe(phoneOnPad, motionRecent bool, now time.Time) Transition {
	var t Transition
	ts := utils.FormatLogTime(now)

	if e.prevPhoneOnPad != nil && *e.prevPhoneOnPad != phoneOnPad {
		t.PadChanged = true
		desc := "Phone/tag removed from pad"
		if phoneOnPad {
			desc = "Phone/tag placed on pad"
		}
		t.Entries = append(t.Entries, models.ActivityLogEntry{
			ID:          entryID(now, "phone"),
			Time:        ts,
			Type:        models.LogTypeNFC,
			StaffID:     DeviceID,
			StaffName:   DeviceName,
			Description: desc,
		})
	}

	if e.prevMotionRecent != nil && *e.prevMotionRecent != motionRecent {
		t.MotionChanged = true
		desc := "No motion in last 10s"
		if motionRecent {
			desc = "Recent motion detected"
		}
		t.Entries = append(t.Entries, models.ActivityLogEntry{
			ID:          entryID(now, "motion"),
			Time:        ts,
			Type:        models.LogTypeMotion,
			StaffID:     DeviceID,
			StaffName:   DeviceName,
			Description: desc,
			Location:    DeviceZone,
		})
	}

	e.prevPhoneOnPad = &phoneOnPad
	e.prevMotionRecent = &motionRecent
	return t
}

// Reset forgets the previous observation.
func (e *TransitionEmitter) Reset() {
	e.prevPhoneOnPad = nil
	e.prevMotionRecent = nil
}

// OfflineEntry is the synthetic entry logged when the pad stops answering.
func OfflineEntry(now time.Time) models.ActivityLogEntry {
	return models.ActivityLogEntry{
		ID:          entryID(now, "offline"),
		Time:        utils.FormatLogTime(now),
		Type:        models.LogTypeNFC,
		StaffID:     DeviceID,
		StaffName:   DeviceName,
		Description: "ESP32 unreachable (offline)",
	}
}

func entryID(now time.Time, kind string) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), kind)
}
