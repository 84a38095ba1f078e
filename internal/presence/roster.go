package presence

import (
	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/models"
	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/utils"
)

const deviceAvatar = "https://api.dicebear.com/7.x/avataaars/svg?seed=ESP32"

// DeviceEntry builds the staff row for the physical pad.
func DeviceEntry(r models.DeviceReading, status models.PresenceState) models.StaffEntry {
	lastScan := "just now"
	if r.LastPhoneChangeAgoSec != 0 {
		lastScan = utils.FormatAgo(r.LastPhoneChangeAgoSec)
	}
	working := "inactive"
	if r.PhoneOnPad {
		working = "active now"
	}

	return models.StaffEntry{
		ID:               DeviceID,
		Name:             DeviceName,
		Department:       "IoT",
		SeatNumber:       "Seat 01",
		Email:            "esp32@local",
		Phone:            "N/A",
		Avatar:           deviceAvatar,
		Status:           status,
		LastNFCScan:      &lastScan,
		MotionActive:     MotionRecent(r.LastMotionAgoSec),
		TotalWorkingTime: working,
	}
}

// BotStaffEntry materializes a bot as a staff row.
func BotStaffEntry(b models.BotEntry) models.StaffEntry {
	status := ClassifyBot(b)

	var lastScan *string
	if b.NFC {
		s := "just now"
		lastScan = &s
	}
	working := "inactive"
	if status == models.StatusWorking {
		working = "active now"
	}

	return models.StaffEntry{
		ID:               b.ID,
		Name:             b.Name,
		Department:       b.Department,
		Phone:            "N/A",
		Avatar:           b.Avatar,
		Status:           status,
		LastNFCScan:      lastScan,
		MotionActive:     b.Motion,
		TotalWorkingTime: working,
	}
}

// MergeRoster returns the device row followed by one row per bot, in
// registry order.
func MergeRoster(device models.StaffEntry, bots []models.BotEntry) []models.StaffEntry {
	staff := make([]models.StaffEntry, 0, len(bots)+1)
	staff = append(staff, device)
	for _, b := range bots {
		staff = append(staff, BotStaffEntry(b))
	}
	return staff
}

// BuildRooms returns the physical zone followed by one virtual zone for
// every bot with motion on.
func BuildRooms(r models.DeviceReading, bots []models.BotEntry) []models.RoomStatus {
	recent := MotionRecent(r.LastMotionAgoSec)
	lastMovement := "No recent motion"
	if r.LastMotionAgoSec != NoMotionSentinel {
		lastMovement = utils.FormatAgo(r.LastMotionAgoSec)
	}
	count := 0
	if recent {
		count = 1
	}

	rooms := []models.RoomStatus{{
		Location:     DeviceZone,
		Occupied:     recent,
		LastMovement: lastMovement,
		MotionCount:  count,
	}}
	for _, b := range bots {
		if !b.Motion {
			continue
		}
		rooms = append(rooms, models.RoomStatus{
			Location:     b.Name + " Zone",
			Occupied:     true,
			LastMovement: "just now",
			MotionCount:  1,
		})
	}
	return rooms
}

// ComputeStats recounts everything from the merged roster and zones.
func ComputeStats(staff []models.StaffEntry, rooms []models.RoomStatus) models.AggregateStats {
	stats := models.AggregateStats{
		TotalStaff: len(staff),
		TotalZones: len(rooms),
	}
	for _, s := range staff {
		switch s.Status {
		case models.StatusWorking:
			stats.WorkingStaff++
		case models.StatusIdle:
			stats.IdleStaff++
		case models.StatusNotWorking:
			stats.NotWorkingStaff++
		}
		if s.Status.OnPad() {
			stats.PresentStaff++
			stats.TodayScans++
		}
		if s.MotionActive {
			stats.TodayMotions++
		}
	}
	for _, r := range rooms {
		if r.Occupied {
			stats.ActiveZones++
		}
	}
	return stats
}

// LatestScan is the live NFC card for the pad.
func LatestScan(phoneOnPad bool, timestamp string) *models.ScanEvent {
	status := "Logged Out"
	if phoneOnPad {
		status = "Logged In"
	}
	return &models.ScanEvent{
		Event:     string(models.LogTypeNFC),
		StaffID:   DeviceID,
		StaffName: DeviceName,
		Timestamp: timestamp,
		Status:    status,
	}
}
