package presence

import (
	"testing"

	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviceEntry(t *testing.T) {
	r := models.DeviceReading{PhoneOnPad: true, LastPhoneChangeAgoSec: 42, LastMotionAgoSec: 3}
	e := DeviceEntry(r, Classify(r))

	assert.Equal(t, DeviceID, e.ID)
	assert.Equal(t, models.StatusWorking, e.Status)
	require.NotNil(t, e.LastNFCScan)
	assert.Equal(t, "42s ago", *e.LastNFCScan)
	assert.True(t, e.MotionActive)
	assert.Equal(t, "active now", e.TotalWorkingTime)

	r = models.DeviceReading{PhoneOnPad: false, LastMotionAgoSec: NoMotionSentinel}
	e = DeviceEntry(r, Classify(r))
	assert.Equal(t, "just now", *e.LastNFCScan)
	assert.False(t, e.MotionActive)
	assert.Equal(t, "inactive", e.TotalWorkingTime)
}

func TestMergeRoster_NoBots(t *testing.T) {
	r := models.DeviceReading{PhoneOnPad: true, LastMotionAgoSec: 30}
	staff := MergeRoster(DeviceEntry(r, Classify(r)), nil)

	require.Len(t, staff, 1)
	assert.Equal(t, DeviceID, staff[0].ID)
}

func TestMergeRoster_PreservesBotOrder(t *testing.T) {
	r := models.DeviceReading{PhoneOnPad: false, LastMotionAgoSec: NoMotionSentinel}
	bots := []models.BotEntry{
		{ID: "BOT-3", Name: "Bot 3", NFC: true, Motion: true},
		{ID: "BOT-1", Name: "Bot 1", NFC: true},
		{ID: "BOT-2", Name: "Bot 2"},
	}

	staff := MergeRoster(DeviceEntry(r, Classify(r)), bots)

	require.Len(t, staff, 4)
	assert.Equal(t, []string{DeviceID, "BOT-3", "BOT-1", "BOT-2"},
		[]string{staff[0].ID, staff[1].ID, staff[2].ID, staff[3].ID})
	assert.Equal(t, models.StatusWorking, staff[1].Status)
	assert.Equal(t, models.StatusIdle, staff[2].Status)
	assert.Equal(t, models.StatusNotWorking, staff[3].Status)
	assert.Nil(t, staff[3].LastNFCScan)
}

func TestComputeStats_IdleBotIncrementsIdleOnly(t *testing.T) {
	r := models.DeviceReading{PhoneOnPad: true, LastMotionAgoSec: 2}
	device := DeviceEntry(r, Classify(r))

	before := ComputeStats(MergeRoster(device, nil), BuildRooms(r, nil))

	bots := []models.BotEntry{{ID: "BOT-1", Name: "Bot 1", NFC: true, Motion: false}}
	after := ComputeStats(MergeRoster(device, bots), BuildRooms(r, bots))

	assert.Equal(t, before.IdleStaff+1, after.IdleStaff)
	assert.Equal(t, before.WorkingStaff, after.WorkingStaff)
	assert.Equal(t, before.TotalStaff+1, after.TotalStaff)
}

func TestComputeStats_FullRoster(t *testing.T) {
	r := models.DeviceReading{PhoneOnPad: true, LastMotionAgoSec: 5}
	bots := []models.BotEntry{
		{ID: "BOT-1", Name: "Bot 1", NFC: true, Motion: true},
		{ID: "BOT-2", Name: "Bot 2", NFC: true},
		{ID: "BOT-3", Name: "Bot 3", Motion: true},
		{ID: "BOT-4", Name: "Bot 4"},
	}
	staff := MergeRoster(DeviceEntry(r, Classify(r)), bots)
	rooms := BuildRooms(r, bots)

	stats := ComputeStats(staff, rooms)

	assert.Equal(t, models.AggregateStats{
		TotalStaff:      5,
		PresentStaff:    3,
		WorkingStaff:    2,
		IdleStaff:       1,
		NotWorkingStaff: 2,
		ActiveZones:     3,
		TotalZones:      3,
		TodayScans:      3,
		TodayMotions:    3,
	}, stats)
}

func TestBuildRooms(t *testing.T) {
	r := models.DeviceReading{LastMotionAgoSec: NoMotionSentinel}
	rooms := BuildRooms(r, []models.BotEntry{{Name: "Bot 1", Motion: true}, {Name: "Bot 2"}})

	require.Len(t, rooms, 2)
	assert.Equal(t, models.RoomStatus{Location: DeviceZone, LastMovement: "No recent motion"}, rooms[0])
	assert.Equal(t, "Bot 1 Zone", rooms[1].Location)
	assert.True(t, rooms[1].Occupied)

	rooms = BuildRooms(models.DeviceReading{LastMotionAgoSec: 4}, nil)
	assert.Equal(t, models.RoomStatus{Location: DeviceZone, Occupied: true, LastMovement: "4s ago", MotionCount: 1}, rooms[0])
}

func TestLatestScan(t *testing.T) {
	assert.Equal(t, "Logged In", LatestScan(true, "t").Status)
	assert.Equal(t, "Logged Out", LatestScan(false, "t").Status)
}
