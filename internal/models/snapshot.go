package models

import "time"

type ScanEvent struct {
	Event     string `json:"event"`
	StaffID   string `json:"staff_id"`
	StaffName string `json:"staff_name"`
	Timestamp string `json:"timestamp"`
	Status    string `json:"status"`
}

type RoomStatus struct {
	Location     string `json:"location"`
	Occupied     bool   `json:"occupied"`
	LastMovement string `json:"lastMovement"`
	MotionCount  int    `json:"motionCount"`
}

type PadDurations struct {
	OnSeconds  int64 `json:"onSeconds"`
	OffSeconds int64 `json:"offSeconds"`
}

type AggregateStats struct {
	TotalStaff      int `json:"totalStaff"`
	PresentStaff    int `json:"presentStaff"`
	WorkingStaff    int `json:"workingStaff"`
	IdleStaff       int `json:"idleStaff"`
	NotWorkingStaff int `json:"notWorkingStaff"`
	ActiveZones     int `json:"activeZones"`
	TotalZones      int `json:"totalZones"`
	// TodayScans and TodayMotions count entries currently on the pad and
	// currently moving, not daily totals.
	TodayScans   int `json:"todayScans"`
	TodayMotions int `json:"todayMotions"`
}

// Snapshot is everything the dashboard UI renders for one tick.
type Snapshot struct {
	LatestScan    *ScanEvent         `json:"latestScan"`
	RoomStatuses  []RoomStatus       `json:"roomStatuses"`
	Staff         []StaffEntry       `json:"staff"`
	Logs          []ActivityLogEntry `json:"logs"`
	MotionHistory []ActivityLogEntry `json:"motionHistory"`
	NFCHistory    []ActivityLogEntry `json:"nfcHistory"`
	PadDurations  PadDurations       `json:"padDurations"`
	Stats         AggregateStats     `json:"stats"`
	Bots          []BotEntry         `json:"bots"`
	IsLoading     bool               `json:"isLoading"`
	IsOnline      bool               `json:"isOnline"`
	LastUpdate    time.Time          `json:"lastUpdate"`
}
