package models

type LogType string

const (
	LogTypeNFC    LogType = "NFC"
	LogTypeMotion LogType = "MOTION"
)

type ActivityLogEntry struct {
	ID          string  `json:"id"`
	Time        string  `json:"time"`
	Type        LogType `json:"type"`
	StaffID     string  `json:"staffId"`
	StaffName   string  `json:"staffName"`
	Description string  `json:"description"`
	Location    string  `json:"location,omitempty"`
}
