package models

// DeviceReading is one status payload from the ESP32 pad.
type DeviceReading struct {
	PhoneOnPad            bool    `json:"phoneOnPad"`
	LastPhoneChangeAgoSec float64 `json:"lastPhoneChangeAgoSec"`
	LastMotionAgoSec      float64 `json:"lastMotionAgoSec"`
}
