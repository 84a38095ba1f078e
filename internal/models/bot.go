package models

// BotEntry is a simulated staff member whose NFC and motion inputs are
// toggled by hand.
type BotEntry struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	NFC        bool   `json:"nfc"`
	Motion     bool   `json:"motion"`
	Avatar     string `json:"avatar"`
}
