package models

type StaffEntry struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Department       string        `json:"department"`
	SeatNumber       string        `json:"seatNumber,omitempty"`
	Email            string        `json:"email"`
	Phone            string        `json:"phone"`
	Avatar           string        `json:"avatar"`
	Status           PresenceState `json:"status"`
	LastNFCScan      *string       `json:"lastNFCScan"`
	MotionActive     bool          `json:"motionActivity"`
	TotalWorkingTime string        `json:"totalWorkingTime"`
}
