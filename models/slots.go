package models

// TimeSlot is a bookable start time, derived per request and never stored.
// Value is machine-parseable ("09:30"); Display is for presentation ("9:30 AM").
type TimeSlot struct {
	Value   string `json:"value"`
	Display string `json:"display"`
}

// SlotQuery carries the inputs of an availability computation.
type SlotQuery struct {
	Date            string          `form:"date" binding:"required"`
	TherapistGender TherapistGender `form:"therapistGender" binding:"required"`
	Duration        int             `form:"duration" binding:"required"`
}
