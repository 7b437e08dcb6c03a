package models

import "time"

// Service is a catalogue entry owned by admins, read-only to customers.
// Prices is keyed by duration label ("30min", "60min", ...), mirroring the
// client contract.
type Service struct {
	ID          string             `bson:"id" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`
	Durations   []int              `bson:"durations" json:"duration"` // offered lengths in minutes
	Prices      map[string]float64 `bson:"prices" json:"price"`
	Active      bool               `bson:"active" json:"active"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

// OffersDuration reports whether the service can be booked for the given
// number of minutes.
func (s *Service) OffersDuration(minutes int) bool {
	for _, d := range s.Durations {
		if d == minutes {
			return true
		}
	}
	return false
}
