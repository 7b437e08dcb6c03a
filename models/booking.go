package models

import "time"

type BookingStatus string

const (
	StatusPending           BookingStatus = "pending"
	StatusConfirmed         BookingStatus = "confirmed"
	StatusTherapistAssigned BookingStatus = "therapist_assigned"
	StatusEnRoute           BookingStatus = "en_route"
	StatusArrived           BookingStatus = "arrived"
	StatusInProgress        BookingStatus = "in_progress"
	StatusCompleted         BookingStatus = "completed"
	StatusCancelled         BookingStatus = "cancelled"
)

// Terminal reports whether the status admits no further transitions.
func (s BookingStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

type TherapistGender string

const (
	TherapistMale   TherapistGender = "male"
	TherapistFemale TherapistGender = "female"
)

// ValidDurations are the bookable service lengths in minutes.
var ValidDurations = []int{30, 60, 90, 120}

// Address is where the therapist is sent.
type Address struct {
	Street       string `bson:"street" json:"street"`
	City         string `bson:"city" json:"city"`
	PostalCode   string `bson:"postal_code" json:"postalCode"`
	Instructions string `bson:"instructions,omitempty" json:"instructions,omitempty"`
}

// Booking represents a booking record in the ledger.
type Booking struct {
	ID              string          `bson:"id" json:"_id"`                    // storage identifier (UUID)
	BookingRef      string          `bson:"booking_ref" json:"bookingId"`     // human-readable reference, e.g. "KN-3F8K2M"
	UserID          string          `bson:"user_id" json:"userId"`
	ServiceID       string          `bson:"service_id" json:"serviceId"`
	Duration        int             `bson:"duration" json:"duration"`         // minutes
	TherapistGender TherapistGender `bson:"therapist_gender" json:"therapistGender"`
	Date            string          `bson:"date" json:"date"`                 // "YYYY-MM-DD"
	Time            string          `bson:"time" json:"time"`                 // "HH:MM", start of the appointment
	Start           int             `bson:"start" json:"start"`               // minutes from midnight
	End             int             `bson:"end" json:"end"`                   // occupied window end, includes travel buffer
	Address         Address         `bson:"address" json:"address"`
	ServicePrice    float64         `bson:"service_price" json:"servicePrice"`
	PlatformFee     float64         `bson:"platform_fee" json:"platformFee"`
	TotalAmount     float64         `bson:"total_amount" json:"totalAmount"`
	Status          BookingStatus   `bson:"status" json:"status"`
	PaymentStatus   PaymentStatus   `bson:"payment_status" json:"paymentStatus"`
	PaymentIntentID string          `bson:"payment_intent_id,omitempty" json:"-"`
	CreatedAt       time.Time       `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time       `bson:"updated_at" json:"updatedAt"`
}

// BookingRequest is the payload for creating a booking.
type BookingRequest struct {
	ServiceID       string  `json:"serviceId" binding:"required"`
	Duration        int     `json:"duration" binding:"required"`
	Date            string  `json:"date" binding:"required"`
	Time            string  `json:"time" binding:"required"`
	TherapistGender string  `json:"therapistGender" binding:"required"`
	Address         Address `json:"address" binding:"required"`
	PreferredBranch string  `json:"preferredBranch,omitempty"`
}
