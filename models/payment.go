package models

// PaymentIntentResponse is returned when a card payment is initiated for a
// booking. ClientSecret is consumed by the hosted card form.
type PaymentIntentResponse struct {
	PaymentIntentID string  `json:"paymentIntentId"`
	ClientSecret    string  `json:"clientSecret"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
}

// ReminderPayload is the asynq task body for appointment reminders.
type ReminderPayload struct {
	BookingID  string `json:"bookingId"`
	BookingRef string `json:"bookingRef"`
	UserID     string `json:"userId"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Title      string `json:"title"`
	Body       string `json:"body"`
}
