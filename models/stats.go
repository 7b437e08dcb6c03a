package models

// BookingStats is the admin read model over the booking ledger. Revenue
// counts completed bookings only.
type BookingStats struct {
	TotalBookings     int64   `json:"totalBookings"`
	PendingBookings   int64   `json:"pendingBookings"`
	ConfirmedBookings int64   `json:"confirmedBookings"`
	CompletedBookings int64   `json:"completedBookings"`
	CancelledBookings int64   `json:"cancelledBookings"`
	TotalRevenue      float64 `json:"totalRevenue"`
}

// MonthlyRevenue is one month's completed-booking revenue.
type MonthlyRevenue struct {
	Month   string  `json:"month" bson:"_id"` // "YYYY-MM"
	Revenue float64 `json:"revenue" bson:"revenue"`
}
