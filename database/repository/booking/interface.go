package bookingRepo

import (
	"context"
	"errors"

	"knead/models"
)

// ErrNotFound is returned when a booking id does not resolve.
var ErrNotFound = errors.New("booking not found")

// ErrWindowTaken is returned by CreateIfFree when the candidate occupied
// window overlaps an existing booking at commit time.
var ErrWindowTaken = errors.New("occupied window overlaps an existing booking")

// BookingRepository is the durable ledger of bookings.
type BookingRepository interface {
	// CreateIfFree atomically re-checks the occupied-window invariant for the
	// booking's (date, therapistGender) partition and inserts the record.
	// Returns ErrWindowTaken if any non-released booking overlaps.
	CreateIfFree(ctx context.Context, booking *models.Booking) error
	// ActiveByDateGender returns bookings whose occupied windows are still
	// held (not cancelled, not completed) for a date and therapist pool.
	ActiveByDateGender(ctx context.Context, date string, gender models.TherapistGender) ([]models.Booking, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	GetByPaymentIntent(ctx context.Context, intentID string) (*models.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	ListPaginated(ctx context.Context, page, limit int, status string) ([]models.Booking, int64, error)
	// Stats aggregates the whole ledger into per-status counts and revenue.
	Stats(ctx context.Context) (*models.BookingStats, error)
	// RevenueByMonth buckets completed-booking revenue by "YYYY-MM".
	RevenueByMonth(ctx context.Context) ([]models.MonthlyRevenue, error)
	UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error
	SetPaymentIntent(ctx context.Context, id, intentID string) error
	MarkPaid(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
