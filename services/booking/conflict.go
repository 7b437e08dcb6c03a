package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingRepo "knead/database/repository/booking"
	catalogRepo "knead/database/repository/catalog"
	"knead/models"
	"knead/utils"
)

// AvailableSlots answers a slot query.
func (s *DefaultBookingService) AvailableSlots(ctx context.Context, q models.SlotQuery) ([]models.TimeSlot, error) {
	if err := validDuration(q.Duration); err != nil {
		return nil, err
	}
	if err := validGender(string(q.TherapistGender)); err != nil {
		return nil, err
	}
	return s.Engine.AvailableSlots(ctx, q.Date, q.TherapistGender, q.Duration)
}

// Reserve is the correctness-critical operation: an atomic check-then-insert
// against the ledger. The slot list a client computed moments earlier is
// never trusted; the occupied-window test is re-derived at commit time under
// a lock scoped to the (date, therapistGender) partition. Two simultaneous
// attempts for overlapping windows yield exactly one success and one
// ErrSlotConflict.
func (s *DefaultBookingService) Reserve(ctx context.Context, userID string, req models.BookingRequest) (*models.Booking, error) {
	start, gender, err := s.validateRequest(&req)
	if err != nil {
		return nil, err
	}

	svc, err := s.Catalog.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrNotFound) {
			return nil, fmt.Errorf("%w: service %s", ErrNotFound, req.ServiceID)
		}
		return nil, err
	}
	if !svc.Active {
		return nil, newValidationError("serviceId", "service %q is not currently offered", svc.Title)
	}
	if !svc.OffersDuration(req.Duration) {
		return nil, newValidationError("duration", "service %q is not offered for %d minutes", svc.Title, req.Duration)
	}

	quote, err := PriceQuote(svc, req.Duration, s.FeeRate)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	booking := &models.Booking{
		ID:              uuid.New().String(),
		BookingRef:      utils.NewBookingRef(),
		UserID:          userID,
		ServiceID:       svc.ID,
		Duration:        req.Duration,
		TherapistGender: gender,
		Date:            req.Date,
		Time:            formatClock(start),
		Start:           start,
		End:             start + req.Duration + s.BufferMin,
		Address:         req.Address,
		ServicePrice:    quote.ServicePrice,
		PlatformFee:     quote.PlatformFee,
		TotalAmount:     quote.TotalAmount,
		Status:          models.StatusPending,
		PaymentStatus:   models.PaymentPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	release, err := s.Locker.Acquire(ctx, reservationLockKey(req.Date, string(gender)))
	if err != nil {
		return nil, err
	}
	defer release()

	if err := s.Repo.CreateIfFree(ctx, booking); err != nil {
		if errors.Is(err, bookingRepo.ErrWindowTaken) {
			return nil, ErrSlotConflict
		}
		return nil, fmt.Errorf("reservation failed: %w", err)
	}

	utils.GetLogger().Info("booking reserved",
		zap.String("bookingRef", booking.BookingRef),
		zap.String("date", booking.Date),
		zap.String("time", booking.Time),
		zap.String("therapistGender", string(gender)))
	return booking, nil
}

// validateRequest checks the shape of a reservation before touching the
// ledger: a grid-aligned start time inside the operating window, a known
// duration and therapist pool, a bookable moment (the client's slot list is
// stale by definition), and a service address.
func (s *DefaultBookingService) validateRequest(req *models.BookingRequest) (int, models.TherapistGender, error) {
	day, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return 0, "", newValidationError("date", "must be in YYYY-MM-DD format")
	}
	if err := validDuration(req.Duration); err != nil {
		return 0, "", err
	}
	if err := validGender(req.TherapistGender); err != nil {
		return 0, "", err
	}

	start, err := parseClock(req.Time)
	if err != nil {
		return 0, "", newValidationError("time", "must be in HH:MM format")
	}
	if start < s.OpenMin || start > s.CloseMin {
		return 0, "", newValidationError("time", "outside operating hours %s-%s",
			formatClock(s.OpenMin), formatClock(s.CloseMin))
	}
	if (start-s.OpenMin)%s.TickMin != 0 {
		return 0, "", newValidationError("time", "must fall on the %d-minute grid", s.TickMin)
	}

	// Candidacy is re-derived at commit time, same rules as the slot list.
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if day.Before(today) {
		return 0, "", newValidationError("date", "cannot be in the past")
	}
	if day.Year() == now.Year() && day.YearDay() == now.YearDay() {
		earliest := now.Hour()*60 + now.Minute() + s.LeadMin
		if start < earliest {
			return 0, "", newValidationError("time", "bookings need at least %d minutes notice", s.LeadMin)
		}
	}

	if strings.TrimSpace(req.Address.Street) == "" {
		return 0, "", newValidationError("address.street", "required")
	}
	if strings.TrimSpace(req.Address.City) == "" {
		return 0, "", newValidationError("address.city", "required")
	}

	return start, models.TherapistGender(req.TherapistGender), nil
}

func validDuration(minutes int) error {
	for _, d := range models.ValidDurations {
		if d == minutes {
			return nil
		}
	}
	return newValidationError("duration", "must be one of 30, 60, 90 or 120 minutes")
}

func validGender(g string) error {
	switch models.TherapistGender(g) {
	case models.TherapistMale, models.TherapistFemale:
		return nil
	}
	return newValidationError("therapistGender", "must be %q or %q", models.TherapistMale, models.TherapistFemale)
}
