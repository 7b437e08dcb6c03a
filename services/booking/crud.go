package booking

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	bookingRepo "knead/database/repository/booking"
	"knead/models"
	"knead/utils"
)

// getBooking fetches a booking, translating the repository's not-found.
func (s *DefaultBookingService) getBooking(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// GetByID returns a booking. When userID is non-empty the caller is a
// customer and may only see their own bookings; admins pass "".
func (s *DefaultBookingService) GetByID(ctx context.Context, id, userID string) (*models.Booking, error) {
	b, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if userID != "" && b.UserID != userID {
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *DefaultBookingService) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	return s.Repo.ListByUser(ctx, userID)
}

func (s *DefaultBookingService) ListPaginated(ctx context.Context, page, limit int, status string) ([]models.Booking, int64, error) {
	return s.Repo.ListPaginated(ctx, page, limit, status)
}

func (s *DefaultBookingService) Stats(ctx context.Context) (*models.BookingStats, error) {
	return s.Repo.Stats(ctx)
}

func (s *DefaultBookingService) RevenueByMonth(ctx context.Context) ([]models.MonthlyRevenue, error) {
	return s.Repo.RevenueByMonth(ctx)
}

// AttachPaymentIntent records the payment intent opened for a booking so the
// webhook can correlate the settlement event.
func (s *DefaultBookingService) AttachPaymentIntent(ctx context.Context, id, intentID string) error {
	if err := s.Repo.SetPaymentIntent(ctx, id, intentID); err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// ConfirmPayment records a successful card payment reported by the payment
// webhook: paymentStatus becomes paid; the booking itself stays pending
// until an admin confirms it.
func (s *DefaultBookingService) ConfirmPayment(ctx context.Context, paymentIntentID string) (*models.Booking, error) {
	b, err := s.Repo.GetByPaymentIntent(ctx, paymentIntentID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.PaymentStatus == models.PaymentPaid {
		// Replayed webhook event; nothing to do.
		return b, nil
	}
	if b.Status.Terminal() {
		return nil, fmt.Errorf("%w: cannot record payment for a booking in status %q", ErrStateTransition, b.Status)
	}
	if err := s.Repo.MarkPaid(ctx, b.ID); err != nil {
		return nil, err
	}
	b.PaymentStatus = models.PaymentPaid

	utils.GetLogger().Info("booking payment confirmed",
		zap.String("bookingRef", b.BookingRef),
		zap.String("paymentIntent", paymentIntentID))
	return b, nil
}
