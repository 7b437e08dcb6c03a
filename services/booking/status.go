package booking

import (
	"context"
	"fmt"

	"knead/models"
)

// statusTransitions is the closed transition table for booking statuses.
// Cancellation edges are absent here: they carry a payment guard and are
// handled by CanCancel.
var statusTransitions = map[models.BookingStatus][]models.BookingStatus{
	models.StatusPending:           {models.StatusConfirmed},
	models.StatusConfirmed:         {models.StatusTherapistAssigned},
	models.StatusTherapistAssigned: {models.StatusEnRoute},
	models.StatusEnRoute:           {models.StatusArrived},
	models.StatusArrived:           {models.StatusInProgress},
	models.StatusInProgress:        {models.StatusCompleted},
}

// cancellableStatuses are the states a booking may be cancelled from,
// subject to the payment guard.
var cancellableStatuses = map[models.BookingStatus]bool{
	models.StatusPending:   true,
	models.StatusConfirmed: true,
}

// ValidStatus reports whether s is a known booking status.
func ValidStatus(s models.BookingStatus) bool {
	switch s {
	case models.StatusPending, models.StatusConfirmed, models.StatusTherapistAssigned,
		models.StatusEnRoute, models.StatusArrived, models.StatusInProgress,
		models.StatusCompleted, models.StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether a booking may move from -> to along the
// progression table.
func CanTransition(from, to models.BookingStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanCancel checks the cancellation guard: only pending or confirmed
// bookings may be cancelled, and never after payment. Applies equally to
// customers and admins.
func CanCancel(b *models.Booking) error {
	if !cancellableStatuses[b.Status] {
		return fmt.Errorf("%w: cannot cancel a booking in status %q", ErrStateTransition, b.Status)
	}
	if b.PaymentStatus == models.PaymentPaid {
		return fmt.Errorf("%w: cannot cancel a paid booking", ErrStateTransition)
	}
	return nil
}

// CanDelete checks the deletion guard: only unpaid, non-terminal bookings
// may be removed from the ledger.
func CanDelete(b *models.Booking) error {
	if b.PaymentStatus != models.PaymentPending {
		return fmt.Errorf("%w: cannot delete a paid booking", ErrStateTransition)
	}
	if b.Status.Terminal() {
		return fmt.Errorf("%w: cannot delete a booking in status %q", ErrStateTransition, b.Status)
	}
	return nil
}

// UpdateStatus applies an admin-driven status change after validating it
// against the transition table.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) (*models.Booking, error) {
	if !ValidStatus(status) {
		return nil, newValidationError("status", "unknown status %q", status)
	}

	b, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if status == models.StatusCancelled {
		if err := CanCancel(b); err != nil {
			return nil, err
		}
	} else if !CanTransition(b.Status, status) {
		return nil, fmt.Errorf("%w: %q -> %q", ErrStateTransition, b.Status, status)
	}

	if err := s.Repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	b.Status = status
	return b, nil
}

// Cancel cancels a booking on behalf of its owner. Cancelling releases the
// booking's occupied window: subsequent slot queries will offer it again.
func (s *DefaultBookingService) Cancel(ctx context.Context, id, userID string) (*models.Booking, error) {
	b, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if userID != "" && b.UserID != userID {
		return nil, ErrNotFound
	}
	if err := CanCancel(b); err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateStatus(ctx, id, models.StatusCancelled); err != nil {
		return nil, err
	}
	b.Status = models.StatusCancelled
	return b, nil
}

// Delete removes an unpaid booking from the ledger.
func (s *DefaultBookingService) Delete(ctx context.Context, id, userID string) error {
	b, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}
	if userID != "" && b.UserID != userID {
		return ErrNotFound
	}
	if err := CanDelete(b); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, id)
}
