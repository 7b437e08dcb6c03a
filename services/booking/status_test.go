package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"knead/models"
)

func seedBooking(repo *memoryRepo, status models.BookingStatus, pay models.PaymentStatus) models.Booking {
	b := models.Booking{
		ID:              "b1",
		BookingRef:      "KN-TEST01",
		UserID:          "user-1",
		Date:            "2025-06-01",
		TherapistGender: models.TherapistMale,
		Start:           9 * 60,
		End:             10*60 + 15,
		Status:          status,
		PaymentStatus:   pay,
	}
	repo.seed(b)
	return b
}

func TestCanTransitionTable(t *testing.T) {
	allowed := []struct{ from, to models.BookingStatus }{
		{models.StatusPending, models.StatusConfirmed},
		{models.StatusConfirmed, models.StatusTherapistAssigned},
		{models.StatusTherapistAssigned, models.StatusEnRoute},
		{models.StatusEnRoute, models.StatusArrived},
		{models.StatusArrived, models.StatusInProgress},
		{models.StatusInProgress, models.StatusCompleted},
	}
	for _, tr := range allowed {
		assert.True(t, CanTransition(tr.from, tr.to), "%s -> %s", tr.from, tr.to)
	}

	denied := []struct{ from, to models.BookingStatus }{
		{models.StatusPending, models.StatusTherapistAssigned}, // skipping a step
		{models.StatusConfirmed, models.StatusPending},         // backwards
		{models.StatusCompleted, models.StatusInProgress},      // out of terminal
		{models.StatusCancelled, models.StatusConfirmed},
		{models.StatusPending, models.StatusPending}, // self-transition
	}
	for _, tr := range denied {
		assert.False(t, CanTransition(tr.from, tr.to), "%s -> %s", tr.from, tr.to)
	}
}

func TestUpdateStatusHappyPath(t *testing.T) {
	repo := newMemoryRepo()
	seedBooking(repo, models.StatusPending, models.PaymentPaid)
	svc := testService(repo)

	b, err := svc.UpdateStatus(context.Background(), "b1", models.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, b.Status)

	stored, err := repo.GetByID(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, stored.Status)
}

func TestUpdateStatusRejectsInvalidMove(t *testing.T) {
	repo := newMemoryRepo()
	seedBooking(repo, models.StatusPending, models.PaymentPending)
	svc := testService(repo)

	_, err := svc.UpdateStatus(context.Background(), "b1", models.StatusInProgress)
	assert.ErrorIs(t, err, ErrStateTransition)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	repo := newMemoryRepo()
	seedBooking(repo, models.StatusPending, models.PaymentPending)
	svc := testService(repo)

	_, err := svc.UpdateStatus(context.Background(), "b1", "shipped")
	assert.True(t, IsValidation(err))
}

func TestCancelPendingUnpaid(t *testing.T) {
	repo := newMemoryRepo()
	seedBooking(repo, models.StatusPending, models.PaymentPending)
	svc := testService(repo)

	b, err := svc.Cancel(context.Background(), "b1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, b.Status)
}

func TestCancelPaidBookingRejected(t *testing.T) {
	repo := newMemoryRepo()
	seedBooking(repo, models.StatusConfirmed, models.PaymentPaid)
	svc := testService(repo)

	_, err := svc.Cancel(context.Background(), "b1", "user-1")
	assert.ErrorIs(t, err, ErrStateTransition)

	// The guard must leave the booking untouched.
	stored, err := repo.GetByID(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, stored.Status)
	assert.Equal(t, models.PaymentPaid, stored.PaymentStatus)
}

func TestCancelPaidRejectedForAdminToo(t *testing.T) {
	repo := newMemoryRepo()
	seedBooking(repo, models.StatusConfirmed, models.PaymentPaid)
	svc := testService(repo)

	// Empty userID is the admin path; the payment guard still applies.
	_, err := svc.UpdateStatus(context.Background(), "b1", models.StatusCancelled)
	assert.ErrorIs(t, err, ErrStateTransition)
}

func TestCancelInProgressRejected(t *testing.T) {
	repo := newMemoryRepo()
	seedBooking(repo, models.StatusInProgress, models.PaymentPaid)
	svc := testService(repo)

	_, err := svc.Cancel(context.Background(), "b1", "user-1")
	assert.ErrorIs(t, err, ErrStateTransition)
}

func TestCancelOtherUsersBookingHidden(t *testing.T) {
	repo := newMemoryRepo()
	seedBooking(repo, models.StatusPending, models.PaymentPending)
	svc := testService(repo)

	_, err := svc.Cancel(context.Background(), "b1", "someone-else")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUnpaidPending(t *testing.T) {
	repo := newMemoryRepo()
	seedBooking(repo, models.StatusPending, models.PaymentPending)
	svc := testService(repo)

	require.NoError(t, svc.Delete(context.Background(), "b1", "user-1"))
	_, err := repo.GetByID(context.Background(), "b1")
	assert.Error(t, err)
}

func TestDeletePaidRejected(t *testing.T) {
	repo := newMemoryRepo()
	seedBooking(repo, models.StatusConfirmed, models.PaymentPaid)
	svc := testService(repo)

	err := svc.Delete(context.Background(), "b1", "user-1")
	assert.ErrorIs(t, err, ErrStateTransition)
}

func TestDeleteTerminalRejected(t *testing.T) {
	repo := newMemoryRepo()
	seedBooking(repo, models.StatusCancelled, models.PaymentPending)
	svc := testService(repo)

	err := svc.Delete(context.Background(), "b1", "")
	assert.ErrorIs(t, err, ErrStateTransition)
}

func TestConfirmPaymentIdempotent(t *testing.T) {
	repo := newMemoryRepo()
	b := seedBooking(repo, models.StatusPending, models.PaymentPending)
	svc := testService(repo)
	ctx := context.Background()

	require.NoError(t, svc.AttachPaymentIntent(ctx, b.ID, "pi_123"))

	got, err := svc.ConfirmPayment(ctx, "pi_123")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, got.PaymentStatus)
	// Payment does not advance the status; that is an admin decision.
	assert.Equal(t, models.StatusPending, got.Status)

	// A replayed webhook event is acknowledged without error.
	again, err := svc.ConfirmPayment(ctx, "pi_123")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, again.PaymentStatus)
}

func TestConfirmPaymentCancelledBookingRejected(t *testing.T) {
	repo := newMemoryRepo()
	b := seedBooking(repo, models.StatusPending, models.PaymentPending)
	svc := testService(repo)
	ctx := context.Background()

	require.NoError(t, svc.AttachPaymentIntent(ctx, b.ID, "pi_123"))
	_, err := svc.Cancel(ctx, b.ID, b.UserID)
	require.NoError(t, err)

	// A settlement event arriving after cancellation must not mark it paid.
	_, err = svc.ConfirmPayment(ctx, "pi_123")
	assert.ErrorIs(t, err, ErrStateTransition)

	stored, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPending, stored.PaymentStatus)
}

func TestConfirmPaymentUnknownIntent(t *testing.T) {
	svc := testService(newMemoryRepo())
	_, err := svc.ConfirmPayment(context.Background(), "pi_unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}
