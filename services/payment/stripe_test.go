package payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"knead/models"
)

func TestCreateIntentAlreadyPaid(t *testing.T) {
	svc := NewStripePaymentService()
	b := &models.Booking{
		ID:            "b1",
		Status:        models.StatusConfirmed,
		PaymentStatus: models.PaymentPaid,
	}

	_, err := svc.CreateIntent(context.Background(), b)
	assert.ErrorIs(t, err, ErrAlreadyPaid)
}

func TestCreateIntentTerminalBookingRejected(t *testing.T) {
	svc := NewStripePaymentService()

	for _, status := range []models.BookingStatus{models.StatusCancelled, models.StatusCompleted} {
		t.Run(string(status), func(t *testing.T) {
			b := &models.Booking{
				ID:            "b1",
				Status:        status,
				PaymentStatus: models.PaymentPending,
			}
			_, err := svc.CreateIntent(context.Background(), b)
			assert.ErrorIs(t, err, ErrNotPayable)
		})
	}
}
