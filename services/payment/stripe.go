package payment

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"

	"knead/models"
	"knead/utils"
)

// ErrAlreadyPaid is returned when an intent is requested for a booking whose
// payment already settled.
var ErrAlreadyPaid = errors.New("booking is already paid")

// ErrNotPayable is returned when an intent is requested for a booking that can
// no longer take a payment, such as one already cancelled.
var ErrNotPayable = errors.New("booking is not payable")

// PaymentService creates card-payment intents for bookings. Settlement is
// reported back asynchronously through the Stripe webhook.
type PaymentService interface {
	CreateIntent(ctx context.Context, booking *models.Booking) (*models.PaymentIntentResponse, error)
}

type StripePaymentService struct{}

func NewStripePaymentService() *StripePaymentService {
	return &StripePaymentService{}
}

// CreateIntent opens a payment intent for the booking's total amount. The
// booking reference travels in the intent metadata so the webhook can
// correlate settlement events.
func (s *StripePaymentService) CreateIntent(ctx context.Context, booking *models.Booking) (*models.PaymentIntentResponse, error) {
	if booking.PaymentStatus == models.PaymentPaid {
		return nil, ErrAlreadyPaid
	}
	if booking.Status.Terminal() {
		return nil, fmt.Errorf("%w: booking is %s", ErrNotPayable, booking.Status)
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(math.Round(booking.TotalAmount * 100))),
		Currency: stripe.String(string(stripe.CurrencyGBP)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("booking_id", booking.ID)
	params.AddMetadata("booking_ref", booking.BookingRef)

	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	utils.GetLogger().Info("payment intent created",
		zap.String("bookingRef", booking.BookingRef),
		zap.String("intent", intent.ID),
		zap.Float64("amount", booking.TotalAmount))

	return &models.PaymentIntentResponse{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		Amount:          booking.TotalAmount,
		Currency:        string(stripe.CurrencyGBP),
	}, nil
}
