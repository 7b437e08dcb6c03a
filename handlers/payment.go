package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"

	"knead/config"
	"knead/services/booking"
	"knead/services/tasks"
	"knead/utils"
)

// PaymentWebhookHandler receives settlement events from Stripe. Signature
// verification is the authentication; the route is public.
type PaymentWebhookHandler struct {
	Service   booking.BookingService
	Reminders *tasks.ReminderScheduler
	Logger    *zap.Logger
}

func NewPaymentWebhookHandler(svc booking.BookingService, reminders *tasks.ReminderScheduler, logger *zap.Logger) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{Service: svc, Reminders: reminders, Logger: logger}
}

// HandleWebhook handles POST /api/payments/webhook.
func (h *PaymentWebhookHandler) HandleWebhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to read request body")
		return
	}

	event, err := webhook.ConstructEvent(body, c.GetHeader("Stripe-Signature"),
		config.AppConfig.StripeWebhookSecret)
	if err != nil {
		h.Logger.Warn("stripe webhook signature verification failed", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "invalid signature")
		return
	}

	if event.Type != "payment_intent.succeeded" {
		// Other event types are acknowledged and ignored.
		c.JSON(http.StatusOK, gin.H{"success": true, "handled": false})
		return
	}

	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		h.Logger.Error("stripe webhook has invalid payment intent payload", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "invalid event payload")
		return
	}

	b, err := h.Service.ConfirmPayment(c.Request.Context(), intent.ID)
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			// Intent does not belong to us; acknowledge so Stripe stops retrying.
			h.Logger.Warn("payment intent has no matching booking", zap.String("intent", intent.ID))
			c.JSON(http.StatusOK, gin.H{"success": true, "handled": false})
			return
		}
		h.Logger.Error("payment confirmation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to record payment")
		return
	}

	if h.Reminders != nil {
		if err := h.Reminders.ScheduleForBooking(b); err != nil {
			// Reminders are best effort; the payment itself is recorded.
			h.Logger.Warn("failed to schedule reminders", zap.String("bookingRef", b.BookingRef), zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "handled": true})
}
