package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"knead/models"
	"knead/services/booking"
	"knead/services/payment"
	"knead/services/user"
	"knead/utils"
)

// BookingHandler exposes the booking core over HTTP.
type BookingHandler struct {
	Service  booking.BookingService
	Payments payment.PaymentService
	Users    user.UserService
	Logger   *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, payments payment.PaymentService, users user.UserService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Payments: payments, Users: users, Logger: logger}
}

// respondBookingError maps the booking core's error taxonomy onto HTTP.
func (h *BookingHandler) respondBookingError(c *gin.Context, err error) {
	switch {
	case booking.IsValidation(err):
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, booking.ErrSlotConflict):
		utils.JSONTypedError(c, http.StatusConflict,
			"This time slot was just booked by another customer. Please choose a different time.",
			"BOOKING_CONFLICT")
	case errors.Is(err, booking.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "booking not found")
	case errors.Is(err, booking.ErrStateTransition):
		utils.JSONError(c, http.StatusUnprocessableEntity, err.Error())
	default:
		h.Logger.Error("booking operation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "something went wrong, please try again")
	}
}

// GetAvailableSlots handles GET /api/bookings/available-slots.
func (h *BookingHandler) GetAvailableSlots(c *gin.Context) {
	var q models.SlotQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "date, therapistGender and duration are required")
		return
	}

	slots, err := h.Service.AvailableSlots(c.Request.Context(), q)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "availableSlots": slots})
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking payload: "+err.Error())
		return
	}

	b, err := h.Service.Reserve(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "booking": b})
}

// GetMyBookings handles GET /api/bookings/my.
func (h *BookingHandler) GetMyBookings(c *gin.Context) {
	bookings, err := h.Service.ListByUser(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "bookings": bookings})
}

// GetBooking handles GET /api/bookings/:id. Admins see any booking,
// customers only their own.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID := c.GetString("userID")
	if c.GetBool("isAdmin") {
		userID = ""
	}
	b, err := h.Service.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "booking": b})
}

// CancelBooking handles PUT /api/bookings/:id/cancel.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	b, err := h.Service.Cancel(c.Request.Context(), c.Param("id"), c.GetString("userID"))
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "booking": b})
}

// DeleteBooking handles DELETE /api/bookings/:id.
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id"), c.GetString("userID")); err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "booking deleted"})
}

// CreatePaymentIntent handles POST /api/bookings/:id/payment-intent.
func (h *BookingHandler) CreatePaymentIntent(c *gin.Context) {
	b, err := h.Service.GetByID(c.Request.Context(), c.Param("id"), c.GetString("userID"))
	if err != nil {
		h.respondBookingError(c, err)
		return
	}

	intent, err := h.Payments.CreateIntent(c.Request.Context(), b)
	if err != nil {
		if errors.Is(err, payment.ErrAlreadyPaid) {
			utils.JSONError(c, http.StatusUnprocessableEntity, "booking is already paid")
			return
		}
		if errors.Is(err, payment.ErrNotPayable) {
			utils.JSONError(c, http.StatusUnprocessableEntity, err.Error())
			return
		}
		h.Logger.Error("payment intent creation failed", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "payment provider unavailable, please try again")
		return
	}

	if err := h.Service.AttachPaymentIntent(c.Request.Context(), b.ID, intent.PaymentIntentID); err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "payment": intent})
}

// AdminListBookings handles GET /api/admin/bookings.
func (h *BookingHandler) AdminListBookings(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	status := c.Query("status")

	bookings, total, err := h.Service.ListPaginated(c.Request.Context(), page, limit, status)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"bookings": bookings,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

// AdminBookingStats handles GET /api/admin/bookings/stats.
func (h *BookingHandler) AdminBookingStats(c *gin.Context) {
	stats, err := h.Service.Stats(c.Request.Context())
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"totalBookings":     stats.TotalBookings,
		"pendingBookings":   stats.PendingBookings,
		"confirmedBookings": stats.ConfirmedBookings,
		"completedBookings": stats.CompletedBookings,
		"cancelledBookings": stats.CancelledBookings,
		"totalRevenue":      stats.TotalRevenue,
	})
}

// AdminDashboardStats handles GET /api/admin/dashboard-stats. Revenue figures
// count completed bookings only.
func (h *BookingHandler) AdminDashboardStats(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := h.Service.Stats(ctx)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	monthly, err := h.Service.RevenueByMonth(ctx)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	totalUsers, err := h.Users.Count(ctx)
	if err != nil {
		h.Logger.Error("user count failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "something went wrong, please try again")
		return
	}
	recent, _, err := h.Service.ListPaginated(ctx, 1, 5, "")
	if err != nil {
		h.respondBookingError(c, err)
		return
	}

	recentOut := make([]gin.H, 0, len(recent))
	for _, b := range recent {
		name := "Unknown"
		if u, err := h.Users.GetByID(ctx, b.UserID); err == nil {
			name = u.Name
		}
		recentOut = append(recentOut, gin.H{
			"customerName": name,
			"service":      b.ServiceID,
			"date":         b.Date,
			"status":       b.Status,
			"amount":       b.TotalAmount,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"totalUsers":      totalUsers,
		"totalBookings":   stats.TotalBookings,
		"totalRevenue":    stats.TotalRevenue,
		"pendingBookings": stats.PendingBookings,
		"recentBookings":  recentOut,
		"monthlyRevenue":  monthly,
	})
}

// AdminUpdateStatus handles PUT /api/admin/bookings/:id/status.
func (h *BookingHandler) AdminUpdateStatus(c *gin.Context) {
	var input struct {
		Status models.BookingStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "status is required")
		return
	}

	b, err := h.Service.UpdateStatus(c.Request.Context(), c.Param("id"), input.Status)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "booking": b})
}

// AdminDeleteBooking handles DELETE /api/admin/bookings/:id. The payment
// guard still applies: paid bookings cannot be removed.
func (h *BookingHandler) AdminDeleteBooking(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id"), ""); err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "booking deleted"})
}
