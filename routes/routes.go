package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"knead/handlers"
	"knead/middleware"
	"knead/utils"
)

// Handlers bundles everything the router needs.
type Handlers struct {
	Booking  *handlers.BookingHandler
	Postcode *handlers.PostcodeHandler
	Catalog  *handlers.CatalogHandler
	Auth     *handlers.AuthHandler
	Webhook  *handlers.PaymentWebhookHandler
}

// RegisterRoutes wires all endpoints onto the router.
func RegisterRoutes(r *gin.Engine, h *Handlers) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Stripe-Signature"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	registerHealthRoute(r)
	registerAuthRoutes(r, h)
	registerPostcodeRoutes(r, h)
	registerCatalogRoutes(r, h)
	registerBookingRoutes(r, h)
	registerPaymentRoutes(r, h)
	registerAdminRoutes(r, h)
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

func registerAuthRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", h.Auth.Register)
		api.POST("/login", h.Auth.Login)
	}
}

func registerPostcodeRoutes(r *gin.Engine, h *Handlers) {
	r.POST("/api/postcode/validate", h.Postcode.ValidatePostcode)
}

func registerCatalogRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/services")
	{
		api.GET("", h.Catalog.ListServices)
		api.GET("/:id", h.Catalog.GetService)
	}
}

func registerBookingRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.GET("/available-slots", h.Booking.GetAvailableSlots)
		api.POST("", h.Booking.CreateBooking)
		api.GET("/my", h.Booking.GetMyBookings)
		api.GET("/:id", h.Booking.GetBooking)
		api.PUT("/:id/cancel", h.Booking.CancelBooking)
		api.DELETE("/:id", h.Booking.DeleteBooking)
		api.POST("/:id/payment-intent", h.Booking.CreatePaymentIntent)
	}
}

func registerPaymentRoutes(r *gin.Engine, h *Handlers) {
	// Public: Stripe signs the payload; that signature is the auth.
	r.POST("/api/payments/webhook", h.Webhook.HandleWebhook)
}

func registerAdminRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.JWTAuthAdminMiddleware())

		api.GET("/dashboard-stats", h.Booking.AdminDashboardStats)
		api.GET("/bookings", h.Booking.AdminListBookings)
		api.GET("/bookings/stats", h.Booking.AdminBookingStats)
		api.PUT("/bookings/:id/status", h.Booking.AdminUpdateStatus)
		api.DELETE("/bookings/:id", h.Booking.AdminDeleteBooking)

		api.GET("/services", h.Catalog.AdminListServices)
		api.POST("/services", h.Catalog.AdminCreateService)
		api.PUT("/services/:id", h.Catalog.AdminUpdateService)
		api.DELETE("/services/:id", h.Catalog.AdminDeleteService)

		api.GET("/users", h.Auth.AdminListUsers)
		api.DELETE("/users/:id", h.Auth.AdminDeleteUser)
	}
}
