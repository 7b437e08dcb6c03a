package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"

	"knead/config"
	"knead/cron"
	"knead/database"
	bookingRepo "knead/database/repository/booking"
	catalogRepo "knead/database/repository/catalog"
	userRepoPkg "knead/database/repository/user"
	"knead/handlers"
	"knead/middleware"
	"knead/models"
	"knead/routes"
	"knead/services/booking"
	"knead/services/geo"
	"knead/services/payment"
	"knead/services/tasks"
	"knead/services/user"
	"knead/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitLockCache()
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Repositories.
	bkRepo := bookingRepo.NewMongoBookingRepo()
	svcRepo := catalogRepo.NewMongoServiceRepo()
	usrRepo := userRepoPkg.NewMongoUserRepo()

	// Services.
	bookingService, err := booking.NewDefaultBookingService(bkRepo, svcRepo, booking.NewRedisLocker())
	if err != nil {
		logger.Sugar().Fatalf("main: invalid operating window configuration: %v", err)
	}
	paymentService := payment.NewStripePaymentService()
	userService := &user.DefaultUserService{Repo: usrRepo}
	postcodeValidator := geo.NewDefaultValidator(geo.NewHTTPGeocoder())
	reminderScheduler := tasks.NewReminderScheduler()

	// Handlers.
	handlerBundle := &routes.Handlers{
		Booking:  handlers.NewBookingHandler(bookingService, paymentService, userService, logger),
		Postcode: handlers.NewPostcodeHandler(postcodeValidator, logger),
		Catalog:  handlers.NewCatalogHandler(svcRepo, logger),
		Auth:     handlers.NewAuthHandler(userService, logger),
		Webhook:  handlers.NewPaymentWebhookHandler(bookingService, reminderScheduler, logger),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Background reminder worker. Dispatch re-reads the booking so reminders
	// for cancelled appointments are dropped at fire time.
	cron.InitReminderWorker(func(ctx context.Context, p models.ReminderPayload) error {
		b, err := bkRepo.GetByID(ctx, p.BookingID)
		if err != nil {
			return err
		}
		if b.Status == models.StatusCancelled {
			logger.Info("skipping reminder for cancelled booking",
				zap.String("bookingRef", p.BookingRef))
			return nil
		}
		logger.Info("appointment reminder dispatched",
			zap.String("bookingRef", p.BookingRef),
			zap.String("userId", p.UserID),
			zap.String("date", p.Date),
			zap.String("time", p.Time))
		return nil
	})

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetLockClient()},
		database.MongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
