package booking

import (
	"context"
	"time"

	"knead/config"
	bookingRepo "knead/database/repository/booking"
	catalogRepo "knead/database/repository/catalog"
	"knead/models"
)

// BookingService is the command and query surface of the booking core.
type BookingService interface {
	AvailableSlots(ctx context.Context, q models.SlotQuery) ([]models.TimeSlot, error)
	Reserve(ctx context.Context, userID string, req models.BookingRequest) (*models.Booking, error)
	GetByID(ctx context.Context, id, userID string) (*models.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	ListPaginated(ctx context.Context, page, limit int, status string) ([]models.Booking, int64, error)
	Stats(ctx context.Context) (*models.BookingStats, error)
	RevenueByMonth(ctx context.Context) ([]models.MonthlyRevenue, error)
	UpdateStatus(ctx context.Context, id string, status models.BookingStatus) (*models.Booking, error)
	Cancel(ctx context.Context, id, userID string) (*models.Booking, error)
	Delete(ctx context.Context, id, userID string) error
	AttachPaymentIntent(ctx context.Context, id, intentID string) error
	ConfirmPayment(ctx context.Context, paymentIntentID string) (*models.Booking, error)
}

// DefaultBookingService wires the slot engine, the reservation lock and the
// ledger together.
type DefaultBookingService struct {
	Repo    bookingRepo.BookingRepository
	Catalog catalogRepo.ServiceRepository
	Engine  SlotEngine
	Locker  Locker

	FeeRate   float64
	OpenMin   int
	CloseMin  int
	TickMin   int
	BufferMin int
	LeadMin   int

	// Now is the clock source; overridable in tests.
	Now func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// NewDefaultBookingService builds the service with the operating window and
// scheduling parameters taken from the loaded configuration.
func NewDefaultBookingService(repo bookingRepo.BookingRepository, catalog catalogRepo.ServiceRepository, locker Locker) (*DefaultBookingService, error) {
	cfg := config.AppConfig

	openMin, err := parseClock(cfg.OperatingOpen)
	if err != nil {
		return nil, err
	}
	closeMin, err := parseClock(cfg.OperatingClose)
	if err != nil {
		return nil, err
	}

	engine := &DefaultSlotEngine{
		Repo:        repo,
		OpenMin:     openMin,
		CloseMin:    closeMin,
		IntervalMin: cfg.SlotIntervalMin,
		BufferMin:   cfg.TravelBufferMin,
		LeadMin:     cfg.MinLeadTimeMin,
	}

	return &DefaultBookingService{
		Repo:      repo,
		Catalog:   catalog,
		Engine:    engine,
		Locker:    locker,
		FeeRate:   cfg.PlatformFeeRate,
		OpenMin:   openMin,
		CloseMin:  closeMin,
		TickMin:   cfg.SlotIntervalMin,
		BufferMin: cfg.TravelBufferMin,
		LeadMin:   cfg.MinLeadTimeMin,
	}, nil
}
