package booking

import (
	"context"
	"sort"
	"sync"

	bookingRepo "knead/database/repository/booking"
	catalogRepo "knead/database/repository/catalog"
	"knead/models"
)

// memoryRepo is an in-memory BookingRepository with the same occupied-window
// semantics as the Mongo implementation. CreateIfFree holds the mutex across
// check and insert, mirroring the transactional re-check.
type memoryRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{bookings: make(map[string]*models.Booking)}
}

func released(s models.BookingStatus) bool {
	return s == models.StatusCancelled || s == models.StatusCompleted
}

func (r *memoryRepo) CreateIfFree(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.bookings {
		if existing.Date != b.Date || existing.TherapistGender != b.TherapistGender {
			continue
		}
		if released(existing.Status) {
			continue
		}
		if b.Start < existing.End && b.End > existing.Start {
			return bookingRepo.ErrWindowTaken
		}
	}
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *memoryRepo) ActiveByDateGender(ctx context.Context, date string, gender models.TherapistGender) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.Date == date && b.TherapistGender == gender && !released(b.Status) {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out, nil
}

func (r *memoryRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *memoryRepo) GetByPaymentIntent(ctx context.Context, intentID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.PaymentIntentID == intentID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, bookingRepo.ErrNotFound
}

func (r *memoryRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memoryRepo) ListPaginated(ctx context.Context, page, limit int, status string) ([]models.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if status == "" || string(b.Status) == status {
			out = append(out, *b)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memoryRepo) Stats(ctx context.Context) (*models.BookingStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &models.BookingStats{}
	for _, b := range r.bookings {
		stats.TotalBookings++
		switch b.Status {
		case models.StatusPending:
			stats.PendingBookings++
		case models.StatusConfirmed:
			stats.ConfirmedBookings++
		case models.StatusCompleted:
			stats.CompletedBookings++
			stats.TotalRevenue += b.TotalAmount
		case models.StatusCancelled:
			stats.CancelledBookings++
		}
	}
	return stats, nil
}

func (r *memoryRepo) RevenueByMonth(ctx context.Context) ([]models.MonthlyRevenue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byMonth := make(map[string]float64)
	for _, b := range r.bookings {
		if b.Status != models.StatusCompleted || len(b.Date) < 7 {
			continue
		}
		byMonth[b.Date[:7]] += b.TotalAmount
	}
	months := make([]models.MonthlyRevenue, 0, len(byMonth))
	for month, revenue := range byMonth {
		months = append(months, models.MonthlyRevenue{Month: month, Revenue: revenue})
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Month < months[j].Month })
	return months, nil
}

func (r *memoryRepo) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	b.Status = status
	return nil
}

func (r *memoryRepo) SetPaymentIntent(ctx context.Context, id, intentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	b.PaymentIntentID = intentID
	return nil
}

func (r *memoryRepo) MarkPaid(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	b.PaymentStatus = models.PaymentPaid
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[id]; !ok {
		return bookingRepo.ErrNotFound
	}
	delete(r.bookings, id)
	return nil
}

func (r *memoryRepo) seed(b models.Booking) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := b
	r.bookings[b.ID] = &cp
}

// mutexLocker serializes reservations the way the Redis lock does, without
// Redis.
type mutexLocker struct {
	mu sync.Mutex
}

func (l *mutexLocker) Acquire(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	return l.mu.Unlock, nil
}

// memoryCatalog serves a fixed catalogue.
type memoryCatalog struct {
	services map[string]*models.Service
}

func (c *memoryCatalog) Create(ctx context.Context, svc *models.Service) error {
	c.services[svc.ID] = svc
	return nil
}

func (c *memoryCatalog) GetByID(ctx context.Context, id string) (*models.Service, error) {
	svc, ok := c.services[id]
	if !ok {
		return nil, catalogRepo.ErrNotFound
	}
	return svc, nil
}

func (c *memoryCatalog) ListActive(ctx context.Context) ([]models.Service, error) {
	var out []models.Service
	for _, svc := range c.services {
		if svc.Active {
			out = append(out, *svc)
		}
	}
	return out, nil
}

func (c *memoryCatalog) ListAll(ctx context.Context) ([]models.Service, error) {
	var out []models.Service
	for _, svc := range c.services {
		out = append(out, *svc)
	}
	return out, nil
}

func (c *memoryCatalog) Update(ctx context.Context, svc *models.Service) error {
	c.services[svc.ID] = svc
	return nil
}

func (c *memoryCatalog) Delete(ctx context.Context, id string) error {
	delete(c.services, id)
	return nil
}
