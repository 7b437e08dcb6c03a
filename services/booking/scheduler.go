package booking

import (
	"context"
	"fmt"
	"time"

	bookingRepo "knead/database/repository/booking"
	"knead/models"
)

// SlotEngine computes bookable start times against the ledger. The
// computation is a pure derived read: repeated calls with identical inputs
// and an unchanged ledger return identical output, and nothing is cached
// across requests.
type SlotEngine interface {
	AvailableSlots(ctx context.Context, date string, gender models.TherapistGender, duration int) ([]models.TimeSlot, error)
}

// DefaultSlotEngine generates the candidate grid from the operating window
// and removes every tick whose occupied window would collide with an
// existing booking's.
type DefaultSlotEngine struct {
	Repo bookingRepo.BookingRepository

	OpenMin     int // operating window start, minutes from midnight
	CloseMin    int // operating window end (last bookable tick)
	IntervalMin int // grid tick size
	BufferMin   int // therapist travel buffer appended to every booking
	LeadMin     int // minimum lead time for same-day bookings

	// Now is the clock source; overridable in tests.
	Now func() time.Time
}

func (e *DefaultSlotEngine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *DefaultSlotEngine) AvailableSlots(ctx context.Context, date string, gender models.TherapistGender, duration int) ([]models.TimeSlot, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, newValidationError("date", "must be in YYYY-MM-DD format")
	}

	existing, err := e.Repo.ActiveByDateGender(ctx, date, gender)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings for %s: %w", date, err)
	}

	// For the current date, candidates before now + lead time are gone.
	minStart := e.OpenMin
	now := e.now()
	if day.Year() == now.Year() && day.YearDay() == now.YearDay() {
		earliest := now.Hour()*60 + now.Minute() + e.LeadMin
		if earliest > minStart {
			minStart = earliest
		}
	}

	slots := make([]models.TimeSlot, 0)
	for tick := e.OpenMin; tick <= e.CloseMin; tick += e.IntervalMin {
		if tick < minStart {
			continue
		}
		candidateEnd := tick + duration + e.BufferMin

		free := true
		for _, b := range existing {
			if overlaps(tick, candidateEnd, b.Start, b.End) {
				free = false
				break
			}
		}
		if !free {
			continue
		}

		slots = append(slots, models.TimeSlot{
			Value:   formatClock(tick),
			Display: displayClock(tick),
		})
	}
	return slots, nil
}
