package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"knead/models"
)

func testEngine(repo *memoryRepo) *DefaultSlotEngine {
	return &DefaultSlotEngine{
		Repo:        repo,
		OpenMin:     7 * 60,       // 07:00
		CloseMin:    21*60 + 30,   // 21:30
		IntervalMin: 30,
		BufferMin:   15,
		LeadMin:     60,
		// A fixed clock well before any queried date keeps the lead-time
		// filter out of the way unless a test opts in.
		Now: func() time.Time { return time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC) },
	}
}

func TestAvailableSlotsEmptyLedger(t *testing.T) {
	engine := testEngine(newMemoryRepo())

	slots, err := engine.AvailableSlots(context.Background(), "2025-06-01", models.TherapistMale, 60)
	require.NoError(t, err)

	// 07:00 through 21:30 in 30-minute ticks.
	assert.Len(t, slots, 30)
	assert.Equal(t, "07:00", slots[0].Value)
	assert.Equal(t, "7:00 AM", slots[0].Display)
	assert.Equal(t, "21:30", slots[len(slots)-1].Value)
	assert.Equal(t, "9:30 PM", slots[len(slots)-1].Display)
}

func TestAvailableSlotsExcludesOccupiedWindow(t *testing.T) {
	repo := newMemoryRepo()
	// 09:00 for 60 minutes plus a 15 minute buffer occupies [09:00, 10:15).
	repo.seed(models.Booking{
		ID:              "b1",
		Date:            "2025-06-01",
		TherapistGender: models.TherapistMale,
		Start:           9 * 60,
		End:             9*60 + 60 + 15,
		Status:          models.StatusConfirmed,
	})
	engine := testEngine(repo)

	slots, err := engine.AvailableSlots(context.Background(), "2025-06-01", models.TherapistMale, 60)
	require.NoError(t, err)

	values := make(map[string]bool)
	for _, s := range slots {
		values[s.Value] = true
	}

	// A 60-minute candidate at 08:00 would occupy [08:00, 09:15) and collide.
	assert.False(t, values["08:00"])
	assert.False(t, values["08:30"])
	assert.False(t, values["09:00"])
	assert.False(t, values["09:30"])
	assert.False(t, values["10:00"])
	// 07:30 occupies [07:30, 08:45): clear. 10:30 starts after the window.
	assert.True(t, values["07:30"])
	assert.True(t, values["10:30"])
}

func TestAvailableSlotsOtherPoolUnaffected(t *testing.T) {
	repo := newMemoryRepo()
	repo.seed(models.Booking{
		ID:              "b1",
		Date:            "2025-06-01",
		TherapistGender: models.TherapistMale,
		Start:           9 * 60,
		End:             9*60 + 75,
		Status:          models.StatusConfirmed,
	})
	engine := testEngine(repo)

	slots, err := engine.AvailableSlots(context.Background(), "2025-06-01", models.TherapistFemale, 60)
	require.NoError(t, err)
	assert.Len(t, slots, 30)
}

func TestAvailableSlotsReleasedStatusesFreeTheWindow(t *testing.T) {
	for _, status := range []models.BookingStatus{models.StatusCancelled, models.StatusCompleted} {
		repo := newMemoryRepo()
		repo.seed(models.Booking{
			ID:              "b1",
			Date:            "2025-06-01",
			TherapistGender: models.TherapistMale,
			Start:           9 * 60,
			End:             9*60 + 75,
			Status:          status,
		})
		engine := testEngine(repo)

		slots, err := engine.AvailableSlots(context.Background(), "2025-06-01", models.TherapistMale, 60)
		require.NoError(t, err)
		assert.Len(t, slots, 30, "a %s booking must not hold its window", status)
	}
}

func TestAvailableSlotsSameDayLeadTime(t *testing.T) {
	engine := testEngine(newMemoryRepo())
	// 10:10 on the queried date; with a 60 minute lead the earliest viable
	// tick is 11:30.
	engine.Now = func() time.Time { return time.Date(2025, 6, 1, 10, 10, 0, 0, time.Local) }

	slots, err := engine.AvailableSlots(context.Background(), "2025-06-01", models.TherapistMale, 30)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.Equal(t, "11:30", slots[0].Value)
}

func TestAvailableSlotsIdempotent(t *testing.T) {
	repo := newMemoryRepo()
	repo.seed(models.Booking{
		ID:              "b1",
		Date:            "2025-06-01",
		TherapistGender: models.TherapistMale,
		Start:           12 * 60,
		End:             12*60 + 105,
		Status:          models.StatusPending,
	})
	engine := testEngine(repo)

	first, err := engine.AvailableSlots(context.Background(), "2025-06-01", models.TherapistMale, 90)
	require.NoError(t, err)
	second, err := engine.AvailableSlots(context.Background(), "2025-06-01", models.TherapistMale, 90)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAvailableSlotsBadDate(t *testing.T) {
	engine := testEngine(newMemoryRepo())
	_, err := engine.AvailableSlots(context.Background(), "01-06-2025", models.TherapistMale, 60)
	assert.True(t, IsValidation(err))
}

func TestAvailableSlotsEmptyNotNil(t *testing.T) {
	engine := testEngine(newMemoryRepo())
	// A clock past closing leaves no candidates for the same day.
	engine.Now = func() time.Time { return time.Date(2025, 6, 1, 21, 0, 0, 0, time.Local) }

	slots, err := engine.AvailableSlots(context.Background(), "2025-06-01", models.TherapistMale, 60)
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}
