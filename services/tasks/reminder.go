package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"knead/config"
	"knead/models"
	"knead/utils"
)

const TypeSendReminder = "reminder:send"

// Reminder offsets before the appointment time.
var reminderOffsets = []time.Duration{24 * time.Hour, time.Hour}

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}
	return task, opts, nil
}

// ReminderScheduler enqueues appointment reminders once a booking's payment
// is confirmed.
type ReminderScheduler struct {
	client *asynq.Client
}

func NewReminderScheduler() *ReminderScheduler {
	return &ReminderScheduler{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		}),
	}
}

// ScheduleForBooking enqueues reminders at each offset before the
// appointment; offsets already in the past are skipped.
func (s *ReminderScheduler) ScheduleForBooking(booking *models.Booking) error {
	appt, err := time.ParseInLocation("2006-01-02 15:04", booking.Date+" "+booking.Time, time.Local)
	if err != nil {
		return fmt.Errorf("invalid booking date/time: %w", err)
	}

	for _, offset := range reminderOffsets {
		fireAt := appt.Add(-offset)
		if fireAt.Before(time.Now()) {
			continue
		}

		payload := models.ReminderPayload{
			BookingID:  booking.ID,
			BookingRef: booking.BookingRef,
			UserID:     booking.UserID,
			Date:       booking.Date,
			Time:       booking.Time,
			Title:      "Upcoming massage appointment",
			Body:       fmt.Sprintf("Your booking %s is at %s on %s.", booking.BookingRef, booking.Time, booking.Date),
		}
		task, opts, err := NewReminderTask(payload, fireAt)
		if err != nil {
			return err
		}
		if _, err := s.client.Enqueue(task, opts...); err != nil {
			return fmt.Errorf("failed to enqueue reminder: %w", err)
		}
		utils.GetLogger().Info("reminder scheduled",
			zap.String("bookingRef", booking.BookingRef),
			zap.Time("fireAt", fireAt))
	}
	return nil
}
