package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"knead/config"
	"knead/models"
	"knead/services/tasks"
	"knead/utils"
)

// InitReminderWorker runs the async reminder worker in the background.
// Dispatch to SMS/email is handled by an external notification collaborator;
// this worker hands the payload over and records the outcome.
func InitReminderWorker(dispatch func(ctx context.Context, p models.ReminderPayload) error) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(dispatch))

	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)
				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(dispatch func(ctx context.Context, p models.ReminderPayload) error) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("reminder task has invalid payload", zap.Error(err))
			return err
		}

		if err := dispatch(ctx, p); err != nil {
			utils.GetLogger().Error("reminder dispatch failed",
				zap.String("bookingRef", p.BookingRef), zap.Error(err))
			return err
		}

		utils.GetLogger().Info("reminder dispatched",
			zap.String("bookingRef", p.BookingRef),
			zap.String("date", p.Date),
			zap.String("time", p.Time))
		return nil
	}
}
