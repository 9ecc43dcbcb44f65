package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"trimly/config"
	"trimly/services/notification"
	"trimly/services/tasks"

	"github.com/hibiken/asynq"
)

// InitConfirmationWorker runs the async notification worker in background.
// Confirmation delivery is decoupled from the booking transaction: a worker
// crash or redis outage delays notifications but never affects bookings.
func InitConfirmationWorker(notifSvc notification.NotificationService) {
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
	mux.HandleFunc(tasks.TypeBookingConfirmation, handleConfirmationTask(notifSvc))

	go func() {
		log.Println("[ConfirmationWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ConfirmationWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ConfirmationWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleConfirmationTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.ConfirmationPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ConfirmationWorker] invalid payload: %v", err)
			return err
		}

		if err := notifSvc.SendBookingConfirmation(ctx, p); err != nil {
			log.Printf("[ConfirmationWorker] failed to send confirmation for %s: %v", p.ReservationID, err)
			return err
		}
		return nil
	}
}
