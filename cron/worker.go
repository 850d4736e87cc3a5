package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"

	"spacehive/config"
	"spacehive/models"
	"spacehive/services/notification"
	"spacehive/services/tasks"
	"spacehive/services/wallet"
)

// InitCommissionWorker runs the async commission worker in background.
func InitCommissionWorker(ledger wallet.Ledger, notifier notification.Gateway) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisJobQueueDB,
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
	mux.HandleFunc(tasks.TypeCommissionCalculate, handleCommissionTask(ledger, notifier))

	go monitorRedisConnection()

	go func() {
		log.Println("[CommissionWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[CommissionWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[CommissionWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// handleCommissionTask splits a completed booking's revenue: the
// partner receives the total minus commission, the platform account
// collects the commission.
func handleCommissionTask(ledger wallet.Ledger, notifier notification.Gateway) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.CommissionJobPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[CommissionHandler] invalid payload: %v", err)
			return err
		}

		rate := config.AppConfig.CommissionRate
		commission := p.TotalAmount * rate
		payout := p.TotalAmount - commission

		if err := ledger.Credit(ctx, p.PartnerID, payout, "Booking payout", p.BookingID, "booking"); err != nil {
			return err
		}
		if err := ledger.Credit(ctx, models.PlatformAccountID, commission, "Platform commission", p.BookingID, "booking"); err != nil {
			return err
		}

		log.Printf("[CommissionHandler] booking %s settled: payout %.2f, commission %.2f", p.BookingID, payout, commission)

		if err := notifier.SendPartnerPush(ctx, p.PartnerID, "Booking payout",
			"Your payout for a completed booking has been credited",
			map[string]string{
				"bookingId": p.BookingID,
				"type":      "commission_settled",
			}); err != nil {
			log.Printf("[CommissionHandler] partner notification failed: %v", err)
		}
		return nil
	}
}

// monitorRedisConnection periodically pings the queue Redis and logs
// connectivity loss.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisJobQueueDB,
	})
	defer client.Close()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[CommissionWorker] redis ping failed: %v", err)
		}
		cancel()
	}
}
