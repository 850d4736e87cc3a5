package tasks

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"

	"spacehive/config"
	"spacehive/models"
)

const TypeCommissionCalculate = "commission:calculate"

// JobQueue enqueues background jobs for the worker.
type JobQueue interface {
	EnqueueCommission(ctx context.Context, payload models.CommissionJobPayload) error
}

func NewCommissionTask(payload models.CommissionJobPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeCommissionCalculate, b), nil
}

// AsynqJobQueue is the production queue backed by asynq on Redis.
type AsynqJobQueue struct {
	client *asynq.Client
}

func NewAsynqJobQueue() *AsynqJobQueue {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisJobQueueDB,
	})
	return &AsynqJobQueue{client: client}
}

func (q *AsynqJobQueue) EnqueueCommission(ctx context.Context, payload models.CommissionJobPayload) error {
	task, err := NewCommissionTask(payload)
	if err != nil {
		return err
	}
	_, err = q.client.EnqueueContext(ctx, task, asynq.MaxRetry(5), asynq.Queue("default"))
	return err
}

func (q *AsynqJobQueue) Close() error {
	return q.client.Close()
}
