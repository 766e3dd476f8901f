package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"labbook/config"
	"labbook/database/repository"
	"labbook/models"
)

// TypeOrderReconcile is the task type for orders whose payment was captured
// but whose snapshot failed to persist.
const TypeOrderReconcile = "order:reconcile"

type reconcilePayload struct {
	Order     models.Order `json:"order"`
	InvoiceID string       `json:"invoiceId"`
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// ReconcileClient enqueues reconciliation tasks. It satisfies the booking
// service's enqueuer contract.
type ReconcileClient struct {
	client *asynq.Client
}

func NewReconcileClient() *ReconcileClient {
	return &ReconcileClient{client: asynq.NewClient(redisOpts())}
}

func (c *ReconcileClient) EnqueueOrderReconcile(ctx context.Context, order *models.Order, invoiceID string) error {
	payload, err := json.Marshal(reconcilePayload{Order: *order, InvoiceID: invoiceID})
	if err != nil {
		return fmt.Errorf("failed to marshal reconcile payload: %w", err)
	}
	task := asynq.NewTask(TypeOrderReconcile, payload, asynq.MaxRetry(10))
	if _, err := c.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue reconcile task: %w", err)
	}
	return nil
}

func (c *ReconcileClient) Close() error {
	return c.client.Close()
}

// InitReconcileWorker runs the async worker in background. It retries
// persisting the order snapshot; the money has already been captured, so a
// task that exhausts its retries is the signal for manual reconciliation.
func InitReconcileWorker(orders repository.OrderRepository, logger *zap.Logger) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeOrderReconcile, handleReconcileTask(orders, logger))

	go func() {
		log.Println("[ReconcileWorker] starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Printf("[ReconcileWorker] worker stopped: %v", err)
		}
	}()
}

func handleReconcileTask(orders repository.OrderRepository, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload reconcilePayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("invalid reconcile payload: %w", err)
		}

		err := orders.Create(ctx, &payload.Order)
		if errors.Is(err, repository.ErrDuplicateOrderNumber) {
			// A previous attempt already landed the order.
			logger.Info("order already reconciled",
				zap.String("orderNumber", payload.Order.OrderNumber))
			return nil
		}
		if err != nil {
			logger.Warn("order reconcile attempt failed",
				zap.String("orderNumber", payload.Order.OrderNumber),
				zap.String("invoiceID", payload.InvoiceID),
				zap.Error(err))
			return err
		}

		logger.Info("captured order reconciled",
			zap.String("orderNumber", payload.Order.OrderNumber),
			zap.String("invoiceID", payload.InvoiceID))
		return nil
	}
}
