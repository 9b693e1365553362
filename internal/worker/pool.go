package worker

import (
	"context"
	"encoding/json"
	"time"

	"woodtrack/internal/service"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	// QueueTrackingSync carries order ids whose tracking snapshots need
	// reconciling. Consumed by this pool.
	QueueTrackingSync = "jobs:tracking_sync"
	// QueueNotification carries tracking-change events. Produce-only here:
	// the notification dispatcher is an external collaborator that consumes
	// this list on its own.
	QueueNotification = "jobs:notification"
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// SyncJobPayload is the envelope pushed to QueueTrackingSync.
type SyncJobPayload struct {
	OrderID string `json:"order_id"`
	// Trigger records what caused the sync: order_accepted,
	// stage_completed, sweep, or manual.
	Trigger string `json:"trigger"`
}

// NotificationPayload is the tracking-change event published for the
// external notification dispatcher.
type NotificationPayload struct {
	OrderID      string  `json:"order_id"`
	ProductID    string  `json:"product_id"`
	TrackingID   string  `json:"tracking_id"`
	CurrentStage string  `json:"current_stage"`
	Status       string  `json:"status"`
	Progress     float64 `json:"progress"`
	Created      bool    `json:"created"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues sync jobs via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueTrackingSync pushes a sync job for one order.
func (d *Dispatcher) EnqueueTrackingSync(ctx context.Context, orderID uuid.UUID, trigger string) error {
	return d.enqueue(ctx, QueueTrackingSync, "tracking_sync", SyncJobPayload{
		OrderID: orderID.String(),
		Trigger: trigger,
	}, 0)
}

// TrackingUpdated publishes a tracking-change event. Implements
// service.TrackingNotifier; errors are logged, not propagated — a lost
// event never fails a sync.
func (d *Dispatcher) TrackingUpdated(ctx context.Context, update service.TrackingUpdate) {
	payload := NotificationPayload{
		OrderID:      update.OrderID.String(),
		ProductID:    update.ProductID.String(),
		TrackingID:   update.TrackingID.String(),
		CurrentStage: update.CurrentStage,
		Status:       update.Status,
		Progress:     update.Progress,
		Created:      update.Created,
	}
	if err := d.enqueue(ctx, QueueNotification, "tracking_updated", payload, 0); err != nil {
		log.Error().
			Str("order_id", payload.OrderID).
			Str("product_id", payload.ProductID).
			Err(err).
			Msg("dispatcher: failed to publish tracking event")
	}
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}, attempts int) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data, Attempts: attempts}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// WorkerHandlers bundles the job processors wired at the composition root.
type WorkerHandlers struct {
	Sync *SyncWorker
}

// StartWorkerPool launches numWorkers goroutines consuming the sync queue.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, handlers, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueTrackingSync).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, handlers, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}

	switch job.Type {
	case "tracking_sync":
		handlers.Sync.Process(ctx, rdb, job)
	default:
		log.Warn().Str("type", job.Type).Str("queue", queue).Msg("unknown job type — dropping")
	}
}
