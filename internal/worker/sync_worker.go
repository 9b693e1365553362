package worker

// sync_worker.go
// Processes tracking sync jobs from QueueTrackingSync. Jobs are enqueued by
// order-acceptance and stage-completion events, the reconciliation sweep,
// and the async API trigger. Failed jobs are requeued with a bounded retry
// count, then parked in the DLQ.

import (
	"context"
	"encoding/json"

	"woodtrack/internal/service"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const maxSyncAttempts = 3

// SyncWorker runs the tracking sync engine for queued order ids.
type SyncWorker struct {
	svc        service.TrackingSyncService
	dispatcher *Dispatcher
}

func NewSyncWorker(svc service.TrackingSyncService, dispatcher *Dispatcher) *SyncWorker {
	return &SyncWorker{svc: svc, dispatcher: dispatcher}
}

// Process handles one sync job. Per-record failures inside a sync are
// already isolated by the engine; only whole-sync failures (lock or load
// errors) are retried here.
func (w *SyncWorker) Process(ctx context.Context, rdb *redis.Client, job Job) {
	var payload SyncJobPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		log.Error().Err(err).Msg("sync_worker: invalid payload")
		SendToDLQ(ctx, rdb, QueueTrackingSync, job.Type, job.Payload, "invalid payload: "+err.Error(), job.Attempts)
		return
	}

	orderID, err := uuid.Parse(payload.OrderID)
	if err != nil {
		log.Error().Str("order_id", payload.OrderID).Err(err).Msg("sync_worker: invalid order id")
		SendToDLQ(ctx, rdb, QueueTrackingSync, job.Type, job.Payload, "invalid order id", job.Attempts)
		return
	}

	results, err := w.svc.Sync(ctx, orderID)
	if err != nil {
		job.Attempts++
		if job.Attempts >= maxSyncAttempts {
			SendToDLQ(ctx, rdb, QueueTrackingSync, job.Type, job.Payload, err.Error(), job.Attempts)
			return
		}
		log.Warn().
			Str("order_id", payload.OrderID).
			Int("attempts", job.Attempts).
			Err(err).
			Msg("sync_worker: sync failed, requeueing")
		if encoded, mErr := json.Marshal(job); mErr == nil {
			if pushErr := rdb.LPush(ctx, QueueTrackingSync, encoded).Err(); pushErr != nil {
				log.Error().Err(pushErr).Msg("sync_worker: requeue failed")
			}
		}
		return
	}

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	log.Info().
		Str("order_id", payload.OrderID).
		Str("trigger", payload.Trigger).
		Int("records", len(results)).
		Int("failed", failed).
		Msg("sync_worker: order synced")
}
