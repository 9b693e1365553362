package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"woodtrack/internal/model"
	"woodtrack/internal/repository"

	"github.com/bsm/redislock"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	syncLockPrefix = "tracking:sync:"
	syncLockTTL    = 30 * time.Second
)

// SyncResult reports the outcome of syncing one production record.
// A failed record carries Err; failures are per-record, never per-order.
type SyncResult struct {
	ProductionID uuid.UUID
	ProductID    uuid.UUID
	TrackingID   uuid.UUID
	Created      bool
	CurrentStage string
	Status       string
	Progress     decimal.Decimal
	Err          error
}

// TrackingUpdate is the event handed to the notifier when a sync created a
// tracking row or moved its visible stage/status.
type TrackingUpdate struct {
	OrderID      uuid.UUID
	ProductID    uuid.UUID
	TrackingID   uuid.UUID
	CurrentStage string
	Status       string
	Progress     float64
	Created      bool
}

// TrackingNotifier publishes tracking-change events for the downstream
// notification dispatcher. Delivery itself lives outside this service.
type TrackingNotifier interface {
	TrackingUpdated(ctx context.Context, update TrackingUpdate)
}

// TrackingSyncService reconciles the customer-facing tracking snapshots of
// an order with its authoritative production records.
type TrackingSyncService interface {
	Sync(ctx context.Context, orderID uuid.UUID) ([]SyncResult, error)
}

type trackingSyncService struct {
	productions repository.ProductionRepository
	trackings   repository.OrderTrackingRepository
	locker      *redislock.Client // nil outside multi-instance deployments
	notifier    TrackingNotifier  // nil disables change events
	now         func() time.Time

	mu         sync.Mutex
	orderLocks map[uuid.UUID]*sync.Mutex
}

func NewTrackingSyncService(
	productions repository.ProductionRepository,
	trackings repository.OrderTrackingRepository,
	locker *redislock.Client,
	notifier TrackingNotifier,
) TrackingSyncService {
	return &trackingSyncService{
		productions: productions,
		trackings:   trackings,
		locker:      locker,
		notifier:    notifier,
		now:         time.Now,
		orderLocks:  make(map[uuid.UUID]*sync.Mutex),
	}
}

// Sync loads every production of the order and finds-or-creates, then
// overwrites, the matching tracking snapshot per product. Two concurrent
// syncs for the same order id serialize: always through an in-process
// per-order mutex, and across instances through a redis lock when a locker
// is configured. Re-running with unchanged inputs yields identical derived
// values but always advances updated_at.
func (s *trackingSyncService) Sync(ctx context.Context, orderID uuid.UUID) ([]SyncResult, error) {
	lock := s.orderLock(orderID)
	lock.Lock()
	defer lock.Unlock()

	if s.locker != nil {
		dlock, err := s.locker.Obtain(ctx, syncLockPrefix+orderID.String(), syncLockTTL, &redislock.Options{
			RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(100*time.Millisecond), 100),
		})
		if err != nil {
			return nil, fmt.Errorf("sync: obtain lock for order %s: %w", orderID, err)
		}
		defer func() {
			if err := dlock.Release(ctx); err != nil {
				log.Warn().Str("order_id", orderID.String()).Err(err).Msg("sync: release lock")
			}
		}()
	}

	productions, err := s.productions.ListByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("sync: load productions for order %s: %w", orderID, err)
	}

	results := make([]SyncResult, 0, len(productions))
	for i := range productions {
		res := s.syncOne(ctx, &productions[i])
		if res.Err != nil {
			log.Error().
				Str("order_id", orderID.String()).
				Str("production_id", res.ProductionID.String()).
				Err(res.Err).
				Msg("sync: record failed")
		}
		results = append(results, res)
	}
	return results, nil
}

func (s *trackingSyncService) syncOne(ctx context.Context, p *model.Production) SyncResult {
	now := s.now()
	progress := CalculateProgress(p)
	status := MapProductionStatus(p.Status)
	timeline := BuildTimeline(p, now)

	res := SyncResult{
		ProductionID: p.ID,
		ProductID:    p.ProductID,
		CurrentStage: p.CurrentStage,
		Status:       status,
		Progress:     progress,
	}

	created := false
	changed := false
	tracking, err := s.trackings.FindByOrderAndProduct(ctx, p.OrderID, p.ProductID)
	if err != nil {
		if !repository.IsNotFound(err) {
			res.Err = fmt.Errorf("find tracking: %w", err)
			return res
		}
		tracking = newTrackingFromProduction(p, status, timeline, now)
		if err := s.trackings.Create(ctx, tracking); err != nil {
			res.Err = fmt.Errorf("create tracking: %w", err)
			return res
		}
		created = true
	} else {
		changed = tracking.CurrentStage != p.CurrentStage || tracking.Status != status
	}

	// Full overwrite on every sync — the snapshot must never diverge from
	// the production record, and updated_at ticks even when nothing changed.
	fields := map[string]interface{}{
		"current_stage":          p.CurrentStage,
		"status":                 status,
		"actual_start_date":      p.ProductionStartedAt,
		"actual_completion_date": p.ActualCompletionDate,
		"process_timeline":       datatypes.NewJSONSlice(timeline),
		"updated_at":             now,
	}
	if err := s.trackings.Overwrite(ctx, tracking.ID, fields); err != nil {
		res.Err = fmt.Errorf("update tracking: %w", err)
		return res
	}

	res.TrackingID = tracking.ID
	res.Created = created

	if s.notifier != nil && (created || changed) {
		s.notifier.TrackingUpdated(ctx, TrackingUpdate{
			OrderID:      p.OrderID,
			ProductID:    p.ProductID,
			TrackingID:   tracking.ID,
			CurrentStage: p.CurrentStage,
			Status:       status,
			Progress:     progress.InexactFloat64(),
			Created:      created,
		})
	}
	return res
}

func newTrackingFromProduction(p *model.Production, status string, timeline []model.TimelineEntry, now time.Time) *model.OrderTracking {
	trackingType := model.TrackingTypeCustom
	if p.ProductType == model.TrackingTypeAlkansya {
		trackingType = model.TrackingTypeAlkansya
	}

	estimatedStart := p.ProductionStartedAt
	if estimatedStart == nil {
		estimatedStart = &now
	}

	return &model.OrderTracking{
		OrderID:                 p.OrderID,
		ProductID:               p.ProductID,
		TrackingType:            trackingType,
		CurrentStage:            p.CurrentStage,
		Status:                  status,
		EstimatedStartDate:      estimatedStart,
		EstimatedCompletionDate: p.EstimatedCompletionDate,
		ActualStartDate:         p.ProductionStartedAt,
		ActualCompletionDate:    p.ActualCompletionDate,
		ProcessTimeline:         datatypes.NewJSONSlice(timeline),
	}
}

func (s *trackingSyncService) orderLock(orderID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.orderLocks[orderID]
	if !ok {
		lock = &sync.Mutex{}
		s.orderLocks[orderID] = lock
	}
	return lock
}
