package worker

// sweep.go
// Periodic reconciliation sweep: every tick, enqueue a sync job for each
// order that still has an unfinished production. Catches trackings that
// drifted because an event was lost or a sync failed mid-order.

import (
	"context"
	"time"

	"woodtrack/internal/repository"

	"github.com/rs/zerolog/log"
)

// SweepConfig holds all dependencies for the reconciliation goroutine.
type SweepConfig struct {
	Productions repository.ProductionRepository
	Dispatcher  *Dispatcher
	Interval    time.Duration
}

// StartSweep launches a background goroutine that periodically enqueues
// sync jobs for every active order. It respects the context for graceful
// shutdown.
func StartSweep(ctx context.Context, cfg SweepConfig) {
	go func() {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		log.Info().Dur("interval", cfg.Interval).Msg("sweep: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("sweep: shutting down")
				return
			case <-ticker.C:
				runSweep(ctx, cfg)
			}
		}
	}()
}

func runSweep(ctx context.Context, cfg SweepConfig) {
	orderIDs, err := cfg.Productions.ActiveOrderIDs(ctx)
	if err != nil {
		log.Error().Err(err).Msg("sweep: failed to list active orders")
		return
	}
	if len(orderIDs) == 0 {
		return
	}

	enqueued := 0
	for _, orderID := range orderIDs {
		if err := cfg.Dispatcher.EnqueueTrackingSync(ctx, orderID, "sweep"); err != nil {
			log.Error().Str("order_id", orderID.String()).Err(err).Msg("sweep: enqueue failed")
			continue
		}
		enqueued++
	}
	log.Info().Int("orders", enqueued).Msg("sweep: sync jobs enqueued")
}
