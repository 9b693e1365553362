package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"woodtrack/internal/config"
	"woodtrack/internal/infra"
	"woodtrack/internal/repository"
	"woodtrack/internal/router"
	"woodtrack/internal/service"
	"woodtrack/internal/worker"

	"github.com/bsm/redislock"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Start goroutine worker pool for async sync jobs. Worker handlers are
	// wired here (composition root) so the pool has full access to all
	// infrastructure dependencies.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	productionRepo := repository.NewProductionRepository(db)
	trackingRepo := repository.NewOrderTrackingRepository(db)
	dispatcher := worker.NewDispatcher(rdb)
	locker := redislock.New(rdb)
	syncSvc := service.NewTrackingSyncService(productionRepo, trackingRepo, locker, dispatcher)

	workerHandlers := &worker.WorkerHandlers{
		Sync: worker.NewSyncWorker(syncSvc, dispatcher),
	}
	worker.StartWorkerPool(ctx, rdb, workerHandlers, cfg.WorkerPoolSize)

	// Reconciliation sweep re-enqueues sync jobs for active orders so
	// snapshots converge even if an individual trigger was lost.
	if cfg.SyncSweepMinutes > 0 {
		worker.StartSweep(ctx, worker.SweepConfig{
			Productions: productionRepo,
			Dispatcher:  dispatcher,
			Interval:    time.Duration(cfg.SyncSweepMinutes) * time.Minute,
		})
	}

	r := router.New(cfg, db, rdb)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("woodtrack backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
