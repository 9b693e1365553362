package router

import (
	"time"

	"woodtrack/internal/config"
	"woodtrack/internal/handler"
	"woodtrack/internal/middleware"
	"woodtrack/internal/repository"
	"woodtrack/internal/service"
	"woodtrack/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/bsm/redislock"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	productionRepo := repository.NewProductionRepository(db)
	trackingRepo := repository.NewOrderTrackingRepository(db)
	stageRepo := repository.NewStageRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	// Worker dispatcher doubles as the tracking-change notifier: every
	// created/changed snapshot becomes a notification event on the queue.
	dispatcher := worker.NewDispatcher(rdb)
	locker := redislock.New(rdb)

	syncSvc := service.NewTrackingSyncService(productionRepo, trackingRepo, locker, dispatcher)
	trackingSvc := service.NewTrackingService(productionRepo, trackingRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	trackingH := handler.NewTrackingHandler(trackingSvc, syncSvc, dispatcher)
	productionsH := handler.NewProductionsHandler(productionRepo, cfg.ReportStoragePath)
	stagesH := handler.NewStagesHandler(stageRepo)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))
	r.GET("/v1/stages", stagesH.List)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: customer, staff, admin — declared per-endpoint
		v1.GET("/orders/:id/tracking", middleware.RequireRole("customer", "staff", "admin"), trackingH.GetOrderTracking)
		v1.GET("/orders/:id/tracking/customer", middleware.RequireRole("customer", "staff", "admin"), trackingH.GetCustomerTracking)
		v1.GET("/tracking/stats", middleware.RequireRole("staff", "admin"), trackingH.Stats)

		// Sync triggers — staff tooling only
		v1.POST("/orders/:id/sync", middleware.RequireRole("staff", "admin"), trackingH.SyncOrder)
		v1.POST("/orders/:id/sync/async", middleware.RequireRole("staff", "admin"), trackingH.SyncOrderAsync)

		prods := v1.Group("/productions", middleware.RequireRole("staff", "admin"))
		{
			prods.GET("", productionsH.List)
			prods.GET("/:id/progress", productionsH.Progress)
			prods.GET("/:id/eta", productionsH.ETA)
			prods.GET("/:id/report", productionsH.Report)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
