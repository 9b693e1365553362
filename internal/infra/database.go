package infra

import (
	"fmt"

	"woodtrack/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies any idempotent SQL patches that GORM
// cannot express (partial indexes, etc.).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations applies AutoMigrate plus schema patches. Exposed separately so
// integration tests can migrate a container-backed database without opening a
// second connection pool.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.ProductionStage{},
		&model.Production{},
		&model.ProductionProcess{},
		&model.ProductionStageLog{},
		&model.OrderTracking{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL statements that GORM AutoMigrate cannot
// fully handle on its own. Each statement uses IF NOT EXISTS semantics so
// re-running on an already-patched DB is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Partial index for the reconciliation sweep query, which repeatedly
		// scans for productions that are not yet completed.
		`DO $$ BEGIN
		  IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'productions')
		    AND NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_productions_active') THEN
		    CREATE INDEX idx_productions_active
		        ON productions (order_id)
		        WHERE status <> 'Completed';
		  END IF;
		END $$`,
		// Ordering index for timeline assembly from process steps.
		`DO $$ BEGIN
		  IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'production_processes')
		    AND NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_processes_production_order') THEN
		    CREATE INDEX idx_processes_production_order
		        ON production_processes (production_id, process_order);
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
