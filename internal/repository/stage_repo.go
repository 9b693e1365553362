package repository

import (
	"context"

	"woodtrack/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StageRepository exposes the shared production stage catalog table.
type StageRepository interface {
	ListActive(ctx context.Context) ([]model.ProductionStage, error)
	Upsert(ctx context.Context, stage *model.ProductionStage) error
}

type stageRepo struct{ db *gorm.DB }

func NewStageRepository(db *gorm.DB) StageRepository { return &stageRepo{db: db} }

func (r *stageRepo) ListActive(ctx context.Context) ([]model.ProductionStage, error) {
	var stages []model.ProductionStage
	err := r.db.WithContext(ctx).
		Where("is_active = true").
		Order("order_sequence ASC").
		Find(&stages).Error
	return stages, err
}

func (r *stageRepo) Upsert(ctx context.Context, stage *model.ProductionStage) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"description", "order_sequence", "duration_hours", "is_active", "updated_at",
		}),
	}).Create(stage).Error
}
