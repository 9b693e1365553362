package repository

import (
	"context"

	"woodtrack/internal/dto"
	"woodtrack/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductionRepository is the read-side contract over production records.
// This service never writes them — the production-management workflow owns
// all mutations.
type ProductionRepository interface {
	// ListByOrderID returns every production of an order with processes and
	// stage logs (plus their catalog stage) eagerly loaded, ready for the
	// pure calculators.
	ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]model.Production, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Production, error)
	List(ctx context.Context, filter dto.ProductionFilter) ([]model.Production, int64, error)
	// ActiveOrderIDs lists distinct order ids that still have a
	// not-yet-completed production, for the reconciliation sweep.
	ActiveOrderIDs(ctx context.Context) ([]uuid.UUID, error)
}

type productionRepo struct{ db *gorm.DB }

func NewProductionRepository(db *gorm.DB) ProductionRepository { return &productionRepo{db: db} }

func (r *productionRepo) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]model.Production, error) {
	var productions []model.Production
	err := r.db.WithContext(ctx).
		Preload("Processes", func(db *gorm.DB) *gorm.DB {
			return db.Order("process_order ASC")
		}).
		Preload("StageLogs.Stage").
		Where("order_id = ?", orderID).
		Find(&productions).Error
	return productions, err
}

func (r *productionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Production, error) {
	var p model.Production
	err := r.db.WithContext(ctx).
		Preload("Processes", func(db *gorm.DB) *gorm.DB {
			return db.Order("process_order ASC")
		}).
		Preload("StageLogs.Stage").
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productionRepo) List(ctx context.Context, filter dto.ProductionFilter) ([]model.Production, int64, error) {
	var productions []model.Production
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Production{})
	if filter.OrderID != "" {
		q = q.Where("order_id = ?", filter.OrderID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.ProductType != "" {
		q = q.Where("product_type = ?", filter.ProductType)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("created_at DESC").Limit(filter.Limit).Offset(offset).Find(&productions).Error
	return productions, total, err
}

func (r *productionRepo) ActiveOrderIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.Production{}).
		Distinct("order_id").
		Where("status <> ?", model.ProductionCompleted).
		Pluck("order_id", &ids).Error
	return ids, err
}
