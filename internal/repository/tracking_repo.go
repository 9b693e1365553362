package repository

import (
	"context"
	"errors"

	"woodtrack/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderTrackingRepository is the write-side contract for the customer-facing
// tracking snapshot. The sync engine is its sole consumer for writes.
type OrderTrackingRepository interface {
	FindByOrderAndProduct(ctx context.Context, orderID, productID uuid.UUID) (*model.OrderTracking, error)
	ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]model.OrderTracking, error)
	Create(ctx context.Context, t *model.OrderTracking) error
	// Overwrite replaces the derived columns of a tracking row. updated_at
	// must be set explicitly by the caller so the timestamp ticks even when
	// no other column changed.
	Overwrite(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type trackingRepo struct{ db *gorm.DB }

func NewOrderTrackingRepository(db *gorm.DB) OrderTrackingRepository { return &trackingRepo{db: db} }

func (r *trackingRepo) FindByOrderAndProduct(ctx context.Context, orderID, productID uuid.UUID) (*model.OrderTracking, error) {
	var t model.OrderTracking
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND product_id = ?", orderID, productID).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *trackingRepo) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]model.OrderTracking, error) {
	var trackings []model.OrderTracking
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&trackings).Error
	return trackings, err
}

func (r *trackingRepo) Create(ctx context.Context, t *model.OrderTracking) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *trackingRepo) Overwrite(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	// UpdateColumns skips GORM's automatic UpdatedAt tracking — the caller
	// controls the timestamp explicitly.
	return r.db.WithContext(ctx).Model(&model.OrderTracking{}).
		Where("id = ?", id).
		UpdateColumns(fields).Error
}

func (r *trackingRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.OrderTracking{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.Count
	}
	return counts, nil
}

// IsNotFound reports whether err is GORM's record-not-found sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
