package service

import (
	"context"
	"fmt"
	"time"

	"woodtrack/internal/dto"
	"woodtrack/internal/model"
	"woodtrack/internal/repository"

	"github.com/google/uuid"
)

// TrackingService is the read side: stored snapshots for the admin view,
// live-computed numbers for the customer view. It never writes.
type TrackingService interface {
	GetOrderTracking(ctx context.Context, orderID uuid.UUID) ([]dto.TrackingResponse, error)
	GetCustomerTracking(ctx context.Context, orderID uuid.UUID) (*dto.CustomerTrackingResponse, error)
	Stats(ctx context.Context) (*dto.TrackingStatsResponse, error)
}

type trackingService struct {
	productions repository.ProductionRepository
	trackings   repository.OrderTrackingRepository
	now         func() time.Time
}

func NewTrackingService(
	productions repository.ProductionRepository,
	trackings repository.OrderTrackingRepository,
) TrackingService {
	return &trackingService{
		productions: productions,
		trackings:   trackings,
		now:         time.Now,
	}
}

func (s *trackingService) GetOrderTracking(ctx context.Context, orderID uuid.UUID) ([]dto.TrackingResponse, error) {
	trackings, err := s.trackings.ListByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("tracking: list for order %s: %w", orderID, err)
	}

	responses := make([]dto.TrackingResponse, 0, len(trackings))
	for _, t := range trackings {
		responses = append(responses, trackingToResponse(&t))
	}
	return responses, nil
}

// GetCustomerTracking computes progress, ETA, and timeline live from the
// production records so the customer page shows a current number even
// between syncs.
func (s *trackingService) GetCustomerTracking(ctx context.Context, orderID uuid.UUID) (*dto.CustomerTrackingResponse, error) {
	productions, err := s.productions.ListByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("tracking: load productions for order %s: %w", orderID, err)
	}

	now := s.now()
	items := make([]dto.CustomerTrackingItem, 0, len(productions))
	for i := range productions {
		p := &productions[i]

		trackingType := model.TrackingTypeCustom
		if p.ProductType == model.TrackingTypeAlkansya {
			trackingType = model.TrackingTypeAlkansya
		}

		items = append(items, dto.CustomerTrackingItem{
			ProductID:    p.ProductID.String(),
			ProductName:  p.ProductName,
			TrackingType: trackingType,
			CurrentStage: p.CurrentStage,
			Status:       MapProductionStatus(p.Status),
			Progress:     CalculateProgress(p).InexactFloat64(),
			ETA:          PredictETA(p, now),
			Timeline:     BuildTimeline(p, now),
		})
	}

	return &dto.CustomerTrackingResponse{
		OrderID: orderID.String(),
		Items:   items,
	}, nil
}

func (s *trackingService) Stats(ctx context.Context) (*dto.TrackingStatsResponse, error) {
	counts, err := s.trackings.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("tracking: stats: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}
	return &dto.TrackingStatsResponse{Total: total, ByStatus: counts}, nil
}

func trackingToResponse(t *model.OrderTracking) dto.TrackingResponse {
	return dto.TrackingResponse{
		ID:                      t.ID.String(),
		OrderID:                 t.OrderID.String(),
		ProductID:               t.ProductID.String(),
		TrackingType:            t.TrackingType,
		CurrentStage:            t.CurrentStage,
		Status:                  t.Status,
		EstimatedStartDate:      t.EstimatedStartDate,
		EstimatedCompletionDate: t.EstimatedCompletionDate,
		ActualStartDate:         t.ActualStartDate,
		ActualCompletionDate:    t.ActualCompletionDate,
		ProcessTimeline:         t.ProcessTimeline,
		UpdatedAt:               t.UpdatedAt,
	}
}
