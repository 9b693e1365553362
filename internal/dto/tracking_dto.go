package dto

import (
	"time"

	"woodtrack/internal/model"
)

// TrackingResponse is the stored snapshot for one (order, product) pair.
type TrackingResponse struct {
	ID                      string                `json:"id"`
	OrderID                 string                `json:"order_id"`
	ProductID               string                `json:"product_id"`
	TrackingType            string                `json:"tracking_type"`
	CurrentStage            string                `json:"current_stage"`
	Status                  string                `json:"status"`
	EstimatedStartDate      *time.Time            `json:"estimated_start_date"`
	EstimatedCompletionDate *time.Time            `json:"estimated_completion_date"`
	ActualStartDate         *time.Time            `json:"actual_start_date"`
	ActualCompletionDate    *time.Time            `json:"actual_completion_date"`
	ProcessTimeline         []model.TimelineEntry `json:"process_timeline"`
	UpdatedAt               time.Time             `json:"updated_at"`
}

// CustomerTrackingItem is the customer view of one product in an order.
// Progress, ETA, and timeline are computed live from the production record
// rather than read from the stored snapshot.
type CustomerTrackingItem struct {
	ProductID    string                `json:"product_id"`
	ProductName  string                `json:"product_name"`
	TrackingType string                `json:"tracking_type"`
	CurrentStage string                `json:"current_stage"`
	Status       string                `json:"status"`
	Progress     float64               `json:"progress"`
	ETA          *time.Time            `json:"predicted_completion_date"`
	Timeline     []model.TimelineEntry `json:"timeline"`
}

// CustomerTrackingResponse wraps all items of an order for the customer page.
type CustomerTrackingResponse struct {
	OrderID string                 `json:"order_id"`
	Items   []CustomerTrackingItem `json:"items"`
}

// TrackingStatsResponse summarizes tracking rows by status for the admin
// dashboard.
type TrackingStatsResponse struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}

// SyncResultResponse reports the outcome of syncing one production record.
type SyncResultResponse struct {
	ProductionID string `json:"production_id"`
	ProductID    string `json:"product_id"`
	TrackingID   string `json:"tracking_id,omitempty"`
	Created      bool    `json:"created"`
	CurrentStage string  `json:"current_stage,omitempty"`
	Status       string  `json:"status,omitempty"`
	Progress     float64 `json:"progress"`
	Error        string  `json:"error,omitempty"`
}

// SyncResponse is the manual sync trigger's reply.
type SyncResponse struct {
	OrderID string               `json:"order_id"`
	Results []SyncResultResponse `json:"results"`
}
