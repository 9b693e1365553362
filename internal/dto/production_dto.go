package dto

import "time"

// ProductionFilter narrows the production list endpoint.
type ProductionFilter struct {
	OrderID     string `form:"order_id"`
	Status      string `form:"status"`
	ProductType string `form:"product_type"`
	Page        int    `form:"page,default=1"`
	Limit       int    `form:"limit,default=50"`
}

// ProductionResponse is the admin-facing view of one production record.
type ProductionResponse struct {
	ID                      string     `json:"id"`
	OrderID                 string     `json:"order_id"`
	ProductID               string     `json:"product_id"`
	ProductName             string     `json:"product_name"`
	ProductType             string     `json:"product_type"`
	CurrentStage            string     `json:"current_stage"`
	Status                  string     `json:"status"`
	Quantity                int        `json:"quantity"`
	Priority                string     `json:"priority"`
	RequiresTracking        bool       `json:"requires_tracking"`
	Progress                float64    `json:"progress"`
	ProductionStartedAt     *time.Time `json:"production_started_at"`
	EstimatedCompletionDate *time.Time `json:"estimated_completion_date"`
	ActualCompletionDate    *time.Time `json:"actual_completion_date"`
}

// ProductionListResponse wraps a paginated production listing.
type ProductionListResponse struct {
	Productions []ProductionResponse `json:"productions"`
	Total       int64                `json:"total"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
}

// ProgressResponse is the standalone live-progress read for dashboards.
type ProgressResponse struct {
	ProductionID string  `json:"production_id"`
	Progress     float64 `json:"progress"`
}

// ETAResponse is the standalone predicted-completion read.
type ETAResponse struct {
	ProductionID string     `json:"production_id"`
	ETA          *time.Time `json:"predicted_completion_date"`
}

// StageResponse is one entry of the public stage catalog listing.
type StageResponse struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	OrderSequence     int    `json:"order_sequence"`
	DurationHours     int    `json:"duration_hours"`
	EstimatedDuration string `json:"estimated_duration"`
}
