package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Customer-facing tracking statuses (distinct from production statuses).
const (
	TrackingPending      = "pending"
	TrackingInProduction = "in_production"
	TrackingCompleted    = "completed"
)

// Tracking types derived from the product type.
const (
	TrackingTypeAlkansya = "alkansya"
	TrackingTypeCustom   = "custom"
)

// TimelineEntry is one rendered stage of the customer-facing timeline,
// stored as part of the tracking snapshot and returned by the API.
type TimelineEntry struct {
	Stage             string  `json:"stage"`
	Description       string  `json:"description"`
	EstimatedDuration string  `json:"estimated_duration"`
	Status            string  `json:"status"`
	StartedAt         *string `json:"started_at"`
	CompletedAt       *string `json:"completed_at"`
	ProgressPct       float64 `json:"progress_percentage"`
}

// OrderTracking is the derived customer-facing snapshot, one row per
// (order, product) pair. Exclusively written by the tracking sync engine;
// read-only to everything else. Created lazily on first sync, never deleted.
type OrderTracking struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tracking_order_product"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tracking_order_product"`
	// TrackingType: "alkansya" when the product carries exactly that tag,
	// "custom" otherwise.
	TrackingType            string `gorm:"not null"`
	CurrentStage            string
	Status                  string `gorm:"not null;default:'pending';index"`
	EstimatedStartDate      *time.Time
	EstimatedCompletionDate *time.Time
	ActualStartDate         *time.Time
	ActualCompletionDate    *time.Time
	ProcessTimeline         datatypes.JSONSlice[TimelineEntry] `gorm:"type:jsonb"`
	CustomerNotes           *string
	CreatedAt               time.Time
	// UpdatedAt is force-bumped on every sync even when no value changed —
	// downstream consumers treat it as a change signal.
	UpdatedAt time.Time
}

// TableName overrides GORM's default pluralization (order_trackings → order_tracking).
func (OrderTracking) TableName() string { return "order_tracking" }
