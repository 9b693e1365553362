package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Production statuses as written by the production-management workflow.
const (
	ProductionPending    = "Pending"
	ProductionInProgress = "In Progress"
	ProductionCompleted  = "Completed"
	ProductionHold       = "Hold"
)

// Process step statuses within a production.
const (
	ProcessPending    = "pending"
	ProcessInProgress = "in_progress"
	ProcessCompleted  = "completed"
)

// Production is the authoritative production-state record for one
// (order, product) pair. This service reads it; the production-management
// workflow owns all writes.
type Production struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductName string    `gorm:"not null"`
	// ProductType: "alkansya" for the stock coin-bank line, anything else is
	// treated as a custom furniture build.
	ProductType  string `gorm:"not null;default:'custom'"`
	CurrentStage string
	Status       string `gorm:"not null;default:'Pending';index"`
	Quantity     int    `gorm:"not null;default:1"`
	Priority     string `gorm:"not null;default:'normal'"`
	// RequiresTracking=false means progress is binary (0 or 100) and no
	// stage breakdown is expected on the customer side.
	RequiresTracking bool `gorm:"not null;default:true"`
	// OverallProgress is a manual override; nil means "derive from steps".
	OverallProgress         *decimal.Decimal `gorm:"type:decimal(5,2)"`
	ProductionStartedAt     *time.Time
	EstimatedCompletionDate *time.Time
	ActualCompletionDate    *time.Time
	Notes                   *string
	CreatedAt               time.Time
	UpdatedAt               time.Time

	Processes []ProductionProcess  `gorm:"foreignKey:ProductionID"`
	StageLogs []ProductionStageLog `gorm:"foreignKey:ProductionID"`
}

// ProductionProcess is one ordered unit of work within a Production.
// ProcessOrder values are unique per production and define the only valid
// timeline ordering.
type ProductionProcess struct {
	ID                       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductionID             uuid.UUID `gorm:"type:uuid;not null;index"`
	ProcessName              string    `gorm:"not null"`
	ProcessOrder             int       `gorm:"not null"`
	Status                   string    `gorm:"not null;default:'pending'"`
	StartedAt                *time.Time
	CompletedAt              *time.Time
	EstimatedDurationMinutes int
	IsDelayed                bool `gorm:"not null;default:false"`
	DelayReason              *string
	CompletedByName          *string
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// TableName overrides GORM's default pluralization (production_processs).
func (ProductionProcess) TableName() string { return "production_processes" }
