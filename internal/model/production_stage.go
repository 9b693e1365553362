package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductionStage is one entry of the shared stage catalog used by the
// legacy stage-log tracking path. OrderSequence (1-6) defines the
// canonical stage order.
type ProductionStage struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"uniqueIndex;not null"`
	Description   string
	OrderSequence int  `gorm:"not null"`
	DurationHours int  `gorm:"not null;default:24"`
	IsActive      bool `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProductionStageLog records a single stage's progress on the legacy
// tracking path. Only consulted when a production has no process rows.
type ProductionStageLog struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductionID          uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductionStageID     uuid.UUID `gorm:"type:uuid;not null"`
	Status                string    `gorm:"not null;default:'pending'"`
	StartedAt             *time.Time
	CompletedAt           *time.Time
	EstimatedCompletionAt *time.Time
	// ProgressPercentage is computed upstream by the production workflow
	// and is carried into the timeline as-is, never re-derived here.
	ProgressPercentage decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Notes              *string
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Stage *ProductionStage `gorm:"foreignKey:ProductionStageID"`
}
