package service

import (
	"time"

	"github.com/shopspring/decimal"

	"woodtrack/internal/model"
)

// PredictETA returns the predicted completion date for a production at the
// given instant, by linear extrapolation from elapsed time and progress:
//
//   - Completed productions report their actual completion date.
//   - Zero progress falls back to the planned estimate (nothing to
//     extrapolate from).
//   - Productions started today also fall back to the planned estimate —
//     a single data point makes the rate meaningless.
//   - Otherwise: remaining = elapsed_days / progress × (100 − progress),
//     rounded up to whole days from now.
//
// May return nil when the production carries no usable date at all.
func PredictETA(p *model.Production, now time.Time) *time.Time {
	if p.Status == model.ProductionCompleted {
		return p.ActualCompletionDate
	}

	progress := CalculateProgress(p)
	if progress.IsZero() {
		return p.EstimatedCompletionDate
	}

	start := p.ProductionStartedAt
	if start == nil {
		created := p.CreatedAt
		start = &created
	}

	elapsedDays := int64(now.Sub(*start).Hours() / 24)
	if elapsedDays <= 0 {
		return p.EstimatedCompletionDate
	}

	remaining := decimal.NewFromInt(elapsedDays).
		Div(progress).
		Mul(progressComplete.Sub(progress))

	eta := now.AddDate(0, 0, int(remaining.Ceil().IntPart()))
	return &eta
}
