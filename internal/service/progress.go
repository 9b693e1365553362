package service

import (
	"github.com/shopspring/decimal"

	"woodtrack/internal/model"
)

var progressComplete = decimal.NewFromInt(100)

// CalculateProgress derives the percent complete (0-100, two decimals) for
// one production record. Precedence, first applicable rule wins:
//
//  1. Completed productions are always 100.
//  2. Untracked productions are binary: 100 when completed, otherwise 0.
//  3. A manual overall_progress override is returned as-is (rounded).
//  4. With process rows, a weighted average: completed=100, in_progress=50,
//     pending=0, divided by the total step count.
//  5. No data at all yields 0 — never an error and never a division.
func CalculateProgress(p *model.Production) decimal.Decimal {
	if p.Status == model.ProductionCompleted {
		return progressComplete
	}

	if !p.RequiresTracking {
		// Binary even if the completed check above were bypassed.
		if p.Status == model.ProductionCompleted {
			return progressComplete
		}
		return decimal.Zero
	}

	if p.OverallProgress != nil {
		return p.OverallProgress.Round(2)
	}

	if len(p.Processes) == 0 {
		return decimal.Zero
	}

	var sum int64
	for _, proc := range p.Processes {
		switch proc.Status {
		case model.ProcessCompleted:
			sum += 100
		case model.ProcessInProgress:
			sum += 50
		}
	}

	return decimal.NewFromInt(sum).
		Div(decimal.NewFromInt(int64(len(p.Processes)))).
		Round(2)
}
