package service

import (
	"testing"
	"time"

	"woodtrack/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tp(t time.Time) *time.Time { return &t }

func TestBuildTimeline_ProcessesOrderedByProcessOrder(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	p := &model.Production{
		Processes: []model.ProductionProcess{
			{ProcessName: "Finishing", ProcessOrder: 5, Status: model.ProcessPending},
			{ProcessName: "Material Preparation", ProcessOrder: 1, Status: model.ProcessCompleted},
			{ProcessName: "Assembly", ProcessOrder: 3, Status: model.ProcessInProgress},
		},
	}

	entries := BuildTimeline(p, now)
	require.Len(t, entries, 3)
	assert.Equal(t, "Material Preparation", entries[0].Stage)
	assert.Equal(t, "Assembly", entries[1].Stage)
	assert.Equal(t, "Finishing", entries[2].Stage)

	assert.Equal(t, "Selecting and preparing high-quality materials", entries[0].Description)
	assert.Equal(t, 100.0, entries[0].ProgressPct)
	assert.Equal(t, 0.0, entries[2].ProgressPct)
}

func TestBuildTimeline_ProcessesWinOverStageLogs(t *testing.T) {
	p := &model.Production{
		Processes: []model.ProductionProcess{
			{ProcessName: "Assembly", ProcessOrder: 1, Status: model.ProcessPending},
		},
		StageLogs: []model.ProductionStageLog{
			{Status: model.ProcessCompleted, Stage: &model.ProductionStage{Name: "Finishing", OrderSequence: 5}},
		},
	}

	entries := BuildTimeline(p, time.Now())
	require.Len(t, entries, 1)
	assert.Equal(t, "Assembly", entries[0].Stage)
}

func TestBuildTimeline_StageLogsOrderedByStageSequence(t *testing.T) {
	p := &model.Production{
		StageLogs: []model.ProductionStageLog{
			{
				Status:             model.ProcessPending,
				ProgressPercentage: decimal.NewFromInt(0),
				Stage:              &model.ProductionStage{Name: "Finishing", OrderSequence: 5, DurationHours: 36},
			},
			{
				Status:             model.ProcessCompleted,
				ProgressPercentage: decimal.NewFromInt(100),
				Stage:              &model.ProductionStage{Name: "Cutting & Shaping", OrderSequence: 2, DurationHours: 36},
			},
			{
				// Orphaned log without a stage row sorts last.
				Status:             model.ProcessPending,
				ProgressPercentage: decimal.NewFromInt(0),
			},
		},
	}

	entries := BuildTimeline(p, time.Now())
	require.Len(t, entries, 3)
	assert.Equal(t, "Cutting & Shaping", entries[0].Stage)
	assert.Equal(t, "Finishing", entries[1].Stage)
	assert.Equal(t, "", entries[2].Stage)
	assert.Equal(t, "Processing", entries[2].Description)

	// Stage-log progress is carried from the column, not re-derived.
	assert.Equal(t, 100.0, entries[0].ProgressPct)
	assert.Equal(t, "1.5 days", entries[0].EstimatedDuration)
}

func TestBuildTimeline_EmptyProductionYieldsEmptyTimeline(t *testing.T) {
	entries := BuildTimeline(&model.Production{}, time.Now())
	require.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestProcessProgress_InterpolatesElapsedTime(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// Half the estimate elapsed: 50%.
	halfway := model.ProductionProcess{
		Status:                   model.ProcessInProgress,
		StartedAt:                tp(now.Add(-18 * time.Hour)),
		EstimatedDurationMinutes: 36 * 60,
	}
	assert.Equal(t, 50.0, processProgress(halfway, now))

	// Way past the estimate: capped at 95 until actually completed.
	overdue := model.ProductionProcess{
		Status:                   model.ProcessInProgress,
		StartedAt:                tp(now.Add(-100 * time.Hour)),
		EstimatedDurationMinutes: 60,
	}
	assert.Equal(t, 95.0, processProgress(overdue, now))

	// No start time to interpolate from: fixed 50.
	unstarted := model.ProductionProcess{
		Status:                   model.ProcessInProgress,
		EstimatedDurationMinutes: 60,
	}
	assert.Equal(t, 50.0, processProgress(unstarted, now))
}

func TestBuildTimeline_TimesRenderedAsUTCRFC3339(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	started := time.Date(2026, 3, 10, 20, 0, 0, 0, loc)

	p := &model.Production{
		Processes: []model.ProductionProcess{
			{ProcessName: "Assembly", ProcessOrder: 1, Status: model.ProcessInProgress, StartedAt: &started},
		},
	}

	entries := BuildTimeline(p, time.Now())
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].StartedAt)
	assert.Equal(t, "2026-03-10T12:00:00Z", *entries[0].StartedAt)
	assert.Nil(t, entries[0].CompletedAt)
}
