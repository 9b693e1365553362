package service

import (
	"math"
	"sort"
	"time"

	"woodtrack/internal/model"
)

// timelineSource identifies which of the two parallel stage-tracking
// representations feeds the timeline. Productions that predate the process
// model only carry stage logs; the two are never merged.
type timelineSource int

const (
	sourceEmpty timelineSource = iota
	sourceProcesses
	sourceStageLogs
)

// resolveTimelineSource picks the authoritative representation once per
// production: process rows win whenever any exist.
func resolveTimelineSource(p *model.Production) timelineSource {
	if len(p.Processes) > 0 {
		return sourceProcesses
	}
	if len(p.StageLogs) > 0 {
		return sourceStageLogs
	}
	return sourceEmpty
}

// BuildTimeline renders the customer-facing stage timeline for one
// production. Process rows are ordered by process_order; on the legacy
// path stage logs are ordered by the referenced stage's order_sequence.
// A production with neither yields an empty (non-nil) timeline.
func BuildTimeline(p *model.Production, now time.Time) []model.TimelineEntry {
	switch resolveTimelineSource(p) {
	case sourceProcesses:
		return timelineFromProcesses(p.Processes, now)
	case sourceStageLogs:
		return timelineFromStageLogs(p.StageLogs)
	default:
		return []model.TimelineEntry{}
	}
}

func timelineFromProcesses(processes []model.ProductionProcess, now time.Time) []model.TimelineEntry {
	ordered := make([]model.ProductionProcess, len(processes))
	copy(ordered, processes)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].ProcessOrder < ordered[j].ProcessOrder
	})

	entries := make([]model.TimelineEntry, 0, len(ordered))
	for _, proc := range ordered {
		entries = append(entries, model.TimelineEntry{
			Stage:             proc.ProcessName,
			Description:       StageDescription(proc.ProcessName),
			EstimatedDuration: FormatDuration(float64(proc.EstimatedDurationMinutes)),
			Status:            proc.Status,
			StartedAt:         fmtTime(proc.StartedAt),
			CompletedAt:       fmtTime(proc.CompletedAt),
			ProgressPct:       processProgress(proc, now),
		})
	}
	return entries
}

func timelineFromStageLogs(logs []model.ProductionStageLog) []model.TimelineEntry {
	ordered := make([]model.ProductionStageLog, len(logs))
	copy(ordered, logs)
	sort.Slice(ordered, func(i, j int) bool {
		return stageSequence(ordered[i]) < stageSequence(ordered[j])
	})

	entries := make([]model.TimelineEntry, 0, len(ordered))
	for _, log := range ordered {
		name := ""
		durationMinutes := 0.0
		if log.Stage != nil {
			name = log.Stage.Name
			durationMinutes = float64(log.Stage.DurationHours) * 60
		}
		entries = append(entries, model.TimelineEntry{
			Stage:             name,
			Description:       StageDescription(name),
			EstimatedDuration: FormatDuration(durationMinutes),
			Status:            log.Status,
			StartedAt:         fmtTime(log.StartedAt),
			CompletedAt:       fmtTime(log.CompletedAt),
			// Stage-log progress is computed upstream; carried, not re-derived.
			ProgressPct: log.ProgressPercentage.InexactFloat64(),
		})
	}
	return entries
}

// stageSequence orders logs by the referenced catalog stage, not by log id.
// A log with a missing stage row sorts last.
func stageSequence(log model.ProductionStageLog) int {
	if log.Stage == nil {
		return math.MaxInt32
	}
	return log.Stage.OrderSequence
}

// processProgress estimates how far along a single process step is:
// completed is 100; in_progress interpolates from elapsed time against the
// estimate, capped at 95 until actually completed, with 50 as the fallback
// when there is nothing to interpolate from; pending is 0.
func processProgress(proc model.ProductionProcess, now time.Time) float64 {
	switch proc.Status {
	case model.ProcessCompleted:
		return 100
	case model.ProcessInProgress:
		if proc.StartedAt != nil && proc.EstimatedDurationMinutes > 0 {
			elapsed := now.Sub(*proc.StartedAt).Minutes()
			pct := elapsed / float64(proc.EstimatedDurationMinutes) * 100
			return math.Min(95, math.Round(pct*100)/100)
		}
		return 50
	default:
		return 0
	}
}

func fmtTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
