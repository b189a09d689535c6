// Package progress summarizes an attempt history into a learner-facing
// report. Building a report never mutates the inputs.
package progress

import (
	"time"

	"github.com/drillhq/drill/internal/domain"
)

// EmptyMessage is shown when no attempts have been recorded.
const EmptyMessage = "No exercises completed yet. Time to start practicing!"

// LevelStats aggregates the attempts that fall under one exercise level.
type LevelStats struct {
	Level      domain.Level
	Total      int // attempts at this level
	Completed  int // attempts that were recorded at all
	Successful int
	AvgScore   float64
}

// Report is the full progress summary.
type Report struct {
	Empty       bool
	Message     string
	Attempts    int
	Successful  int
	SuccessRate float64
	AvgScore    float64
	AvgTime     time.Duration
	HintsUsed   int
	Levels      []LevelStats
}

// Build pairs exercises and results by position: the i-th result is the
// attempt at the i-th exercise. Extra results beyond the exercise list carry
// no level and are counted only in the totals.
func Build(exercises []domain.Metadata, results []*domain.Result) *Report {
	if len(results) == 0 {
		return &Report{Empty: true, Message: EmptyMessage}
	}

	report := &Report{Attempts: len(results)}

	var scoreSum float64
	var timeSum time.Duration
	for _, res := range results {
		if res.Success {
			report.Successful++
		}
		scoreSum += res.Score
		timeSum += res.TimeTaken
		report.HintsUsed += res.HintsUsed
	}
	report.SuccessRate = float64(report.Successful) / float64(len(results))
	report.AvgScore = scoreSum / float64(len(results))
	report.AvgTime = timeSum / time.Duration(len(results))

	report.Levels = buildLevels(exercises, results)
	return report
}

func buildLevels(exercises []domain.Metadata, results []*domain.Result) []LevelStats {
	order := []domain.Level{
		domain.LevelBasicInteraction,
		domain.LevelStructuredResponses,
		domain.LevelToolIntegration,
		domain.LevelAdvancedOrchestration,
	}

	byLevel := make(map[domain.Level]*LevelStats, len(order))
	for _, level := range order {
		byLevel[level] = &LevelStats{Level: level}
	}

	for i, meta := range exercises {
		stats, ok := byLevel[meta.Level]
		if !ok {
			continue
		}
		stats.Total++
		if i >= len(results) {
			continue
		}
		res := results[i]
		stats.Completed++
		if res.Success {
			stats.Successful++
		}
		stats.AvgScore += res.Score
	}

	out := make([]LevelStats, 0, len(order))
	for _, level := range order {
		stats := byLevel[level]
		if stats.Completed > 0 {
			stats.AvgScore /= float64(stats.Completed)
		}
		if stats.Total == 0 {
			continue
		}
		out = append(out, *stats)
	}
	return out
}
