package progress_test

import (
	"math"
	"testing"
	"time"

	"github.com/drillhq/drill/internal/domain"
	"github.com/drillhq/drill/internal/progress"
)

func meta(name string, level domain.Level) domain.Metadata {
	return domain.Metadata{Name: name, Level: level, Difficulty: domain.DifficultyBeginner}
}

func result(name string, success bool, score float64, hints int) *domain.Result {
	return domain.NewResult(name, success, score, time.Minute, nil, "", hints)
}

func almost(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestBuild_EmptyHistory(t *testing.T) {
	report := progress.Build([]domain.Metadata{meta("a", domain.LevelBasicInteraction)}, nil)

	if !report.Empty {
		t.Fatal("Empty = false for no results")
	}
	if report.Message != progress.EmptyMessage {
		t.Errorf("Message = %q", report.Message)
	}
}

func TestBuild_Totals(t *testing.T) {
	exercises := []domain.Metadata{
		meta("a", domain.LevelBasicInteraction),
		meta("b", domain.LevelBasicInteraction),
		meta("c", domain.LevelStructuredResponses),
	}
	results := []*domain.Result{
		result("a", true, 1.0, 1),
		result("b", false, 0.0, 2),
		result("c", true, 0.5, 0),
	}

	report := progress.Build(exercises, results)

	if report.Attempts != 3 || report.Successful != 2 {
		t.Errorf("attempts/successful = %d/%d, want 3/2", report.Attempts, report.Successful)
	}
	if !almost(report.SuccessRate, 2.0/3.0) {
		t.Errorf("SuccessRate = %v, want 2/3", report.SuccessRate)
	}
	if !almost(report.AvgScore, 0.5) {
		t.Errorf("AvgScore = %v, want 0.5", report.AvgScore)
	}
	if report.AvgTime != time.Minute {
		t.Errorf("AvgTime = %v, want 1m", report.AvgTime)
	}
	if report.HintsUsed != 3 {
		t.Errorf("HintsUsed = %d, want 3", report.HintsUsed)
	}
}

func TestBuild_LevelsPairedByIndex(t *testing.T) {
	exercises := []domain.Metadata{
		meta("a", domain.LevelBasicInteraction),
		meta("b", domain.LevelStructuredResponses),
		meta("c", domain.LevelStructuredResponses),
	}
	// Only the first two exercises have been attempted.
	results := []*domain.Result{
		result("a", true, 1.0, 0),
		result("b", false, 0.25, 0),
	}

	report := progress.Build(exercises, results)

	if len(report.Levels) != 2 {
		t.Fatalf("levels = %d, want 2", len(report.Levels))
	}

	basic := report.Levels[0]
	if basic.Level != domain.LevelBasicInteraction || basic.Total != 1 || basic.Completed != 1 || basic.Successful != 1 {
		t.Errorf("basic stats = %+v", basic)
	}

	structured := report.Levels[1]
	if structured.Total != 2 || structured.Completed != 1 || structured.Successful != 0 {
		t.Errorf("structured stats = %+v", structured)
	}
	if !almost(structured.AvgScore, 0.25) {
		t.Errorf("structured AvgScore = %v, want 0.25 over completed attempts", structured.AvgScore)
	}
}

func TestBuild_UnattemptedLevelHasZeroScore(t *testing.T) {
	exercises := []domain.Metadata{
		meta("a", domain.LevelBasicInteraction),
		meta("b", domain.LevelToolIntegration),
	}
	results := []*domain.Result{result("a", true, 1.0, 0)}

	report := progress.Build(exercises, results)

	for _, stats := range report.Levels {
		if stats.Level != domain.LevelToolIntegration {
			continue
		}
		if stats.Completed != 0 || stats.AvgScore != 0 {
			t.Errorf("untouched level stats = %+v, want zeroes", stats)
		}
	}
}

func TestBuild_ExtraResultsCountInTotalsOnly(t *testing.T) {
	exercises := []domain.Metadata{meta("a", domain.LevelBasicInteraction)}
	results := []*domain.Result{
		result("a", true, 1.0, 0),
		result("a", true, 1.0, 0), // retry beyond the exercise list
	}

	report := progress.Build(exercises, results)

	if report.Attempts != 2 {
		t.Errorf("Attempts = %d, want 2", report.Attempts)
	}
	if report.Levels[0].Completed != 1 {
		t.Errorf("level Completed = %d, want 1 (index-paired)", report.Levels[0].Completed)
	}
}
