package runner_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/drillhq/drill/internal/domain"
	"github.com/drillhq/drill/internal/runner"
)

// fakeExercise lets the tests script setup and evaluation outcomes while the
// embedded tracker provides real hint and timer behavior.
type fakeExercise struct {
	domain.Tracker
	setupErr  error
	result    *domain.Result
	evalErr   error
	evaluated bool
	setupRuns int
}

var _ domain.Exercise = (*fakeExercise)(nil)

func newFake(name string) *fakeExercise {
	meta := domain.Metadata{
		Name:       name,
		Level:      domain.LevelBasicInteraction,
		Difficulty: domain.DifficultyBeginner,
	}
	return &fakeExercise{
		Tracker: domain.NewTracker(meta, []string{"hint one", "hint two"}, 3),
	}
}

func (f *fakeExercise) Setup(context.Context) error {
	f.setupRuns++
	return f.setupErr
}

func (f *fakeExercise) Evaluate(context.Context, string) (*domain.Result, error) {
	f.evaluated = true
	if f.evalErr != nil {
		return nil, f.evalErr
	}
	return f.result, nil
}

func (f *fakeExercise) Template() string { return "func Solve() (string, error) { return \"\", nil }" }
func (f *fakeExercise) Solution() string { return "func Solve() (string, error) { return \"\", nil }" }

const validSubmission = `
func Solve() (string, error) {
	return "ok", nil
}
`

func TestRun_RecordsResult(t *testing.T) {
	ex := newFake("greeting")
	ex.result = domain.NewResult("greeting", true, 1.0, time.Second, nil, "hello", 99)

	r := runner.New(nil)
	r.Add(ex)

	result, err := r.Run(context.Background(), ex, validSubmission)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !result.Success {
		t.Error("Success = false")
	}

	history := r.Results()
	if len(history) != 1 || history[0] != result {
		t.Fatalf("history = %v, want the returned result", history)
	}
}

func TestRun_OverwritesHintsUsed(t *testing.T) {
	ex := newFake("greeting")
	ex.result = domain.NewResult("greeting", true, 1.0, time.Second, nil, "", 99)
	if _, ok := ex.NextHint(); !ok {
		t.Fatal("NextHint failed")
	}

	r := runner.New(nil)
	result, err := r.Run(context.Background(), ex, validSubmission)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.HintsUsed != 1 {
		t.Errorf("HintsUsed = %d, want the exercise counter 1", result.HintsUsed)
	}
}

func TestRun_SetupFailureLeavesNoHistory(t *testing.T) {
	ex := newFake("greeting")
	ex.setupErr = domain.NewSetupError("greeting", "no AI provider configured", nil)

	r := runner.New(nil)
	_, err := r.Run(context.Background(), ex, validSubmission)

	var setupErr *domain.SetupError
	if !errors.As(err, &setupErr) {
		t.Fatalf("Run = %v, want SetupError", err)
	}
	if len(r.Results()) != 0 {
		t.Error("setup failure left a history entry")
	}
	if ex.evaluated {
		t.Error("Evaluate ran after a failed setup")
	}
}

func TestRun_ValidationFailureRecordedWithoutExecution(t *testing.T) {
	ex := newFake("greeting")

	r := runner.New(nil)
	result, err := r.Run(context.Background(), ex, `
func Solve() (string, error) {
	return ai.Communicate("hi")
}
`)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Success {
		t.Error("Success = true for an invalid submission")
	}
	if len(result.Errors) == 0 {
		t.Error("no validation errors recorded")
	}
	if ex.evaluated {
		t.Error("Evaluate ran on a submission that failed validation")
	}
	if len(r.Results()) != 1 {
		t.Errorf("history length = %d, want 1 recorded failure", len(r.Results()))
	}
}

func TestRun_EvaluationErrorRecordedAsFailure(t *testing.T) {
	ex := newFake("greeting")
	ex.evalErr = domain.NewEvaluationError("greeting", "AI client failed during evaluation",
		errors.New("status 500"))

	r := runner.New(nil)
	result, err := r.Run(context.Background(), ex, validSubmission)
	if err != nil {
		t.Fatalf("Run = %v, want the fault normalized into a result", err)
	}
	if result.Success || result.Score != 0 {
		t.Errorf("fault recorded as Success=%v Score=%v", result.Success, result.Score)
	}
	if len(r.Results()) != 1 {
		t.Errorf("history length = %d, want 1", len(r.Results()))
	}
}

func TestRun_CancellationPropagates(t *testing.T) {
	ex := newFake("greeting")
	ex.evalErr = context.Canceled

	r := runner.New(nil)
	if _, err := r.Run(context.Background(), ex, validSubmission); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run = %v, want context.Canceled", err)
	}
	if len(r.Results()) != 0 {
		t.Error("cancellation left a history entry")
	}
}

func TestRun_HistoryIsAppendOnly(t *testing.T) {
	ex := newFake("greeting")
	ex.result = domain.NewResult("greeting", false, 0.5, time.Second, []string{"partial"}, "", 0)

	r := runner.New(nil)
	for i := 0; i < 3; i++ {
		if _, err := r.Run(context.Background(), ex, validSubmission); err != nil {
			t.Fatalf("Run %d failed: %v", i, err)
		}
	}
	if len(r.Results()) != 3 {
		t.Errorf("history length = %d, want one entry per attempt", len(r.Results()))
	}

	// Mutating the returned slice must not touch the runner's history.
	history := r.Results()
	history[0] = nil
	if r.Results()[0] == nil {
		t.Error("Results exposed the internal slice")
	}
}

func TestRunAll_StopsOnSetupFailure(t *testing.T) {
	good := newFake("first")
	good.result = domain.NewResult("first", true, 1.0, time.Second, nil, "", 0)
	bad := newFake("second")
	bad.setupErr = domain.NewSetupError("second", "no AI provider configured", nil)
	never := newFake("third")

	r := runner.New(nil)
	r.Add(good)
	r.Add(bad)
	r.Add(never)

	results, err := r.RunAll(context.Background(), []string{validSubmission, validSubmission, validSubmission})
	var setupErr *domain.SetupError
	if !errors.As(err, &setupErr) {
		t.Fatalf("RunAll = %v, want SetupError", err)
	}
	if len(results) != 1 {
		t.Errorf("completed results = %d, want 1", len(results))
	}
	if never.setupRuns != 0 {
		t.Error("exercise after the failure was still attempted")
	}
}
