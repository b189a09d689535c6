// Package runner drives exercise attempts and keeps the append-only attempt
// history that the progress report is built from.
package runner

import (
	"context"
	"errors"
	"log/slog"

	"github.com/drillhq/drill/internal/domain"
	"github.com/drillhq/drill/internal/validate"
)

// Runner holds the exercises under study and every recorded attempt.
// It is not safe for concurrent use; one runner per learner session.
type Runner struct {
	logger    *slog.Logger
	exercises []domain.Exercise
	results   []*domain.Result
}

// New creates an empty runner.
func New(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{logger: logger}
}

// Add appends an exercise to the session in study order.
func (r *Runner) Add(ex domain.Exercise) {
	r.exercises = append(r.exercises, ex)
}

// Exercises returns the exercises in the order they were added.
func (r *Runner) Exercises() []domain.Exercise {
	out := make([]domain.Exercise, len(r.exercises))
	copy(out, r.exercises)
	return out
}

// Results returns a copy of the attempt history in recording order.
func (r *Runner) Results() []*domain.Result {
	out := make([]*domain.Result, len(r.results))
	copy(out, r.results)
	return out
}

// Run executes one attempt against an exercise and records the outcome.
//
// Setup failures and caller cancellation propagate without a history entry.
// A submission that fails static validation is recorded as a failed attempt
// without ever being executed. An EvaluationError, a fault in the grading
// machinery rather than the submission, is also recorded as a failed attempt
// so a flaky grader cannot silently eat a result.
func (r *Runner) Run(ctx context.Context, ex domain.Exercise, submitted string) (*domain.Result, error) {
	name := ex.Meta().Name
	r.logger.Info("starting attempt", "exercise", name)

	if err := ex.Setup(ctx); err != nil {
		r.logger.Error("setup failed", "exercise", name, "error", err)
		return nil, err
	}

	ex.StartTimer()

	if issues := validate.Check(submitted); len(issues) > 0 {
		r.logger.Info("submission rejected before execution", "exercise", name, "issues", len(issues))
		result := domain.NewFailedResult(name, ex.Elapsed(), issues, ex.HintsUsed())
		r.results = append(r.results, result)
		return result, nil
	}

	result, err := ex.Evaluate(ctx, submitted)
	if err != nil {
		var evalErr *domain.EvaluationError
		if !errors.As(err, &evalErr) {
			return nil, err
		}
		r.logger.Error("evaluation fault", "exercise", name, "error", err)
		result = domain.NewFailedResult(name, ex.Elapsed(), []string{evalErr.Error()}, ex.HintsUsed())
		r.results = append(r.results, result)
		return result, nil
	}

	// The exercise owns the hint counter; whatever the result carries is
	// replaced with the authoritative count.
	result.HintsUsed = ex.HintsUsed()

	r.results = append(r.results, result)
	r.logger.Info("attempt recorded",
		"exercise", name,
		"success", result.Success,
		"score", result.Score,
		"hints_used", result.HintsUsed)
	return result, nil
}

// RunAll attempts each exercise in order with its paired submission and stops
// at the first setup failure or cancellation. Submissions and exercises are
// matched by index; a missing submission counts as an empty one.
func (r *Runner) RunAll(ctx context.Context, submissions []string) ([]*domain.Result, error) {
	results := make([]*domain.Result, 0, len(r.exercises))
	for i, ex := range r.exercises {
		var code string
		if i < len(submissions) {
			code = submissions[i]
		}
		result, err := r.Run(ctx, ex, code)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}
