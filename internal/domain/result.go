package domain

import (
	"time"

	"github.com/google/uuid"
)

// Result is the immutable record of one attempt's outcome. It is created
// exactly once per run and never mutated after the runner appends it to
// history.
//
// Invariant: if Errors is non-empty, Success is false. Score stays in
// [0.0, 1.0].
type Result struct {
	ID         uuid.UUID
	Exercise   string
	Success    bool
	Score      float64
	TimeTaken  time.Duration
	Errors     []string
	Output     string // captured attempt output, may be empty
	HintsUsed  int
	RecordedAt time.Time
}

// NewResult builds a graded result, clamping the score and enforcing the
// errors-imply-failure invariant.
func NewResult(exercise string, success bool, score float64, taken time.Duration, errs []string, output string, hintsUsed int) *Result {
	if len(errs) > 0 {
		success = false
	}
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return &Result{
		ID:         uuid.New(),
		Exercise:   exercise,
		Success:    success,
		Score:      score,
		TimeTaken:  taken,
		Errors:     errs,
		Output:     output,
		HintsUsed:  hintsUsed,
		RecordedAt: time.Now(),
	}
}

// NewFailedResult builds a zero-score failure, used for validation failures
// and normalized evaluation faults.
func NewFailedResult(exercise string, taken time.Duration, errs []string, hintsUsed int) *Result {
	return NewResult(exercise, false, 0.0, taken, errs, "", hintsUsed)
}
