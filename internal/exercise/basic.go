package exercise

import (
	"context"
	"time"

	"github.com/drillhq/drill/internal/domain"
	"github.com/drillhq/drill/internal/llm"
)

// BasicInteraction grades the first level: send a prompt, print the reply.
// The checks are output substrings plus proof that the client was used.
type BasicInteraction struct {
	base
}

var _ domain.Exercise = (*BasicInteraction)(nil)

func NewBasicInteraction(def *Definition, provider llm.Provider, timeout time.Duration) *BasicInteraction {
	return &BasicInteraction{base: newBase(def, provider, timeout)}
}

func (e *BasicInteraction) Evaluate(ctx context.Context, submitted string) (*domain.Result, error) {
	out, runErrs, err := e.execute(ctx, submitted)
	if err != nil {
		return nil, err
	}
	if len(runErrs) > 0 {
		return e.failed(runErrs), nil
	}

	var total, passed int
	var errs []string
	e.checkExpect(out, &total, &passed, &errs)
	e.checkClientUsed(&total, &passed, &errs)

	return e.graded(out, total, passed, errs), nil
}
