package exercise

import (
	"context"
	"time"

	"github.com/drillhq/drill/internal/domain"
	"github.com/drillhq/drill/internal/llm"
)

// ToolIntegration grades the third level: the submission must register at
// least one tool and actually invoke it during the run.
type ToolIntegration struct {
	base
}

var _ domain.Exercise = (*ToolIntegration)(nil)

func NewToolIntegration(def *Definition, provider llm.Provider, timeout time.Duration) *ToolIntegration {
	return &ToolIntegration{base: newBase(def, provider, timeout)}
}

func (e *ToolIntegration) Evaluate(ctx context.Context, submitted string) (*domain.Result, error) {
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

	total++
	if e.session.ToolsRegistered() > 0 {
		passed++
	} else {
		errs = append(errs, "submission registered no tools")
	}

	total++
	if e.session.ToolCalls() > 0 {
		passed++
	} else {
		errs = append(errs, "submission never invoked a tool")
	}

	return e.graded(out, total, passed, errs), nil
}
