package exercise

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/drillhq/drill/internal/domain"
	"github.com/drillhq/drill/internal/llm"
)

// AdvancedOrchestration grades the fourth level: multi-step flows. On top of
// the plain checks it can require a minimum number of client calls and that
// the expected markers appear in sequence.
type AdvancedOrchestration struct {
	base
}

var _ domain.Exercise = (*AdvancedOrchestration)(nil)

func NewAdvancedOrchestration(def *Definition, provider llm.Provider, timeout time.Duration) *AdvancedOrchestration {
	return &AdvancedOrchestration{base: newBase(def, provider, timeout)}
}

func (e *AdvancedOrchestration) Evaluate(ctx context.Context, submitted string) (*domain.Result, error) {
	out, runErrs, err := e.execute(ctx, submitted)
	if err != nil {
		return nil, err
	}
	if len(runErrs) > 0 {
		return e.failed(runErrs), nil
	}

	var total, passed int
	var errs []string
	if e.def.Checks.Ordered {
		e.checkOrdered(out, &total, &passed, &errs)
	} else {
		e.checkExpect(out, &total, &passed, &errs)
	}
	e.checkClientUsed(&total, &passed, &errs)

	if min := e.def.Checks.MinCalls; min > 0 {
		total++
		if e.session.Calls() >= min {
			passed++
		} else {
			errs = append(errs, fmt.Sprintf("made %d client calls, need at least %d", e.session.Calls(), min))
		}
	}

	return e.graded(out, total, passed, errs), nil
}

// checkOrdered requires each expected marker to appear after the previous one.
func (e *AdvancedOrchestration) checkOrdered(out string, total *int, passed *int, errs *[]string) {
	pos := 0
	for _, want := range e.def.Checks.Expect {
		*total++
		idx := strings.Index(out[pos:], want)
		if idx < 0 {
			*errs = append(*errs, fmt.Sprintf("output missing %q in sequence", want))
			continue
		}
		*passed++
		pos += idx + len(want)
	}
}
