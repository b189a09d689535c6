package exercise

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/drillhq/drill/internal/domain"
	"github.com/drillhq/drill/internal/llm"
)

// StructuredResponse grades the second level: the submission must produce a
// JSON object carrying the fields listed in expect_json, on top of the plain
// substring checks.
type StructuredResponse struct {
	base
}

var _ domain.Exercise = (*StructuredResponse)(nil)

func NewStructuredResponse(def *Definition, provider llm.Provider, timeout time.Duration) *StructuredResponse {
	return &StructuredResponse{base: newBase(def, provider, timeout)}
}

func (e *StructuredResponse) Evaluate(ctx context.Context, submitted string) (*domain.Result, error) {
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
	e.checkJSON(out, &total, &passed, &errs)

	return e.graded(out, total, passed, errs), nil
}

// checkJSON locates a JSON object in the output and verifies the required
// fields are present.
func (e *StructuredResponse) checkJSON(out string, total *int, passed *int, errs *[]string) {
	if len(e.def.Checks.ExpectJSON) == 0 {
		return
	}

	obj, ok := extractJSON(out)
	if !ok {
		*total += len(e.def.Checks.ExpectJSON)
		*errs = append(*errs, "output contains no JSON object")
		return
	}
	for _, field := range e.def.Checks.ExpectJSON {
		*total++
		if _, found := obj[field]; found {
			*passed++
		} else {
			*errs = append(*errs, fmt.Sprintf("JSON output missing field %q", field))
		}
	}
}

// extractJSON pulls the first balanced {...} span out of the output and
// decodes it.
func extractJSON(out string) (map[string]any, bool) {
	start := strings.Index(out, "{")
	if start < 0 {
		return nil, false
	}
	depth := 0
	for i := start; i < len(out); i++ {
		switch out[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				var obj map[string]any
				if err := json.Unmarshal([]byte(out[start:i+1]), &obj); err != nil {
					return nil, false
				}
				return obj, true
			}
		}
	}
	return nil, false
}
