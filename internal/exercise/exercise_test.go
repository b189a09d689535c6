package exercise_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/drillhq/drill/internal/domain"
	"github.com/drillhq/drill/internal/exercise"
)

func offlineDef(level string, checks exercise.Checks) *exercise.Definition {
	return &exercise.Definition{
		Name:       "test/" + level,
		Level:      level,
		Difficulty: 1,
		MaxHints:   3,
		Template:   "func Solve() (string, error) { return \"\", nil }",
		Solution:   "func Solve() (string, error) { return \"\", nil }",
		Hints:      []string{"one", "two"},
		Checks:     checks,
	}
}

func newReady(t *testing.T, def *exercise.Definition) domain.Exercise {
	t.Helper()

	ex, err := exercise.New(def, nil, 5*time.Second)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := ex.Setup(context.Background()); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	return ex
}

func TestBasicInteraction_Pass(t *testing.T) {
	def := offlineDef("basic_interaction", exercise.Checks{Expect: []string{"hello"}})
	ex := newReady(t, def)

	res, err := ex.Evaluate(context.Background(), `
import "fmt"

func Solve() (string, error) {
	fmt.Println("hello")
	return "", nil
}
`)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if !res.Success {
		t.Errorf("Success = false, errors = %v", res.Errors)
	}
	if res.Score != 1.0 {
		t.Errorf("Score = %v, want 1.0", res.Score)
	}
}

func TestBasicInteraction_MissingOutput(t *testing.T) {
	def := offlineDef("basic_interaction", exercise.Checks{Expect: []string{"hello"}})
	ex := newReady(t, def)

	res, err := ex.Evaluate(context.Background(), `
func Solve() (string, error) {
	return "goodbye", nil
}
`)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if res.Success {
		t.Error("Success = true for wrong output")
	}
	if len(res.Errors) == 0 {
		t.Error("no errors recorded for wrong output")
	}
}

func TestBasicInteraction_SubmissionErrorBecomesFailedResult(t *testing.T) {
	def := offlineDef("basic_interaction", exercise.Checks{Expect: []string{"hello"}})
	ex := newReady(t, def)

	res, err := ex.Evaluate(context.Background(), `
import "errors"

func Solve() (string, error) {
	return "", errors.New("boom")
}
`)
	if err != nil {
		t.Fatalf("Evaluate returned an error for a learner fault: %v", err)
	}
	if res.Success || res.Score != 0 {
		t.Errorf("learner fault graded as Success=%v Score=%v", res.Success, res.Score)
	}
}

func TestStructuredResponse_JSONFields(t *testing.T) {
	def := offlineDef("structured_responses", exercise.Checks{
		ExpectJSON: []string{"answer", "confidence"},
	})
	ex := newReady(t, def)

	res, err := ex.Evaluate(context.Background(), `
import "fmt"

func Solve() (string, error) {
	fmt.Println("{\"answer\": \"Paris\", \"confidence\": 0.9}")
	return "", nil
}
`)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if !res.Success {
		t.Errorf("Success = false, errors = %v", res.Errors)
	}
}

func TestStructuredResponse_MissingField(t *testing.T) {
	def := offlineDef("structured_responses", exercise.Checks{
		ExpectJSON: []string{"answer", "confidence"},
	})
	ex := newReady(t, def)

	res, err := ex.Evaluate(context.Background(), `
import "fmt"

func Solve() (string, error) {
	fmt.Println("{\"answer\": \"Paris\"}")
	return "", nil
}
`)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if res.Success {
		t.Error("Success = true with a missing JSON field")
	}
	if res.Score != 0.5 {
		t.Errorf("Score = %v, want 0.5 (one of two fields)", res.Score)
	}
}

func TestToolIntegration_RequiresToolUse(t *testing.T) {
	def := offlineDef("tool_integration", exercise.Checks{Expect: []string{"ABC"}})
	ex := newReady(t, def)

	res, err := ex.Evaluate(context.Background(), `
import (
	"fmt"
	"strings"

	ai "drill/ai"
)

func Solve() (string, error) {
	ai.RegisterTool("upper", func(in string) (string, error) {
		return strings.ToUpper(in), nil
	})
	out, err := ai.CallTool("upper", "abc")
	if err != nil {
		return "", err
	}
	fmt.Println(out)
	return "", nil
}
`)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if !res.Success {
		t.Errorf("Success = false, errors = %v", res.Errors)
	}
}

func TestToolIntegration_NoToolsFails(t *testing.T) {
	def := offlineDef("tool_integration", exercise.Checks{})
	ex := newReady(t, def)

	res, err := ex.Evaluate(context.Background(), `
func Solve() (string, error) {
	return "done", nil
}
`)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if res.Success {
		t.Error("Success = true without any tool use")
	}
}

func TestAdvancedOrchestration_OrderedMarkers(t *testing.T) {
	def := offlineDef("advanced_orchestration", exercise.Checks{
		Expect:  []string{"plan", "execute", "review"},
		Ordered: true,
	})
	ex := newReady(t, def)

	res, err := ex.Evaluate(context.Background(), `
import "fmt"

func Solve() (string, error) {
	fmt.Println("plan")
	fmt.Println("execute")
	fmt.Println("review")
	return "", nil
}
`)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if !res.Success {
		t.Errorf("Success = false, errors = %v", res.Errors)
	}
}

func TestAdvancedOrchestration_OutOfOrderFails(t *testing.T) {
	def := offlineDef("advanced_orchestration", exercise.Checks{
		Expect:  []string{"plan", "execute"},
		Ordered: true,
	})
	ex := newReady(t, def)

	res, err := ex.Evaluate(context.Background(), `
import "fmt"

func Solve() (string, error) {
	fmt.Println("execute")
	fmt.Println("plan")
	return "", nil
}
`)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if res.Success {
		t.Error("Success = true for out-of-order markers")
	}
}

func TestSetup_RequiresClientWithoutProvider(t *testing.T) {
	def := offlineDef("basic_interaction", exercise.Checks{})
	def.RequiresClient = true

	ex, err := exercise.New(def, nil, time.Second)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	err = ex.Setup(context.Background())
	var setupErr *domain.SetupError
	if !errors.As(err, &setupErr) {
		t.Fatalf("Setup = %v, want SetupError", err)
	}
}

func TestEvaluate_ClientFaultIsEvaluationError(t *testing.T) {
	def := offlineDef("basic_interaction", exercise.Checks{})
	ex := newReady(t, def)

	_, err := ex.Evaluate(context.Background(), `
import ai "drill/ai"

func Solve() (string, error) {
	return ai.Communicate("hi")
}
`)
	var evalErr *domain.EvaluationError
	if !errors.As(err, &evalErr) {
		t.Fatalf("Evaluate = %v, want EvaluationError for a client fault", err)
	}
}

func TestNew_UnknownLevel(t *testing.T) {
	def := offlineDef("basic_interaction", exercise.Checks{})
	def.Level = "galaxy_brain"

	if _, err := exercise.New(def, nil, time.Second); err == nil {
		t.Error("New accepted an unknown level")
	}
}
