package exercise

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/drillhq/drill/internal/domain"
	"github.com/drillhq/drill/internal/llm"
	"github.com/drillhq/drill/internal/sandbox"
)

// base carries everything the four exercise variants share: the definition,
// the hint/timer tracker, the sandbox, and the per-attempt session.
type base struct {
	domain.Tracker
	def      *Definition
	provider llm.Provider
	interp   *sandbox.Interpreter
	session  *Session
}

func newBase(def *Definition, provider llm.Provider, timeout time.Duration) base {
	interp := sandbox.New(timeout)
	interp.Allow(ClientImportPath)

	return base{
		Tracker:  domain.NewTracker(def.Metadata(), def.Hints, def.MaxHints),
		def:      def,
		provider: provider,
		interp:   interp,
	}
}

func (b *base) Template() string { return b.def.Template }
func (b *base) Solution() string { return b.def.Solution }

// Setup builds a fresh session for the attempt. It fails with a SetupError
// when the exercise needs a live client and none is configured; that is the
// only way a missing credential surfaces to the harness.
func (b *base) Setup(ctx context.Context) error {
	if b.def.RequiresClient && b.provider == nil {
		return domain.NewSetupError(b.def.Name, "no AI provider configured", nil)
	}

	var chat *llm.Chat
	if b.provider != nil {
		chat = llm.NewChat(b.provider, llm.WithSystem(b.def.System))
	}
	b.session = NewSession(chat)
	return nil
}

// execute runs the submission in the sandbox and sorts the outcome into:
// a grader fault (EvaluationError or caller cancellation, returned as err),
// a learner fault (runErrs), or clean output.
func (b *base) execute(ctx context.Context, code string) (out string, runErrs []string, err error) {
	if b.session == nil {
		b.session = NewSession(nil)
	}
	b.session.Bind(ctx)

	out, runErr := b.interp.Run(ctx, code, b.session.Symbols())

	if cerr := b.session.ClientErr(); cerr != nil {
		return out, nil, domain.NewEvaluationError(b.def.Name, "AI client failed during evaluation", cerr)
	}
	if runErr != nil {
		if ctx.Err() != nil {
			// Caller-level interruption, not a graded failure.
			return out, nil, ctx.Err()
		}
		return out, []string{runErr.Error()}, nil
	}
	return out, nil, nil
}

// failed builds the Result for a learner-fault run.
func (b *base) failed(runErrs []string) *domain.Result {
	return domain.NewFailedResult(b.def.Name, b.Elapsed(), runErrs, b.HintsUsed())
}

// graded builds the Result from check counts.
func (b *base) graded(out string, total, passed int, errs []string) *domain.Result {
	score := 1.0
	if total > 0 {
		score = float64(passed) / float64(total)
	}
	return domain.NewResult(b.def.Name, len(errs) == 0, score, b.Elapsed(), errs, out, b.HintsUsed())
}

// checkExpect grades the plain output-substring expectations.
func (b *base) checkExpect(out string, total *int, passed *int, errs *[]string) {
	for _, want := range b.def.Checks.Expect {
		*total++
		if strings.Contains(out, want) {
			*passed++
		} else {
			*errs = append(*errs, fmt.Sprintf("output missing %q", want))
		}
	}
}

// checkClientUsed grades that the submission actually talked to the client.
func (b *base) checkClientUsed(total *int, passed *int, errs *[]string) {
	if !b.def.RequiresClient {
		return
	}
	*total++
	if b.session.Calls() > 0 {
		*passed++
	} else {
		*errs = append(*errs, "submission never called the AI client")
	}
}

// New constructs the concrete exercise variant for the definition's level.
func New(def *Definition, provider llm.Provider, timeout time.Duration) (domain.Exercise, error) {
	switch domain.Level(def.Level) {
	case domain.LevelBasicInteraction:
		return NewBasicInteraction(def, provider, timeout), nil
	case domain.LevelStructuredResponses:
		return NewStructuredResponse(def, provider, timeout), nil
	case domain.LevelToolIntegration:
		return NewToolIntegration(def, provider, timeout), nil
	case domain.LevelAdvancedOrchestration:
		return NewAdvancedOrchestration(def, provider, timeout), nil
	default:
		return nil, fmt.Errorf("unknown level %q", def.Level)
	}
}
