package domain

import (
	"context"
	"time"
)

// Level identifies which stage of the learning track an exercise belongs to.
type Level string

const (
	LevelBasicInteraction      Level = "basic_interaction"
	LevelStructuredResponses   Level = "structured_responses"
	LevelToolIntegration       Level = "tool_integration"
	LevelAdvancedOrchestration Level = "advanced_orchestration"
)

// Valid reports whether l is one of the known levels.
func (l Level) Valid() bool {
	switch l {
	case LevelBasicInteraction, LevelStructuredResponses,
		LevelToolIntegration, LevelAdvancedOrchestration:
		return true
	}
	return false
}

// Difficulty is an ordinal 1-3 rating.
type Difficulty int

const (
	DifficultyBeginner     Difficulty = 1
	DifficultyIntermediate Difficulty = 2
	DifficultyAdvanced     Difficulty = 3
)

func (d Difficulty) String() string {
	switch d {
	case DifficultyBeginner:
		return "beginner"
	case DifficultyIntermediate:
		return "intermediate"
	case DifficultyAdvanced:
		return "advanced"
	default:
		return "unknown"
	}
}

// Metadata is the fixed descriptive identity of an exercise. It never changes
// after construction.
type Metadata struct {
	Name        string
	Level       Level
	Difficulty  Difficulty
	Description string
	Objectives  []string
}

// Exercise is one self-contained learning unit: a template to fill in, a
// reference solution, a rationed hint sequence, and a grading procedure over
// submitted code.
//
// Setup and Evaluate may block on the AI-client collaborator and honor their
// context. Evaluate either returns a well-formed Result or an explicit
// *EvaluationError; it must never panic across this boundary.
type Exercise interface {
	Meta() Metadata

	// Setup prepares attempt state (e.g. the chat session). It fails with a
	// *SetupError when a prerequisite such as an API credential is missing.
	Setup(ctx context.Context) error

	// Evaluate grades the learner's submission inside the sandbox.
	Evaluate(ctx context.Context, submitted string) (*Result, error)

	// Template returns the fill-in-the-blank code shown to the learner.
	Template() string

	// Solution returns a reference-correct implementation.
	Solution() string

	// Hints returns the full ordered hint sequence, identical on every call.
	Hints() []string

	// NextHint issues the next unused hint and advances the counter. The
	// second return is false once the sequence or the cap is exhausted.
	NextHint() (string, bool)

	HintsUsed() int
	MaxHints() int

	// StartTimer records the wall-clock start of an attempt.
	StartTimer()

	// Elapsed reports time since StartTimer, or zero if it was never called.
	Elapsed() time.Duration
}
