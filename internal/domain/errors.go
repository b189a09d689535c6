package domain

import (
	"errors"
	"fmt"
)

// Registry errors
var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrPackNotFound     = errors.New("exercise pack not found")
)

// SetupError means a prerequisite for the attempt is missing (no credential,
// no provider, no connectivity). It is fatal to the current attempt: the
// runner propagates it and records nothing.
type SetupError struct {
	Exercise string
	Reason   string
	Err      error
}

func (e *SetupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("setup %s: %s: %v", e.Exercise, e.Reason, e.Err)
	}
	return fmt.Sprintf("setup %s: %s", e.Exercise, e.Reason)
}

func (e *SetupError) Unwrap() error { return e.Err }

// NewSetupError builds a SetupError for the named exercise.
func NewSetupError(exercise, reason string, err error) *SetupError {
	return &SetupError{Exercise: exercise, Reason: reason, Err: err}
}

// EvaluationError means the grading procedure itself faulted, as opposed to
// the submission being wrong. The runner normalizes it into a failed,
// recorded Result instead of letting it propagate.
type EvaluationError struct {
	Exercise string
	Reason   string
	Err      error
}

func (e *EvaluationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("evaluate %s: %s: %v", e.Exercise, e.Reason, e.Err)
	}
	return fmt.Sprintf("evaluate %s: %s", e.Exercise, e.Reason)
}

func (e *EvaluationError) Unwrap() error { return e.Err }

// NewEvaluationError builds an EvaluationError for the named exercise.
func NewEvaluationError(exercise, reason string, err error) *EvaluationError {
	return &EvaluationError{Exercise: exercise, Reason: reason, Err: err}
}
