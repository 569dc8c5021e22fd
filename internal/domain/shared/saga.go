package shared

import (
	"context"
	"fmt"
	"strings"
)

// SagaStep is one unit of a multi-step workflow. Action performs the
// step; Compensate undoes it when a later step fails. Compensate may be
// nil for steps with nothing to roll back.
type SagaStep struct {
	Name       string
	Action     func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// SagaError reports which step failed and any compensations that could
// not be rolled back afterwards.
type SagaError struct {
	Step               string
	Cause              error
	CompensationErrors []error
}

// Error implements the error interface
func (e *SagaError) Error() string {
	if len(e.CompensationErrors) == 0 {
		return fmt.Sprintf("saga step %q failed: %v", e.Step, e.Cause)
	}
	parts := make([]string, 0, len(e.CompensationErrors))
	for _, err := range e.CompensationErrors {
		parts = append(parts, err.Error())
	}
	return fmt.Sprintf("saga step %q failed: %v (compensation errors: %s)", e.Step, e.Cause, strings.Join(parts, "; "))
}

// Unwrap returns the error of the failed step
func (e *SagaError) Unwrap() error {
	return e.Cause
}

// Saga executes steps in order with compensation on failure.
type Saga struct {
	steps []SagaStep
}

// NewSaga creates an empty saga
func NewSaga() *Saga {
	return &Saga{}
}

// AddStep appends a step to the saga and returns the saga for chaining
func (s *Saga) AddStep(step SagaStep) *Saga {
	s.steps = append(s.steps, step)
	return s
}

// Execute runs each step in order. When a step fails, the compensations
// of all previously completed steps run in reverse order. Compensation
// failures do not stop the rollback; they are collected on the returned
// SagaError. A nil return means every step completed.
func (s *Saga) Execute(ctx context.Context) error {
	completed := make([]SagaStep, 0, len(s.steps))
	for _, step := range s.steps {
		if err := step.Action(ctx); err != nil {
			sagaErr := &SagaError{Step: step.Name, Cause: err}
			for i := len(completed) - 1; i >= 0; i-- {
				comp := completed[i]
				if comp.Compensate == nil {
					continue
				}
				if cerr := comp.Compensate(ctx); cerr != nil {
					sagaErr.CompensationErrors = append(sagaErr.CompensationErrors,
						fmt.Errorf("compensate %q: %w", comp.Name, cerr))
				}
			}
			return sagaErr
		}
		completed = append(completed, step)
	}
	return nil
}
