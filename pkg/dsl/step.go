package dsl

import "github.com/aretw0/scrolly/pkg/scenario"

// StepBuilder provides a fluent API for configuring a step.
type StepBuilder struct {
	step scenario.Step
}

// Offset sets the step's data-offset override ("120px" or "0.3").
func (s *StepBuilder) Offset(offset string) *StepBuilder {
	s.step.Offset = offset
	return s
}

// Nested places the step inside a scrollable ancestor.
func (s *StepBuilder) Nested() *StepBuilder {
	s.step.Nested = true
	return s
}
