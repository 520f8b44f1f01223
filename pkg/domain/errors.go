package domain

import "errors"

// ErrNoSteps is returned when the step selection is empty.
var ErrNoSteps = errors.New("no step elements")

// ErrInvalidCallback is returned when a callback registration receives nil.
var ErrInvalidCallback = errors.New("callback must be a non-nil function")

// ErrInvalidOffset is returned when an offset value cannot be parsed.
// The parser still returns the 50% fallback alongside it.
var ErrInvalidOffset = errors.New("invalid offset value")

// ErrOffsetOutOfRange is a warning: the percent offset was clamped to [0,1].
var ErrOffsetOutOfRange = errors.New("offset out of range")

// ErrNestedScroll warns that a step lives inside a scrollable ancestor,
// which breaks viewport-relative geometry.
var ErrNestedScroll = errors.New("step is nested inside a scrollable ancestor")

// ErrTraceNotFound is returned when a trace ID cannot be found in the store.
var ErrTraceNotFound = errors.New("trace not found")

// ErrInvalidScenario is returned when a scenario definition fails validation.
var ErrInvalidScenario = errors.New("invalid scenario")
