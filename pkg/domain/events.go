package domain

import "time"

// Element is an opaque handle to a host node (a DOM element, a simulated block).
// The engine references it but never owns or copies it.
type Element interface {
	// BoundingClientRect returns the element's current box in viewport coordinates.
	BoundingClientRect() Rect
}

// StepEvent is the payload of the stepEnter and stepExit callbacks.
type StepEvent struct {
	Element   Element
	Index     int
	Direction Direction
}

// ProgressEvent is the payload of the stepProgress callback.
type ProgressEvent struct {
	Element   Element
	Index     int
	Progress  float64
	Direction Direction
}

// ContainerEvent is the payload of the containerEnter and containerExit callbacks.
type ContainerEvent struct {
	Element   Element
	Direction Direction
}

// EventType defines the category of a recorded notification.
type EventType string

const (
	EventStepEnter    EventType = "step_enter"
	EventStepExit     EventType = "step_exit"
	EventStepProgress EventType = "step_progress"

	EventContainerEnter EventType = "container_enter"
	EventContainerExit  EventType = "container_exit"
)

// Event is a serializable record of one emitted notification.
// Container notifications carry Index -1.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Index     int       `json:"index"`
	Direction Direction `json:"direction,omitempty"`
	Progress  float64   `json:"progress"`
	ScrollY   float64   `json:"scroll_y"`
	// Synthetic marks enter/exit pairs issued by catch-up logic for skipped steps.
	Synthetic bool `json:"synthetic,omitempty"`
	// Suppressed marks an enter that updated state but skipped the user callback (once mode).
	Suppressed bool `json:"suppressed,omitempty"`
}

// LifecycleHooks observe every notification the engine emits.
// Unlike user callbacks they survive Destroy, which makes them suitable for metrics and tracing.
type LifecycleHooks struct {
	OnStepEnter    func(*Event)
	OnStepExit     func(*Event)
	OnStepProgress func(*Event)

	OnContainerEnter func(*Event)
	OnContainerExit  func(*Event)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	chain := func(a, b func(*Event)) func(*Event) {
		if a == nil {
			return b
		}
		if b == nil {
			return a
		}
		return func(e *Event) {
			a(e)
			b(e)
		}
	}
	return LifecycleHooks{
		OnStepEnter:    chain(h.OnStepEnter, other.OnStepEnter),
		OnStepExit:     chain(h.OnStepExit, other.OnStepExit),
		OnStepProgress: chain(h.OnStepProgress, other.OnStepProgress),

		OnContainerEnter: chain(h.OnContainerEnter, other.OnContainerEnter),
		OnContainerExit:  chain(h.OnContainerExit, other.OnContainerExit),
	}
}
