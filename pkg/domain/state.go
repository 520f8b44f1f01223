package domain

// Direction is the scroll direction derived from the last non-zero position delta.
type Direction string

const (
	DirectionNone Direction = ""     // No movement observed yet
	DirectionUp   Direction = "up"   // Scroll position decreased
	DirectionDown Direction = "down" // Scroll position increased
)

// Opposite returns the reverse direction. DirectionNone has no opposite.
func (d Direction) Opposite() Direction {
	switch d {
	case DirectionUp:
		return DirectionDown
	case DirectionDown:
		return DirectionUp
	}
	return DirectionNone
}

// StepState is the lifecycle state of a step.
// Transitions only ever go unset -> enter -> exit -> enter -> exit ...
type StepState string

const (
	StateUnset StepState = ""      // Never entered
	StateEnter StepState = "enter" // Trigger line is inside the step
	StateExit  StepState = "exit"  // Step has been left
)
