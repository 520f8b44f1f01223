package runtime

import (
	"github.com/aretw0/scrolly/pkg/domain"
)

// catchUp reports a step that was skipped entirely: an enter immediately followed by an exit.
func (e *Engine) catchUp(s *Step, dir domain.Direction) {
	e.notifyStepEnter(s, dir, true)
	e.notifyStepExit(s, dir, true)
}

// preserveOrder flushes the steps between the document edge and index so that they report
// in document order before the step at index enters.
//
// Scrolling down walks lower indices ascending: entered steps exit, steps whose last
// record is not "passed downwards" get an enter+exit pair. Scrolling up walks higher
// indices descending from the end: entered steps exit, steps last passed downwards get
// an enter+exit pair.
func (e *Engine) preserveOrder(index int, dir domain.Direction) {
	if dir == domain.DirectionDown {
		for i := 0; i < index && i < len(e.steps); i++ {
			s := e.steps[i]
			switch {
			case s.State == domain.StateEnter:
				e.notifyStepExit(s, dir, true)
			case s.Direction != domain.DirectionDown:
				e.enter(s, dir, true)
				e.notifyStepExit(s, dir, true)
			}
		}
		return
	}

	for i := len(e.steps) - 1; i > index; i-- {
		s := e.steps[i]
		switch {
		case s.State == domain.StateEnter:
			e.notifyStepExit(s, dir, true)
		case s.Direction == domain.DirectionDown:
			e.enter(s, dir, true)
			e.notifyStepExit(s, dir, true)
		}
	}
}
