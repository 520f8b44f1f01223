package runtime

import (
	"math"
	"time"

	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/aretw0/scrolly/pkg/ports"
)

// intersectTriggerTop handles the watcher whose root ends at the trigger line.
// It reports the step's top edge crossing the line: entering downwards, leaving upwards.
func (e *Engine) intersectTriggerTop(s *Step, g Geometry, entry ports.IntersectionEntry) {
	dir := e.direction()
	rect := entry.BoundingClientRect

	if entry.IsIntersecting {
		if dir == domain.DirectionDown && g.active(rect) && s.State != domain.StateEnter {
			e.notifyStepEnter(s, dir, false)
		}
		return
	}
	if dir == domain.DirectionUp && g.below(rect) && s.State == domain.StateEnter {
		e.notifyStepExit(s, dir, false)
	}
}

// intersectTriggerBottom handles the watcher whose root starts just below the trigger line.
// It reports the step's bottom edge crossing the line: entering upwards, leaving downwards.
func (e *Engine) intersectTriggerBottom(s *Step, g Geometry, entry ports.IntersectionEntry) {
	dir := e.direction()
	rect := entry.BoundingClientRect

	if entry.IsIntersecting {
		if dir == domain.DirectionUp && g.active(rect) && s.State != domain.StateEnter {
			e.notifyStepEnter(s, dir, false)
		}
		return
	}
	if dir == domain.DirectionDown && g.passed(rect) && s.State == domain.StateEnter {
		e.notifyStepExit(s, dir, false)
	}
}

// intersectViewportAbove catches steps that a downward jump carried past the trigger line
// without the narrow watchers ever seeing them straddle it.
func (e *Engine) intersectViewportAbove(s *Step, g Geometry, entry ports.IntersectionEntry) {
	dir := e.direction()
	if !entry.IsIntersecting || dir != domain.DirectionDown || !g.passed(entry.BoundingClientRect) {
		return
	}
	switch {
	case s.State == domain.StateEnter:
		e.notifyStepExit(s, dir, true)
	case s.Direction != domain.DirectionDown:
		e.catchUp(s, dir)
	}
}

// intersectViewportBelow is the upward mirror of intersectViewportAbove.
// Steps never reached (still below since setup) are left alone.
func (e *Engine) intersectViewportBelow(s *Step, g Geometry, entry ports.IntersectionEntry) {
	dir := e.direction()
	if !entry.IsIntersecting || dir != domain.DirectionUp || !g.below(entry.BoundingClientRect) {
		return
	}
	switch {
	case s.State == domain.StateEnter:
		e.notifyStepExit(s, dir, true)
	case s.Direction == domain.DirectionDown:
		e.catchUp(s, dir)
	}
}

// intersectProgress updates the coverage ratio of an entered step.
// A resync report (first report of a fresh watcher) is silent unless the value moved by
// more than one threshold rung, which only happens when the geometry really changed.
func (e *Engine) intersectProgress(s *Step, g Geometry, entry ports.IntersectionEntry, resync bool) {
	if !entry.IsIntersecting || s.State != domain.StateEnter {
		return
	}
	if entry.BoundingClientRect.Bottom()-g.Trigger < -ZeroMOE {
		return
	}

	p := roundProgress(entry.IntersectionRatio)
	if p == s.Progress {
		return
	}
	if resync {
		rung := 1 / float64(len(progressThresholds(g.Height, e.settings.Threshold))-1)
		if math.Abs(p-s.Progress) <= rung+1e-9 {
			s.Progress = p
			return
		}
	}
	e.notifyStepProgress(s, p)
}

// notifyStepEnter moves a step to enter. With order preservation, steps skipped on the
// way are flushed first so callbacks arrive in document order.
func (e *Engine) notifyStepEnter(s *Step, dir domain.Direction, synthetic bool) {
	if e.settings.Order {
		e.preserveOrder(s.Index, dir)
	} else if !synthetic {
		e.settleNeighbour(s, dir)
	}
	e.enter(s, dir, synthetic)
}

// settleNeighbour exits the adjacent step the scroll is leaving when its box is already
// clear of the trigger line. Two contiguous steps swap across the line within one host
// tick, and the host may report the entering one first.
func (e *Engine) settleNeighbour(s *Step, dir domain.Direction) {
	j := s.Index - 1
	if dir == domain.DirectionUp {
		j = s.Index + 1
	}
	if j < 0 || j >= len(e.steps) {
		return
	}
	n := e.steps[j]
	if n.State != domain.StateEnter {
		return
	}
	g, r := e.geometryFor(n), n.Node.BoundingClientRect()
	if (dir == domain.DirectionDown && g.passed(r)) || (dir == domain.DirectionUp && g.below(r)) {
		e.notifyStepExit(n, dir, false)
	}
}

// enter applies the enter transition without any order walk.
func (e *Engine) enter(s *Step, dir domain.Direction, synthetic bool) {
	s.State = domain.StateEnter
	s.Direction = dir

	suppressed := e.exclude[s.Index]
	if !suppressed {
		e.cb.enter(domain.StepEvent{Element: s.Node, Index: s.Index, Direction: dir})
	}
	if e.settings.Once {
		e.exclude[s.Index] = true
	}

	if e.hooks.OnStepEnter != nil {
		ev := e.event(domain.EventStepEnter, s, dir)
		ev.Synthetic = synthetic
		ev.Suppressed = suppressed
		e.hooks.OnStepEnter(ev)
	}

	if e.settings.Progress {
		initial := 0.0
		if dir == domain.DirectionUp {
			initial = 1
		}
		e.notifyStepProgress(s, initial)
	}
}

// notifyStepExit moves an entered step to exit. It is a no-op for any other state.
func (e *Engine) notifyStepExit(s *Step, dir domain.Direction, synthetic bool) {
	if s.State != domain.StateEnter {
		return
	}

	if e.settings.Progress {
		if dir == domain.DirectionDown && s.Progress < 1 {
			e.notifyStepProgress(s, 1)
		} else if dir == domain.DirectionUp && s.Progress > 0 {
			e.notifyStepProgress(s, 0)
		}
	}

	s.State = domain.StateExit
	s.Direction = dir

	e.cb.exit(domain.StepEvent{Element: s.Node, Index: s.Index, Direction: dir})

	if e.hooks.OnStepExit != nil {
		ev := e.event(domain.EventStepExit, s, dir)
		ev.Synthetic = synthetic
		e.hooks.OnStepExit(ev)
	}
}

// notifyStepProgress records and emits a progress value while the step is entered.
func (e *Engine) notifyStepProgress(s *Step, progress float64) {
	s.Progress = progress
	if s.State != domain.StateEnter {
		return
	}

	dir := e.scroll.Direction()
	e.cb.progress(domain.ProgressEvent{Element: s.Node, Index: s.Index, Progress: progress, Direction: dir})

	if e.hooks.OnStepProgress != nil {
		ev := e.event(domain.EventStepProgress, s, dir)
		ev.Progress = progress
		e.hooks.OnStepProgress(ev)
	}
}

func (e *Engine) event(typ domain.EventType, s *Step, dir domain.Direction) *domain.Event {
	y, _ := e.scroll.Position()
	return &domain.Event{
		Timestamp: time.Now(),
		Type:      typ,
		Index:     s.Index,
		Direction: dir,
		Progress:  s.Progress,
		ScrollY:   y,
	}
}
