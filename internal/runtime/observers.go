package runtime

import (
	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/aretw0/scrolly/pkg/ports"
)

// geometryFor measures the current viewport and the step's last known height.
func (e *Engine) geometryFor(s *Step) Geometry {
	vh := e.host.InnerHeight()
	off := e.offset
	if s.Offset != nil {
		off = *s.Offset
	}
	return Geometry{
		Viewport: vh,
		Document: e.host.ScrollHeight(),
		Trigger:  off.Pixels(vh),
		Height:   s.Height,
	}
}

// disconnectStep severs every watcher of a step. Bumping the generation makes any
// delivery already queued by the host for the old watchers a no-op.
func (e *Engine) disconnectStep(s *Step) {
	for kind, w := range s.watchers {
		w.Disconnect()
		delete(s.watchers, kind)
	}
	s.generation++
}

func (e *Engine) disconnectAll() {
	for _, s := range e.steps {
		e.disconnectStep(s)
	}
	e.disconnectSection()
}

// updateStep rebuilds all watchers of one step from fresh geometry.
func (e *Engine) updateStep(s *Step) {
	e.disconnectStep(s)
	gen := s.generation
	g := e.geometryFor(s)

	resize := e.host.NewResizeObserver(e.onResize(s, gen))
	resize.Observe(s.Node)
	s.watchers[watchResize] = resize

	kinds := []watcherKind{watchTriggerTop, watchTriggerBottom, watchViewportAbove, watchViewportBelow}
	if e.settings.Progress {
		kinds = append(kinds, watchProgress)
	}

	for _, kind := range kinds {
		opts := ports.ObserverOptions{
			Root:       e.settings.Root,
			Margin:     g.Margin(kind),
			Thresholds: []float64{0},
		}
		if kind == watchProgress {
			opts.Thresholds = progressThresholds(s.Height, e.settings.Threshold)
		}

		w := e.host.NewIntersectionObserver(e.onIntersect(s, gen, g, kind), opts)
		w.Observe(s.Node)
		s.watchers[kind] = w

		if e.settings.Debug {
			e.logger.Debug("watcher built",
				"index", s.Index,
				"watcher", kind.String(),
				"root_margin", opts.Margin.String(),
				"trigger", g.Trigger,
				"height", g.Height,
			)
		}
	}
}

// updateObservers rebuilds the watchers of every step.
func (e *Engine) updateObservers() {
	e.disconnectAll()
	for _, s := range e.steps {
		e.updateStep(s)
	}
	e.updateSection()
}

// live reports whether a delivery for the given step generation may still act.
func (e *Engine) live(s *Step, gen uint64) bool {
	return e.enabled && s.generation == gen
}

func (e *Engine) onResize(s *Step, gen uint64) ports.ResizeCallback {
	return func(entries []ports.ResizeEntry) {
		for _, entry := range entries {
			if !e.live(s, gen) {
				return
			}
			if entry.Height == s.Height {
				continue
			}
			e.logger.Debug("step resized", "index", s.Index, "from", s.Height, "to", entry.Height)
			s.Height = entry.Height
			e.updateStep(s)
		}
	}
}

func (e *Engine) onIntersect(s *Step, gen uint64, g Geometry, kind watcherKind) ports.IntersectionCallback {
	primed := false
	return func(entries []ports.IntersectionEntry) {
		if !e.live(s, gen) {
			return
		}
		e.sampleScroll()

		for _, entry := range entries {
			if !e.live(s, gen) {
				return
			}
			switch kind {
			case watchTriggerTop:
				e.intersectTriggerTop(s, g, entry)
			case watchTriggerBottom:
				e.intersectTriggerBottom(s, g, entry)
			case watchViewportAbove:
				e.intersectViewportAbove(s, g, entry)
			case watchViewportBelow:
				e.intersectViewportBelow(s, g, entry)
			case watchProgress:
				// The first report of a fresh watcher only resynchronizes, so that a
				// rebuild never emits a callback by itself.
				e.intersectProgress(s, g, entry, !primed)
				primed = true
			}
		}
	}
}

// place records steps that are already past the trigger line when the scroller is set up,
// so that catch-up never replays steps the user did not scroll through.
func (e *Engine) place() {
	for _, s := range e.steps {
		if s.State != domain.StateUnset {
			continue
		}
		if e.geometryFor(s).passed(s.Node.BoundingClientRect()) {
			s.Direction = domain.DirectionDown
		}
	}
}
