package runtime

import (
	"time"

	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/aretw0/scrolly/pkg/ports"
)

// section is the element wrapping the steps of a sticky-graphic layout.
// Its two watchers report when the graphic should stick and when it should release.
type section struct {
	node       domain.Element
	graphic    domain.Element
	state      domain.StepState
	watchers   []ports.Watcher
	generation uint64
}

// sectionMargins returns the root margins of the section watchers. Root boxes:
//
//	top     [-h, 0]     the viewport height just above the viewport
//	bottom  [gh, h+gh]  the viewport shifted down by the graphic height
func sectionMargins(viewport, graphic float64) (top, bottom domain.Margin) {
	return domain.Margin{Top: viewport, Bottom: -viewport},
		domain.Margin{Top: -graphic, Bottom: graphic}
}

func (e *Engine) disconnectSection() {
	sec := e.section
	if sec == nil {
		return
	}
	for _, w := range sec.watchers {
		w.Disconnect()
	}
	sec.watchers = nil
	sec.generation++
}

// updateSection rebuilds the section watchers, measuring the graphic again.
func (e *Engine) updateSection() {
	sec := e.section
	if sec == nil {
		return
	}
	e.disconnectSection()
	gen := sec.generation

	var gh float64
	if sec.graphic != nil {
		gh = sec.graphic.BoundingClientRect().Height
	}
	top, bottom := sectionMargins(e.host.InnerHeight(), gh)

	for _, w := range []struct {
		margin domain.Margin
		handle func(ports.IntersectionEntry)
	}{
		{top, e.intersectSectionTop},
		{bottom, e.intersectSectionBottom},
	} {
		handle := w.handle
		obs := e.host.NewIntersectionObserver(func(entries []ports.IntersectionEntry) {
			for _, entry := range entries {
				if !e.enabled || e.section != sec || sec.generation != gen {
					return
				}
				handle(entry)
			}
		}, ports.ObserverOptions{
			Root:       e.settings.Root,
			Margin:     w.margin,
			Thresholds: []float64{0},
		})
		obs.Observe(sec.node)
		sec.watchers = append(sec.watchers, obs)

		if e.settings.Debug {
			e.logger.Debug("watcher built", "watcher", "section", "root_margin", w.margin.String(), "graphic", gh)
		}
	}
}

// intersectSectionTop reports the section's top edge crossing the top of the viewport.
func (e *Engine) intersectSectionTop(entry ports.IntersectionEntry) {
	if entry.BoundingClientRect.Bottom() <= -ZeroMOE {
		return
	}
	if entry.IsIntersecting {
		e.notifyContainerEnter(domain.DirectionDown)
	} else {
		e.notifyContainerExit(domain.DirectionUp)
	}
}

// intersectSectionBottom reports the section's bottom edge crossing the graphic's bottom.
func (e *Engine) intersectSectionBottom(entry ports.IntersectionEntry) {
	if entry.BoundingClientRect.Top >= ZeroMOE {
		return
	}
	if entry.IsIntersecting {
		e.notifyContainerEnter(domain.DirectionUp)
	} else {
		e.notifyContainerExit(domain.DirectionDown)
	}
}

func (e *Engine) notifyContainerEnter(dir domain.Direction) {
	sec := e.section
	if sec.state == domain.StateEnter {
		return
	}
	sec.state = domain.StateEnter
	e.cb.containerEnter(domain.ContainerEvent{Element: sec.node, Direction: dir})
	if e.hooks.OnContainerEnter != nil {
		e.hooks.OnContainerEnter(e.containerEvent(domain.EventContainerEnter, dir))
	}
}

// notifyContainerExit is a no-op unless the section is entered, so a page loaded above
// the section does not report an exit.
func (e *Engine) notifyContainerExit(dir domain.Direction) {
	sec := e.section
	if sec.state != domain.StateEnter {
		return
	}
	sec.state = domain.StateExit
	e.cb.containerExit(domain.ContainerEvent{Element: sec.node, Direction: dir})
	if e.hooks.OnContainerExit != nil {
		e.hooks.OnContainerExit(e.containerEvent(domain.EventContainerExit, dir))
	}
}

func (e *Engine) containerEvent(typ domain.EventType, dir domain.Direction) *domain.Event {
	y, _ := e.scroll.Position()
	return &domain.Event{
		Timestamp: time.Now(),
		Type:      typ,
		Index:     -1,
		Direction: dir,
		ScrollY:   y,
	}
}

// ContainerState reports the section state; StateUnset when no section is configured.
func (e *Engine) ContainerState() domain.StepState {
	if e.section == nil {
		return domain.StateUnset
	}
	return e.section.state
}

// OnContainerEnter replaces the containerEnter callback.
func (e *Engine) OnContainerEnter(fn ContainerHandler) error {
	if fn == nil {
		e.logger.Error("onContainerEnter", "err", domain.ErrInvalidCallback)
		return domain.ErrInvalidCallback
	}
	e.cb.containerEnter = fn
	return nil
}

// OnContainerExit replaces the containerExit callback.
func (e *Engine) OnContainerExit(fn ContainerHandler) error {
	if fn == nil {
		e.logger.Error("onContainerExit", "err", domain.ErrInvalidCallback)
		return domain.ErrInvalidCallback
	}
	e.cb.containerExit = fn
	return nil
}
