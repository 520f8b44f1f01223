package runtime

import (
	"github.com/aretw0/scrolly/pkg/domain"
)

// Setup binds the engine to a step set, and optionally a section, and enables it.
// Callbacks and the once-exclusion list from any previous setup are discarded.
// On error the engine is left disabled and the error is logged and returned.
func (e *Engine) Setup(settings Settings) error {
	if e.enabled {
		e.Disable()
	}
	e.cb = noopHandlers()
	e.exclude = make(map[int]bool)
	e.ready = false

	if settings.Threshold < 1 {
		settings.Threshold = 1
	}

	steps, err := buildSteps(settings.Steps, e.logger)
	if err != nil {
		e.logger.Error("scroller setup failed", "err", err)
		e.steps = nil
		e.section = nil
		return err
	}

	e.settings = settings
	e.offset = settings.Offset
	e.steps = steps
	e.section = nil
	if settings.Section != nil {
		e.section = &section{node: settings.Section, graphic: settings.Graphic}
	}
	e.source = e.sourceFor(settings)

	if e.removeScroll != nil {
		e.removeScroll()
	}
	e.removeScroll = e.host.OnScroll(e.sampleScroll)
	e.sampleScroll()

	e.place()
	e.ready = true

	e.logger.Debug("scroller ready",
		"steps", len(steps),
		"offset", e.offset.String(),
		"progress", settings.Progress,
		"once", settings.Once,
		"order", settings.Order,
	)

	e.Enable()
	return nil
}

// Enable builds every watcher if the engine is ready and not already enabled.
func (e *Engine) Enable() {
	if !e.ready || e.enabled {
		return
	}
	// Flag first: the host may deliver initial reports while watchers are being built.
	e.enabled = true
	e.updateObservers()
}

// Disable severs every watcher. Step state is kept.
func (e *Engine) Disable() {
	if !e.enabled {
		return
	}
	e.disconnectAll()
	e.enabled = false
}

// Resize re-measures every step and rebuilds the watchers when enabled.
func (e *Engine) Resize() {
	for _, s := range e.steps {
		s.Height = s.Node.BoundingClientRect().Height
	}
	if e.enabled {
		e.updateObservers()
	}
}

// Destroy disables the engine, detaches the scroll listener and forgets every callback.
// A destroyed engine is no longer ready: Enable is a no-op until the next Setup, which
// differs from the browser library where enable after destroy rebuilds the observers.
func (e *Engine) Destroy() {
	e.Disable()
	if e.removeScroll != nil {
		e.removeScroll()
		e.removeScroll = nil
	}
	e.cb = noopHandlers()
	e.exclude = make(map[int]bool)
	e.ready = false
}

// Offset returns the global trigger offset.
func (e *Engine) Offset() domain.Offset {
	return e.offset
}

// SetOffset parses and applies a new global offset, rebuilding watchers when enabled.
// Invalid input is logged and the fallback value returned by domain.ParseOffset is applied.
func (e *Engine) SetOffset(x any) error {
	if x == nil {
		return nil
	}
	off, err := domain.ParseOffset(x)
	if err != nil {
		e.logger.Warn("offset", "value", x, "err", err)
	}
	if off != nil {
		e.offset = *off
		e.settings.Offset = *off
	}
	if e.enabled {
		e.updateObservers()
	}
	return err
}

// OnStepEnter replaces the stepEnter callback.
func (e *Engine) OnStepEnter(fn StepHandler) error {
	if fn == nil {
		e.logger.Error("onStepEnter", "err", domain.ErrInvalidCallback)
		return domain.ErrInvalidCallback
	}
	e.cb.enter = fn
	return nil
}

// OnStepExit replaces the stepExit callback.
func (e *Engine) OnStepExit(fn StepHandler) error {
	if fn == nil {
		e.logger.Error("onStepExit", "err", domain.ErrInvalidCallback)
		return domain.ErrInvalidCallback
	}
	e.cb.exit = fn
	return nil
}

// OnStepProgress replaces the stepProgress callback.
func (e *Engine) OnStepProgress(fn ProgressHandler) error {
	if fn == nil {
		e.logger.Error("onStepProgress", "err", domain.ErrInvalidCallback)
		return domain.ErrInvalidCallback
	}
	e.cb.progress = fn
	return nil
}
