package scrolly

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/scrolly/internal/runtime"
	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/aretw0/scrolly/pkg/ports"
	"github.com/aretw0/scrolly/pkg/scroll"
)

// StepHandler receives stepEnter and stepExit notifications.
type StepHandler = runtime.StepHandler

// ProgressHandler receives stepProgress notifications.
type ProgressHandler = runtime.ProgressHandler

// ContainerHandler receives containerEnter and containerExit notifications.
type ContainerHandler = runtime.ContainerHandler

// Scroller is the high-level entry point: one scroller per set of steps.
// It wraps the internal runtime and follows the host's single-threaded model.
type Scroller struct {
	engine *runtime.Engine
	host   ports.Host
	hooks  domain.LifecycleHooks
	scroll *scroll.Context
	logger *slog.Logger
}

// Option defines a functional option for configuring the Scroller.
type Option func(*Scroller)

// WithLogger sets a custom structured logger for configuration errors and debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scroller) {
		s.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Scroller) {
		s.hooks = hooks
	}
}

// WithScrollContext shares a direction tracker between scrollers on the same container.
func WithScrollContext(c *scroll.Context) Option {
	return func(s *Scroller) {
		s.scroll = c
	}
}

// New creates a scroller bound to a host. It does nothing until Setup.
func New(host ports.Host, opts ...Option) *Scroller {
	s := &Scroller{host: host}
	for _, opt := range opts {
		opt(s)
	}

	// Ensure logger is initialized so the runtime never receives nil.
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	runtimeOpts := []runtime.EngineOption{
		runtime.WithLogger(s.logger),
		runtime.WithLifecycleHooks(s.hooks),
	}
	if s.scroll != nil {
		runtimeOpts = append(runtimeOpts, runtime.WithScrollContext(s.scroll))
	}
	s.engine = runtime.NewEngine(host, runtimeOpts...)
	return s
}

// Setup resolves the steps, parses the offset and enables the scroller.
// On error it logs, returns the error and leaves the scroller destroyed: Enable does
// nothing until a later Setup succeeds.
func (s *Scroller) Setup(cfg Config) error {
	steps, err := s.resolveSteps(cfg)
	if err != nil {
		// A failed setup must not leave the previous step set re-enableable.
		s.engine.Destroy()
		s.logger.Error("scroller setup failed", "err", err)
		return err
	}

	offset := domain.DefaultOffset
	if parsed, err := domain.ParseOffset(cfg.Offset); parsed != nil {
		if err != nil {
			s.logger.Warn("offset", "value", cfg.Offset, "err", err)
		}
		offset = *parsed
	}

	section, graphic := s.resolveSection(cfg)

	return s.engine.Setup(runtime.Settings{
		Steps:     steps,
		Container: cfg.Container,
		Root:      cfg.Root,
		Section:   section,
		Graphic:   graphic,
		Offset:    offset,
		Threshold: cfg.threshold(),
		Progress:  cfg.Progress,
		Once:      cfg.Once,
		Order:     cfg.Order,
		Debug:     cfg.Debug,
	})
}

func (s *Scroller) resolveSteps(cfg Config) ([]domain.Element, error) {
	if len(cfg.Steps) > 0 {
		return cfg.Steps, nil
	}
	if cfg.Step == "" {
		return nil, domain.ErrNoSteps
	}
	sel, ok := s.host.(ports.Selector)
	if !ok {
		return nil, fmt.Errorf("%w: host cannot resolve selector %q", domain.ErrNoSteps, cfg.Step)
	}
	steps := sel.SelectAll(cfg.Step, cfg.Parent)
	if len(steps) == 0 {
		return nil, fmt.Errorf("%w: selector %q matched nothing", domain.ErrNoSteps, cfg.Step)
	}
	return steps, nil
}

// resolveSection picks the first match of the section and graphic selectors.
// A section that cannot be resolved is logged and skipped; the steps still work.
func (s *Scroller) resolveSection(cfg Config) (section, graphic domain.Element) {
	if cfg.Section == "" {
		return nil, nil
	}
	sel, ok := s.host.(ports.Selector)
	if !ok {
		s.logger.Warn("host cannot resolve section selector", "section", cfg.Section)
		return nil, nil
	}
	first := func(selector string) domain.Element {
		if matches := sel.SelectAll(selector, nil); len(matches) > 0 {
			return matches[0]
		}
		return nil
	}
	if section = first(cfg.Section); section == nil {
		s.logger.Warn("section selector matched nothing", "section", cfg.Section)
		return nil, nil
	}
	if cfg.Graphic != "" {
		if graphic = first(cfg.Graphic); graphic == nil {
			s.logger.Warn("graphic selector matched nothing", "graphic", cfg.Graphic)
		}
	}
	return section, graphic
}

// Enable builds the watchers again after Disable.
func (s *Scroller) Enable() { s.engine.Enable() }

// Disable severs every watcher. Step state is kept.
func (s *Scroller) Disable() { s.engine.Disable() }

// Resize re-measures the steps and rebuilds the watchers. Call it after layout changes
// the host cannot observe on its own, such as a viewport resize.
func (s *Scroller) Resize() { s.engine.Resize() }

// Destroy disables the scroller, detaches it from the host and forgets every callback.
func (s *Scroller) Destroy() { s.engine.Destroy() }

// Offset returns the global trigger offset.
func (s *Scroller) Offset() domain.Offset { return s.engine.Offset() }

// SetOffset changes the global trigger offset. Nil is a no-op. Malformed values fall back
// to 50% and return domain.ErrInvalidOffset.
func (s *Scroller) SetOffset(x any) error { return s.engine.SetOffset(x) }

// OnStepEnter sets the stepEnter callback. A nil function is rejected and the previous
// callback is kept.
func (s *Scroller) OnStepEnter(fn StepHandler) error { return s.engine.OnStepEnter(fn) }

// OnStepExit sets the stepExit callback.
func (s *Scroller) OnStepExit(fn StepHandler) error { return s.engine.OnStepExit(fn) }

// OnStepProgress sets the stepProgress callback. It only fires when progress mode is on.
func (s *Scroller) OnStepProgress(fn ProgressHandler) error { return s.engine.OnStepProgress(fn) }

// OnContainerEnter sets the containerEnter callback, fired when the section's top reaches
// the top of the viewport (down) or its bottom comes back below the graphic (up).
func (s *Scroller) OnContainerEnter(fn ContainerHandler) error {
	return s.engine.OnContainerEnter(fn)
}

// OnContainerExit sets the containerExit callback, the mirror of OnContainerEnter.
func (s *Scroller) OnContainerExit(fn ContainerHandler) error {
	return s.engine.OnContainerExit(fn)
}

// ContainerState reports whether the section is entered. It stays unset without a section.
func (s *Scroller) ContainerState() domain.StepState { return s.engine.ContainerState() }

// Steps returns a snapshot of every step.
func (s *Scroller) Steps() []domain.StepSnapshot { return s.engine.Steps() }

// Enabled reports whether the watchers are live.
func (s *Scroller) Enabled() bool { return s.engine.Enabled() }

// ScrollContext returns the direction tracker, for sharing with another scroller.
func (s *Scroller) ScrollContext() *scroll.Context { return s.engine.ScrollContext() }
