package runtime

import (
	"io"
	"log/slog"

	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/aretw0/scrolly/pkg/ports"
	"github.com/aretw0/scrolly/pkg/scroll"
)

// StepHandler receives stepEnter and stepExit notifications.
type StepHandler func(domain.StepEvent)

// ProgressHandler receives stepProgress notifications.
type ProgressHandler func(domain.ProgressEvent)

// ContainerHandler receives containerEnter and containerExit notifications.
type ContainerHandler func(domain.ContainerEvent)

// Settings is a validated scroller configuration.
type Settings struct {
	Steps     []domain.Element
	Container ports.ScrollContainer
	Root      domain.Element
	Section   domain.Element
	Graphic   domain.Element
	Offset    domain.Offset
	Threshold float64
	Progress  bool
	Once      bool
	Order     bool
	Debug     bool
}

// handlers holds the user callbacks. Slots are never nil: absent means no-op.
type handlers struct {
	enter    StepHandler
	exit     StepHandler
	progress ProgressHandler

	containerEnter ContainerHandler
	containerExit  ContainerHandler
}

func noopHandlers() handlers {
	return handlers{
		enter:    func(domain.StepEvent) {},
		exit:     func(domain.StepEvent) {},
		progress: func(domain.ProgressEvent) {},

		containerEnter: func(domain.ContainerEvent) {},
		containerExit:  func(domain.ContainerEvent) {},
	}
}

// Engine is the step lifecycle state machine and the observer orchestration around it.
// It follows the host's single-threaded model and is not safe for concurrent use.
type Engine struct {
	host   ports.Host
	logger *slog.Logger
	hooks  domain.LifecycleHooks
	scroll *scroll.Context
	source scroll.Source

	settings Settings
	offset   domain.Offset
	steps    []*Step
	section  *section
	cb       handlers
	exclude  map[int]bool

	ready        bool
	enabled      bool
	removeScroll func()
}

// EngineOption defines a functional option for configuring the Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger used for configuration errors and debug output.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers instrumentation hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithScrollContext shares a direction tracker with other engines on the same container.
func WithScrollContext(c *scroll.Context) EngineOption {
	return func(e *Engine) {
		if c != nil {
			e.scroll = c
		}
	}
}

// NewEngine creates an engine bound to a host. It stays disabled until Setup.
func NewEngine(host ports.Host, opts ...EngineOption) *Engine {
	e := &Engine{
		host:    host,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		scroll:  scroll.NewContext(),
		offset:  domain.DefaultOffset,
		cb:      noopHandlers(),
		exclude: make(map[int]bool),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.source = scroll.Source{Viewport: host}
	return e
}

// Steps returns a snapshot of every step, in index order.
func (e *Engine) Steps() []domain.StepSnapshot {
	out := make([]domain.StepSnapshot, len(e.steps))
	for i, s := range e.steps {
		out[i] = s.snapshot()
	}
	return out
}

// Enabled reports whether watchers are currently live.
func (e *Engine) Enabled() bool {
	return e.enabled
}

// ScrollContext returns the direction tracker in use.
func (e *Engine) ScrollContext() *scroll.Context {
	return e.scroll
}

// sampleScroll feeds the tracker from the configured scroll source.
func (e *Engine) sampleScroll() {
	e.source.Sample(e.scroll)
}

// direction is the tracker direction, treating "no movement yet" as downward.
func (e *Engine) direction() domain.Direction {
	if d := e.scroll.Direction(); d != domain.DirectionNone {
		return d
	}
	return domain.DirectionDown
}

// sourceFor picks the scroll position the tracker follows: the container when configured.
func (e *Engine) sourceFor(settings Settings) scroll.Source {
	src := scroll.Source{Viewport: e.host}
	if settings.Container != nil {
		src.Container = settings.Container
	}
	return src
}
