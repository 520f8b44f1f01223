package scenario

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/scrolly"
	"github.com/aretw0/scrolly/pkg/adapters/sim"
	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/google/uuid"
)

// Classes given to simulated elements.
const (
	stepClass    = "step"
	sectionClass = "section"
	graphicClass = "graphic"
)

// Runner replays scenarios against the page simulator.
type Runner struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
	now    func() time.Time
}

// RunnerOption defines a functional option for configuring the Runner.
type RunnerOption func(*Runner)

// WithLogger sets the logger passed to every scroller the runner creates.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithLifecycleHooks adds hooks (metrics, logging) next to the trace recorder.
func WithLifecycleHooks(hooks domain.LifecycleHooks) RunnerOption {
	return func(r *Runner) {
		r.hooks = hooks
	}
}

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) RunnerOption {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRunner creates a scenario runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Build lays the scenario out on a fresh simulated page and returns it with its step blocks.
func Build(sc *Scenario) (*sim.Page, []*sim.Block) {
	var opts []sim.Option
	if sc.Viewport.Width > 0 {
		opts = append(opts, sim.WithWidth(sc.Viewport.Width))
	}
	page := sim.NewPage(sc.Viewport.Height, opts...)
	if sc.Layout.Header > 0 {
		page.Add("header", 0, sc.Layout.Header)
	}

	blocks := make([]*sim.Block, len(sc.Steps))
	for i, st := range sc.Steps {
		gap := sc.Layout.Gap
		if i == 0 {
			gap = 0
		}
		b := page.Add(stepClass, gap, st.Height).WithID(fmt.Sprintf("step-%d", i))
		if st.Offset != "" {
			b.WithData("offset", st.Offset)
		}
		if st.Nested {
			b.InScrollable()
		}
		blocks[i] = b
	}

	if sc.Layout.Footer > 0 {
		page.Add("footer", 0, sc.Layout.Footer)
	}

	// Placed last: Add stacks new blocks under the last one in document order.
	if sc.Layout.sectioned() {
		first, last := blocks[0], blocks[len(blocks)-1]
		page.Place(sectionClass, first.Top(), last.Bottom()-first.Top()).WithID("section")
		if sc.Layout.Graphic > 0 {
			page.Place(graphicClass, first.Top(), sc.Layout.Graphic).WithID("graphic")
		}
	}
	return page, blocks
}

// Run replays the scenario and returns the recorded trace. The context is checked between
// script actions; a cancelled run returns the partial trace with the context error.
func (r *Runner) Run(ctx context.Context, sc *Scenario) (*domain.Trace, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	cfg, err := scrolly.DecodeConfig(sc.Options)
	if err != nil {
		return nil, fmt.Errorf("%w: options: %v", domain.ErrInvalidScenario, err)
	}

	page, blocks := Build(sc)
	if len(cfg.Steps) == 0 && cfg.Step == "" {
		cfg.Step = "." + stepClass
	}
	if sc.Layout.sectioned() && cfg.Section == "" {
		cfg.Section = "#section"
		if sc.Layout.Graphic > 0 {
			cfg.Graphic = "#graphic"
		}
	}

	trace := &domain.Trace{
		ID:        uuid.NewString(),
		Scenario:  sc.Name,
		CreatedAt: r.now(),
	}
	rec := newRecorder(trace, page, r.now)

	logger := r.logger.With("scenario", sc.Name, "trace_id", trace.ID)
	s := scrolly.New(page,
		scrolly.WithLogger(logger),
		scrolly.WithLifecycleHooks(rec.hooks().Merge(r.hooks)),
	)
	if err := s.Setup(cfg); err != nil {
		return nil, err
	}
	page.Tick()

	for i, a := range sc.Script {
		if err := ctx.Err(); err != nil {
			return rec.trace(), err
		}
		logger.Debug("script action", "index", i, "action", a.String(), "scroll_y", page.ScrollY())
		apply(s, page, blocks, a)
	}

	s.Destroy()
	logger.Debug("scenario finished", "events", len(trace.Events))
	return rec.trace(), nil
}

// Run replays a scenario with a default runner.
func Run(ctx context.Context, sc *Scenario) (*domain.Trace, error) {
	return NewRunner().Run(ctx, sc)
}

func apply(s *scrolly.Scroller, page *sim.Page, blocks []*sim.Block, a Action) {
	switch a.Kind {
	case ActionScrollTo:
		page.ScrollTo(a.Value)
	case ActionScrollBy:
		page.ScrollBy(a.Value)
	case ActionSmooth:
		page.SmoothScroll(a.Value, a.Step)
	case ActionResizeStep:
		blocks[a.Index].SetHeight(a.Value)
	case ActionResizeViewport:
		page.SetViewportHeight(a.Value)
		s.Resize()
		page.Tick()
	case ActionOffset:
		_ = s.SetOffset(a.Offset)
		page.Tick()
	case ActionEnable:
		s.Enable()
		page.Tick()
	case ActionDisable:
		s.Disable()
	case ActionResize:
		s.Resize()
		page.Tick()
	case ActionDestroy:
		s.Destroy()
	}
}

// recorder appends hook events to a trace.
type recorder struct {
	t    *domain.Trace
	page *sim.Page
	now  func() time.Time
}

func newRecorder(t *domain.Trace, page *sim.Page, now func() time.Time) *recorder {
	return &recorder{t: t, page: page, now: now}
}

func (r *recorder) record(e *domain.Event) {
	ev := *e
	ev.Timestamp = r.now()
	ev.ScrollY = r.page.ScrollY()
	r.t.Events = append(r.t.Events, ev)
}

func (r *recorder) hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepEnter:    r.record,
		OnStepExit:     r.record,
		OnStepProgress: r.record,

		OnContainerEnter: r.record,
		OnContainerExit:  r.record,
	}
}

func (r *recorder) trace() *domain.Trace {
	return r.t
}
