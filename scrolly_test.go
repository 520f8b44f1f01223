package scrolly_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/aretw0/scrolly"
	"github.com/aretw0/scrolly/pkg/adapters/sim"
	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPage(steps int) *sim.Page {
	page := sim.NewPage(800)
	page.Add("header", 0, 800)
	for i := 0; i < steps; i++ {
		page.Add("step", 0, 400)
	}
	page.Add("footer", 0, 1200)
	return page
}

func TestScroller_SelectorSetup(t *testing.T) {
	page := newPage(3)
	s := scrolly.New(page)

	require.NoError(t, s.Setup(scrolly.Config{Step: ".step", Progress: true}))
	assert.True(t, s.Enabled())
	assert.Len(t, s.Steps(), 3)
	assert.Equal(t, domain.DefaultOffset, s.Offset())

	var entered []int
	var progress []float64
	require.NoError(t, s.OnStepEnter(func(ev domain.StepEvent) { entered = append(entered, ev.Index) }))
	require.NoError(t, s.OnStepProgress(func(ev domain.ProgressEvent) { progress = append(progress, ev.Progress) }))

	page.Tick()
	page.SmoothScroll(2000, 10)

	assert.Equal(t, []int{0, 1, 2}, entered)
	for _, p := range progress {
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}
}

func TestScroller_SetupErrors(t *testing.T) {
	var buf bytes.Buffer
	page := newPage(2)
	s := scrolly.New(page, scrolly.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))

	err := s.Setup(scrolly.Config{})
	assert.ErrorIs(t, err, domain.ErrNoSteps)

	err = s.Setup(scrolly.Config{Step: ".missing"})
	assert.ErrorIs(t, err, domain.ErrNoSteps)
	assert.False(t, s.Enabled())
	assert.Contains(t, buf.String(), "scroller setup failed")

	require.NoError(t, s.Setup(scrolly.Config{Step: "step", Offset: "bogus"}))
	assert.Equal(t, domain.DefaultOffset, s.Offset())
	assert.Contains(t, buf.String(), domain.ErrInvalidOffset.Error())
}

func TestScroller_FailedSetupForgetsPreviousSteps(t *testing.T) {
	page := newPage(2)
	s := scrolly.New(page)
	require.NoError(t, s.Setup(scrolly.Config{Step: ".step"}))
	require.True(t, s.Enabled())

	assert.ErrorIs(t, s.Setup(scrolly.Config{Step: ".missing"}), domain.ErrNoSteps)
	s.Enable()
	assert.False(t, s.Enabled(), "the previous setup must not come back")

	require.NoError(t, s.Setup(scrolly.Config{Step: ".step"}))
	assert.True(t, s.Enabled())
}

func TestScroller_EnableAfterDestroy(t *testing.T) {
	page := newPage(2)
	s := scrolly.New(page)
	require.NoError(t, s.Setup(scrolly.Config{Step: ".step"}))

	s.Destroy()
	s.Enable()
	assert.False(t, s.Enabled())
	n, resize := page.Watchers()
	assert.Zero(t, n+resize)
}

func TestScroller_ExplicitSteps(t *testing.T) {
	page := newPage(3)
	blocks := page.SelectAll(".step", nil)

	s := scrolly.New(page)
	require.NoError(t, s.Setup(scrolly.Config{Steps: blocks[1:], Offset: "200px"}))
	assert.Len(t, s.Steps(), 2)
	assert.Equal(t, domain.Offset{Format: domain.OffsetPixels, Value: 200}, s.Offset())
}

func TestScroller_SharedScrollContext(t *testing.T) {
	page := newPage(2)
	a := scrolly.New(page)
	b := scrolly.New(page, scrolly.WithScrollContext(a.ScrollContext()))
	assert.Same(t, a.ScrollContext(), b.ScrollContext())
}

func TestScroller_Hooks(t *testing.T) {
	page := newPage(2)
	var events []domain.EventType
	record := func(ev *domain.Event) { events = append(events, ev.Type) }

	s := scrolly.New(page, scrolly.WithLifecycleHooks(domain.LifecycleHooks{
		OnStepEnter: record,
		OnStepExit:  record,
	}))
	require.NoError(t, s.Setup(scrolly.Config{Step: ".step"}))
	page.Tick()
	page.ScrollTo(500)
	page.ScrollTo(900)

	assert.Equal(t, []domain.EventType{domain.EventStepEnter, domain.EventStepExit, domain.EventStepEnter}, events)
}

func TestDecodeConfig(t *testing.T) {
	cfg, err := scrolly.DecodeConfig(map[string]any{
		"step":      ".step",
		"offset":    "120px",
		"threshold": "2px",
		"progress":  "true",
		"once":      1,
		"order":     true,
		"section":   "#story",
	})
	require.NoError(t, err)
	assert.Equal(t, ".step", cfg.Step)
	assert.Equal(t, "#story", cfg.Section)
	assert.Equal(t, "120px", cfg.Offset)
	assert.Equal(t, 2.0, cfg.Threshold)
	assert.True(t, cfg.Progress)
	assert.True(t, cfg.Once)
	assert.True(t, cfg.Order)
	assert.False(t, cfg.Debug)

	cfg, err = scrolly.DecodeConfig(map[string]any{"threshold": "8"})
	require.NoError(t, err)
	assert.Equal(t, 8.0, cfg.Threshold)

	_, err = scrolly.DecodeConfig(map[string]any{"offest": 0.3})
	assert.Error(t, err, "unknown keys are rejected")

	cfg, err = scrolly.DecodeConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, scrolly.Config{}, cfg)
}

func TestDecodeConfig_Elements(t *testing.T) {
	page := newPage(1)
	root := page.Add("frame", 0, 10)

	cfg, err := scrolly.DecodeConfig(map[string]any{"root": root, "parent": root})
	require.NoError(t, err)
	assert.Same(t, root, cfg.Root)
	assert.Same(t, root, cfg.Parent)
}

func TestScroller_Section(t *testing.T) {
	var buf bytes.Buffer
	page := newPage(3)
	page.Place("section", 800, 1200)
	page.Place("graphic", 800, 300)

	s := scrolly.New(page, scrolly.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	require.NoError(t, s.Setup(scrolly.Config{Step: ".step", Section: ".section", Graphic: ".graphic"}))

	var got []string
	require.NoError(t, s.OnContainerEnter(func(ev domain.ContainerEvent) { got = append(got, "enter "+string(ev.Direction)) }))
	require.NoError(t, s.OnContainerExit(func(ev domain.ContainerEvent) { got = append(got, "exit "+string(ev.Direction)) }))
	assert.ErrorIs(t, s.OnContainerEnter(nil), domain.ErrInvalidCallback)

	page.Tick()
	page.SmoothScroll(2000, 10)
	assert.Equal(t, []string{"enter down", "exit down"}, got)
	assert.Equal(t, domain.StateExit, s.ContainerState())

	require.NoError(t, s.Setup(scrolly.Config{Step: ".step", Section: ".missing"}))
	assert.Contains(t, buf.String(), "section selector matched nothing")
	assert.Equal(t, domain.StateUnset, s.ContainerState())
}
