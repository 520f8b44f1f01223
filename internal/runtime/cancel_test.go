package runtime

import (
	"testing"

	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/aretw0/scrolly/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeElement struct {
	rect domain.Rect
}

func (f *fakeElement) BoundingClientRect() domain.Rect { return f.rect }

type fakeWatcher struct{}

func (fakeWatcher) Observe(domain.Element) {}
func (fakeWatcher) Disconnect() {}

// fakeHost records watcher callbacks so tests can deliver reports at will,
// including after the engine has moved on.
type fakeHost struct {
	intersect []ports.IntersectionCallback
	opts      []ports.ObserverOptions
	resize    []ports.ResizeCallback
}

func (h *fakeHost) InnerHeight() float64 { return 800 }
func (h *fakeHost) ScrollY() float64 { return 0 }
func (h *fakeHost) ScrollHeight() float64 { return 3200 }
func (h *fakeHost) OnScroll(func()) func() { return func() {} }
func (h *fakeHost) NewResizeObserver(cb ports.ResizeCallback) ports.Watcher {
	h.resize = append(h.resize, cb)
	return fakeWatcher{}
}
func (h *fakeHost) NewIntersectionObserver(cb ports.IntersectionCallback, opts ports.ObserverOptions) ports.Watcher {
	h.intersect = append(h.intersect, cb)
	h.opts = append(h.opts, opts)
	return fakeWatcher{}
}

func TestEngine_StrictCancellation(t *testing.T) {
	host := &fakeHost{}
	el := &fakeElement{rect: domain.Rect{Top: 300, Height: 400}}
	entry := []ports.IntersectionEntry{{Target: el, IsIntersecting: true, BoundingClientRect: el.rect}}

	e := NewEngine(host)
	require.NoError(t, e.Setup(Settings{Steps: []domain.Element{el}, Offset: domain.DefaultOffset, Threshold: 4}))
	r := record(t, e)

	require.Len(t, host.intersect, 4, "one watcher per edge, no progress watcher")
	stale := host.intersect

	e.Resize()
	require.Len(t, host.intersect, 8)

	// Reports queued for the replaced watchers are dropped.
	for _, cb := range stale {
		cb(entry)
	}
	assert.Empty(t, r.marks)

	e.Disable()
	for _, cb := range host.intersect {
		cb(entry)
	}
	host.resize[len(host.resize)-1]([]ports.ResizeEntry{{Target: el, Height: 900}})
	assert.Empty(t, r.marks, "nothing fires while disabled")
	assert.Equal(t, 400.0, e.Steps()[0].Height)

	e.Enable()
	host.intersect[len(host.intersect)-4](entry)
	assert.Equal(t, []string{"enter 0 down"}, r.transitions())
}

func TestEngine_ProgressWatcherThresholds(t *testing.T) {
	host := &fakeHost{}
	el := &fakeElement{rect: domain.Rect{Top: 1000, Height: 40}}

	e := NewEngine(host)
	require.NoError(t, e.Setup(Settings{Steps: []domain.Element{el}, Offset: domain.DefaultOffset, Threshold: 4, Progress: true}))

	require.Len(t, host.opts, 5)
	assert.Len(t, host.opts[4].Thresholds, 11)
	for _, o := range host.opts[:4] {
		assert.Equal(t, []float64{0}, o.Thresholds)
	}
}
