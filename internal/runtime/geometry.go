package runtime

import (
	"math"

	"github.com/aretw0/scrolly/pkg/domain"
)

// ZeroMOE is zero with a rounding margin of error, in pixels.
// A step whose bottom is within it of the trigger line counts as past the line.
const ZeroMOE = 1.0

// maxProgressThresholds caps the progress ladder for very tall steps.
const maxProgressThresholds = 1000

type watcherKind int

const (
	watchResize watcherKind = iota
	watchTriggerTop
	watchTriggerBottom
	watchViewportAbove
	watchViewportBelow
	watchProgress
)

func (k watcherKind) String() string {
	switch k {
	case watchResize:
		return "resize"
	case watchTriggerTop:
		return "trigger-top"
	case watchTriggerBottom:
		return "trigger-bottom"
	case watchViewportAbove:
		return "viewport-above"
	case watchViewportBelow:
		return "viewport-below"
	case watchProgress:
		return "progress"
	}
	return "unknown"
}

// Geometry is the measurement set one step's watchers are built from.
type Geometry struct {
	Viewport float64 // viewport height
	Document float64 // scrollable document height
	Trigger  float64 // trigger line, pixels from the top of the viewport
	Height   float64 // step height
}

// span is the distance the wide fallback watchers extend beyond the viewport.
func (g Geometry) span() float64 {
	return math.Max(g.Document, g.Viewport)
}

// Margin returns the root margin for a watcher kind. Root boxes, top to bottom:
//
//	trigger-top     [T-H, T]
//	trigger-bottom  [T+moe, T+H]
//	viewport-above  [T-span, T]
//	viewport-below  [T+moe, h+span]
//	progress        [T-H, T]
func (g Geometry) Margin(kind watcherKind) domain.Margin {
	t, h, H := g.Trigger, g.Viewport, g.Height
	switch kind {
	case watchTriggerTop, watchProgress:
		return domain.Margin{Top: H - t, Bottom: t - h}
	case watchTriggerBottom:
		return domain.Margin{Top: -(t + ZeroMOE), Bottom: H + t - h}
	case watchViewportAbove:
		return domain.Margin{Top: g.span() - t, Bottom: t - h}
	case watchViewportBelow:
		return domain.Margin{Top: -(t + ZeroMOE), Bottom: g.span()}
	}
	return domain.Margin{}
}

// active reports whether the trigger line lies within the box. Ties at the top edge count.
func (g Geometry) active(r domain.Rect) bool {
	return r.Top-g.Trigger <= 0 && r.Bottom()-g.Trigger >= ZeroMOE
}

// passed reports whether the box is entirely above the trigger line.
func (g Geometry) passed(r domain.Rect) bool {
	return r.Bottom()-g.Trigger < ZeroMOE
}

// below reports whether the box is entirely below the trigger line.
func (g Geometry) below(r domain.Rect) bool {
	return r.Top-g.Trigger > 0
}

// progressThresholds returns one threshold per `threshold` pixels of step height.
func progressThresholds(height, threshold float64) []float64 {
	if threshold < 1 {
		threshold = 1
	}
	count := int(math.Ceil(height / threshold))
	if count < 1 {
		count = 1
	}
	if count > maxProgressThresholds {
		count = maxProgressThresholds
	}
	t := make([]float64, count+1)
	for i := range t {
		t[i] = float64(i) / float64(count)
	}
	return t
}

// roundProgress clamps to [0,1] and keeps three decimals.
func roundProgress(v float64) float64 {
	v = math.Max(0, math.Min(1, v))
	return math.Round(v*1000) / 1000
}
