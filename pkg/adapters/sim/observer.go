package sim

import (
	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/aretw0/scrolly/pkg/ports"
)

type observation struct {
	target       domain.Element
	index        int
	intersecting bool
}

type intersectionObserver struct {
	page      *Page
	cb        ports.IntersectionCallback
	opts      ports.ObserverOptions
	targets   []*observation
	connected bool
}

// NewIntersectionObserver implements ports.ObserverFactory.
func (p *Page) NewIntersectionObserver(cb ports.IntersectionCallback, opts ports.ObserverOptions) ports.Watcher {
	if len(opts.Thresholds) == 0 {
		opts.Thresholds = []float64{0}
	}
	o := &intersectionObserver{page: p, cb: cb, opts: opts, connected: true}
	p.intersections = append(p.intersections, o)
	return o
}

func (o *intersectionObserver) Observe(target domain.Element) {
	if !o.connected || target == nil {
		return
	}
	for _, t := range o.targets {
		if t.target == target {
			return
		}
	}
	o.targets = append(o.targets, &observation{target: target, index: -1})
}

func (o *intersectionObserver) Disconnect() {
	o.connected = false
	o.targets = nil
}

// deliver computes the pending entries and invokes the callback once if there are any.
func (o *intersectionObserver) deliver() bool {
	if !o.connected || len(o.targets) == 0 {
		return false
	}
	area := o.opts.Margin.Expand(o.root())

	var entries []ports.IntersectionEntry
	for _, t := range o.targets {
		rect := t.target.BoundingClientRect()
		ratio, intersecting := Intersect(rect, area)
		index := thresholdIndex(o.opts.Thresholds, ratio, intersecting)
		if index == t.index && intersecting == t.intersecting {
			continue
		}
		t.index = index
		t.intersecting = intersecting
		entries = append(entries, ports.IntersectionEntry{
			Target:             t.target,
			IsIntersecting:     intersecting,
			BoundingClientRect: rect,
			IntersectionRatio:  ratio,
		})
	}
	if len(entries) == 0 {
		return false
	}
	o.cb(entries)
	return true
}

func (o *intersectionObserver) root() domain.Rect {
	if o.opts.Root != nil {
		return o.opts.Root.BoundingClientRect()
	}
	return o.page.rootBox()
}

// Intersect returns the share of target's height inside area and whether the two boxes
// touch. Edge-adjacent boxes intersect with a ratio of zero. A zero-height target that
// touches the area reports a ratio of one.
func Intersect(target, area domain.Rect) (float64, bool) {
	if area.Height < 0 || area.Width < 0 {
		return 0, false
	}
	if target.Top > area.Bottom() || target.Bottom() < area.Top {
		return 0, false
	}
	if target.Left > area.Right() || target.Right() < area.Left {
		return 0, false
	}
	if target.Height <= 0 {
		return 1, true
	}
	overlap := min(target.Bottom(), area.Bottom()) - max(target.Top, area.Top)
	return overlap / target.Height, true
}

// thresholdIndex is the number of thresholds at or below ratio, or zero when the target
// does not intersect. A report is due whenever it changes.
func thresholdIndex(thresholds []float64, ratio float64, intersecting bool) int {
	if !intersecting {
		return 0
	}
	n := 0
	for _, t := range thresholds {
		if t <= ratio {
			n++
		}
	}
	return n
}

type resizeObservation struct {
	target domain.Element
	height float64
}

type resizeObserver struct {
	cb        ports.ResizeCallback
	targets   []*resizeObservation
	connected bool
}

// NewResizeObserver implements ports.ObserverFactory.
func (p *Page) NewResizeObserver(cb ports.ResizeCallback) ports.Watcher {
	o := &resizeObserver{cb: cb, connected: true}
	p.resizes = append(p.resizes, o)
	return o
}

func (o *resizeObserver) Observe(target domain.Element) {
	if !o.connected || target == nil {
		return
	}
	o.targets = append(o.targets, &resizeObservation{target: target, height: -1})
}

func (o *resizeObserver) Disconnect() {
	o.connected = false
	o.targets = nil
}

func (o *resizeObserver) deliver() bool {
	if !o.connected {
		return false
	}
	var entries []ports.ResizeEntry
	for _, t := range o.targets {
		h := t.target.BoundingClientRect().Height
		if h == t.height {
			continue
		}
		t.height = h
		entries = append(entries, ports.ResizeEntry{Target: t.target, Height: h})
	}
	if len(entries) == 0 {
		return false
	}
	o.cb(entries)
	return true
}
