package ports

import (
	"github.com/aretw0/scrolly/pkg/domain"
)

// IntersectionEntry is one report from an intersection watcher.
type IntersectionEntry struct {
	Target             domain.Element
	IsIntersecting     bool
	BoundingClientRect domain.Rect
	IntersectionRatio  float64
}

// IntersectionCallback receives a batch of entries, in host delivery order.
type IntersectionCallback func(entries []IntersectionEntry)

// ResizeEntry reports a new size for an observed element.
type ResizeEntry struct {
	Target domain.Element
	Height float64
}

// ResizeCallback receives a batch of resize entries.
type ResizeCallback func(entries []ResizeEntry)

// ObserverOptions configure an intersection watcher.
type ObserverOptions struct {
	// Root is the element whose box is used as the root; nil means the viewport.
	Root domain.Element
	// Margin grows or shrinks the root box before intersecting.
	Margin domain.Margin
	// Thresholds are the intersection ratios whose crossing triggers a report.
	Thresholds []float64
}

// Watcher is a live observer registration.
type Watcher interface {
	Observe(target domain.Element)
	Disconnect()
}

// ObserverFactory creates watchers. Implementations must deliver an initial entry for
// every observed target, then one whenever the target crosses a threshold or its
// intersecting flag flips.
type ObserverFactory interface {
	NewIntersectionObserver(cb IntersectionCallback, opts ObserverOptions) Watcher
	NewResizeObserver(cb ResizeCallback) Watcher
}
