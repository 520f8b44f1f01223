package ports

import (
	"github.com/aretw0/scrolly/pkg/domain"
)

// Viewport exposes the measurements the geometry depends on.
type Viewport interface {
	// InnerHeight is the height of the visible viewport.
	InnerHeight() float64
	// ScrollY is the window's vertical scroll offset.
	ScrollY() float64
	// ScrollHeight is the total height of the scrollable document.
	ScrollHeight() float64
}

// ScrollContainer is an alternate scroll container (an overflow element instead of the window).
type ScrollContainer interface {
	domain.Element
	ScrollTop() float64
}

// Dataset is implemented by elements that carry data attributes (data-offset).
type Dataset interface {
	Data(key string) (string, bool)
}

// Nested is implemented by elements that can report a scrollable ancestor.
type Nested interface {
	InScrollableAncestor() bool
}

// Selector resolves a selector string to elements, in document order.
// A nil parent means the whole document.
type Selector interface {
	SelectAll(selector string, parent domain.Element) []domain.Element
}

// Host is everything the engine needs from its environment.
type Host interface {
	Viewport
	ObserverFactory

	// OnScroll registers a scroll listener and returns a function that removes it.
	OnScroll(fn func()) (remove func())
}
