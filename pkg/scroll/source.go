package scroll

// Viewport reports the window's vertical scroll offset.
type Viewport interface {
	ScrollY() float64
}

// Container is an explicit scroll container.
type Container interface {
	ScrollTop() float64
}

// Source reads the position that drives a Context: the container's scroll offset when
// one is configured, the viewport's otherwise.
type Source struct {
	Viewport  Viewport
	Container Container
}

// Position returns the current scroll offset.
func (s Source) Position() float64 {
	if s.Container != nil {
		return s.Container.ScrollTop()
	}
	if s.Viewport != nil {
		return s.Viewport.ScrollY()
	}
	return 0
}

// Sample reads the source and feeds the context.
func (s Source) Sample(c *Context) {
	c.Update(s.Position())
}
