package domain

import "strconv"

// Rect is a bounding box in viewport coordinates (y grows downwards).
type Rect struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Right returns the right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Margin holds the four edge offsets applied to an observer root.
// Positive values grow the root box outwards, negative values shrink it.
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// String renders the margin in CSS rootMargin notation.
func (m Margin) String() string {
	return px(m.Top) + " " + px(m.Right) + " " + px(m.Bottom) + " " + px(m.Left)
}

// px formats without exponents, which CSS lengths do not allow.
func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// Expand applies the margin to a root box, returning the effective detection area.
func (m Margin) Expand(root Rect) Rect {
	return Rect{
		Top:    root.Top - m.Top,
		Left:   root.Left - m.Left,
		Width:  root.Width + m.Left + m.Right,
		Height: root.Height + m.Top + m.Bottom,
	}
}
