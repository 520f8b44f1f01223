// Package scroll tracks scroll position and derives the scroll direction.
//
// A Context is explicit state: a scroller either owns one privately or receives a
// shared one from the caller, so that several scrollers attached to the same scroll
// container agree on a single direction.
package scroll

import (
	"sync"

	"github.com/aretw0/scrolly/pkg/domain"
)

// Context records the last known scroll position and the derived direction.
// It is safe for concurrent use.
type Context struct {
	mu         sync.RWMutex
	previous   float64
	current    float64
	comparison float64
	direction  domain.Direction
}

// NewContext returns a context with a baseline position of 0 and no direction.
func NewContext() *Context {
	return &Context{}
}

// Update records a new scroll position and returns the resulting direction.
// A position equal to the current one is a no-op, so duplicate ticks never flip direction.
func (c *Context) Update(y float64) domain.Direction {
	c.mu.Lock()
	defer c.mu.Unlock()

	if y == c.current {
		return c.direction
	}
	c.previous = c.current
	c.current = y
	if c.current > c.comparison {
		c.direction = domain.DirectionDown
	} else if c.current < c.comparison {
		c.direction = domain.DirectionUp
	}
	c.comparison = c.current
	return c.direction
}

// Direction returns the last derived direction, or DirectionNone before the first movement.
func (c *Context) Direction() domain.Direction {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.direction
}

// Position returns the current and previous recorded positions.
func (c *Context) Position() (current, previous float64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current, c.previous
}
