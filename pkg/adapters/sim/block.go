package sim

import (
	"strings"

	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/aretw0/scrolly/pkg/ports"
)

// Block is a rectangular element laid out on a Page.
type Block struct {
	page    *Page
	id      string
	classes []string
	parent  *Block
	top     float64
	height  float64
	data    map[string]string
	nested  bool
}

// WithID sets the element id and returns the block.
func (b *Block) WithID(id string) *Block {
	b.id = id
	return b
}

// WithData sets a data attribute (data-<key>) and returns the block.
func (b *Block) WithData(key, value string) *Block {
	b.data[key] = value
	return b
}

// WithParent nests the block under another block for scoped selection.
func (b *Block) WithParent(parent *Block) *Block {
	b.parent = parent
	return b
}

// InScrollable marks the block as living inside a scrollable ancestor.
func (b *Block) InScrollable() *Block {
	b.nested = true
	return b
}

// ID returns the element id.
func (b *Block) ID() string { return b.id }

// Top returns the block's top edge in document coordinates.
func (b *Block) Top() float64 { return b.top }

// Height returns the block height.
func (b *Block) Height() float64 { return b.height }

// Bottom returns the block's bottom edge in document coordinates.
func (b *Block) Bottom() float64 { return b.top + b.height }

// BoundingClientRect implements domain.Element.
func (b *Block) BoundingClientRect() domain.Rect {
	return domain.Rect{
		Top:    b.top - b.page.scrollY,
		Left:   0,
		Width:  b.page.width,
		Height: b.height,
	}
}

// Data implements ports.Dataset.
func (b *Block) Data(key string) (string, bool) {
	v, ok := b.data[key]
	return v, ok
}

// InScrollableAncestor implements ports.Nested.
func (b *Block) InScrollableAncestor() bool { return b.nested }

// SetHeight resizes the block. Blocks below it move with it, as in normal document flow.
func (b *Block) SetHeight(h float64) {
	if h < 0 {
		h = 0
	}
	delta := h - b.height
	if delta == 0 {
		return
	}
	bottom := b.Bottom()
	for _, other := range b.page.blocks {
		if other != b && other.top >= bottom {
			other.top += delta
		}
	}
	b.height = h
	b.page.autoTick()
}

func (b *Block) matches(selector string) bool {
	switch {
	case strings.HasPrefix(selector, "#"):
		return b.id != "" && b.id == selector[1:]
	case strings.HasPrefix(selector, "."):
		selector = selector[1:]
	}
	for _, c := range b.classes {
		if c == selector {
			return true
		}
	}
	return false
}

var (
	_ domain.Element = (*Block)(nil)
	_ ports.Dataset  = (*Block)(nil)
	_ ports.Nested   = (*Block)(nil)
)
