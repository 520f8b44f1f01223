// Package sim is an in-memory page that implements the scroller host ports.
//
// It lays blocks out in a single column, tracks a scroll position and polyfills the
// intersection and resize primitives with browser semantics: reports are queued and
// delivered on Tick, the first observation of a target is always reported, later ones
// only when a threshold is crossed or the intersecting flag flips, and edge-adjacent
// boxes count as intersecting.
package sim

import (
	"sort"
	"strings"

	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/aretw0/scrolly/pkg/ports"
)

// DefaultWidth is the viewport and block width used when none is given.
const DefaultWidth = 1024

// maxPasses bounds how many delivery rounds a single Tick runs before giving up.
// Watchers rebuilt by a delivery are observed in the next round.
const maxPasses = 16

// Page is a simulated document. It is not safe for concurrent use.
type Page struct {
	width    float64
	viewport float64
	scrollY  float64
	blocks   []*Block

	listeners    map[int]func()
	nextListener int

	intersections []*intersectionObserver
	resizes       []*resizeObserver

	reverse bool
	manual  bool
}

// Option defines a functional option for configuring a Page.
type Option func(*Page)

// WithWidth sets the viewport width.
func WithWidth(w float64) Option {
	return func(p *Page) {
		if w > 0 {
			p.width = w
		}
	}
}

// WithReverseDelivery delivers intersection reports newest watcher first.
// Real hosts give no ordering guarantee across watchers; this exposes order-dependent code.
func WithReverseDelivery() Option {
	return func(p *Page) {
		p.reverse = true
	}
}

// WithManualTick stops mutations from delivering reports; the caller must call Tick.
func WithManualTick() Option {
	return func(p *Page) {
		p.manual = true
	}
}

// NewPage creates an empty page with the given viewport height.
func NewPage(viewportHeight float64, opts ...Option) *Page {
	p := &Page{
		width:     DefaultWidth,
		viewport:  viewportHeight,
		listeners: make(map[int]func()),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Add appends a block below the current content, separated by gap pixels.
func (p *Page) Add(class string, gap, height float64) *Block {
	top := gap
	if n := len(p.blocks); n > 0 {
		top += p.blocks[n-1].Bottom()
	}
	return p.Place(class, top, height)
}

// Place inserts a block at an absolute document position.
func (p *Page) Place(class string, top, height float64) *Block {
	b := &Block{
		page:    p,
		classes: strings.Fields(class),
		top:     top,
		height:  height,
		data:    make(map[string]string),
	}
	p.blocks = append(p.blocks, b)
	sort.SliceStable(p.blocks, func(i, j int) bool { return p.blocks[i].top < p.blocks[j].top })
	return b
}

// Blocks returns every block in document order.
func (p *Page) Blocks() []*Block {
	return append([]*Block(nil), p.blocks...)
}

// InnerHeight implements ports.Viewport.
func (p *Page) InnerHeight() float64 { return p.viewport }

// ScrollY implements ports.Viewport.
func (p *Page) ScrollY() float64 { return p.scrollY }

// ScrollHeight implements ports.Viewport. It is never smaller than the viewport.
func (p *Page) ScrollHeight() float64 {
	h := p.viewport
	for _, b := range p.blocks {
		if b.Bottom() > h {
			h = b.Bottom()
		}
	}
	return h
}

// MaxScroll is the largest reachable scroll position.
func (p *Page) MaxScroll() float64 {
	return p.ScrollHeight() - p.viewport
}

// OnScroll implements ports.Host.
func (p *Page) OnScroll(fn func()) func() {
	id := p.nextListener
	p.nextListener++
	p.listeners[id] = fn
	return func() {
		delete(p.listeners, id)
	}
}

// ScrollTo jumps to y, clamped to the scrollable range, fires scroll listeners and
// delivers pending reports.
func (p *Page) ScrollTo(y float64) {
	if y < 0 {
		y = 0
	}
	if limit := p.MaxScroll(); y > limit {
		y = limit
	}
	if y == p.scrollY {
		return
	}
	p.scrollY = y
	p.fireScroll()
	p.autoTick()
}

// ScrollBy scrolls relative to the current position.
func (p *Page) ScrollBy(dy float64) {
	p.ScrollTo(p.scrollY + dy)
}

// SmoothScroll moves to y in increments of step pixels, delivering after every increment.
func (p *Page) SmoothScroll(y, step float64) {
	if step <= 0 {
		p.ScrollTo(y)
		return
	}
	if y < 0 {
		y = 0
	}
	if limit := p.MaxScroll(); y > limit {
		y = limit
	}
	for p.scrollY != y {
		next := p.scrollY + step
		if y < p.scrollY {
			next = p.scrollY - step
			if next < y {
				next = y
			}
		} else if next > y {
			next = y
		}
		p.ScrollTo(next)
	}
}

// SetViewportHeight changes the viewport height, as a window resize would.
func (p *Page) SetViewportHeight(h float64) {
	if h == p.viewport || h <= 0 {
		return
	}
	p.viewport = h
	if limit := p.MaxScroll(); p.scrollY > limit {
		p.scrollY = limit
		p.fireScroll()
	}
	p.autoTick()
}

// SelectAll implements ports.Selector. Supported selectors are ".class", "#id" and a bare
// class name. A non-nil parent restricts the match to that block's children.
func (p *Page) SelectAll(selector string, parent domain.Element) []domain.Element {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return nil
	}
	var out []domain.Element
	for _, b := range p.blocks {
		if parent != nil && b.parent != parent {
			continue
		}
		if b.matches(selector) {
			out = append(out, b)
		}
	}
	return out
}

func (p *Page) fireScroll() {
	ids := make([]int, 0, len(p.listeners))
	for id := range p.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := p.listeners[id]; ok {
			fn()
		}
	}
}

func (p *Page) autoTick() {
	if !p.manual {
		p.Tick()
	}
}

// rootBox is the viewport in its own coordinates.
func (p *Page) rootBox() domain.Rect {
	return domain.Rect{Top: 0, Left: 0, Width: p.width, Height: p.viewport}
}

// Tick delivers every pending report. Resize reports go first, then intersection reports,
// watcher by watcher. It returns the number of callbacks invoked.
func (p *Page) Tick() int {
	calls := 0
	for pass := 0; pass < maxPasses; pass++ {
		n := p.deliverResizes() + p.deliverIntersections()
		calls += n
		if n == 0 {
			break
		}
	}
	p.prune()
	return calls
}

func (p *Page) deliverResizes() int {
	calls := 0
	for _, o := range append([]*resizeObserver(nil), p.resizes...) {
		if o.deliver() {
			calls++
		}
	}
	return calls
}

func (p *Page) deliverIntersections() int {
	batch := append([]*intersectionObserver(nil), p.intersections...)
	if p.reverse {
		for i, j := 0, len(batch)-1; i < j; i, j = i+1, j-1 {
			batch[i], batch[j] = batch[j], batch[i]
		}
	}
	calls := 0
	for _, o := range batch {
		if o.deliver() {
			calls++
		}
	}
	return calls
}

func (p *Page) prune() {
	live := p.intersections[:0]
	for _, o := range p.intersections {
		if o.connected {
			live = append(live, o)
		}
	}
	for i := len(live); i < len(p.intersections); i++ {
		p.intersections[i] = nil
	}
	p.intersections = live

	resizes := p.resizes[:0]
	for _, o := range p.resizes {
		if o.connected {
			resizes = append(resizes, o)
		}
	}
	for i := len(resizes); i < len(p.resizes); i++ {
		p.resizes[i] = nil
	}
	p.resizes = resizes
}

// Watchers returns the number of connected intersection and resize watchers.
func (p *Page) Watchers() (intersection, resize int) {
	for _, o := range p.intersections {
		if o.connected {
			intersection++
		}
	}
	for _, o := range p.resizes {
		if o.connected {
			resize++
		}
	}
	return intersection, resize
}

var _ ports.Host = (*Page)(nil)
var _ ports.Selector = (*Page)(nil)
