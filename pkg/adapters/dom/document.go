//go:build js && wasm

package dom

import (
	"syscall/js"

	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/aretw0/scrolly/pkg/ports"
)

var (
	_ ports.Host     = (*Document)(nil)
	_ ports.Selector = (*Document)(nil)
)

// Document is the browser window and its document.
type Document struct {
	window   js.Value
	document js.Value
}

// NewDocument wraps the global window.
func NewDocument() *Document {
	w := js.Global()
	return &Document{window: w, document: w.Get("document")}
}

func (d *Document) InnerHeight() float64 { return d.window.Get("innerHeight").Float() }

func (d *Document) ScrollY() float64 { return d.window.Get("scrollY").Float() }

func (d *Document) ScrollHeight() float64 {
	return d.document.Get("documentElement").Get("scrollHeight").Float()
}

// OnScroll adds a passive scroll listener on the window.
func (d *Document) OnScroll(fn func()) func() {
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		fn()
		return nil
	})
	opts := map[string]any{"passive": true}
	d.window.Call("addEventListener", "scroll", cb, opts)
	return func() {
		d.window.Call("removeEventListener", "scroll", cb, opts)
		cb.Release()
	}
}

// SelectAll runs querySelectorAll on parent, or on the document when parent is nil.
func (d *Document) SelectAll(selector string, parent domain.Element) []domain.Element {
	root := d.document
	if p, ok := parent.(*Element); ok && p != nil {
		root = p.v
	}
	list := root.Call("querySelectorAll", selector)
	out := make([]domain.Element, 0, list.Length())
	for i := 0; i < list.Length(); i++ {
		out = append(out, Wrap(list.Index(i)))
	}
	return out
}

// Element wraps a DOM element.
type Element struct {
	v js.Value
}

var (
	_ ports.Dataset         = (*Element)(nil)
	_ ports.Nested          = (*Element)(nil)
	_ ports.ScrollContainer = (*Element)(nil)
)

// Wrap returns the element for a DOM node.
func Wrap(v js.Value) *Element { return &Element{v: v} }

// Value returns the underlying DOM node.
func (e *Element) Value() js.Value { return e.v }

func (e *Element) BoundingClientRect() domain.Rect {
	return rectOf(e.v.Call("getBoundingClientRect"))
}

func (e *Element) ScrollTop() float64 { return e.v.Get("scrollTop").Float() }

// Data reads a data-* attribute.
func (e *Element) Data(key string) (string, bool) {
	v := e.v.Get("dataset").Get(key)
	if v.IsUndefined() || v.IsNull() {
		return "", false
	}
	return v.String(), true
}

// InScrollableAncestor reports whether an ancestor below <body> scrolls on its own.
func (e *Element) InScrollableAncestor() bool {
	getStyle := js.Global().Get("getComputedStyle")
	body := js.Global().Get("document").Get("body")
	for p := e.v.Get("parentElement"); !p.IsNull() && !p.Equal(body); p = p.Get("parentElement") {
		switch getStyle.Invoke(p).Get("overflowY").String() {
		case "auto", "scroll":
			return true
		}
	}
	return false
}

func rectOf(r js.Value) domain.Rect {
	return domain.Rect{
		Top:    r.Get("top").Float(),
		Left:   r.Get("left").Float(),
		Width:  r.Get("width").Float(),
		Height: r.Get("height").Float(),
	}
}
