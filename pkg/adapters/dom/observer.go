//go:build js && wasm

package dom

import (
	"syscall/js"

	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/aretw0/scrolly/pkg/ports"
)

// watcher tracks the wrapped targets so entries map back to the engine's elements.
type watcher struct {
	observer js.Value
	callback js.Func
	targets  []*Element
}

func (w *watcher) Observe(target domain.Element) {
	el, ok := target.(*Element)
	if !ok {
		return
	}
	w.targets = append(w.targets, el)
	w.observer.Call("observe", el.v)
}

func (w *watcher) Disconnect() {
	if w.observer.IsUndefined() {
		return
	}
	w.observer.Call("disconnect")
	w.callback.Release()
	w.observer = js.Undefined()
	w.targets = nil
}

func (w *watcher) lookup(node js.Value) domain.Element {
	for _, t := range w.targets {
		if t.v.Equal(node) {
			return t
		}
	}
	return Wrap(node)
}

// NewIntersectionObserver wraps window.IntersectionObserver.
func (d *Document) NewIntersectionObserver(cb ports.IntersectionCallback, opts ports.ObserverOptions) ports.Watcher {
	w := &watcher{}
	w.callback = js.FuncOf(func(this js.Value, args []js.Value) any {
		list := args[0]
		entries := make([]ports.IntersectionEntry, 0, list.Length())
		for i := 0; i < list.Length(); i++ {
			e := list.Index(i)
			entries = append(entries, ports.IntersectionEntry{
				Target:             w.lookup(e.Get("target")),
				IsIntersecting:     e.Get("isIntersecting").Bool(),
				BoundingClientRect: rectOf(e.Get("boundingClientRect")),
				IntersectionRatio:  e.Get("intersectionRatio").Float(),
			})
		}
		cb(entries)
		return nil
	})

	thresholds := make([]any, len(opts.Thresholds))
	for i, t := range opts.Thresholds {
		thresholds[i] = t
	}
	options := map[string]any{
		"rootMargin": opts.Margin.String(),
		"threshold":  thresholds,
	}
	if root, ok := opts.Root.(*Element); ok && root != nil {
		options["root"] = root.v
	}
	w.observer = d.window.Get("IntersectionObserver").New(w.callback, options)
	return w
}

// NewResizeObserver wraps window.ResizeObserver.
func (d *Document) NewResizeObserver(cb ports.ResizeCallback) ports.Watcher {
	w := &watcher{}
	w.callback = js.FuncOf(func(this js.Value, args []js.Value) any {
		list := args[0]
		entries := make([]ports.ResizeEntry, 0, list.Length())
		for i := 0; i < list.Length(); i++ {
			e := list.Index(i)
			entries = append(entries, ports.ResizeEntry{
				Target: w.lookup(e.Get("target")),
				Height: borderHeight(e),
			})
		}
		cb(entries)
		return nil
	})
	w.observer = d.window.Get("ResizeObserver").New(w.callback)
	return w
}

// borderHeight reads the border-box height of a resize entry, the same box
// getBoundingClientRect measures. contentRect would drop padding and borders.
func borderHeight(entry js.Value) float64 {
	if sizes := entry.Get("borderBoxSize"); sizes.Truthy() {
		// Older engines report a single object instead of an array.
		if sizes.Get("length").Truthy() {
			sizes = sizes.Index(0)
		}
		if size := sizes.Get("blockSize"); size.Truthy() {
			return size.Float()
		}
	}
	if target := entry.Get("target"); target.Truthy() && target.Get("getBoundingClientRect").Truthy() {
		return target.Call("getBoundingClientRect").Get("height").Float()
	}
	return entry.Get("contentRect").Get("height").Float()
}
