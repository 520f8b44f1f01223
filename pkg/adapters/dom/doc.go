// Package dom binds the scroller to a real browser through syscall/js.
//
// It only builds for GOOS=js GOARCH=wasm. Window, Element and the observer
// factories wrap the browser's IntersectionObserver and ResizeObserver, so
// the engine runs unchanged against the live page:
//
//	doc := dom.NewDocument()
//	s := scrolly.New(doc)
//	_ = s.Setup(scrolly.Config{Step: ".step", Progress: true})
package dom
