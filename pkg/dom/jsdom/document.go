//go:build js && wasm

package jsdom

import (
	"syscall/js"

	"github.com/goliatone/go-riskform/pkg/dom"
)

// Document wraps the page's document object.
type Document struct {
	v     js.Value
	funcs []js.Func
}

var _ dom.Document = (*Document)(nil)

// Global returns the window's document.
func Global() *Document {
	return &Document{v: js.Global().Get("document")}
}

func (d *Document) ElementByID(id string) dom.Element {
	return d.wrap(d.v.Call("getElementById", id))
}

func (d *Document) Query(selector string) dom.Element {
	return d.wrap(d.v.Call("querySelector", selector))
}

func (d *Document) QueryAll(selector string) []dom.Element {
	list := d.v.Call("querySelectorAll", selector)
	n := list.Length()
	out := make([]dom.Element, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &Element{doc: d, v: list.Index(i)})
	}
	return out
}

func (d *Document) CreateElement(tag string) dom.Element {
	return d.wrap(d.v.Call("createElement", tag))
}

func (d *Document) Head() dom.Element {
	return d.wrap(d.v.Get("head"))
}

// Loading reports whether the document is still being parsed.
func (d *Document) Loading() bool {
	return d.v.Get("readyState").String() == "loading"
}

// OnReady runs fn once the document has been parsed, immediately when that
// already happened.
func (d *Document) OnReady(fn func()) {
	if !d.Loading() {
		fn()
		return
	}
	var cb js.Func
	cb = js.FuncOf(func(this js.Value, args []js.Value) any {
		cb.Release()
		fn()
		return nil
	})
	d.v.Call("addEventListener", "DOMContentLoaded", cb)
}

// Release frees every callback registered through this document.
func (d *Document) Release() {
	for _, f := range d.funcs {
		f.Release()
	}
	d.funcs = nil
}

func (d *Document) wrap(v js.Value) dom.Element {
	if v.IsNull() || v.IsUndefined() {
		return nil
	}
	return &Element{doc: d, v: v}
}

func (d *Document) keep(f js.Func) {
	d.funcs = append(d.funcs, f)
}
