//go:build js && wasm

package jsdom

import (
	"strings"
	"syscall/js"

	"github.com/goliatone/go-riskform/pkg/dom"
)

// Element wraps one DOM element.
type Element struct {
	doc *Document
	v   js.Value
}

var _ dom.Element = (*Element)(nil)

// JSValue exposes the underlying object.
func (e *Element) JSValue() js.Value { return e.v }

func (e *Element) ID() string { return e.v.Get("id").String() }

func (e *Element) Tag() string { return strings.ToLower(e.v.Get("tagName").String()) }

func (e *Element) Attr(name string) (string, bool) {
	if !e.v.Call("hasAttribute", name).Bool() {
		return "", false
	}
	return e.v.Call("getAttribute", name).String(), true
}

func (e *Element) SetAttr(name, value string) { e.v.Call("setAttribute", name, value) }

func (e *Element) Value() string {
	v := e.v.Get("value")
	if v.IsUndefined() || v.IsNull() {
		return ""
	}
	return v.String()
}

func (e *Element) Checked() bool { return e.v.Get("checked").Truthy() }

func (e *Element) Text() string { return e.v.Get("textContent").String() }

func (e *Element) SetText(text string) { e.v.Set("textContent", text) }

func (e *Element) SetInnerHTML(markup string) { e.v.Set("innerHTML", markup) }

func (e *Element) Style(property string) string {
	return e.v.Get("style").Call("getPropertyValue", property).String()
}

func (e *Element) SetStyle(property, value string) {
	e.v.Get("style").Call("setProperty", property, value)
}

func (e *Element) HasClass(name string) bool {
	return e.v.Get("classList").Call("contains", name).Bool()
}

func (e *Element) AddClass(name string) { e.v.Get("classList").Call("add", name) }

func (e *Element) RemoveClass(name string) { e.v.Get("classList").Call("remove", name) }

func (e *Element) ScrollIntoView(smooth bool) {
	behavior := "auto"
	if smooth {
		behavior = "smooth"
	}
	e.v.Call("scrollIntoView", map[string]any{"behavior": behavior})
}

func (e *Element) Prepend(child dom.Element) {
	if c, ok := child.(*Element); ok && c != nil {
		e.v.Call("prepend", c.v)
	}
}

func (e *Element) Append(child dom.Element) {
	if c, ok := child.(*Element); ok && c != nil {
		e.v.Call("append", c.v)
	}
}

// AddEventListener bridges a browser event to fn. Calling PreventDefault on
// the dom event cancels the browser event.
func (e *Element) AddEventListener(typ dom.EventType, fn dom.Listener) {
	if fn == nil {
		return
	}
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		ev := dom.NewEvent(typ, e)
		fn(ev)
		if ev.DefaultPrevented() && len(args) > 0 {
			args[0].Call("preventDefault")
		}
		return nil
	})
	e.doc.keep(cb)
	e.v.Call("addEventListener", string(typ), cb)
}

// Dispatch fires a cancelable, bubbling browser event.
func (e *Element) Dispatch(ev *dom.Event) bool {
	if ev == nil {
		return true
	}
	init := map[string]any{"bubbles": true, "cancelable": true}
	native := js.Global().Get("Event").New(string(ev.Type), init)
	return e.v.Call("dispatchEvent", native).Bool()
}
