//go:build js && wasm

package jsdom

import (
	"syscall/js"
	"time"

	"github.com/goliatone/go-riskform/pkg/eventloop"
)

// Timers schedules callbacks with window.setTimeout, so they run on the
// browser's event loop like any other page script.
type Timers struct{}

var _ eventloop.Scheduler = Timers{}

func (Timers) AfterFunc(d time.Duration, fn func()) eventloop.Timer {
	t := &timeout{}
	t.cb = js.FuncOf(func(this js.Value, args []js.Value) any {
		t.fired = true
		t.cb.Release()
		fn()
		return nil
	})
	t.id = js.Global().Call("setTimeout", t.cb, d.Milliseconds())
	return t
}

type timeout struct {
	id      js.Value
	cb      js.Func
	fired   bool
	stopped bool
}

func (t *timeout) Stop() bool {
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	js.Global().Call("clearTimeout", t.id)
	t.cb.Release()
	return true
}
