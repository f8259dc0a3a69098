//go:build js && wasm

// Command riskform-wasm boots the page behaviour in the browser: slider
// feedback, form validation, the result reveal and the language switcher.
package main

import (
	"context"
	"net/url"
	"syscall/js"

	"go.uber.org/zap"

	"github.com/goliatone/go-riskform/pkg/dom/jsdom"
	"github.com/goliatone/go-riskform/pkg/language"
	"github.com/goliatone/go-riskform/pkg/page"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		logger = zap.NewNop()
	}
	defer logger.Sync()

	doc := jsdom.Global()
	runtime := page.New(
		page.WithScheduler(jsdom.Timers{}),
		page.WithLogger(logger),
	)

	var opts []language.Option
	if base, err := url.Parse(js.Global().Get("location").Get("href").String()); err == nil {
		opts = append(opts, language.WithBaseURL(base))
	}
	switcher := language.New(append(opts,
		language.WithLogger(logger),
		language.WithReload(func() { js.Global().Get("location").Call("reload") }),
	)...)

	// The request blocks on fetch, which must not happen on the callback
	// goroutine.
	changeLanguage := js.FuncOf(func(this js.Value, args []js.Value) any {
		go switcher.Change(context.Background(), doc)
		return nil
	})
	js.Global().Set("changeLanguage", changeLanguage)

	unload := js.FuncOf(func(this js.Value, args []js.Value) any {
		runtime.Teardown()
		return nil
	})
	js.Global().Call("addEventListener", "pagehide", unload)

	doc.OnReady(func() {
		if err := runtime.Ready(doc); err != nil {
			logger.Error("riskform: page runtime failed", zap.Error(err))
		}
	})

	select {}
}
