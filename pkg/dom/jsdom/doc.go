// Package jsdom adapts the browser DOM, through syscall/js, to the dom
// interfaces. It only builds for GOOS=js GOARCH=wasm.
package jsdom
