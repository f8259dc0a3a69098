// Package riskform is the entry point for the heart disease risk form's
// client-side behaviour: slider feedback, form validation and the result
// reveal. The packages under pkg/ hold the pieces; this package wires the
// common cases.
package riskform

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-riskform/pkg/constraints"
	"github.com/goliatone/go-riskform/pkg/page"
	"github.com/goliatone/go-riskform/pkg/render"
	"github.com/goliatone/go-riskform/pkg/styles"
	"github.com/goliatone/go-riskform/pkg/validation"
)

// Table aliases constraints.Table for callers customising the rules.
type Table = constraints.Table

// Result aliases validation.Result.
type Result = validation.Result

// NewRuntime exposes the page runtime constructor from the top-level module.
func NewRuntime(options ...page.Option) *page.Runtime {
	return page.New(options...)
}

// Validate checks submitted values against the default table. Fields absent
// from values are reported as missing.
func Validate(values map[string]string) Result {
	return ValidateWith(constraints.Default(), values)
}

// ValidateWith checks values against table.
func ValidateWith(table *Table, values map[string]string) Result {
	snap := validation.Snapshot{}
	for field, raw := range values {
		snap.Set(field, raw)
	}
	return validation.Validate(table, snap, nil)
}

// RenderFormHTML renders the clinical form with the embedded templates.
func RenderFormHTML(ctx context.Context, options ...render.Option) ([]byte, error) {
	renderer, err := render.New(options...)
	if err != nil {
		return nil, err
	}
	return renderer.RenderForm(ctx, render.DefaultFormPage(nil, nil))
}

// StylesheetFS exposes the validation stylesheet so Go applications can serve
// it next to the rendered pages.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(riskform.StylesheetFS()),
//	  ),
//	)
func StylesheetFS() fs.FS {
	return styles.AssetsFS()
}

// EmbeddedTemplates exposes the built-in page templates so callers can reuse
// or extend them.
func EmbeddedTemplates() fs.FS {
	return render.TemplatesFS()
}
