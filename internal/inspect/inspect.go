// Package inspect loads a page into an in-memory document, boots the page
// runtime on an event loop and reports what a visitor would see.
package inspect

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-riskform/pkg/constraints"
	"github.com/goliatone/go-riskform/pkg/dom"
	"github.com/goliatone/go-riskform/pkg/dom/memdom"
	"github.com/goliatone/go-riskform/pkg/eventloop"
	"github.com/goliatone/go-riskform/pkg/page"
	"github.com/goliatone/go-riskform/pkg/reveal"
)

// ErrRevealTimeout is returned when the result reveal does not settle in time.
var ErrRevealTimeout = errors.New("inspect: reveal did not finish in time")

const pollInterval = 10 * time.Millisecond

// Options drive one inspection.
type Options struct {
	// Values are applied to the page as user input in table field order.
	// Keys the table does not name follow in alphabetical order.
	Values map[string]string
	// Submit dispatches a submit event on the clinical form after the
	// values are applied.
	Submit bool
	// Wait bounds how long the reveal may take.
	Wait           time.Duration
	Table          *constraints.Table
	RuntimeOptions []page.Option
	Logger         *zap.Logger
}

// Report is the observable state of the page after the inspection.
type Report struct {
	Sliders []Slider      `json:"sliders,omitempty"`
	Form    *FormReport   `json:"form,omitempty"`
	Result  *ResultReport `json:"result,omitempty"`
}

// Slider is one slider display after synchronisation.
type Slider struct {
	Field string `json:"field"`
	Text  string `json:"text"`
	Color string `json:"color,omitempty"`
}

// FormReport describes the clinical form.
type FormReport struct {
	Submitted bool     `json:"submitted"`
	Allowed   bool     `json:"allowed"`
	Messages  []string `json:"messages,omitempty"`
	Invalid   []string `json:"invalid,omitempty"`
}

// ResultReport describes the result card and its meters.
type ResultReport struct {
	Card   string  `json:"card"`
	Meters []Meter `json:"meters,omitempty"`
}

// Meter is one probability meter.
type Meter struct {
	Percentage float64 `json:"percentage"`
	Tier       string  `json:"tier"`
	Width      string  `json:"width"`
	Phase      string  `json:"phase"`
}

// Run inspects markup. The document is only touched from the loop goroutine.
func Run(ctx context.Context, markup string, opts Options) (*Report, error) {
	doc, err := memdom.ParseString(markup)
	if err != nil {
		return nil, fmt.Errorf("inspect: %w", err)
	}
	if opts.Table == nil {
		opts.Table = constraints.Default()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Wait <= 0 {
		opts.Wait = 5 * time.Second
	}

	loop := eventloop.New(eventloop.WithLogger(opts.Logger))
	runtime := page.New(append([]page.Option{
		page.WithScheduler(loop),
		page.WithLogger(opts.Logger),
		page.WithTable(opts.Table),
	}, opts.RuntimeOptions...)...)

	report := &Report{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := loop.Run(gctx); err != nil && !errors.Is(err, eventloop.ErrClosed) && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		defer loop.Close()
		return drive(gctx, loop, runtime, doc, opts, report)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return report, nil
}

func drive(ctx context.Context, loop *eventloop.Loop, rt *page.Runtime, doc *memdom.Document, opts Options, report *Report) error {
	var readyErr, fillErr error
	if !loop.Do(ctx, func() { readyErr = rt.Ready(doc) }) {
		return ctx.Err()
	}
	if readyErr != nil {
		return fmt.Errorf("inspect: %w", readyErr)
	}

	ok := loop.Do(ctx, func() {
		for _, field := range fillOrder(opts.Table, opts.Values) {
			if err := doc.Set(field, opts.Values[field]); err != nil {
				fillErr = fmt.Errorf("inspect: set %s: %w", field, err)
				return
			}
		}
		if form := rt.Form(); form != nil {
			report.Form = &FormReport{}
			if opts.Submit {
				report.Form.Submitted = true
				report.Form.Allowed = doc.Submit(form.Element())
				report.Form.Messages = form.Last().Messages()
			}
		}
	})
	if !ok {
		return ctx.Err()
	}
	if fillErr != nil {
		return fillErr
	}

	if err := awaitReveal(ctx, loop, rt, opts.Wait); err != nil {
		return err
	}

	if !loop.Do(ctx, func() { snapshot(doc, rt, opts.Table, report) }) {
		return ctx.Err()
	}
	return nil
}

func awaitReveal(ctx context.Context, loop *eventloop.Loop, rt *page.Runtime, wait time.Duration) error {
	deadline := time.NewTimer(wait)
	defer deadline.Stop()
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		done := true
		if !loop.Do(ctx, func() { done = rt.Reveal() == nil || rt.Reveal().Done() }) {
			return ctx.Err()
		}
		if done {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			loop.Do(ctx, func() { rt.Teardown() })
			return ErrRevealTimeout
		case <-ticker.C:
		}
	}
}

func fillOrder(table *constraints.Table, values map[string]string) []string {
	order := make([]string, 0, len(values))
	for _, field := range table.Fields() {
		if _, ok := values[field]; ok {
			order = append(order, field)
		}
	}
	var rest []string
	for field := range values {
		if !slices.Contains(order, field) {
			rest = append(rest, field)
		}
	}
	slices.Sort(rest)
	return append(order, rest...)
}

func snapshot(doc dom.Document, rt *page.Runtime, table *constraints.Table, report *Report) {
	for _, b := range rt.Bindings() {
		report.Sliders = append(report.Sliders, Slider{
			Field: b.Control.ID(),
			Text:  b.Display.Text(),
			Color: b.Display.Style("background-color"),
		})
	}

	if report.Form != nil {
		for _, rule := range table.Numeric() {
			if el := doc.ElementByID(rule.Field); el != nil && el.HasClass(dom.ClassInvalid) {
				report.Form.Invalid = append(report.Form.Invalid, rule.Field)
			}
		}
	}

	if rv := rt.Reveal(); rv != nil {
		result := &ResultReport{Card: rv.State().String()}
		for _, m := range rv.Meters() {
			result.Meters = append(result.Meters, Meter{
				Percentage: m.State.Percentage,
				Tier:       string(m.State.Tier),
				Width:      m.Element.Style("width"),
				Phase:      m.Phase().String(),
			})
		}
		report.Result = result
	}
}

// WriteText prints report for a terminal.
func WriteText(w io.Writer, report *Report) error {
	var b strings.Builder
	for _, s := range report.Sliders {
		fmt.Fprintf(&b, "slider %-10s %-6s %s\n", s.Field, s.Text, s.Color)
	}
	if f := report.Form; f != nil {
		switch {
		case !f.Submitted:
			b.WriteString("form: not submitted\n")
		case f.Allowed:
			b.WriteString("form: submission allowed\n")
		default:
			b.WriteString("form: submission blocked\n")
		}
		for _, msg := range f.Messages {
			fmt.Fprintf(&b, "  - %s\n", msg)
		}
		if len(f.Invalid) > 0 {
			fmt.Fprintf(&b, "  invalid: %s\n", strings.Join(f.Invalid, ", "))
		}
	}
	if r := report.Result; r != nil {
		fmt.Fprintf(&b, "result card: %s\n", r.Card)
		for i, m := range r.Meters {
			fmt.Fprintf(&b, "  meter %d: %s %s (%s)\n", i+1, m.Width, reveal.Tier(m.Tier).Class(), m.Phase)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
