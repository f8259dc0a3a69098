package page

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-riskform/pkg/constraints"
	"github.com/goliatone/go-riskform/pkg/dom"
	"github.com/goliatone/go-riskform/pkg/eventloop"
	"github.com/goliatone/go-riskform/pkg/feedback"
	"github.com/goliatone/go-riskform/pkg/reveal"
	"github.com/goliatone/go-riskform/pkg/styles"
	"github.com/goliatone/go-riskform/pkg/validation"
)

// Option configures a Runtime.
type Option func(*Runtime)

// WithScheduler sets the scheduler that owns reveal timers. Its callbacks
// must run on the goroutine that owns the document.
func WithScheduler(s eventloop.Scheduler) Option {
	return func(r *Runtime) {
		r.scheduler = s
	}
}

// WithLogger attaches a logger shared by every component.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runtime) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithDisplayMapping overrides slider to display pairings.
func WithDisplayMapping(mapping feedback.DisplayMapping) Option {
	return func(r *Runtime) {
		r.feedbackOpts = append(r.feedbackOpts, feedback.WithDisplayMapping(mapping))
	}
}

// WithPolarity overrides which sliders treat higher values as better.
func WithPolarity(polarity feedback.PolarityMap) Option {
	return func(r *Runtime) {
		r.feedbackOpts = append(r.feedbackOpts, feedback.WithPolarity(polarity))
	}
}

// WithRevealDelays overrides the card and meter delays.
func WithRevealDelays(card, meter time.Duration) Option {
	return func(r *Runtime) {
		r.revealOpts = append(r.revealOpts, reveal.WithCardDelay(card), reveal.WithMeterDelay(meter))
	}
}

// WithTable replaces the constraint table.
func WithTable(table *constraints.Table) Option {
	return func(r *Runtime) {
		r.validationOpts = append(r.validationOpts, validation.WithTable(table))
	}
}

// WithMessages replaces the validation message catalog.
func WithMessages(msgs validation.Messages) Option {
	return func(r *Runtime) {
		r.validationOpts = append(r.validationOpts, validation.WithMessages(msgs))
	}
}

// WithFormSelector changes how the clinical form is located.
func WithFormSelector(selector string) Option {
	return func(r *Runtime) {
		r.validationOpts = append(r.validationOpts, validation.WithFormSelector(selector))
	}
}

// Runtime boots the behaviour layer for one page load.
type Runtime struct {
	scheduler      eventloop.Scheduler
	logger         *zap.Logger
	feedbackOpts   []feedback.Option
	revealOpts     []reveal.Option
	validationOpts []validation.Option

	doc      dom.Document
	reveal   *reveal.Reveal
	bindings []feedback.Binding
	form     *validation.Form
	style    dom.Element
	ready    bool
	torn     bool
}

// New constructs a runtime. Nothing touches a document until Ready.
func New(options ...Option) *Runtime {
	r := &Runtime{logger: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Ready runs the page-ready sequence: the result reveal (when the page shows
// a result), slider feedback, form validation and the stylesheet. Server
// errors embedded in the form are shown once the error region exists.
func (r *Runtime) Ready(doc dom.Document) error {
	if doc == nil {
		return ErrNilDocument
	}
	if r.scheduler == nil {
		return ErrNoScheduler
	}
	if r.ready {
		return ErrAlreadyReady
	}
	r.ready = true
	r.doc = doc

	revealOpts := append([]reveal.Option{reveal.WithLogger(r.logger)}, r.revealOpts...)
	if rv, ok := reveal.New(r.scheduler, revealOpts...).Start(doc); ok {
		r.reveal = rv
	}

	feedbackOpts := append([]feedback.Option{feedback.WithLogger(r.logger)}, r.feedbackOpts...)
	r.bindings = feedback.New(feedbackOpts...).Bind(doc)

	validationOpts := append([]validation.Option{validation.WithLogger(r.logger)}, r.validationOpts...)
	if form, ok := validation.New(validationOpts...).Bind(doc); ok {
		r.form = form
		r.showServerErrors()
	}

	r.style = styles.Inject(doc)

	r.logger.Debug("page: ready",
		zap.Bool("result", r.reveal != nil),
		zap.Int("sliders", len(r.bindings)),
		zap.Bool("form", r.form != nil),
	)
	return nil
}

func (r *Runtime) showServerErrors() {
	raw, ok := r.form.Element().Attr(dom.AttrServerErrors)
	if !ok || raw == "" {
		return
	}
	var messages []string
	if err := json.Unmarshal([]byte(raw), &messages); err != nil {
		r.logger.Debug("page: ignoring malformed server errors", zap.Error(err))
		return
	}
	r.form.ShowMessages(messages)
}

// Reveal returns the scheduled reveal, or nil on pages without a result.
func (r *Runtime) Reveal() *reveal.Reveal {
	return r.reveal
}

// Bindings returns the slider to display pairs bound at ready.
func (r *Runtime) Bindings() []feedback.Binding {
	return r.bindings
}

// Form returns the bound form, or nil on pages without one.
func (r *Runtime) Form() *validation.Form {
	return r.form
}

// Stylesheet returns the injected style element.
func (r *Runtime) Stylesheet() dom.Element {
	return r.style
}

// Teardown cancels reveal transitions that have not happened yet. Calling it
// more than once is harmless.
func (r *Runtime) Teardown() int {
	if r.torn {
		return 0
	}
	r.torn = true
	cancelled := 0
	if r.reveal != nil {
		cancelled = r.reveal.Stop()
	}
	r.logger.Debug("page: teardown", zap.Int("cancelled_timers", cancelled))
	return cancelled
}
