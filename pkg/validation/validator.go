package validation

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/goliatone/go-riskform/pkg/constraints"
	"github.com/goliatone/go-riskform/pkg/dom"
)

// DefaultFormSelector picks the clinical form and skips the language
// switcher, which shares the page.
const DefaultFormSelector = "form:not(#languageForm)"

var (
	messagePolicyOnce sync.Once
	messagePolicy     *bluemonday.Policy
)

// Option configures a Validator.
type Option func(*Validator)

// WithTable replaces the constraint table.
func WithTable(table *constraints.Table) Option {
	return func(v *Validator) {
		if table != nil {
			v.table = table
		}
	}
}

// WithMessages replaces the message catalog.
func WithMessages(msgs Messages) Option {
	return func(v *Validator) {
		if msgs != nil {
			v.messages = msgs
		}
	}
}

// WithFormSelector changes how the form is located.
func WithFormSelector(selector string) Option {
	return func(v *Validator) {
		if s := strings.TrimSpace(selector); s != "" {
			v.formSelector = s
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// Validator binds constraint checking to a form: full validation on submit,
// per-field marker updates on input.
type Validator struct {
	table        *constraints.Table
	messages     Messages
	formSelector string
	logger       *zap.Logger
}

// New constructs a validator over the default table.
func New(options ...Option) *Validator {
	v := &Validator{
		table:        constraints.Default(),
		messages:     EnglishMessages{},
		formSelector: DefaultFormSelector,
		logger:       zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(v)
	}
	return v
}

// Form is a bound form: the form element, its error region and the handlers
// attached to them.
type Form struct {
	validator *Validator
	doc       dom.Document
	form      dom.Element
	region    dom.Element
	last      Result
}

// Bind locates the form, prepends a hidden error region and registers the
// submit and input handlers. It returns false when the page has no form.
func (v *Validator) Bind(doc dom.Document) (*Form, bool) {
	if doc == nil {
		return nil, false
	}
	form := doc.Query(v.formSelector)
	if form == nil {
		v.logger.Debug("validation: no form to bind", zap.String("selector", v.formSelector))
		return nil, false
	}

	region := doc.CreateElement("div")
	region.AddClass(dom.ClassErrorContainer)
	region.SetStyle("color", "red")
	region.SetStyle("padding", "10px")
	region.SetStyle("margin-bottom", "15px")
	region.SetStyle("display", "none")
	form.Prepend(region)

	f := &Form{validator: v, doc: doc, form: form, region: region}
	form.AddEventListener(dom.EventSubmit, f.HandleSubmit)

	for _, rule := range v.table.Numeric() {
		input := doc.ElementByID(rule.Field)
		if input == nil {
			continue
		}
		input.AddEventListener(dom.EventInput, func(ev *dom.Event) {
			f.CheckField(rule, input)
		})
	}
	return f, true
}

// Element returns the bound form element.
func (f *Form) Element() dom.Element {
	return f.form
}

// Region returns the error region.
func (f *Form) Region() dom.Element {
	return f.region
}

// Last returns the result of the most recent submit.
func (f *Form) Last() Result {
	return f.last
}

// Validate captures the current values and evaluates them without touching
// the page.
func (f *Form) Validate() Result {
	v := f.validator
	return Validate(v.table, Capture(f.doc, v.table), v.messages)
}

// HandleSubmit validates the whole form, cancels the submission when
// anything fails and renders the outcome.
func (f *Form) HandleSubmit(ev *dom.Event) {
	result := f.Validate()
	f.last = result
	if !result.Valid() {
		ev.PreventDefault()
	}
	f.Apply(result)
}

// Apply writes result to the page: numeric markers first, then the error
// region, which is always overwritten in full.
func (f *Form) Apply(result Result) {
	for _, rule := range f.validator.table.Numeric() {
		input := f.doc.ElementByID(rule.Field)
		if input == nil {
			continue
		}
		dom.ToggleClass(input, dom.ClassInvalid, result.Failed(rule.Field))
	}

	if result.Valid() {
		f.region.SetStyle("display", "none")
		f.region.SetInnerHTML("")
		return
	}

	f.region.SetInnerHTML(RenderMessages(result.Messages()))
	f.region.SetStyle("display", "block")
	f.region.ScrollIntoView(true)
}

// ShowMessages renders messages that did not come from this validator (the
// server's own verdict, for instance) without touching field markers.
func (f *Form) ShowMessages(messages []string) {
	if len(messages) == 0 {
		return
	}
	f.region.SetInnerHTML(RenderMessages(messages))
	f.region.SetStyle("display", "block")
}

// CheckField re-evaluates one numeric field and toggles only its marker.
func (f *Form) CheckField(rule constraints.Rule, input dom.Element) bool {
	if input == nil {
		return true
	}
	_, ok := CheckNumeric(rule, input.Value())
	dom.ToggleClass(input, dom.ClassInvalid, !ok)
	return ok
}

// RenderMessages formats messages as one <div> per line. Message text is
// escaped and the markup passed through a policy that only admits <div>, so
// translated catalogs cannot inject markup.
func RenderMessages(messages []string) string {
	if len(messages) == 0 {
		return ""
	}
	var b strings.Builder
	for _, msg := range messages {
		b.WriteString("<div>")
		b.WriteString(html.EscapeString(msg))
		b.WriteString("</div>")
	}
	return messageSanitizer().Sanitize(b.String())
}

func messageSanitizer() *bluemonday.Policy {
	messagePolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements("div")
		messagePolicy = policy
	})
	return messagePolicy
}
