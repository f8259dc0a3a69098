package prompt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/goliatone/go-riskform/pkg/constraints"
	"github.com/goliatone/go-riskform/pkg/validation"
)

// OutputFormat controls how collected values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits a JSON object, numbers as numbers.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits one field=value line per field in table order.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithOutputFormat selects the serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(s *Session) {
		if format != "" {
			s.format = format
		}
	}
}

// WithTable replaces the constraint table.
func WithTable(table *constraints.Table) Option {
	return func(s *Session) {
		if table != nil {
			s.table = table
		}
	}
}

// WithMessages replaces the validation message catalog.
func WithMessages(msgs validation.Messages) Option {
	return func(s *Session) {
		if msgs != nil {
			s.messages = msgs
		}
	}
}

// WithDefaults pre-fills answers.
func WithDefaults(values map[string]string) Option {
	return func(s *Session) {
		for k, v := range values {
			s.defaults[k] = v
		}
	}
}

// Session collects one submission from a terminal, enforcing the same
// constraints the page enforces.
type Session struct {
	driver   PromptDriver
	format   OutputFormat
	table    *constraints.Table
	messages validation.Messages
	defaults map[string]string
}

// New constructs a session over the survey driver writing to stdout.
func New(options ...Option) *Session {
	s := &Session{
		driver:   NewSurveyDriver(os.Stdout),
		format:   OutputFormatJSON,
		table:    constraints.Default(),
		messages: validation.EnglishMessages{},
		defaults: map[string]string{},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// ContentType reports the serialization format used by Run.
func (s *Session) ContentType() string {
	switch s.format {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Run prompts every field in table order and serializes the answers.
func (s *Session) Run(ctx context.Context) ([]byte, error) {
	snap, err := s.Collect(ctx)
	if err != nil {
		return nil, err
	}
	return s.serialize(snap)
}

// Collect prompts every field and returns the answers as a snapshot that is
// guaranteed to validate.
func (s *Session) Collect(ctx context.Context) (validation.Snapshot, error) {
	if ctx == nil {
		return nil, errors.New("prompt: context is required")
	}
	if s.driver == nil {
		return nil, ErrNoDriver
	}

	snap := validation.Snapshot{}
	for _, rule := range s.table.Numeric() {
		raw, err := s.promptNumber(ctx, rule)
		if err != nil {
			return nil, err
		}
		snap.Set(rule.Field, raw)
	}
	for _, rule := range s.table.Enumerated() {
		raw, err := s.promptChoice(ctx, rule)
		if err != nil {
			return nil, err
		}
		snap.Set(rule.Field, raw)
	}

	if result := validation.Validate(s.table, snap, s.messages); !result.Valid() {
		return nil, fmt.Errorf("prompt: collected values failed validation: %s", strings.Join(result.Messages(), "; "))
	}
	return snap, nil
}

func (s *Session) promptNumber(ctx context.Context, rule constraints.Rule) (string, error) {
	min, max := rule.Bounds()
	message := s.messages.Range(rule)
	for {
		input, err := s.driver.Input(ctx, InputConfig{
			Message: rule.Field,
			Default: s.defaults[rule.Field],
			Help:    fmt.Sprintf("between %s and %s", min, max),
			Validator: func(raw string) error {
				if _, ok := validation.CheckNumeric(rule, raw); !ok {
					return errors.New(message)
				}
				return nil
			},
		})
		if err != nil {
			return "", err
		}
		if _, ok := validation.CheckNumeric(rule, input); !ok {
			_ = s.driver.Info(ctx, message)
			continue
		}
		value, _ := constraints.ParseNumber(input)
		return constraints.FormatNumber(value), nil
	}
}

func (s *Session) promptChoice(ctx context.Context, rule constraints.Rule) (string, error) {
	defaultIdx := indexOf(rule.Allowed, s.defaults[rule.Field])
	for {
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      rule.Field,
			Options:      rule.Allowed,
			DefaultIndex: defaultIdx,
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(rule.Allowed) {
			_ = s.driver.Info(ctx, s.messages.Selection(rule.Field))
			continue
		}
		return rule.Allowed[idx], nil
	}
}

func (s *Session) serialize(snap validation.Snapshot) ([]byte, error) {
	switch s.format {
	case OutputFormatFormURLEncoded:
		values := url.Values{}
		for _, field := range s.table.Fields() {
			values.Set(field, snap[field].Raw)
		}
		return []byte(values.Encode()), nil
	case OutputFormatPrettyText:
		var b strings.Builder
		for _, field := range s.table.Fields() {
			fmt.Fprintf(&b, "%s=%s\n", field, snap[field].Raw)
		}
		return []byte(b.String()), nil
	default:
		out := make(map[string]any, len(snap))
		for _, rule := range s.table.Numeric() {
			v, _ := constraints.ParseNumber(snap[rule.Field].Raw)
			out[rule.Field] = v
		}
		for _, rule := range s.table.Enumerated() {
			out[rule.Field] = snap[rule.Field].Raw
		}
		return json.Marshal(out)
	}
}
