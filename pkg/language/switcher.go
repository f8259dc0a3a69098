package language

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-riskform/pkg/dom"
)

const (
	FormID   = "languageForm"
	SelectID = "languageSelect"

	// DefaultField is posted when the select carries no name.
	DefaultField = "lang"
	// DefaultAction is posted to when the form carries no action.
	DefaultAction = "/set_language"

	RequestedWithHeader = "X-Requested-With"
	RequestedWithXHR    = "XMLHttpRequest"
)

// Response is the endpoint's JSON answer.
type Response struct {
	Success bool `json:"success"`
}

// Option configures a Switcher.
type Option func(*Switcher)

// WithHTTPClient sets the client used to post the form.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Switcher) {
		if client != nil {
			s.client = client
		}
	}
}

// WithBaseURL resolves relative form actions against base.
func WithBaseURL(base *url.URL) Option {
	return func(s *Switcher) {
		s.base = base
	}
}

// WithReload sets the callback run after a successful switch.
func WithReload(reload func()) Option {
	return func(s *Switcher) {
		if reload != nil {
			s.reload = reload
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Switcher) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Switcher posts the language form and reloads the page when the server
// accepts the change. It does no translation of its own.
type Switcher struct {
	client *http.Client
	base   *url.URL
	reload func()
	logger *zap.Logger
}

// New constructs a Switcher.
func New(options ...Option) *Switcher {
	s := &Switcher{
		client: http.DefaultClient,
		reload: func() {},
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Switch posts values to action and returns nil once the server accepts the
// change. The reload callback is not run; see Change.
func (s *Switcher) Switch(ctx context.Context, action string, values url.Values) error {
	target, err := s.resolve(action)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(values.Encode()))
	if err != nil {
		return fmt.Errorf("language: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestedWithHeader, RequestedWithXHR)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("language: post %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var payload Response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("language: decode response: %w", err)
	}
	if !payload.Success {
		return ErrRejected
	}
	return nil
}

// Change reads the language form from doc, posts it and reloads on success.
// Failures are logged and never surfaced to the page. It reports whether a
// reload was triggered.
func (s *Switcher) Change(ctx context.Context, doc dom.Document) bool {
	action, values, err := FormValues(doc)
	if err != nil {
		s.logger.Error("language: switch failed", zap.Error(err))
		return false
	}
	if err := s.Switch(ctx, action, values); err != nil {
		s.logger.Error("language: switch failed",
			zap.String("action", action),
			zap.String("lang", values.Get(DefaultField)),
			zap.Error(err),
		)
		return false
	}
	s.logger.Debug("language: switched, reloading", zap.String("action", action))
	s.reload()
	return true
}

// FormValues extracts the form action and the selected language from doc.
func FormValues(doc dom.Document) (string, url.Values, error) {
	if doc == nil {
		return "", nil, ErrNoLanguageForm
	}
	form := doc.ElementByID(FormID)
	if form == nil {
		return "", nil, ErrNoLanguageForm
	}
	action, _ := form.Attr("action")
	if strings.TrimSpace(action) == "" {
		action = DefaultAction
	}

	values := url.Values{}
	if sel := doc.ElementByID(SelectID); sel != nil {
		name, _ := sel.Attr("name")
		if name == "" {
			name = DefaultField
		}
		values.Set(name, sel.Value())
	}
	return action, values, nil
}

func (s *Switcher) resolve(action string) (string, error) {
	ref, err := url.Parse(action)
	if err != nil {
		return "", fmt.Errorf("language: parse action %q: %w", action, err)
	}
	if s.base != nil {
		ref = s.base.ResolveReference(ref)
	}
	return ref.String(), nil
}
