package render

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"

	"github.com/goliatone/go-theme"

	rendertemplate "github.com/goliatone/go-riskform/pkg/render/template"
	"github.com/goliatone/go-riskform/pkg/render/template/pongo"
)

// ThemeStylesheetKey is the theme asset key resolved into a stylesheet link.
const ThemeStylesheetKey = "riskform.stylesheet"

// Option configures a Renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	theme            *theme.RendererConfig
}

// WithTemplatesFS supplies an alternate template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template engine.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTheme contributes theme CSS variables and the themed stylesheet.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

// Renderer produces the form and result pages.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	theme     *theme.RendererConfig
}

// New constructs a renderer over the embedded templates unless overridden.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(pongo.WithFS(cfg.templateFS), pongo.WithExtension(".tmpl"))
		if err != nil {
			return nil, fmt.Errorf("render: configure template renderer: %w", err)
		}
		renderer = engine
	}
	return &Renderer{templates: renderer, theme: cfg.theme}, nil
}

// ContentType of every rendered page.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// RenderForm renders the clinical input page.
func (r *Renderer) RenderForm(ctx context.Context, page FormPage) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	serverErrors := ""
	if len(page.Errors) > 0 {
		raw, err := json.Marshal(page.Errors)
		if err != nil {
			return nil, fmt.Errorf("render: encode server errors: %w", err)
		}
		serverErrors = string(raw)
	}
	return r.render(FormTemplate, map[string]any{
		"page":         page,
		"serverErrors": serverErrors,
	}, page.Stylesheets)
}

// RenderResult renders the prediction result page.
func (r *Renderer) RenderResult(ctx context.Context, page ResultPage) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data := map[string]any{
		"page":           page,
		"modelLabel":     ModelLabel(page.Model),
		"hasProbability": page.Probability != nil,
	}
	if page.Probability != nil {
		data["probability"] = strconv.FormatFloat(*page.Probability, 'f', -1, 64)
	}
	return r.render(ResultTemplate, data, page.Stylesheets)
}

func (r *Renderer) render(name string, data map[string]any, stylesheets []string) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("render: template renderer is nil")
	}
	data["stylesheets"] = r.stylesheets(stylesheets)
	data["cssVars"] = r.cssVars()

	out, err := r.templates.RenderTemplate(name, data)
	if err != nil {
		return nil, fmt.Errorf("render: render %s: %w", name, err)
	}
	return []byte(out), nil
}

type cssVar struct {
	Name  string
	Value string
}

func (r *Renderer) cssVars() []cssVar {
	if r.theme == nil || len(r.theme.CSSVars) == 0 {
		return nil
	}
	names := make([]string, 0, len(r.theme.CSSVars))
	for name := range r.theme.CSSVars {
		names = append(names, name)
	}
	slices.Sort(names)
	out := make([]cssVar, 0, len(names))
	for _, name := range names {
		out = append(out, cssVar{Name: name, Value: r.theme.CSSVars[name]})
	}
	return out
}

func (r *Renderer) stylesheets(page []string) []string {
	out := slices.Clone(page)
	if r.theme != nil && r.theme.AssetURL != nil {
		if href := r.theme.AssetURL(ThemeStylesheetKey); href != "" {
			out = append(out, href)
		}
	}
	return out
}
