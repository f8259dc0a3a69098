package preview

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/goliatone/go-riskform/pkg/constraints"
	"github.com/goliatone/go-riskform/pkg/feedback"
	"github.com/goliatone/go-riskform/pkg/render"
)

// Config holds server configuration.
type Config struct {
	Addr string
	// Lang is used until the visitor picks a language.
	Lang     string
	AllowAll bool // allow all CORS origins (dev mode)
}

// Option configures a Server.
type Option func(*Server)

// WithLogger attaches a logger used for request logs and failures.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRenderer replaces the page renderer.
func WithRenderer(renderer *render.Renderer) Option {
	return func(s *Server) {
		if renderer != nil {
			s.renderer = renderer
		}
	}
}

// WithTable changes the constraint table the form page is built from.
func WithTable(table *constraints.Table) Option {
	return func(s *Server) {
		if table != nil {
			s.table = table
		}
	}
}

// WithDisplayMapping changes the slider display ids on the form page.
func WithDisplayMapping(mapping feedback.DisplayMapping) Option {
	return func(s *Server) {
		if mapping != nil {
			s.mapping = mapping
		}
	}
}

// Server serves the rendered pages and the stylesheet so the behaviour layer
// can be exercised in a browser.
type Server struct {
	cfg        Config
	logger     *zap.Logger
	renderer   *render.Renderer
	table      *constraints.Table
	mapping    feedback.DisplayMapping
	router     chi.Router
	httpServer *http.Server
}

// New creates a preview server.
func New(cfg Config, options ...Option) (*Server, error) {
	if cfg.Lang == "" {
		cfg.Lang = "en"
	}
	s := &Server{
		cfg:     cfg,
		logger:  zap.NewNop(),
		table:   constraints.Default(),
		mapping: feedback.DefaultDisplayMapping(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.renderer == nil {
		renderer, err := render.New()
		if err != nil {
			return nil, fmt.Errorf("preview: %w", err)
		}
		s.renderer = renderer
	}
	s.router = s.buildRouter()
	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s, nil
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
		corsOpts.AllowCredentials = false
	}
	r.Use(cors.Handler(corsOpts))

	registerRoutes(r, s)
	return r
}

// Handler returns the router.
func (s *Server) Handler() http.Handler { return s.router }

// Start listens on the configured address until Shutdown. It returns
// immediately when Shutdown already ran.
func (s *Server) Start() error {
	s.logger.Info("preview: listening", zap.String("addr", s.cfg.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("preview: serve: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server. It is safe to call before or
// concurrently with Start.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
