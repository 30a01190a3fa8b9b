// Package server exposes templates, document generation, persistence and
// export over HTTP, both as a JSON API and as server-rendered pages.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-formdoc/internal/config"
	"github.com/goliatone/go-formdoc/pkg/export"
	"github.com/goliatone/go-formdoc/pkg/model"
	"github.com/goliatone/go-formdoc/pkg/orchestrator"
	"github.com/goliatone/go-formdoc/pkg/render/template/gotemplate"
	formhtml "github.com/goliatone/go-formdoc/pkg/renderers/html"
	"github.com/goliatone/go-formdoc/pkg/storage"
)

//go:embed templates/*.tpl
var pageTemplates embed.FS

const maxBodyBytes = 1 << 20

// Deps are the collaborators the server dispatches to.
type Deps struct {
	Orchestrator *orchestrator.Orchestrator
	Persistence  *storage.Persistence
	Exporter     *export.Exporter
	Platforms    *export.Platforms
	Logger       *slog.Logger
}

type Option func(*Server)

// WithRoles sets the viewer roles used when a request names none.
func WithRoles(roles ...model.Role) Option {
	return func(s *Server) {
		s.roles = append([]model.Role(nil), roles...)
	}
}

// WithExtraRows sets how many blank rows the form pages append to tables.
func WithExtraRows(n int) Option {
	return func(s *Server) {
		if n >= 0 {
			s.extraRows = n
		}
	}
}

type Server struct {
	cfg         config.ServerConfig
	orch        *orchestrator.Orchestrator
	persistence *storage.Persistence
	exporter    *export.Exporter
	platforms   *export.Platforms
	logger      *slog.Logger
	pages       *gotemplate.Engine
	mux         *http.ServeMux

	roles     []model.Role
	extraRows int
}

// New wires the routes. Missing dependencies get in-memory defaults.
func New(cfg config.ServerConfig, deps Deps, opts ...Option) (*Server, error) {
	s := &Server{
		cfg:         cfg,
		orch:        deps.Orchestrator,
		persistence: deps.Persistence,
		exporter:    deps.Exporter,
		platforms:   deps.Platforms,
		logger:      deps.Logger,
		extraRows:   1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.orch == nil {
		s.orch = orchestrator.New()
	}
	if s.persistence == nil {
		s.persistence = storage.NewPersistence(nil, storage.WithLogger(s.logger))
	}
	if s.platforms == nil {
		s.platforms = export.DefaultPlatforms(s.logger)
	}
	if s.exporter == nil {
		exporter, err := export.NewExporter()
		if err != nil {
			return nil, fmt.Errorf("server: exporter: %w", err)
		}
		s.exporter = exporter
	}

	pages, err := gotemplate.New(
		gotemplate.WithFS(pageTemplates),
		gotemplate.WithExtension(".tpl"),
	)
	if err != nil {
		return nil, fmt.Errorf("server: page templates: %w", err)
	}
	s.pages = pages

	s.routes()
	return s, nil
}

func (s *Server) routes() {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServerFS(formhtml.AssetsFS())))

	mux.HandleFunc("GET /api/templates", s.handleListTemplates)
	mux.HandleFunc("GET /api/templates/{id}", s.handleGetTemplate)
	mux.HandleFunc("GET /api/templates/{id}/schema", s.handleSchema)
	mux.HandleFunc("POST /api/templates/{id}/documents", s.handleDocuments)
	mux.HandleFunc("GET /api/templates/{id}/values", s.handleGetValues)
	mux.HandleFunc("PUT /api/templates/{id}/values", s.handlePutValues)
	mux.HandleFunc("DELETE /api/templates/{id}/values", s.handleDeleteValues)
	mux.HandleFunc("GET /api/platforms", s.handleListPlatforms)
	mux.HandleFunc("POST /api/templates/{id}/publish/{platform}", s.handlePublish)

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /templates/{id}", s.handleFormPage)
	mux.HandleFunc("POST /templates/{id}", s.handleFormSubmit)
	mux.HandleFunc("GET /templates/{id}/preview", s.handlePreviewPage)
	mux.HandleFunc("GET /templates/{id}/export.md", s.handleExportMarkdown)
	mux.HandleFunc("GET /templates/{id}/export.doc", s.handleExportDoc)

	s.mux = mux
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	return s.withRecover(s.withLogging(s.mux))
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve runs the server on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "addr", ln.Addr().String())
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		timeout := s.cfg.ShutdownTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		s.logger.Info("server stopped")
		return nil
	})
	return g.Wait()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
