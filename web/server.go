// Package web serves the launch dashboard page, its chart API and rendered chart images.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"spacex-dashboard/render"
	"spacex-dashboard/services"
	"spacex-dashboard/utils"
)

//go:embed templates/*.html static/*.css static/*.js
var content embed.FS

const shutdownTimeout = 10 * time.Second

// ServerConfig wires the dashboard server.
type ServerConfig struct {
	Addr   string
	Charts *services.ChartService
	Logger *utils.Logger

	// Render sizes the chart images; zero values use the renderer defaults.
	Render render.Options
}

// Server is the dashboard HTTP server.
type Server struct {
	addr      string
	charts    *services.ChartService
	logger    *utils.Logger
	metrics   *Metrics
	layout    Layout
	templates *template.Template
	render    render.Options
	router    chi.Router
}

// NewServer parses the page templates and builds the router.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Charts == nil {
		return nil, errors.New("web: chart service is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = utils.NewLogger()
	}

	tmpl, err := template.ParseFS(content, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("web: parse templates: %w", err)
	}

	s := &Server{
		addr:      cfg.Addr,
		charts:    cfg.Charts,
		logger:    cfg.Logger,
		metrics:   NewMetrics(cfg.Charts),
		layout:    BuildLayout(cfg.Charts.Dataset()),
		templates: tmpl,
		render:    cfg.Render,
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(accessLog(s.logger, s.metrics))
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/pie", s.handlePie)
		r.Get("/scatter", s.handleScatter)
		r.Get("/scatter.csv", s.handleScatterCSV)
		r.Get("/summary", s.handleSummary)
	})

	r.Get("/charts/pie.{format}", s.handlePieImage)
	r.Get("/charts/scatter.{format}", s.handleScatterImage)

	staticFS, _ := fs.Sub(content, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	return r
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Metrics exposes the server's collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("[web] Dashboard listening on http://%s", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("web: listen on %s: %w", s.addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("[web] Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web: shutdown: %w", err)
	}
	return nil
}
