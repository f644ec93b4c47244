// Package devserver serves the demo application during development: the
// index page, the compiled main.wasm with wasm_exec.js, and a small JSON
// API the ajax helper is exercised against.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the development HTTP server.
type Server struct {
	server  http.Server
	logger  *slog.Logger
	metrics *Metrics
	router  *chi.Mux
	config  *Config
	addr    string
}

// New creates a server. Routes are ready once New returns; Handler serves
// them without listening.
func New(logger *slog.Logger, opts ...Option) (*Server, error) {
	if logger == nil {
		return nil, errors.New("devserver: logger is required")
	}
	config := &Config{
		addr:            defaultAddr,
		timeoutDuration: defaultTimeout,
		shutdownTimeout: defaultShutdownTimeout,
		brotliLevel:     defaultBrotliLevel,
		corsOptions: &cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "UPDATE"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Requested-With"},
		},
	}
	for _, opt := range opts {
		opt(config)
	}
	if config.addr == "" {
		return nil, errors.New("devserver: address cannot be empty")
	}

	s := &Server{
		logger: logger,
		router: chi.NewRouter(),
		config: config,
		addr:   config.addr,
	}
	if config.enableMetrics {
		s.metrics = NewMetrics("valkyrja_devserver")
	}
	s.server = http.Server{
		Addr:              config.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 2 * time.Second,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Router returns the chi router for adding routes.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Metrics returns the request collectors, nil unless WithMetrics was given.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Addr returns the listening address, resolved once Start has run.
func (s *Server) Addr() string {
	return s.addr
}

func (s *Server) setupMiddleware() {
	mw := []func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Timeout(s.config.timeoutDuration),
		s.observe,
	}
	if s.config.enableBrotli {
		mw = append(mw, s.compress)
	}
	if s.config.corsOptions != nil {
		mw = append(mw, cors.Handler(*s.config.corsOptions))
	}
	s.router.Use(mw...)
}

func (s *Server) setupRoutes() {
	if s.metrics != nil {
		s.router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))
	}
	s.router.Route("/api", func(r chi.Router) {
		r.HandleFunc("/echo", s.echo)
		r.HandleFunc("/status/{code}", s.status)
	})
	if s.config.index != "" {
		s.router.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(s.config.index))
		})
	}
	if s.config.staticDir != "" {
		s.router.Handle("/*", http.FileServer(http.Dir(s.config.staticDir)))
	}
}

// Start begins listening for requests.
func (s *Server) Start() error {
	l, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("devserver: listen: %w", err)
	}
	s.addr = l.Addr().String()

	go func() {
		s.logger.Info("starting dev server", slog.String("addr", s.addr))
		if err := s.server.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server error", slog.Any("error", err))
		}
	}()
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.config.shutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.shutdownTimeout)
		defer cancel()
	}
	return s.server.Shutdown(ctx)
}
