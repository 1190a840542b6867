package server

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vdomkit/internal/config"
	httpmw "github.com/vango-dev/vdomkit/pkg/middleware"
	"github.com/vango-dev/vdomkit/pkg/modules/metrics"
	"github.com/vango-dev/vdomkit/pkg/modules/tracing"
	"github.com/vango-dev/vdomkit/pkg/store"
)

// Server is the HTTP/WebSocket server of live sessions.
type Server struct {
	// Session management
	sessions *SessionManager

	// Snapshot persistence
	store store.Store

	// Configuration
	config *config.Config

	// HTTP routes
	router chi.Router

	// Prometheus registry served on the metrics path
	registry *prometheus.Registry

	// Tracer provider for request spans, nil for the global one
	tracerProvider trace.TracerProvider

	// WebSocket upgrader
	upgrader websocket.Upgrader

	// HTTP server
	httpServer *http.Server

	// Logger
	logger *slog.Logger
}

type options struct {
	logger         *slog.Logger
	registry       *prometheus.Registry
	tracerProvider trace.TracerProvider
	checkOrigin    func(*http.Request) bool
}

// Option configures a Server.
type Option func(*options)

// WithLogger sets the server logger.
// Default: slog.Default() with component=server.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRegistry sets the registry metrics are registered on and served from.
// Default: a new registry per server.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(o *options) {
		o.registry = registry
	}
}

// WithTracerProvider sets the provider patch spans are created from.
// Default: the global OpenTelemetry provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		o.tracerProvider = tp
	}
}

// WithCheckOrigin sets the websocket origin check.
// Default: the request's Origin header, if any, must match its Host.
func WithCheckOrigin(fn func(*http.Request) bool) Option {
	return func(o *options) {
		o.checkOrigin = fn
	}
}

// New creates a Server for cfg persisting snapshots in st. A nil cfg means
// config.New().
func New(cfg *config.Config, st store.Store, opts ...Option) *Server {
	if cfg == nil {
		cfg = config.New()
	}
	o := options{
		logger:   slog.Default().With("component", "server"),
		registry: prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	deps := sessionDeps{logger: o.logger}
	var active prometheus.Gauge
	if cfg.Metrics.Enabled {
		deps.collector = metrics.NewCollector(
			metrics.WithNamespace(cfg.Metrics.Namespace),
			metrics.WithRegistry(o.registry),
		)
		active = promauto.With(o.registry).NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Metrics.Namespace,
			Subsystem: "server",
			Name:      "sessions_active",
			Help:      "Number of live sessions",
		})
	}
	if cfg.Tracing.Enabled {
		deps.tracing = []tracing.Option{tracing.WithTracerName(cfg.Tracing.TracerName)}
		if o.tracerProvider != nil {
			deps.tracing = append(deps.tracing, tracing.WithTracerProvider(o.tracerProvider))
		}
	}

	s := &Server{
		sessions:       newSessionManager(st, deps, active),
		store:          st,
		config:         cfg,
		registry:       o.registry,
		tracerProvider: o.tracerProvider,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     o.checkOrigin,
		},
		logger: o.logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if s.config.Metrics.Enabled {
		r.Use(httpmw.Prometheus(
			httpmw.WithNamespace(s.config.Metrics.Namespace),
			httpmw.WithRegistry(s.registry),
		))
	}
	if s.config.Tracing.Enabled {
		opts := []httpmw.OTelOption{httpmw.WithTracerName(s.config.Tracing.TracerName)}
		if s.tracerProvider != nil {
			opts = append(opts, httpmw.WithTracerProvider(s.tracerProvider))
		}
		r.Use(httpmw.OpenTelemetry(opts...))
	}
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	if s.config.Metrics.Enabled {
		r.Method(http.MethodGet, s.config.Metrics.Path,
			promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry}))
	}

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Delete("/", s.handleDelete)
			r.Post("/patch", s.handlePatch)
			r.Get("/ws", s.handleWebSocket)
		})
	})
	return r
}

// Handler returns the server's routes for mounting in another router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run starts the server and blocks until shutdown.
func (s *Server) Run() error {
	if err := s.config.Validate(); err != nil {
		return err
	}

	s.httpServer = &http.Server{
		Addr:              s.config.Server.Addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       s.config.Server.ReadTimeout,
	}

	// Set up graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.config.Server.Addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return err
		}
		return nil

	case <-shutdown:
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server and closes every live session.
func (s *Server) Shutdown(ctx context.Context) error {
	if timeout := s.config.Server.ShutdownTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	s.sessions.Shutdown()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// Sessions returns the session manager.
func (s *Server) Sessions() *SessionManager {
	return s.sessions
}

// Config returns the server configuration.
func (s *Server) Config() *config.Config {
	return s.config
}

// Registry returns the Prometheus registry of the server.
func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

// Logger returns the server logger.
func (s *Server) Logger() *slog.Logger {
	return s.logger
}
