// Package api serves the sidebar preview API over HTTP.
package api

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/timsexperiments/sitenav"
	apimiddleware "github.com/timsexperiments/sitenav/infrastructure/api/middleware"
	v1 "github.com/timsexperiments/sitenav/infrastructure/api/v1"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Site    string `json:"site"`
	Version string `json:"version"`
}

// APIServer provides the preview API backed by a sitenav Client.
type APIServer struct {
	client      *sitenav.Client
	corsOrigins []string
	version     string
	metrics     *Metrics
	server      *Server
	handler     http.Handler
	logger      *slog.Logger
	mu          sync.Mutex
	closed      bool
}

// Option configures an APIServer.
type Option func(*APIServer)

// WithCORSOrigins sets the origins allowed to call the API from a browser.
// Defaults to any origin.
func WithCORSOrigins(origins ...string) Option {
	return func(a *APIServer) {
		a.corsOrigins = origins
	}
}

// WithVersion sets the version reported by /health and /metrics.
func WithVersion(version string) Option {
	return func(a *APIServer) {
		a.version = version
	}
}

// NewAPIServer creates an APIServer wired to client.
func NewAPIServer(client *sitenav.Client, opts ...Option) *APIServer {
	a := &APIServer{
		client:      client,
		corsOrigins: []string{"*"},
		version:     "dev",
		logger:      client.Logger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.metrics = NewMetrics(a.version, runtime.Version())
	return a
}

// Metrics returns the server's collectors.
func (a *APIServer) Metrics() *Metrics {
	return a.metrics
}

// Handler returns the fully routed handler, building it on first use.
func (a *APIServer) Handler() http.Handler {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.handler == nil {
		router := newRouter()
		a.mountRoutes(router)
		a.handler = router
	}
	return a.handler
}

func (a *APIServer) mountRoutes(router chi.Router) {
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: a.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", apimiddleware.CorrelationHeader},
		ExposedHeaders: []string{apimiddleware.CorrelationHeader},
		MaxAge:         300,
	}))
	router.Use(apimiddleware.CorrelationID)
	router.Use(apimiddleware.Logging(a.logger))
	router.Use(a.metrics.Instrument)

	router.Get("/health", a.health)
	router.Method(http.MethodGet, "/metrics", a.metrics.Handler())

	navRouter := v1.NewNavigationRouter(a.client, a.metrics)
	router.Route("/api/v1", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(30 * time.Second))
		r.Mount("/", navRouter.Routes())
	})
}

func (a *APIServer) health(w http.ResponseWriter, _ *http.Request) {
	apimiddleware.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Site:    a.client.Site().Title(),
		Version: a.version,
	})
}

// ListenAndServe serves the API on addr until Shutdown.
func (a *APIServer) ListenAndServe(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return a.Serve(ln)
}

// Serve serves the API on ln until Shutdown.
func (a *APIServer) Serve(ln net.Listener) error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		_ = ln.Close()
		return nil
	}
	a.server = NewServer(ln.Addr().String(), a.logger)
	if a.handler == nil {
		a.mountRoutes(a.server.Router())
		a.handler = a.server.Router()
	} else {
		a.server.Router().Mount("/", a.handler)
	}
	srv := a.server
	a.mu.Unlock()

	return srv.Serve(ln)
}

// Shutdown gracefully shuts down the server. A server shut down before it
// starts never serves.
func (a *APIServer) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	a.closed = true
	srv := a.server
	a.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
