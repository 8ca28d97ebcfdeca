package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/hongminglow/ideax-be/internal/config"
	"github.com/hongminglow/ideax-be/internal/http/handlers"
	"github.com/hongminglow/ideax-be/internal/metrics"
	"github.com/hongminglow/ideax-be/internal/middleware"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// Deps are the collaborators the routes are built from.
type Deps struct {
	Registrar handlers.Registrar
	DB        handlers.Pinger
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, deps Deps) *Server {
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           Routes(cfg, deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Routes builds the root handler.
func Routes(cfg config.Config, deps Deps) http.Handler {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	mux := http.NewServeMux()
	handlers.NewHealthHandler(time.Now(), deps.DB).Register(mux)
	handlers.NewSignUpHandler(deps.Registrar, deps.Logger).Register(mux)
	if deps.Metrics != nil {
		mux.Handle("/metrics", deps.Metrics.Handler())
	}

	return middleware.CORS(cfg.CORSOrigins)(middleware.Logging(deps.Logger)(mux))
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
