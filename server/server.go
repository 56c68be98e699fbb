// Package server exposes the advisory pipeline over HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/krishisetu/krishisetu/advisor"
	"github.com/krishisetu/krishisetu/analysis"
	"github.com/krishisetu/krishisetu/config"
	"github.com/krishisetu/krishisetu/crew"
	"github.com/krishisetu/krishisetu/middleware"
	"github.com/krishisetu/krishisetu/pkg/logging"
	"github.com/krishisetu/krishisetu/querylog"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Deps carries the collaborators the server routes requests to.
type Deps struct {
	Crew     *crew.Crew
	Weather  advisor.Advisor
	Crop     advisor.Advisor
	Finance  advisor.Advisor
	Analysis *analysis.Service
	Store    querylog.Store
}

// Server is the HTTP front of the advisory service.
type Server struct {
	deps    Deps
	chain   *middleware.Chain
	logger  *slog.Logger
	http    *http.Server
	timeout time.Duration
}

// New creates the server with its routes registered.
func New(cfg config.Server, deps Deps) *Server {
	timeout := time.Duration(cfg.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	s := &Server{
		deps:    deps,
		timeout: timeout,
		chain: middleware.NewChain(
			middleware.NewValidator(),
			middleware.NewLogger(),
			middleware.NewRecorder(deps.Store),
		),
		logger: logging.WithComponent("server"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleHealth)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/v1/query", s.handleQuery)
	mux.HandleFunc("/api/v1/query/weather", s.advisorHandler(deps.Weather))
	mux.HandleFunc("/api/v1/query/crop", s.advisorHandler(deps.Crop))
	mux.HandleFunc("/api/v1/query/finance", s.advisorHandler(deps.Finance))
	mux.HandleFunc("/api/v1/analyze", s.handleAnalyze)
	mux.HandleFunc("/api/v1/report", s.handleReport)
	mux.HandleFunc("/api/v1/queries", s.handleRecentQueries)
	mux.HandleFunc("/api/v1/agents", s.handleAgents)
	mux.HandleFunc("/api/v1/supported-languages", s.handleLanguages)
	mux.HandleFunc("/api/v1/crops", s.handleCrops)
	mux.HandleFunc("/api/v1/soil-types", s.handleSoilTypes)
	mux.HandleFunc("/api/v1/examples", s.handleExamples)

	s.http = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.withTimeout(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: timeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// withTimeout bounds every request with the configured timeout so a slow
// pipeline is cancelled instead of holding the connection open.
func (s *Server) withTimeout(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
		defer cancel()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Handler returns the underlying HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Start serves until the listener fails or Stop is called.
func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// Stop drains in-flight requests and shuts the listener down.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	return s.http.Shutdown(ctx)
}
