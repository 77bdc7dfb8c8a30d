// Package api provides the HTTP server for the analysis and catalog API.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/adavadkardhruv13/Polaris-backend/infrastructure/api/middleware"
	"github.com/adavadkardhruv13/Polaris-backend/internal/log"
)

// Server wraps an HTTP server with routing and lifecycle management.
type Server struct {
	router chi.Router
	server *http.Server
	addr   string
	logger *log.Logger
}

// NewServer creates a Server listening on addr with the base middleware
// stack applied.
func NewServer(addr string, logger *log.Logger) *Server {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.Logging(logger))
	router.Use(chimiddleware.Recoverer)

	return &Server{
		router: router,
		addr:   addr,
		logger: logger,
	}
}

// Router returns the chi router for route registration.
func (s *Server) Router() chi.Router {
	return s.router
}

// Start begins listening for HTTP requests. It blocks until the server
// stops. The write timeout leaves headroom for the model call on the
// analysis endpoints.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.logger.Info("starting HTTP server", "addr", s.addr)

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server error: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	s.logger.Info("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	return nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.addr
}
