package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/adavadkardhruv13/Polaris-backend/application/service"
	apimiddleware "github.com/adavadkardhruv13/Polaris-backend/infrastructure/api/middleware"
	v1 "github.com/adavadkardhruv13/Polaris-backend/infrastructure/api/v1"
	"github.com/adavadkardhruv13/Polaris-backend/internal/config"
	"github.com/adavadkardhruv13/Polaris-backend/internal/database"
	"github.com/adavadkardhruv13/Polaris-backend/internal/log"
	"github.com/adavadkardhruv13/Polaris-backend/internal/metrics"
)

// healthCheckTimeout bounds the database ping on the health path.
const healthCheckTimeout = 2 * time.Second

// APIServer wires the application services into HTTP routes.
type APIServer struct {
	analyzer  *service.Analyzer
	investors *service.Investors
	db        database.Database
	cfg       config.AppConfig
	metrics   *metrics.Metrics
	logger    *log.Logger
	version   string
	server    *Server
}

// NewAPIServer creates an APIServer over the given services.
func NewAPIServer(
	analyzer *service.Analyzer,
	investors *service.Investors,
	db database.Database,
	cfg config.AppConfig,
	m *metrics.Metrics,
	logger *log.Logger,
	version string,
) *APIServer {
	return &APIServer{
		analyzer:  analyzer,
		investors: investors,
		db:        db,
		cfg:       cfg,
		metrics:   m,
		logger:    logger,
		version:   version,
	}
}

// MountRoutes wires all routes and cross-cutting middleware onto the router.
func (a *APIServer) MountRoutes(router chi.Router) {
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   a.cfg.CORSOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(apimiddleware.Metrics(a.metrics))

	router.Get("/", a.Root)
	router.Get("/health", a.Health)
	router.Method(http.MethodGet, "/metrics", a.metrics.Handler())

	analysisRouter := v1.NewAnalysisRouter(a.analyzer, a.logger, a.cfg.MaxFileSize())
	router.Group(func(r chi.Router) {
		// Rejections share the JSON error shape of every other endpoint.
		r.Use(httprate.Limit(a.cfg.RateLimitPerMinute(), time.Minute,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
				apimiddleware.WriteJSON(w, http.StatusTooManyRequests, apimiddleware.ErrorResponse{
					Detail: "Rate limit exceeded. Please try again later.",
				})
			}),
		))
		r.Post("/analyze_pitch", analysisRouter.AnalyzePitch)
		r.Post("/analyze_pdf", analysisRouter.AnalyzePDF)
	})

	investorsRouter := v1.NewInvestorsRouter(a.investors, a.logger)
	router.Mount("/investors", investorsRouter.Routes())
}

// Root handles GET /.
func (a *APIServer) Root(w http.ResponseWriter, _ *http.Request) {
	apimiddleware.WriteJSON(w, http.StatusOK, map[string]string{
		"service": "polaris",
		"version": a.version,
		"docs":    "/health",
	})
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Services  map[string]string `json:"services"`
}

// Health handles GET /health. The database is pinged with a short timeout;
// the AI provider is checked for configuration only, no live model call.
func (a *APIServer) Health(w http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), healthCheckTimeout)
	defer cancel()

	status := "healthy"
	services := map[string]string{
		"database":    "connected",
		"ai_provider": "configured",
	}

	if err := a.db.Ping(ctx); err != nil {
		a.logger.WarnContext(ctx, "health check database ping failed", "error", err)
		services["database"] = "disconnected"
		status = "degraded"
	}

	if !a.cfg.OpenAI().IsConfigured() {
		services["ai_provider"] = "not_configured"
		status = "degraded"
	}

	apimiddleware.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Version:   a.version,
		Services:  services,
	})
}

// ListenAndServe starts the HTTP server on the given address and blocks.
func (a *APIServer) ListenAndServe(addr string) error {
	server := NewServer(addr, a.logger)
	a.server = server

	a.MountRoutes(server.Router())

	return server.Start()
}

// Shutdown gracefully stops the server.
func (a *APIServer) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}
