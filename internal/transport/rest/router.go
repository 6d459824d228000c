package rest

import (
	"log/slog"
	"net/http"

	"github.com/qiwenzhou/mytime-backend/internal/config"
	"github.com/qiwenzhou/mytime-backend/internal/transport/middleware"
)

// RouterDeps bundles everything the HTTP router needs.
type RouterDeps struct {
	Health    *HealthHandler
	Analytics *AnalyticsHandler
	Validator middleware.TokenValidator
	CORS      config.CORSConfig
	Logger    *slog.Logger

	// Limiter is optional; when set together with a positive
	// RateLimitPerMinute, API routes are rate-limited per client IP.
	Limiter            *middleware.RateLimiter
	RateLimitPerMinute int
}

// NewRouter assembles the HTTP handler tree. Health probes are served
// unauthenticated; the API routes require a valid Bearer token.
func NewRouter(deps RouterDeps) http.Handler {
	apiMiddlewares := []middleware.Middleware{
		middleware.Auth(deps.Validator),
	}
	if deps.Limiter != nil && deps.RateLimitPerMinute > 0 {
		apiMiddlewares = append(apiMiddlewares, deps.Limiter.Limit(deps.RateLimitPerMinute))
	}
	api := middleware.Chain(apiMiddlewares...)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", deps.Health.Live)
	mux.HandleFunc("GET /ready", deps.Health.Ready)
	mux.HandleFunc("GET /health", deps.Health.Health)

	mux.Handle("GET /api/v1/analytics/goals", api(http.HandlerFunc(deps.Analytics.AnalyzeGoals)))
	mux.Handle("GET /api/v1/analytics/trend", api(http.HandlerFunc(deps.Analytics.Trend)))
	mux.Handle("GET /api/v1/analytics/suggestions", api(http.HandlerFunc(deps.Analytics.Suggestions)))

	return middleware.Chain(
		middleware.Recovery(deps.Logger),
		middleware.RequestID,
		middleware.Logger(deps.Logger),
		middleware.CORS(deps.CORS),
	)(mux)
}
