package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"civiclink/internal/platform/health"
	platformMW "civiclink/internal/platform/middleware"
	"civiclink/internal/ratelimit"
)

// RouterConfig carries the knobs the router needs beyond its handlers.
type RouterConfig struct {
	AdminToken              string
	RateLimitPerMinute      int
	DraftRateLimitPerMinute int
	RequestTimeout          time.Duration
}

// NewRouter assembles the full middleware stack and route table.
func NewRouter(
	cfg RouterConfig,
	handlers *Handlers,
	limiter *ratelimit.Middleware,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}

	r := chi.NewRouter()
	r.Use(platformMW.Recovery(logger))
	r.Use(platformMW.RequestID)
	r.Use(platformMW.ClientIP)
	r.Use(platformMW.Logger(logger))
	r.Use(platformMW.Timeout(cfg.RequestTimeout))

	healthHandler.Register(r)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(limiter.Limit("api", cfg.RateLimitPerMinute, time.Minute))

		r.With(platformMW.ContentTypeJSON).
			Post("/officials/lookup", handlers.HandleOfficialsLookup)

		r.Get("/bills", handlers.HandleBillSearch)
		r.Get("/bills/detail", handlers.HandleBillDetail)
		r.Get("/topics/classify", handlers.HandleTopicClassify)

		r.With(platformMW.ContentTypeJSON).
			Post("/voting/eligibility", handlers.HandleVotingEligibility)

		// Drafting is the expensive path and gets its own tighter limit.
		r.Route("/drafts", func(r chi.Router) {
			r.Use(limiter.Limit("drafts", cfg.DraftRateLimitPerMinute, time.Minute))
			r.Use(platformMW.ContentTypeJSON)
			r.Post("/letter", handlers.HandleDraftLetter)
			r.Post("/phone-script", handlers.HandleDraftPhoneScript)
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Use(platformMW.RequireAdminToken(cfg.AdminToken, logger))
			r.Get("/summary", handlers.HandleAnalyticsSummary)
			r.Get("/timeseries", handlers.HandleAnalyticsTimeSeries)
			r.Post("/reset", handlers.HandleAnalyticsReset)
		})
	})

	return r
}
