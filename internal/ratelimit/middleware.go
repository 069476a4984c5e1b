package ratelimit

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	platformMW "civiclink/internal/platform/middleware"
	"civiclink/internal/platform/privacy"
	httpjson "civiclink/internal/transport/http/json"
	dErrors "civiclink/pkg/domain-errors"
)

// Middleware enforces per-client limits on inbound requests.
type Middleware struct {
	store   Store
	logger  *slog.Logger
	metrics *Metrics
}

// NewMiddleware builds rate limiting middleware over the given store.
func NewMiddleware(store Store, logger *slog.Logger, metrics *Metrics) *Middleware {
	return &Middleware{store: store, logger: logger, metrics: metrics}
}

// Limit returns middleware admitting at most max requests per client IP per
// window under the given scope. Store errors fail open: availability beats
// strict enforcement for a public informational API.
func (m *Middleware) Limit(scope string, max int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ip := platformMW.GetClientIP(ctx)
			if ip == "" {
				ip = r.RemoteAddr
			}

			if m.metrics != nil {
				m.metrics.Checks.WithLabelValues(scope).Inc()
			}

			result, err := m.store.Allow(ctx, scope+":"+ip, max, window)
			if err != nil {
				m.logger.Error("rate limit check failed",
					"error", err,
					"scope", scope,
					"ip_prefix", privacy.AnonymizeIP(ip),
				)
				next.ServeHTTP(w, r)
				return
			}

			addRateLimitHeaders(w, result)

			if !result.Allowed {
				if m.metrics != nil {
					m.metrics.Rejections.WithLabelValues(scope).Inc()
				}
				m.logger.InfoContext(ctx, "rate limit exceeded",
					"scope", scope,
					"ip_prefix", privacy.AnonymizeIP(ip),
					"limit", result.Limit,
					"request_id", platformMW.GetRequestID(ctx),
				)
				httpjson.WriteError(w, dErrors.New(dErrors.CodeRateLimited, "rate limit exceeded, retry later"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func addRateLimitHeaders(w http.ResponseWriter, result *Result) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
	if !result.Allowed {
		w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
	}
}
