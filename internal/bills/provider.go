package bills

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"civiclink/internal/ratelimit"
	dErrors "civiclink/pkg/domain-errors"
)

const requestTimeout = 10 * time.Second

// Provider is the single interface all bill sources implement. The state
// providers are interchangeable; configuration selects exactly one.
type Provider interface {
	Name() string

	// Search returns bills matching a free-text query. A provider without
	// an API key degrades to an empty result whose Notice explains why;
	// only rate limiting and timeouts surface as errors.
	Search(ctx context.Context, query string, filters SearchFilters) (*SearchResult, error)

	// GetByID fetches full detail for a provider-scoped bill id.
	GetByID(ctx context.Context, id string) (*NormalizedBill, error)
}

// providerGate bundles the shared pre-flight policy every client runs
// before touching the network: key presence, client-local rate limiting,
// and the search cache.
type providerGate struct {
	name    string
	apiKey  string
	limiter ratelimit.Store
	limit   int
	window  time.Duration
	cache   *searchCache
	metrics *Metrics
}

func newProviderGate(name, apiKey string, limit int, window time.Duration, metrics *Metrics) *providerGate {
	return &providerGate{
		name:    name,
		apiKey:  apiKey,
		limiter: ratelimit.NewMemoryStore(),
		limit:   limit,
		window:  window,
		cache:   newSearchCache(),
		metrics: metrics,
	}
}

func (g *providerGate) configured() bool {
	return g.apiKey != ""
}

// unavailableResult is the degraded search outcome for an unconfigured
// provider. Callers must treat it as "feature unavailable", not a failure.
func (g *providerGate) unavailableResult() *SearchResult {
	return &SearchResult{
		Bills:  []NormalizedBill{},
		Notice: fmt.Sprintf("%s bill search is not configured", g.name),
	}
}

// allow consumes one rate limit token for an outbound call.
func (g *providerGate) allow(ctx context.Context) error {
	result, err := g.limiter.Allow(ctx, "provider:"+g.name, g.limit, g.window)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "provider rate limit check failed")
	}
	if !result.Allowed {
		if g.metrics != nil {
			g.metrics.ProviderThrottled.WithLabelValues(g.name).Inc()
		}
		return dErrors.New(dErrors.CodeRateLimited,
			fmt.Sprintf("%s request limit reached, retry in %ds", g.name, result.RetryAfter))
	}
	return nil
}

func (g *providerGate) cachedSearch(key string) (*SearchResult, bool) {
	result, ok := g.cache.get(key)
	if ok && g.metrics != nil {
		g.metrics.CacheHits.WithLabelValues(g.name).Inc()
	}
	if !ok && g.metrics != nil {
		g.metrics.CacheMisses.WithLabelValues(g.name).Inc()
	}
	return result, ok
}

// translateTransportErr maps low-level HTTP client failures into the
// domain taxonomy so nothing provider-specific leaks upward.
func translateTransportErr(err error, provider string) error {
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return dErrors.Wrap(err, dErrors.CodeUpstreamTimeout,
			fmt.Sprintf("%s took too long to respond, please try again", provider))
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return dErrors.Wrap(err, dErrors.CodeUpstreamTimeout,
			fmt.Sprintf("%s took too long to respond, please try again", provider))
	}
	return dErrors.Wrap(err, dErrors.CodeUpstreamUnavailable,
		fmt.Sprintf("%s request failed", provider))
}

func newProviderHTTPClient() *http.Client {
	return &http.Client{Timeout: requestTimeout}
}
