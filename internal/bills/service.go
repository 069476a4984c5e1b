package bills

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	dErrors "civiclink/pkg/domain-errors"
)

// Service combines the federal provider with the configured state
// provider behind a single search and detail surface. Identical
// concurrent searches are coalesced so a burst of the same query costs
// one upstream round trip per provider.
type Service struct {
	federal Provider
	state   Provider
	group   singleflight.Group
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics *Metrics
}

// NewService wires the bill providers. Either provider may be nil when
// unconfigured; search then degrades to a notice instead of failing.
func NewService(federal, state Provider, logger *slog.Logger, metrics *Metrics) *Service {
	return &Service{
		federal: federal,
		state:   state,
		tracer:  otel.Tracer("civiclink/bills"),
		logger:  logger,
		metrics: metrics,
	}
}

// CombinedResult is the merged output of a search across providers.
type CombinedResult struct {
	Query   string           `json:"query"`
	Bills   []NormalizedBill `json:"bills"`
	Notices []string         `json:"notices,omitempty"`
}

// Search runs the query against both providers, federal results first.
// Provider-level degradation surfaces as notices on an otherwise
// successful response; rate limits and timeouts remain errors.
func (s *Service) Search(ctx context.Context, query string, filters SearchFilters) (*CombinedResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "query must not be blank")
	}
	if len(query) > 200 {
		return nil, dErrors.New(dErrors.CodeValidation, "query must be at most 200 characters")
	}

	ctx, span := s.tracer.Start(ctx, "bills.Search",
		trace.WithAttributes(
			attribute.String("bills.query", query),
			attribute.String("bills.state", filters.State),
			attribute.Int("bills.page", filters.page()),
		))
	defer span.End()

	key := "search|" + cacheKey(query, filters.State, filters.page(), filters.pageSize())
	value, err, _ := s.group.Do(key, func() (any, error) {
		return s.searchOnce(ctx, query, filters)
	})
	if err != nil {
		return nil, err
	}
	return value.(*CombinedResult), nil
}

func (s *Service) searchOnce(ctx context.Context, query string, filters SearchFilters) (*CombinedResult, error) {
	combined := &CombinedResult{Query: query, Bills: []NormalizedBill{}}

	for _, p := range []Provider{s.federal, s.state} {
		if p == nil {
			continue
		}
		result, err := p.Search(ctx, query, filters)
		if err != nil {
			if s.metrics != nil {
				s.metrics.SearchFailures.WithLabelValues(p.Name()).Inc()
			}
			return nil, err
		}
		if s.metrics != nil {
			s.metrics.Searches.WithLabelValues(p.Name()).Inc()
		}
		combined.Bills = append(combined.Bills, result.Bills...)
		if result.Notice != "" {
			combined.Notices = append(combined.Notices, result.Notice)
		}
	}

	s.logger.InfoContext(ctx, "bill_search_completed",
		slog.String("query", query),
		slog.Int("results", len(combined.Bills)),
		slog.Int("notices", len(combined.Notices)))
	return combined, nil
}

// GetDetail routes a detail lookup to the provider that minted the id.
// OpenStates ids carry an ocd-bill prefix, LegiScan ids are bare
// numbers, and Congress.gov ids are {congress}/{type}/{number} paths.
func (s *Service) GetDetail(ctx context.Context, id string) (*NormalizedBill, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "bill id must not be blank")
	}

	ctx, span := s.tracer.Start(ctx, "bills.GetDetail",
		trace.WithAttributes(attribute.String("bills.id", id)))
	defer span.End()

	provider, err := s.routeDetail(id)
	if err != nil {
		return nil, err
	}

	bill, err := provider.GetByID(ctx, id)
	if err != nil {
		if s.metrics != nil {
			s.metrics.SearchFailures.WithLabelValues(provider.Name()).Inc()
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "bill_detail_fetched",
		slog.String("provider", provider.Name()),
		slog.String("bill_id", bill.ID))
	return bill, nil
}

func (s *Service) routeDetail(id string) (Provider, error) {
	var provider Provider
	switch {
	case strings.HasPrefix(id, "ocd-bill/"):
		provider = s.state
	case isNumeric(id):
		provider = s.state
	case strings.Contains(id, "/"):
		provider = s.federal
	default:
		return nil, dErrors.New(dErrors.CodeBadRequest, "unrecognized bill id format")
	}
	if provider == nil {
		return nil, dErrors.New(dErrors.CodeUpstreamUnavailable, "bill lookup is not configured")
	}
	return provider, nil
}

func isNumeric(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}
