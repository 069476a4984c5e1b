package officials

import (
	"context"
	"log/slog"

	"civiclink/pkg/validation"
)

// lookupRequest exists for validation only; the address is never persisted.
type lookupRequest struct {
	Address string `validate:"required,notblank,max=200"`
}

// Service exposes representative lookup to transport handlers.
type Service struct {
	client  *Client
	logger  *slog.Logger
	metrics *Metrics
}

// NewService wires the lookup client.
func NewService(client *Client, logger *slog.Logger, metrics *Metrics) *Service {
	return &Service{
		client:  client,
		logger:  logger.With(slog.String("service", "officials")),
		metrics: metrics,
	}
}

// Lookup validates the address and returns normalized officials.
func (s *Service) Lookup(ctx context.Context, address string) (*LookupResult, error) {
	if err := validation.Validate(lookupRequest{Address: address}); err != nil {
		return nil, err
	}

	result, err := s.client.Lookup(ctx, address)
	if err != nil {
		if s.metrics != nil {
			s.metrics.LookupFailures.Inc()
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.Lookups.Inc()
		s.metrics.OfficialsReturned.Observe(float64(len(result.Officials)))
	}
	s.logger.InfoContext(ctx, "officials lookup",
		"officials", len(result.Officials),
	)
	return result, nil
}
