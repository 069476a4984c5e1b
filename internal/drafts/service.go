package drafts

import (
	"context"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"civiclink/pkg/validation"
)

// Kind distinguishes the two draft artifacts.
type Kind string

const (
	KindLetter      Kind = "letter"
	KindPhoneScript Kind = "phone_script"
)

// Service validates draft input, builds prompts, calls the generator,
// and post-processes the completion.
type Service struct {
	generator Generator
	logger    *slog.Logger
	tracer    trace.Tracer
	metrics   *Metrics
}

// NewService wires the draft pipeline.
func NewService(generator Generator, logger *slog.Logger, metrics *Metrics) *Service {
	return &Service{
		generator: generator,
		logger:    logger,
		tracer:    otel.Tracer("civiclink/drafts"),
		metrics:   metrics,
	}
}

// DraftLetter produces a constituent letter.
func (s *Service) DraftLetter(ctx context.Context, input DraftInput, recipient *Recipient) (string, error) {
	return s.draft(ctx, KindLetter, LetterSystemPrompt(), input, recipient)
}

// DraftPhoneScript produces a call script. The [YOUR_NAME] placeholder
// is intentionally left for the caller to fill in.
func (s *Service) DraftPhoneScript(ctx context.Context, input DraftInput, recipient *Recipient) (string, error) {
	return s.draft(ctx, KindPhoneScript, PhoneScriptSystemPrompt(), input, recipient)
}

func (s *Service) draft(ctx context.Context, kind Kind, systemPrompt string, input DraftInput, recipient *Recipient) (string, error) {
	if err := validation.Validate(input); err != nil {
		return "", err
	}
	if recipient != nil {
		if err := validation.Validate(*recipient); err != nil {
			return "", err
		}
	}
	input.normalize()

	ctx, span := s.tracer.Start(ctx, "drafts.Generate",
		trace.WithAttributes(
			attribute.String("draft.kind", string(kind)),
			attribute.String("draft.stance", input.Stance),
			attribute.Bool("draft.has_bill", input.BillNumber != "" || input.BillSummary != ""),
		))
	defer span.End()

	completion, err := s.generator.Generate(ctx, systemPrompt, UserPrompt(input, recipient))
	if err != nil {
		if s.metrics != nil {
			s.metrics.Failures.WithLabelValues(string(kind)).Inc()
		}
		return "", err
	}

	draft := postProcess(completion, input)
	if s.metrics != nil {
		s.metrics.Generated.WithLabelValues(string(kind)).Inc()
		s.metrics.DraftLength.WithLabelValues(string(kind)).Observe(float64(len(draft)))
	}

	s.logger.InfoContext(ctx, "draft_generated",
		slog.String("kind", string(kind)),
		slog.String("stance", input.Stance),
		slog.Int("length", len(draft)))
	return draft, nil
}

// postProcess substitutes the bill-number placeholder when a number was
// supplied. Without one the placeholder stays in the output so the user
// sees exactly where a number is expected, rather than silently losing
// the reference.
func postProcess(completion string, input DraftInput) string {
	if input.BillNumber == "" {
		return completion
	}
	return strings.ReplaceAll(completion, billNumberPlaceholder, input.BillNumber)
}
