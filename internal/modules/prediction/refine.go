package prediction

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/yungbote/garage-backend/internal/observability"
	"github.com/yungbote/garage-backend/internal/platform/llm"
	"github.com/yungbote/garage-backend/internal/platform/logger"
)

const DefaultAITimeout = 20 * time.Second

// Refiner makes exactly one provider call per Refine; there is no retry.
type Refiner struct {
	client  llm.Client
	timeout time.Duration
	log     *logger.Logger
}

func NewRefiner(client llm.Client, timeout time.Duration, log *logger.Logger) *Refiner {
	if timeout <= 0 {
		timeout = DefaultAITimeout
	}
	return &Refiner{client: client, timeout: timeout, log: log.With("service", "Refiner")}
}

// Refine returns *ProviderError when the call fails and *ParseError when the reply is unusable.
func (r *Refiner) Refine(ctx context.Context, in RefineInput) ([]Suggestion, error) {
	req, err := buildPrompt(in)
	if err != nil {
		return nil, err
	}

	ctx, span := observability.Tracer("garage-backend/prediction").Start(ctx, "prediction.refine")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.provider", r.client.Provider()),
		attribute.String("vehicle.id", in.Vehicle.ID.String()),
	)

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	text, err := r.client.Complete(callCtx, req)
	if err != nil {
		perr := toProviderError(err)
		status := "error"
		if perr.StatusCode > 0 {
			status = strconv.Itoa(perr.StatusCode)
		} else if errors.Is(err, context.DeadlineExceeded) {
			status = "timeout"
		}
		observability.ObserveLLMRequest(r.client.Provider(), status, time.Since(start))
		span.RecordError(perr)
		span.SetStatus(codes.Error, status)
		return nil, perr
	}
	observability.ObserveLLMRequest(r.client.Provider(), "200", time.Since(start))

	suggestions, err := ParseSuggestions(text)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "parse")
		return nil, err
	}
	span.SetAttributes(attribute.Int("suggestions", len(suggestions)))
	return capSuggestions(suggestions), nil
}

func toProviderError(err error) *ProviderError {
	var he *llm.HTTPError
	if errors.As(err, &he) {
		return &ProviderError{StatusCode: he.StatusCode, Err: err}
	}
	return &ProviderError{Err: err}
}
