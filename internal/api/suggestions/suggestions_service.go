package suggestions

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-trip-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-planner/internal/api"
	generativeAI "github.com/FACorreiaa/go-trip-planner/internal/api/generative_ai"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

const (
	dateLayout  = "2006-01-02"
	temperature = 0.7
	maxTokens   = 1000
	operation   = "suggest_locations"

	secondsPerDay = 24 * 60 * 60
)

var _ Service = (*ServiceImpl)(nil)

// Service suggests destinations that fit a set of trip preferences.
type Service interface {
	SuggestLocations(ctx context.Context, prefs types.TripPreferences) (*types.SuggestionResponse, error)
}

type ServiceImpl struct {
	generator generativeAI.ContentGenerator
	metrics   *metrics.AppMetrics
	logger    *slog.Logger
}

// NewServiceImpl accepts a nil generator; every call then fails with
// api.ErrLLMUnavailable.
func NewServiceImpl(generator generativeAI.ContentGenerator, m *metrics.AppMetrics, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		generator: generator,
		metrics:   m,
		logger:    logger,
	}
}

func (s *ServiceImpl) SuggestLocations(ctx context.Context, prefs types.TripPreferences) (*types.SuggestionResponse, error) {
	ctx, span := otel.Tracer("SuggestionService").Start(ctx, "SuggestLocations", trace.WithAttributes(
		attribute.String("trip.type", prefs.TripType),
		attribute.String("trip.people", prefs.NumberOfPeople),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "SuggestLocations"))

	duration, err := tripDuration(prefs)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid trip preferences")
		return nil, err
	}

	if s.generator == nil {
		span.SetStatus(codes.Error, "LLM unavailable")
		return nil, api.ErrLLMUnavailable
	}

	prompt := getSuggestionPrompt(duration, prefs.NumberOfPeople, prefs.TripDescription)
	l.DebugContext(ctx, "Requesting location suggestions", slog.String("duration", duration))

	start := time.Now()
	text, err := s.generator.GenerateContent(ctx, prompt,
		generativeAI.NewConfig(systemInstruction, temperature, maxTokens))
	s.metrics.RecordLLM(ctx, operation, time.Since(start), err)
	if err != nil {
		l.ErrorContext(ctx, "Location suggestion completion failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Completion failed")
		return nil, fmt.Errorf("%w: %v", api.ErrLLMResponse, err)
	}

	var resp types.SuggestionResponse
	if err := json.Unmarshal([]byte(generativeAI.CleanJSONResponse(text)), &resp); err != nil {
		l.ErrorContext(ctx, "Failed to parse location suggestions",
			slog.Any("error", err),
			slog.Int("response_length", len(text)))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Unparsable completion")
		return nil, fmt.Errorf("%w: suggestions are not valid JSON: %v", api.ErrLLMResponse, err)
	}

	span.SetAttributes(attribute.Int("suggestions.count", len(resp.Suggestions)))
	span.SetStatus(codes.Ok, "Suggestions generated")
	l.InfoContext(ctx, "Location suggestions generated", slog.Int("count", len(resp.Suggestions)))
	return &resp, nil
}

// tripDuration renders the duration line of the prompt.
func tripDuration(prefs types.TripPreferences) (string, error) {
	if prefs.TripType == "days" {
		n, err := strconv.Atoi(strings.TrimSpace(prefs.NumberOfDays))
		if err != nil || n <= 0 {
			return "", fmt.Errorf("%w: numberOfDays must be a positive integer", api.ErrInvalidInput)
		}
		return fmt.Sprintf("%d days", n), nil
	}

	start, err := time.Parse(dateLayout, prefs.StartDate)
	if err != nil {
		return "", fmt.Errorf("%w: startDate must be a YYYY-MM-DD date", api.ErrInvalidInput)
	}
	end, err := time.Parse(dateLayout, prefs.EndDate)
	if err != nil {
		return "", fmt.Errorf("%w: endDate must be a YYYY-MM-DD date", api.ErrInvalidInput)
	}
	if end.Before(start) {
		return "", fmt.Errorf("%w: endDate is before startDate", api.ErrInvalidInput)
	}

	days := int((end.Unix() - start.Unix()) / secondsPerDay)
	return fmt.Sprintf("%d days from %s to %s", days, prefs.StartDate, prefs.EndDate), nil
}
