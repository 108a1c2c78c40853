package itinerary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-trip-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-planner/internal/api"
	generativeAI "github.com/FACorreiaa/go-trip-planner/internal/api/generative_ai"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

const (
	dateLayout  = "2006-01-02"
	temperature = 0.7
	maxTokens   = 2000
	operation   = "generate_itinerary"

	secondsPerDay = 24 * 60 * 60
)

var _ Service = (*ServiceImpl)(nil)

// Service writes a day-by-day itinerary for each selected destination.
type Service interface {
	GenerateItineraries(ctx context.Context, req types.ItineraryRequest) (*types.ItineraryResponse, error)
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

// GenerateItineraries runs one completion per destination concurrently. A
// failed completion does not fail the request; its destination carries the
// error text instead.
func (s *ServiceImpl) GenerateItineraries(ctx context.Context, req types.ItineraryRequest) (*types.ItineraryResponse, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "GenerateItineraries", trace.WithAttributes(
		attribute.Int("itinerary.destinations", len(req.SelectedDestinations)),
	))
	defer span.End()

	numDays, destinations, err := validate(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid itinerary request")
		return nil, err
	}
	if s.generator == nil {
		span.SetStatus(codes.Error, "LLM unavailable")
		return nil, api.ErrLLMUnavailable
	}

	texts := make([]string, len(destinations))
	var g errgroup.Group
	for i, dest := range destinations {
		g.Go(func() error {
			texts[i] = s.generate(ctx, numDays, req, dest)
			return nil
		})
	}
	_ = g.Wait()

	itineraries := make(map[string]string, len(destinations))
	for i, dest := range destinations {
		itineraries[dest.Location] = texts[i]
	}

	span.SetAttributes(attribute.Int("itinerary.days", numDays))
	span.SetStatus(codes.Ok, "Itineraries generated")
	return &types.ItineraryResponse{
		ID:          uuid.New(),
		Status:      "success",
		Days:        numDays,
		Itineraries: itineraries,
	}, nil
}

func (s *ServiceImpl) generate(ctx context.Context, numDays int, req types.ItineraryRequest, dest types.SelectedDestination) string {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "generate", trace.WithAttributes(
		attribute.String("itinerary.location", dest.Location),
	))
	defer span.End()

	l := s.logger.With(slog.String("location", dest.Location))
	l.InfoContext(ctx, "Generating itinerary")

	start := time.Now()
	text, err := s.generator.GenerateContent(ctx, getItineraryPrompt(numDays, req, dest),
		generativeAI.NewConfig(systemInstruction, temperature, maxTokens))
	s.metrics.RecordLLM(ctx, operation, time.Since(start), err)
	if err != nil {
		l.ErrorContext(ctx, "Error generating itinerary", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Completion failed")
		return fmt.Sprintf("Error generating itinerary: %v", err)
	}

	span.SetStatus(codes.Ok, "Itinerary generated")
	l.InfoContext(ctx, "Generated itinerary", slog.Int("length", len(text)))
	return text
}

// validate returns the inclusive day count and the destinations to plan,
// with blank and repeated locations removed. Locations are kept as sent.
func validate(req types.ItineraryRequest) (int, []types.SelectedDestination, error) {
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: startDate must be a YYYY-MM-DD date", api.ErrInvalidInput)
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: endDate must be a YYYY-MM-DD date", api.ErrInvalidInput)
	}
	if end.Before(start) {
		return 0, nil, fmt.Errorf("%w: endDate is before startDate", api.ErrInvalidInput)
	}

	seen := make(map[string]bool, len(req.SelectedDestinations))
	var destinations []types.SelectedDestination
	for _, d := range req.SelectedDestinations {
		if strings.TrimSpace(d.Location) == "" || seen[d.Location] {
			continue
		}
		seen[d.Location] = true
		destinations = append(destinations, d)
	}
	if len(destinations) == 0 {
		return 0, nil, fmt.Errorf("%w: at least one destination is required", api.ErrInvalidInput)
	}

	return daysBetween(start, end) + 1, destinations, nil
}

// daysBetween counts calendar days from start to end. Both are UTC midnights as
// produced by time.Parse with a date-only layout.
func daysBetween(start, end time.Time) int {
	return int((end.Unix() - start.Unix()) / secondsPerDay)
}
