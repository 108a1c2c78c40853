package container

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/FACorreiaa/go-trip-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-planner/config"
	generativeAI "github.com/FACorreiaa/go-trip-planner/internal/api/generative_ai"
	"github.com/FACorreiaa/go-trip-planner/internal/api/hotels"
	"github.com/FACorreiaa/go-trip-planner/internal/api/itinerary"
	"github.com/FACorreiaa/go-trip-planner/internal/api/suggestions"
	"github.com/FACorreiaa/go-trip-planner/internal/router"
)

// Container holds all application dependencies
type Container struct {
	Config             *config.Config
	Logger             *slog.Logger
	Registry           *hotels.Registry
	HotelsHandler      *hotels.HandlerImpl
	SuggestionsHandler *suggestions.HandlerImpl
	ItineraryHandler   *itinerary.HandlerImpl
}

// Options overrides collaborators that are normally built from config.
type Options struct {
	// Registry replaces the config-driven hotel provider registry.
	Registry *hotels.Registry
	// Generator replaces the Gemini client.
	Generator  generativeAI.ContentGenerator
	HTTPClient *http.Client
	Metrics    *metrics.AppMetrics
}

// NewContainer initializes and returns a new dependency container. A missing
// Gemini key is not fatal: the language model endpoints answer 503.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts Options) (*Container, error) {
	registry := opts.Registry
	if registry == nil {
		var err error
		registry, err = hotels.NewRegistryFromConfig(*cfg, logger)
		if err != nil {
			logger.Error("Failed to build hotel provider registry", slog.Any("error", err))
			return nil, err
		}
	}

	generator := opts.Generator
	if generator == nil {
		aiClient, err := generativeAI.NewAIClient(ctx, cfg.LLM.APIKey, cfg.LLM.Model)
		if err != nil {
			logger.Warn("Language model disabled", slog.Any("error", err))
		} else {
			generator = aiClient
		}
	}

	aggregator := hotels.NewAggregator(registry, opts.HTTPClient, hotels.AggregatorOptions{
		Timeout:       cfg.Hotels.ProviderTimeout,
		EnforceBudget: cfg.Hotels.EnforceBudget,
	}, opts.Metrics, logger)
	hotelService := hotels.NewServiceImpl(aggregator, cfg.Hotels.DefaultCurrency, cfg.Hotels.DefaultBudget, logger)

	suggestionService := suggestions.NewServiceImpl(generator, opts.Metrics, logger)
	itineraryService := itinerary.NewServiceImpl(generator, opts.Metrics, logger)

	logger.Info("Hotel providers registered", slog.Any("providers", registry.Names()))

	return &Container{
		Config:             cfg,
		Logger:             logger,
		Registry:           registry,
		HotelsHandler:      hotels.NewHandlerImpl(hotelService, logger),
		SuggestionsHandler: suggestions.NewHandlerImpl(suggestionService, logger),
		ItineraryHandler:   itinerary.NewHandlerImpl(itineraryService, logger),
	}, nil
}

// RouterConfig returns the router dependencies held by the container.
func (c *Container) RouterConfig() *router.Config {
	return &router.Config{
		HotelsHandler:      c.HotelsHandler,
		SuggestionsHandler: c.SuggestionsHandler,
		ItineraryHandler:   c.ItineraryHandler,
		AllowedOrigins:     c.Config.Cors.AllowedOrigins,
	}
}
