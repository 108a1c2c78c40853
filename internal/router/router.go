package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/FACorreiaa/go-trip-planner/internal/api/hotels"
	"github.com/FACorreiaa/go-trip-planner/internal/api/itinerary"
	"github.com/FACorreiaa/go-trip-planner/internal/api/suggestions"
)

// Config contains dependencies needed for the router setup
type Config struct {
	HotelsHandler      *hotels.HandlerImpl
	SuggestionsHandler *suggestions.HandlerImpl
	ItineraryHandler   *itinerary.HandlerImpl
	AllowedOrigins     []string
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (logger, request ID, recoverer) is applied by the
// caller before mounting this router.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any major browsers
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/suggest-locations", cfg.SuggestionsHandler.SuggestLocations)
		r.Post("/generate-itinerary", cfg.ItineraryHandler.GenerateItinerary)
		r.Post("/search-hotels", cfg.HotelsHandler.SearchHotels)
	})

	return r
}
