package router

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FACorreiaa/go-trip-planner/internal/api/hotels"
	"github.com/FACorreiaa/go-trip-planner/internal/api/itinerary"
	"github.com/FACorreiaa/go-trip-planner/internal/api/suggestions"
)

func testRouter() http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	agg := hotels.NewAggregator(hotels.NewRegistry(), nil, hotels.AggregatorOptions{}, nil, logger)
	return SetupRouter(&Config{
		HotelsHandler:      hotels.NewHandlerImpl(hotels.NewServiceImpl(agg, "", 0, logger), logger),
		SuggestionsHandler: suggestions.NewHandlerImpl(suggestions.NewServiceImpl(nil, nil, logger), logger),
		ItineraryHandler:   itinerary.NewHandlerImpl(itinerary.NewServiceImpl(nil, nil, logger), logger),
	})
}

func TestSetupRouter(t *testing.T) {
	r := testRouter()

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{"ping", http.MethodGet, "/ping", "", http.StatusOK},
		{"hotels with no providers", http.MethodPost, "/api/v1/search-hotels",
			`{"locations":["Goa"],"check_in":"2024-04-20","check_out":"2024-04-25"}`, http.StatusOK},
		{"suggestions without a model", http.MethodPost, "/api/v1/suggest-locations",
			`{"tripType":"days","numberOfDays":"2"}`, http.StatusServiceUnavailable},
		{"itinerary without a model", http.MethodPost, "/api/v1/generate-itinerary",
			`{"startDate":"2024-12-20","endDate":"2024-12-21","selectedDestinations":[{"location":"Goa"}]}`, http.StatusServiceUnavailable},
		{"wrong method", http.MethodGet, "/api/v1/search-hotels", "", http.StatusMethodNotAllowed},
		{"unknown route", http.MethodGet, "/api/v1/flights", "", http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}

func TestSetupRouter_HotelsResultIsEmptyList(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/search-hotels",
		strings.NewReader(`{"locations":["Goa"],"check_in":"2024-04-20","check_out":"2024-04-25"}`))
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, req)

	assert.JSONEq(t, `{"status":"success","results":{"Goa":[]}}`, rec.Body.String())
}
