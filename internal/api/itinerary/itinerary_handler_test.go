package itinerary

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-trip-planner/internal/api"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) GenerateItineraries(ctx context.Context, req types.ItineraryRequest) (*types.ItineraryResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ItineraryResponse), args.Error(1)
}

func TestHandlerImpl_GenerateItinerary(t *testing.T) {
	body := `{"startDate":"2024-12-20","endDate":"2024-12-22","preferences":"slow",
		"selectedDestinations":[{"location":"Goa","highlights":["Baga Beach"]}]}`
	req := types.ItineraryRequest{
		StartDate:            "2024-12-20",
		EndDate:              "2024-12-22",
		Preferences:          "slow",
		SelectedDestinations: []types.SelectedDestination{{Location: "Goa", Highlights: []string{"Baga Beach"}}},
	}

	t.Run("success", func(t *testing.T) {
		want := &types.ItineraryResponse{ID: uuid.New(), Status: "success", Days: 3, Itineraries: map[string]string{"Goa": "Day 1"}}
		service := new(MockService)
		service.On("GenerateItineraries", mock.Anything, req).Return(want, nil).Once()

		rec := httptest.NewRecorder()
		NewHandlerImpl(service, testLogger()).GenerateItinerary(rec,
			httptest.NewRequest(http.MethodPost, "/api/v1/generate-itinerary", strings.NewReader(body)))

		require.Equal(t, http.StatusOK, rec.Code)
		var got types.ItineraryResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, *want, got)
		service.AssertExpectations(t)
	})

	t.Run("wrong field type", func(t *testing.T) {
		service := new(MockService)

		rec := httptest.NewRecorder()
		NewHandlerImpl(service, testLogger()).GenerateItinerary(rec,
			httptest.NewRequest(http.MethodPost, "/api/v1/generate-itinerary", strings.NewReader(`{"selectedDestinations":"Goa"}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		service.AssertNotCalled(t, "GenerateItineraries", mock.Anything, mock.Anything)
	})

	t.Run("service unavailable", func(t *testing.T) {
		service := new(MockService)
		service.On("GenerateItineraries", mock.Anything, req).Return(nil, api.ErrLLMUnavailable).Once()

		rec := httptest.NewRecorder()
		NewHandlerImpl(service, testLogger()).GenerateItinerary(rec,
			httptest.NewRequest(http.MethodPost, "/api/v1/generate-itinerary", strings.NewReader(body)))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), api.ErrLLMUnavailable.Error())
	})
}
