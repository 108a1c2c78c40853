package hotels

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-trip-planner/internal/api"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

// MockSearcher is a mock implementation of Searcher
type MockSearcher struct {
	mock.Mock
}

func (m *MockSearcher) Search(ctx context.Context, criteria types.SearchCriteria) []types.HotelListing {
	args := m.Called(ctx, criteria)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]types.HotelListing)
}

func ptr[T any](v T) *T { return &v }

func TestServiceImpl_SearchHotels_Defaults(t *testing.T) {
	searcher := new(MockSearcher)
	service := NewServiceImpl(searcher, "", 0, testLogger())

	want := types.SearchCriteria{Location: "Goa", CheckIn: "2024-04-20", CheckOut: "2024-04-25", MaxBudget: 5000, Currency: "INR"}
	listings := []types.HotelListing{{Name: "Beach Hut", Price: 1800, Currency: "INR", Platform: "RateHawk"}}
	searcher.On("Search", mock.Anything, want).Return(listings).Once()

	results, err := service.SearchHotels(context.Background(), types.HotelSearchRequest{
		Locations: []string{"Goa"}, CheckIn: "2024-04-20", CheckOut: "2024-04-25",
	})

	require.NoError(t, err)
	assert.Equal(t, map[string][]types.HotelListing{"Goa": listings}, results)
	searcher.AssertExpectations(t)
}

func TestServiceImpl_SearchHotels_PerLocation(t *testing.T) {
	searcher := new(MockSearcher)
	service := NewServiceImpl(searcher, "INR", 5000, testLogger())

	base := types.SearchCriteria{CheckIn: "2024-04-20", CheckOut: "2024-04-25", MaxBudget: 12000, Currency: "EUR"}
	paris, lyon := base, base
	paris.Location = "Paris"
	lyon.Location = "Lyon"
	searcher.On("Search", mock.Anything, paris).Return([]types.HotelListing{{Name: "Louvre", Price: 200}}).Once()
	searcher.On("Search", mock.Anything, lyon).Return([]types.HotelListing{}).Once()

	results, err := service.SearchHotels(context.Background(), types.HotelSearchRequest{
		Locations: []string{"Paris", "Lyon", "Paris", ""},
		CheckIn:   "2024-04-20",
		CheckOut:  "2024-04-25",
		Budget:    ptr(12000.0),
		Currency:  "eur",
	})

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Len(t, results["Paris"], 1)
	assert.NotNil(t, results["Lyon"])
	assert.Empty(t, results["Lyon"])
	searcher.AssertExpectations(t)
}

func TestServiceImpl_SearchHotels_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  types.HotelSearchRequest
		msg  string
	}{
		{
			name: "no locations",
			req:  types.HotelSearchRequest{CheckIn: "2024-04-20", CheckOut: "2024-04-25"},
			msg:  "location",
		},
		{
			name: "blank locations",
			req:  types.HotelSearchRequest{Locations: []string{" ", ""}, CheckIn: "2024-04-20", CheckOut: "2024-04-25"},
			msg:  "location",
		},
		{
			name: "bad check in",
			req:  types.HotelSearchRequest{Locations: []string{"Goa"}, CheckIn: "20/04/2024", CheckOut: "2024-04-25"},
			msg:  "check_in",
		},
		{
			name: "missing check out",
			req:  types.HotelSearchRequest{Locations: []string{"Goa"}, CheckIn: "2024-04-20"},
			msg:  "check_out",
		},
		{
			name: "negative budget",
			req:  types.HotelSearchRequest{Locations: []string{"Goa"}, CheckIn: "2024-04-20", CheckOut: "2024-04-25", Budget: ptr(-10.0)},
			msg:  "budget",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			searcher := new(MockSearcher)
			service := NewServiceImpl(searcher, "INR", 5000, testLogger())

			results, err := service.SearchHotels(context.Background(), tc.req)

			assert.Nil(t, results)
			require.ErrorIs(t, err, api.ErrInvalidInput)
			assert.Contains(t, err.Error(), tc.msg)
			searcher.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
		})
	}
}

func TestServiceImpl_SearchHotels_LocationsAreVerbatim(t *testing.T) {
	searcher := new(MockSearcher)
	service := NewServiceImpl(searcher, "INR", 5000, testLogger())

	base := types.SearchCriteria{CheckIn: "2024-04-20", CheckOut: "2024-04-25", MaxBudget: 5000, Currency: "INR"}
	padded, plain := base, base
	padded.Location = " Mumbai"
	plain.Location = "Mumbai"
	searcher.On("Search", mock.Anything, padded).Return([]types.HotelListing{{Name: "Sea View", Price: 4500}}).Once()
	searcher.On("Search", mock.Anything, plain).Return([]types.HotelListing{}).Once()

	results, err := service.SearchHotels(context.Background(), types.HotelSearchRequest{
		Locations: []string{" Mumbai", "Mumbai", "  "},
		CheckIn:   "2024-04-20",
		CheckOut:  "2024-04-25",
	})

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Len(t, results[" Mumbai"], 1)
	assert.Contains(t, results, "Mumbai")
	searcher.AssertExpectations(t)
}
