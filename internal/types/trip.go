package types

import "github.com/google/uuid"

// TripPreferences is the free-text form used to ask for destination suggestions.
type TripPreferences struct {
	TripType        string `json:"tripType"` // "days" or "dates"
	NumberOfDays    string `json:"numberOfDays,omitempty"`
	StartDate       string `json:"startDate,omitempty"`
	EndDate         string `json:"endDate,omitempty"`
	NumberOfPeople  string `json:"numberOfPeople"`
	TripDescription string `json:"tripDescription"`
}

type LocationSuggestion struct {
	Location      string   `json:"location"`
	Description   string   `json:"description"`
	TravelTime    string   `json:"travel_time"`
	BestSeason    string   `json:"best_season"`
	EstimatedCost string   `json:"estimated_cost"`
	Highlights    []string `json:"highlights"`
}

type SuggestionResponse struct {
	Suggestions []LocationSuggestion `json:"suggestions"`
	Summary     string               `json:"summary"`
}

type SelectedDestination struct {
	Location   string   `json:"location"`
	Highlights []string `json:"highlights"`
}

type ItineraryRequest struct {
	StartDate            string                `json:"startDate"`
	EndDate              string                `json:"endDate"`
	Preferences          string                `json:"preferences"`
	SelectedDestinations []SelectedDestination `json:"selectedDestinations"`
}

type ItineraryResponse struct {
	ID          uuid.UUID         `json:"id"`
	Status      string            `json:"status"`
	Days        int               `json:"days"`
	Itineraries map[string]string `json:"itineraries"`
}
