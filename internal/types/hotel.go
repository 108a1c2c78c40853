package types

import "github.com/google/uuid"

// SearchCriteria is the shared query sent to every hotel provider.
type SearchCriteria struct {
	Location  string  `json:"location"`
	CheckIn   string  `json:"check_in"`  // YYYY-MM-DD
	CheckOut  string  `json:"check_out"` // YYYY-MM-DD
	MaxBudget float64 `json:"max_budget"`
	Currency  string  `json:"currency"`
}

// HotelListing is the normalized record produced from any provider payload.
type HotelListing struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Price          float64   `json:"price"`
	Currency       string    `json:"currency"`
	Platform       string    `json:"platform"` // source provider identifier
	Rating         *float64  `json:"rating"`
	Address        *string   `json:"address"`
	AvailableRooms int       `json:"available_rooms"`
}

// HotelSearchRequest is the body of POST /search-hotels.
type HotelSearchRequest struct {
	Locations []string `json:"locations"`
	CheckIn   string   `json:"check_in"`
	CheckOut  string   `json:"check_out"`
	Budget    *float64 `json:"budget,omitempty"`
	Currency  string   `json:"currency,omitempty"`
}

type HotelSearchResponse struct {
	Status  string                    `json:"status"`
	Results map[string][]HotelListing `json:"results"`
}
