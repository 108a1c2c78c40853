package hotels

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

var (
	ErrMissingCredentials = errors.New("provider credentials are not configured")
	ErrUnexpectedStatus   = errors.New("unexpected provider status")
	ErrUnexpectedSchema   = errors.New("unexpected provider payload schema")
)

// Provider is one hotel data source. BuildRequest maps the shared criteria onto
// the provider's own request shape and Normalize turns its raw payload into listings.
type Provider interface {
	Name() string
	BuildRequest(ctx context.Context, criteria types.SearchCriteria) (*http.Request, error)
	Normalize(body []byte) ([]types.HotelListing, error)
}

// ProviderError tags a failure with the provider that produced it.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return e.Provider + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// QueryParams holds the provider's query parameter names for each criteria field.
type QueryParams struct {
	Location string
	CheckIn  string
	CheckOut string
	Currency string
	Budget   string
}

// PayloadFields holds the provider's field names inside each hotel record.
type PayloadFields struct {
	Name           string
	Price          string
	Currency       string
	Rating         string
	Address        string
	AvailableRooms string
}

// ProviderSpec describes an HTTP provider answering GET requests with a
// JSON object carrying a list of hotel records under "hotels".
type ProviderSpec struct {
	Name       string
	BaseURL    string
	AuthScheme string // "Bearer" or "Basic"
	APIKey     string
	Params     QueryParams
	Fields     PayloadFields
}

var standardFields = PayloadFields{
	Name:           "name",
	Price:          "price",
	Currency:       "currency",
	Rating:         "rating",
	Address:        "address",
	AvailableRooms: "available_rooms",
}

var builtinSpecs = map[string]ProviderSpec{
	"ratehawk": {
		Name:       "RateHawk",
		BaseURL:    "https://api.ratehawk.com/api/v1/hotels/search",
		AuthScheme: "Bearer",
		Params:     QueryParams{Location: "query", CheckIn: "check_in", CheckOut: "check_out", Currency: "currency", Budget: "price_max"},
		Fields:     standardFields,
	},
	"booking": {
		Name:       "Booking.com",
		BaseURL:    "https://distribution-xml.booking.com/json/bookings",
		AuthScheme: "Basic",
		Params:     QueryParams{Location: "city", CheckIn: "arrival_date", CheckOut: "departure_date", Currency: "currency", Budget: "max_rate"},
		Fields:     standardFields,
	},
	"expedia": {
		Name:       "Expedia",
		BaseURL:    "https://api.ean.com/v3/properties/search",
		AuthScheme: "Bearer",
		Params:     QueryParams{Location: "location", CheckIn: "checkIn", CheckOut: "checkOut", Currency: "currency", Budget: "maxPrice"},
		Fields:     standardFields,
	},
}

// BuiltinSpec returns a copy of a known provider's spec without credentials.
func BuiltinSpec(key string) (ProviderSpec, bool) {
	spec, ok := builtinSpecs[strings.ToLower(key)]
	return spec, ok
}

var _ Provider = (*HTTPProvider)(nil)

type HTTPProvider struct {
	spec ProviderSpec
}

func NewHTTPProvider(spec ProviderSpec) *HTTPProvider {
	return &HTTPProvider{spec: spec}
}

func (p *HTTPProvider) Name() string {
	return p.spec.Name
}

func (p *HTTPProvider) BuildRequest(ctx context.Context, criteria types.SearchCriteria) (*http.Request, error) {
	if strings.TrimSpace(p.spec.APIKey) == "" {
		return nil, ErrMissingCredentials
	}

	u, err := url.Parse(p.spec.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	q := u.Query()
	q.Set(p.spec.Params.Location, criteria.Location)
	q.Set(p.spec.Params.CheckIn, criteria.CheckIn)
	q.Set(p.spec.Params.CheckOut, criteria.CheckOut)
	q.Set(p.spec.Params.Currency, criteria.Currency)
	q.Set(p.spec.Params.Budget, strconv.FormatFloat(criteria.MaxBudget, 'f', -1, 64))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", p.spec.AuthScheme+" "+p.spec.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// Normalize maps the provider payload onto HotelListing. Records without a
// numeric price are dropped; a missing "hotels" key means no results.
func (p *HTTPProvider) Normalize(body []byte) ([]types.HotelListing, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}

	raw, ok := payload["hotels"]
	if !ok || raw == nil {
		return []types.HotelListing{}, nil
	}
	records, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: hotels is %T, want array", ErrUnexpectedSchema, raw)
	}

	f := p.spec.Fields
	listings := make([]types.HotelListing, 0, len(records))
	for _, rec := range records {
		hotel, ok := rec.(map[string]any)
		if !ok {
			continue
		}
		price, ok := numberField(hotel, f.Price)
		if !ok {
			continue
		}

		listing := types.HotelListing{
			Name:     stringValue(hotel, f.Name),
			Price:    price,
			Currency: stringValue(hotel, f.Currency),
			Platform: p.spec.Name,
		}
		if rating, ok := numberField(hotel, f.Rating); ok {
			listing.Rating = &rating
		}
		if address, ok := hotel[f.Address].(string); ok {
			listing.Address = &address
		}
		if rooms, ok := roomCount(hotel, f.AvailableRooms); ok {
			listing.AvailableRooms = rooms
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

func numberField(record map[string]any, key string) (float64, bool) {
	var (
		v   float64
		err error
	)
	switch raw := record[key].(type) {
	case json.Number:
		v, err = raw.Float64()
	case float64:
		v = raw
	case string:
		v, err = strconv.ParseFloat(strings.TrimSpace(raw), 64)
	default:
		return 0, false
	}
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// roomCount accepts only whole, non-negative counts that fit in an int32.
func roomCount(record map[string]any, key string) (int, bool) {
	v, ok := numberField(record, key)
	if !ok || v < 0 || v > math.MaxInt32 || v != math.Trunc(v) {
		return 0, false
	}
	return int(v), true
}

func stringValue(record map[string]any, key string) string {
	s, _ := record[key].(string)
	return s
}
