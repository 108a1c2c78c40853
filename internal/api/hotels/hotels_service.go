package hotels

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-trip-planner/internal/api"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

const (
	DefaultCurrency = "INR"
	DefaultBudget   = 5000.0
	dateLayout      = "2006-01-02"
)

var _ Service = (*ServiceImpl)(nil)

// Service searches hotels for every requested location.
type Service interface {
	SearchHotels(ctx context.Context, req types.HotelSearchRequest) (map[string][]types.HotelListing, error)
}

// Searcher is the aggregation step for a single location.
type Searcher interface {
	Search(ctx context.Context, criteria types.SearchCriteria) []types.HotelListing
}

type ServiceImpl struct {
	searcher        Searcher
	defaultCurrency string
	defaultBudget   float64
	logger          *slog.Logger
}

func NewServiceImpl(searcher Searcher, defaultCurrency string, defaultBudget float64, logger *slog.Logger) *ServiceImpl {
	if defaultCurrency == "" {
		defaultCurrency = DefaultCurrency
	}
	if defaultBudget <= 0 {
		defaultBudget = DefaultBudget
	}
	return &ServiceImpl{
		searcher:        searcher,
		defaultCurrency: defaultCurrency,
		defaultBudget:   defaultBudget,
		logger:          logger,
	}
}

// SearchHotels runs one aggregated search per distinct location. Only input
// validation can fail; provider failures just shrink the result.
func (s *ServiceImpl) SearchHotels(ctx context.Context, req types.HotelSearchRequest) (map[string][]types.HotelListing, error) {
	ctx, span := otel.Tracer("HotelService").Start(ctx, "SearchHotels", trace.WithAttributes(
		attribute.Int("hotels.locations", len(req.Locations)),
	))
	defer span.End()

	locations, criteria, err := s.validate(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid search request")
		return nil, err
	}

	listings := make([][]types.HotelListing, len(locations))
	var g errgroup.Group
	for i, location := range locations {
		g.Go(func() error {
			c := criteria
			c.Location = location
			listings[i] = s.searcher.Search(ctx, c)
			return nil
		})
	}
	_ = g.Wait()

	results := make(map[string][]types.HotelListing, len(locations))
	for i, location := range locations {
		results[location] = listings[i]
		s.logger.InfoContext(ctx, "Hotel search completed",
			slog.String("location", location),
			slog.Int("listings", len(listings[i])))
	}

	span.SetStatus(codes.Ok, "Hotels searched")
	return results, nil
}

func (s *ServiceImpl) validate(req types.HotelSearchRequest) ([]string, types.SearchCriteria, error) {
	seen := make(map[string]bool, len(req.Locations))
	var locations []string
	for _, loc := range req.Locations {
		// forwarded verbatim; only blank entries are skipped
		if strings.TrimSpace(loc) == "" || seen[loc] {
			continue
		}
		seen[loc] = true
		locations = append(locations, loc)
	}
	if len(locations) == 0 {
		return nil, types.SearchCriteria{}, fmt.Errorf("%w: at least one location is required", api.ErrInvalidInput)
	}

	if _, err := time.Parse(dateLayout, req.CheckIn); err != nil {
		return nil, types.SearchCriteria{}, fmt.Errorf("%w: check_in must be a YYYY-MM-DD date", api.ErrInvalidInput)
	}
	if _, err := time.Parse(dateLayout, req.CheckOut); err != nil {
		return nil, types.SearchCriteria{}, fmt.Errorf("%w: check_out must be a YYYY-MM-DD date", api.ErrInvalidInput)
	}

	criteria := types.SearchCriteria{
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
		MaxBudget: s.defaultBudget,
		Currency:  s.defaultCurrency,
	}
	if req.Budget != nil {
		if *req.Budget <= 0 {
			return nil, types.SearchCriteria{}, fmt.Errorf("%w: budget must be positive", api.ErrInvalidInput)
		}
		criteria.MaxBudget = *req.Budget
	}
	if c := strings.TrimSpace(req.Currency); c != "" {
		criteria.Currency = strings.ToUpper(c)
	}
	return locations, criteria, nil
}
