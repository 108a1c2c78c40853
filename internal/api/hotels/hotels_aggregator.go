package hotels

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-trip-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

const (
	defaultProviderTimeout = 5 * time.Second
	maxPayloadBytes        = 8 << 20
)

type AggregatorOptions struct {
	// Timeout bounds each provider call independently.
	Timeout time.Duration
	// EnforceBudget drops listings priced above SearchCriteria.MaxBudget.
	EnforceBudget bool
}

// Aggregator fans one search out to every registered provider and merges the
// results by ascending price. It never fails: a provider that errors simply
// contributes no listings.
type Aggregator struct {
	providers     []Provider
	client        *http.Client
	timeout       time.Duration
	enforceBudget bool
	metrics       *metrics.AppMetrics
	logger        *slog.Logger
}

func NewAggregator(registry *Registry, client *http.Client, opts AggregatorOptions, m *metrics.AppMetrics, logger *slog.Logger) *Aggregator {
	if client == nil {
		client = &http.Client{}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultProviderTimeout
	}
	return &Aggregator{
		providers:     registry.Providers(),
		client:        client,
		timeout:       opts.Timeout,
		enforceBudget: opts.EnforceBudget,
		metrics:       m,
		logger:        logger,
	}
}

// Search returns the merged listings for criteria sorted by price. Equal
// prices keep provider registration order, then the provider's own order.
func (a *Aggregator) Search(ctx context.Context, criteria types.SearchCriteria) []types.HotelListing {
	ctx, span := otel.Tracer("HotelAggregator").Start(ctx, "Search", trace.WithAttributes(
		attribute.String("hotels.location", criteria.Location),
		attribute.String("hotels.check_in", criteria.CheckIn),
		attribute.String("hotels.check_out", criteria.CheckOut),
		attribute.Float64("hotels.max_budget", criteria.MaxBudget),
		attribute.Int("hotels.providers", len(a.providers)),
	))
	defer span.End()

	results := make([][]types.HotelListing, len(a.providers))
	var g errgroup.Group
	for i, p := range a.providers {
		g.Go(func() error {
			results[i] = a.searchProvider(ctx, p, criteria)
			return nil
		})
	}
	_ = g.Wait()

	merged := make([]types.HotelListing, 0)
	for _, listings := range results {
		for _, l := range listings {
			if a.enforceBudget && criteria.MaxBudget > 0 && l.Price > criteria.MaxBudget {
				continue
			}
			merged = append(merged, l)
		}
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Price < merged[j].Price
	})

	span.SetAttributes(attribute.Int("hotels.listings", len(merged)))
	span.SetStatus(codes.Ok, "Search completed")
	return merged
}

func (a *Aggregator) searchProvider(ctx context.Context, p Provider, criteria types.SearchCriteria) (listings []types.HotelListing) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	ctx, span := otel.Tracer("HotelAggregator").Start(ctx, "searchProvider", trace.WithAttributes(
		attribute.String("hotels.provider", p.Name()),
	))
	defer span.End()

	l := a.logger.With(slog.String("provider", p.Name()), slog.String("location", criteria.Location))
	start := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			err := fmt.Errorf("provider panicked: %v", rec)
			a.record(ctx, p.Name(), "error", time.Since(start), 0)
			span.RecordError(err)
			span.SetStatus(codes.Error, "Provider panicked")
			l.ErrorContext(ctx, "Hotel provider search failed", slog.Any("error", err))
			listings = nil
		}
	}()

	listings, err := a.fetch(ctx, p, criteria)
	elapsed := time.Since(start)
	if err != nil {
		a.record(ctx, p.Name(), outcome(err), elapsed, 0)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Provider search failed")
		l.WarnContext(ctx, "Hotel provider search failed",
			slog.Any("error", err),
			slog.Duration("latency", elapsed))
		return nil
	}

	a.record(ctx, p.Name(), "success", elapsed, len(listings))
	span.SetAttributes(attribute.Int("hotels.listings", len(listings)))
	span.SetStatus(codes.Ok, "Provider search completed")
	l.DebugContext(ctx, "Hotel provider search completed",
		slog.Int("listings", len(listings)),
		slog.Duration("latency", elapsed))
	return listings
}

func (a *Aggregator) fetch(ctx context.Context, p Provider, criteria types.SearchCriteria) ([]types.HotelListing, error) {
	req, err := p.BuildRequest(ctx, criteria)
	if err != nil {
		return nil, &ProviderError{Provider: p.Name(), Err: err}
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &ProviderError{Provider: p.Name(), Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &ProviderError{Provider: p.Name(), Err: fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, &ProviderError{Provider: p.Name(), Err: fmt.Errorf("read body: %w", err)}
	}

	listings, err := p.Normalize(body)
	if err != nil {
		return nil, &ProviderError{Provider: p.Name(), Err: err}
	}

	for i := range listings {
		if listings[i].ID == uuid.Nil {
			listings[i].ID = uuid.New()
		}
		if listings[i].Platform == "" {
			listings[i].Platform = p.Name()
		}
		if listings[i].Currency == "" {
			listings[i].Currency = criteria.Currency
		}
	}
	return listings, nil
}

func (a *Aggregator) record(ctx context.Context, provider, result string, elapsed time.Duration, listings int) {
	if a.metrics == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("outcome", result),
	)
	a.metrics.ProviderRequestsTotal.Add(ctx, 1, attrs)
	a.metrics.ProviderDurationSeconds.Record(ctx, elapsed.Seconds(), attrs)
	if listings > 0 {
		a.metrics.ListingsReturnedTotal.Add(ctx, int64(listings), metric.WithAttributes(attribute.String("provider", provider)))
	}
}

func outcome(err error) string {
	switch {
	case errors.Is(err, ErrMissingCredentials):
		return "disabled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "error"
	}
}
