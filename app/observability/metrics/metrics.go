package metrics

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	ProviderRequestsTotal   metric.Int64Counter
	ProviderDurationSeconds metric.Float64Histogram
	ListingsReturnedTotal   metric.Int64Counter
	LLMRequestsTotal        metric.Int64Counter
	LLMDurationSeconds      metric.Float64Histogram
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// New creates the instruments on the given meter.
func New(meter metric.Meter) (*AppMetrics, error) {
	var err error
	m := &AppMetrics{}

	m.ProviderRequestsTotal, err = meter.Int64Counter(
		"hotel_provider_requests_total",
		metric.WithDescription("Hotel provider searches by provider and outcome"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("hotel_provider_requests_total: %w", err)
	}

	m.ProviderDurationSeconds, err = meter.Float64Histogram(
		"hotel_provider_duration_seconds",
		metric.WithDescription("Duration of hotel provider searches in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("hotel_provider_duration_seconds: %w", err)
	}

	m.ListingsReturnedTotal, err = meter.Int64Counter(
		"hotel_listings_returned_total",
		metric.WithDescription("Normalized hotel listings returned by provider"),
		metric.WithUnit("{listing}"),
	)
	if err != nil {
		return nil, fmt.Errorf("hotel_listings_returned_total: %w", err)
	}

	m.LLMRequestsTotal, err = meter.Int64Counter(
		"llm_requests_total",
		metric.WithDescription("Language model completions by operation and outcome"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("llm_requests_total: %w", err)
	}

	m.LLMDurationSeconds, err = meter.Float64Histogram(
		"llm_duration_seconds",
		metric.WithDescription("Duration of language model completions in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("llm_duration_seconds: %w", err)
	}

	return m, nil
}

// RecordLLM counts one language model completion for operation and records
// its latency. Safe to call on a nil receiver.
func (m *AppMetrics) RecordLLM(ctx context.Context, operation string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.LLMRequestsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
	m.LLMDurationSeconds.Record(ctx, elapsed.Seconds(), metric.WithAttributes(
		attribute.String("operation", operation),
	))
}

// InitAppMetrics initializes the global instruments once, using the global MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		m, err := New(otel.GetMeterProvider().Meter("TripPlanner"))
		if err != nil {
			log.Fatalf("Metrics: %v", err)
		}
		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}
