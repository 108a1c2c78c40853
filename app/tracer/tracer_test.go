package tracer

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/FACorreiaa/go-trip-planner/app/observability/metrics"
)

func TestInitTracingAndMetrics_ServesScrape(t *testing.T) {
	provider, err := InitTracingAndMetrics("TripPlannerTest")
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	})

	m, err := metrics.New(otel.GetMeterProvider().Meter("trip-planner-test"))
	require.NoError(t, err)
	m.RecordLLM(context.Background(), "suggest_locations", 150*time.Millisecond, nil)

	srv := httptest.NewServer(provider.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	scrape := string(body)

	assert.Contains(t, scrape, "llm_requests_total{")
	assert.Contains(t, scrape, `operation="suggest_locations"`)
	assert.Contains(t, scrape, `outcome="success"`)
	assert.Contains(t, scrape, `service_name="TripPlannerTest"`)
}

func TestInitTracingAndMetrics_InstallsTracer(t *testing.T) {
	provider, err := InitTracingAndMetrics("TripPlannerTest")
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	})

	_, span := otel.Tracer("test").Start(context.Background(), "op")
	defer span.End()
	assert.True(t, span.SpanContext().IsValid())
}
