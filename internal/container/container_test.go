package container

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-trip-planner/config"
)

func TestNewContainer_FromConfigWithoutGeminiKey(t *testing.T) {
	t.Setenv("GOOGLE_GEMINI_API_KEY", "")
	t.Setenv("RATEHAWK_API_KEY", "rh")

	cfg, err := config.LoadEmbedded()
	require.NoError(t, err)

	c, err := NewContainer(context.Background(), &cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"RateHawk", "Booking.com", "Expedia"}, c.Registry.Names())
	assert.NotNil(t, c.HotelsHandler)
	assert.NotNil(t, c.SuggestionsHandler)
	assert.NotNil(t, c.ItineraryHandler)

	rc := c.RouterConfig()
	assert.Equal(t, cfg.Cors.AllowedOrigins, rc.AllowedOrigins)
	assert.Same(t, c.HotelsHandler, rc.HotelsHandler)
}
