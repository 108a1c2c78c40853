package hotels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-trip-planner/config"
)

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(testProvider("b", "http://b")))
	require.NoError(t, r.Register(testProvider("a", "http://a")))

	assert.Error(t, r.Register(testProvider("a", "http://other")))
	assert.Error(t, r.Register(&staticProvider{}))

	assert.Equal(t, []string{"b", "a"}, r.Names())
	providers := r.Providers()
	require.Len(t, providers, 2)
	assert.Equal(t, "b", providers[0].Name())
	assert.Equal(t, "a", providers[1].Name())
}

func TestNewRegistryFromConfig(t *testing.T) {
	var cfg config.Config
	cfg.Hotels.Providers = map[string]config.ProviderConfig{
		"expedia":  {Enabled: true, Priority: 1, APIKey: "e-key"},
		"booking":  {Enabled: true, Priority: 2, BaseURL: "http://booking.local/search"},
		"ratehawk": {Enabled: false, Priority: 0, APIKey: "r-key"},
		"trivago":  {Enabled: true, Priority: 3},
	}

	registry, err := NewRegistryFromConfig(cfg, testLogger())
	require.NoError(t, err)

	assert.Equal(t, []string{"Expedia", "Booking.com"}, registry.Names())

	providers := registry.Providers()
	require.Len(t, providers, 2)
	httpProvider, ok := providers[1].(*HTTPProvider)
	require.True(t, ok)
	assert.Equal(t, "http://booking.local/search", httpProvider.spec.BaseURL)
	assert.Empty(t, httpProvider.spec.APIKey)
}
