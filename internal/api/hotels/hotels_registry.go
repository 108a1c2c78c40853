package hotels

import (
	"fmt"
	"log/slog"

	"github.com/FACorreiaa/go-trip-planner/config"
)

// Registry maps provider names to implementations and remembers the
// registration order, which is the fan-out and tie-break order.
type Registry struct {
	order     []string
	providers map[string]Provider
}

func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

func (r *Registry) Register(p Provider) error {
	name := p.Name()
	if name == "" {
		return fmt.Errorf("provider name must not be empty")
	}
	if _, exists := r.providers[name]; exists {
		return fmt.Errorf("provider %q already registered", name)
	}
	r.providers[name] = p
	r.order = append(r.order, name)
	return nil
}

// Providers returns the registered providers in registration order.
func (r *Registry) Providers() []Provider {
	out := make([]Provider, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.providers[name])
	}
	return out
}

func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// NewRegistryFromConfig registers every enabled built-in provider in priority order.
// A provider without credentials stays registered and fails each search on its own.
func NewRegistryFromConfig(cfg config.Config, logger *slog.Logger) (*Registry, error) {
	registry := NewRegistry()
	for _, key := range cfg.ProviderNames() {
		pc := cfg.Hotels.Providers[key]
		if !pc.Enabled {
			logger.Info("Hotel provider disabled", slog.String("provider", key))
			continue
		}
		spec, ok := BuiltinSpec(key)
		if !ok {
			logger.Warn("Unknown hotel provider in config, skipping", slog.String("provider", key))
			continue
		}
		if pc.BaseURL != "" {
			spec.BaseURL = pc.BaseURL
		}
		spec.APIKey = pc.APIKey
		if spec.APIKey == "" {
			logger.Warn("Hotel provider has no API key, it will return no results",
				slog.String("provider", spec.Name))
		}
		if err := registry.Register(NewHTTPProvider(spec)); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
