package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

// ProviderConfig configures one hotel booking platform.
type ProviderConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Priority int    `mapstructure:"priority"`
	BaseURL  string `mapstructure:"baseURL"`
	APIKey   string `mapstructure:"apiKey"`
}

type Config struct {
	Mode     string `mapstructure:"mode"`
	Dotenv   string `mapstructure:"dotenv"`
	Handlers struct {
		Prometheus struct {
			Port string `mapstructure:"port"`
		} `mapstructure:"prometheus"`
	} `mapstructure:"handlers"`
	Server struct {
		HTTPPort string        `mapstructure:"HTTPPort"`
		Timeout  time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
	Cors struct {
		AllowedOrigins []string `mapstructure:"allowedOrigins"`
	} `mapstructure:"cors"`
	LLM struct {
		APIKey string `mapstructure:"apiKey"`
		Model  string `mapstructure:"model"`
	} `mapstructure:"llm"`
	Hotels struct {
		ProviderTimeout time.Duration             `mapstructure:"providerTimeout"`
		DefaultCurrency string                    `mapstructure:"defaultCurrency"`
		DefaultBudget   float64                   `mapstructure:"defaultBudget"`
		EnforceBudget   bool                      `mapstructure:"enforceBudget"`
		Providers       map[string]ProviderConfig `mapstructure:"providers"`
	} `mapstructure:"hotels"`
}

// envBindings maps config keys to explicit environment variables.
// Credentials are only ever read from the environment.
var envBindings = map[string]string{
	"mode":                             "APP_ENV",
	"llm.apiKey":                       "GOOGLE_GEMINI_API_KEY",
	"hotels.providers.ratehawk.apiKey": "RATEHAWK_API_KEY",
	"hotels.providers.booking.apiKey":  "BOOKING_API_KEY",
	"hotels.providers.expedia.apiKey":  "EXPEDIA_API_KEY",
}

func InitConfig() (Config, error) {
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	return load(v)
}

// LoadEmbedded reads only the embedded defaults plus environment overrides.
func LoadEmbedded() (Config, error) {
	v := viper.New()
	v.SetConfigType("yml")
	if err := v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
		return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
	}
	return load(v)
}

func load(v *viper.Viper) (Config, error) {
	var config Config

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	// Variables already set in the environment win over the dotenv file.
	if path := v.GetString("dotenv"); path != "" {
		if err := godotenv.Load(path); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("failed to load %s: %w", path, err)
			}
			fmt.Printf("Warning: dotenv file %s not found, using process environment only.\n", path)
		}
	}

	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return config, nil
}

// ProviderNames returns the configured provider keys in fan-out order:
// ascending priority, then name.
func (c Config) ProviderNames() []string {
	names := make([]string, 0, len(c.Hotels.Providers))
	for name := range c.Hotels.Providers {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		pi, pj := c.Hotels.Providers[names[i]].Priority, c.Hotels.Providers[names[j]].Priority
		if pi != pj {
			return pi < pj
		}
		return names[i] < names[j]
	})
	return names
}
