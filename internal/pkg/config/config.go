package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type PlacesConfig struct {
	APIKey          string
	BaseURL         string
	DefaultCategory string
	DefaultKeyword  string
	SearchTimeout   time.Duration
	DetailTimeout   time.Duration
	MaxConcurrency  int
}

type ObservabilityConfig struct {
	ServiceName  string
	MetricsAddr  string
	PprofAddr    string
	OTLPEndpoint string
}

type Config struct {
	Places        PlacesConfig
	Observability ObservabilityConfig
	ServerPort    string
	LogLevel      string
}

func Load() (*Config, error) {
	searchTimeout, err := getDurationOrDefault("PLACES_SEARCH_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	detailTimeout, err := getDurationOrDefault("PLACES_DETAIL_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}
	maxConcurrency, err := getIntOrDefault("PLACES_MAX_CONCURRENCY", 0)
	if err != nil {
		return nil, err
	}
	if maxConcurrency < 0 {
		return nil, fmt.Errorf("PLACES_MAX_CONCURRENCY must not be negative, got %d", maxConcurrency)
	}

	cfg := &Config{
		Places: PlacesConfig{
			APIKey:          os.Getenv("PLACES_API_KEY"),
			BaseURL:         getEnvOrDefault("PLACES_BASE_URL", "https://maps.googleapis.com/maps/api/place"),
			DefaultCategory: getEnvOrDefault("PLACES_DEFAULT_CATEGORY", "bar"),
			DefaultKeyword:  getEnvOrDefault("PLACES_DEFAULT_KEYWORD", "pub"),
			SearchTimeout:   searchTimeout,
			DetailTimeout:   detailTimeout,
			MaxConcurrency:  maxConcurrency,
		},
		Observability: ObservabilityConfig{
			ServiceName:  getEnvOrDefault("SERVICE_NAME", "venues"),
			MetricsAddr:  getEnvOrDefault("METRICS_ADDR", ":9092"),
			PprofAddr:    getEnvOrDefault("PPROF_ADDR", ":6060"),
			OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		},
		ServerPort: getEnvOrDefault("SERVER_PORT", "8091"),
		LogLevel:   getEnvOrDefault("LOG_LEVEL", "info"),
	}

	if cfg.Places.APIKey == "" {
		return nil, fmt.Errorf("PLACES_API_KEY environment variable is required")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}

func getIntOrDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}
