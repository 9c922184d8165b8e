package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type PostgresConfig struct {
	Host     string
	Port     string
	DB       string
	Username string
	Password string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

type RepositoriesConfig struct {
	Postgres PostgresConfig
}

// OptimizerConfig points at the ML optimization service. An empty BaseURL
// disables the first tier.
type OptimizerConfig struct {
	BaseURL string
	Timeout time.Duration
}

// RouteGeneratorConfig points at the secondary backend route function. An
// empty URL disables the second tier.
type RouteGeneratorConfig struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

type ObservabilityConfig struct {
	ServiceName    string
	ServiceVersion string
	MetricsAddr    string
	PprofAddr      string
	OTLPEndpoint   string
	LogLevel       string
}

// PlanningConfig holds the default daily window for generated days and the
// longest trip accepted for planning.
type PlanningConfig struct {
	DailyStartHour int
	DailyEndHour   int
	MaxTripDays    int
}

type Config struct {
	Repositories   RepositoriesConfig
	Optimizer      OptimizerConfig
	RouteGenerator RouteGeneratorConfig
	Observability  ObservabilityConfig
	Planning       PlanningConfig
	AllowedOrigins []string
	ServerPort     string
}

func Load() (*Config, error) {
	cfg := &Config{
		Repositories: RepositoriesConfig{
			Postgres: PostgresConfig{
				Host:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
				Port:     getEnvOrDefault("POSTGRES_PORT", "5454"),
				DB:       getEnvOrDefault("POSTGRES_DB", "loci_itinerary"),
				Username: getEnvOrDefault("POSTGRES_USER", "postgres"),
				Password: getEnvOrDefault("POSTGRES_PASSWORD", ""),
				SSLMode:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
				MaxConns: 30,
				MinConns: 5,
			},
		},
		Optimizer: OptimizerConfig{
			BaseURL: strings.TrimRight(os.Getenv("OPTIMIZER_BASE_URL"), "/"),
		},
		RouteGenerator: RouteGeneratorConfig{
			URL:    os.Getenv("ROUTE_GENERATOR_URL"),
			APIKey: os.Getenv("ROUTE_GENERATOR_API_KEY"),
		},
		Observability: ObservabilityConfig{
			ServiceName:    getEnvOrDefault("OTEL_SERVICE_NAME", "loci-itinerary"),
			ServiceVersion: getEnvOrDefault("SERVICE_VERSION", "dev"),
			MetricsAddr:    getEnvOrDefault("METRICS_ADDR", ":9090"),
			PprofAddr:      getEnvOrDefault("PPROF_ADDR", ":6060"),
			OTLPEndpoint:   os.Getenv("OTEL_EXPORTER_ENDPOINT"),
			LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		},
		AllowedOrigins: splitList(getEnvOrDefault("ALLOWED_ORIGINS", "http://localhost:3000")),
		ServerPort:     getEnvOrDefault("SERVER_PORT", "8091"),
	}

	var err error
	if cfg.Optimizer.Timeout, err = getDuration("OPTIMIZER_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.RouteGenerator.Timeout, err = getDuration("ROUTE_GENERATOR_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.Planning.DailyStartHour, err = getInt("DAILY_START_HOUR", 9); err != nil {
		return nil, err
	}
	if cfg.Planning.DailyEndHour, err = getInt("DAILY_END_HOUR", 18); err != nil {
		return nil, err
	}
	if cfg.Planning.MaxTripDays, err = getInt("MAX_TRIP_DAYS", 365); err != nil {
		return nil, err
	}
	if cfg.Planning.MaxTripDays < 1 {
		return nil, fmt.Errorf("MAX_TRIP_DAYS must be positive, got %d", cfg.Planning.MaxTripDays)
	}
	if cfg.Planning.DailyStartHour < 0 || cfg.Planning.DailyEndHour > 24 ||
		cfg.Planning.DailyStartHour >= cfg.Planning.DailyEndHour {
		return nil, fmt.Errorf("invalid daily window %d-%d", cfg.Planning.DailyStartHour, cfg.Planning.DailyEndHour)
	}

	if cfg.Repositories.Postgres.Password == "" {
		return nil, fmt.Errorf("POSTGRES_PASSWORD environment variable is required")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, raw)
	}
	return d, nil
}

func getInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, raw)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
