package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("OPTIMIZER_BASE_URL", "http://optimizer:8000/")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, ,http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8091", cfg.ServerPort)
	assert.Equal(t, "localhost", cfg.Repositories.Postgres.Host)
	assert.Equal(t, "http://optimizer:8000", cfg.Optimizer.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Optimizer.Timeout)
	assert.Equal(t, 30*time.Second, cfg.RouteGenerator.Timeout)
	assert.Empty(t, cfg.RouteGenerator.URL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, 9, cfg.Planning.DailyStartHour)
	assert.Equal(t, 18, cfg.Planning.DailyEndHour)
	assert.Equal(t, 365, cfg.Planning.MaxTripDays)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing password", env: map[string]string{"POSTGRES_PASSWORD": ""}},
		{name: "bad timeout", env: map[string]string{"POSTGRES_PASSWORD": "x", "OPTIMIZER_TIMEOUT": "soon"}},
		{name: "negative timeout", env: map[string]string{"POSTGRES_PASSWORD": "x", "ROUTE_GENERATOR_TIMEOUT": "-5s"}},
		{name: "bad hour", env: map[string]string{"POSTGRES_PASSWORD": "x", "DAILY_START_HOUR": "nine"}},
		{name: "zero max trip days", env: map[string]string{"POSTGRES_PASSWORD": "x", "MAX_TRIP_DAYS": "0"}},
		{name: "inverted window", env: map[string]string{"POSTGRES_PASSWORD": "x", "DAILY_START_HOUR": "20", "DAILY_END_HOUR": "8"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
