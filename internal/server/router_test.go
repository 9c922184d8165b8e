package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/loci-itinerary/internal/pkg/config"
	"github.com/FACorreiaa/loci-itinerary/internal/routes"
)

func testConfig() *config.Config {
	return &config.Config{
		Optimizer:      config.OptimizerConfig{Timeout: 30 * time.Second},
		RouteGenerator: config.RouteGeneratorConfig{Timeout: 30 * time.Second},
		Observability:  config.ObservabilityConfig{ServiceName: "loci-itinerary-test"},
		Planning:       config.PlanningConfig{DailyStartHour: 9, DailyEndHour: 18},
		AllowedOrigins: []string{"http://planner.test"},
		ServerPort:     "8091",
	}
}

func TestSetupRouter(t *testing.T) {
	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer pool.Close()

	cfg := testConfig()
	handlers := routes.NewAppHandlers(cfg, pool, zap.NewNop())
	defer handlers.Caches.Close()

	r := SetupRouter(cfg, handlers, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://planner.test")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.Equal(t, "http://planner.test", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHTTPServerTimeouts(t *testing.T) {
	s := &Server{cfg: testConfig(), logger: zap.NewNop()}
	srv := s.HTTPServer()
	assert.Equal(t, ":8091", srv.Addr)
	assert.Equal(t, 70*time.Second, srv.WriteTimeout)
}
