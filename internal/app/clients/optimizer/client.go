// Package optimizer is the client for the external ML itinerary optimization
// service.
package optimizer

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/FACorreiaa/loci-itinerary/internal/app/clients"
	"github.com/FACorreiaa/loci-itinerary/internal/app/models"
	"github.com/FACorreiaa/loci-itinerary/internal/pkg/debugger"
)

const (
	serviceName = "optimization service"

	HealthPath   = "/health"
	GeneratePath = "/api/v2/itinerary/generate-hybrid"

	DefaultTimeout   = 30 * time.Second
	HealthCacheTTL   = 30 * time.Second
	healthCacheKey   = "health"
	healthCheckLimit = 5 * time.Second
)

// Config points the client at a service instance.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	health     *cache.Cache
	logger     *zap.Logger
}

// New builds a client. A nil httpClient uses http.DefaultClient; the timeout
// is applied per call through the request context.
func New(cfg Config, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		timeout:    timeout,
		httpClient: httpClient,
		health:     cache.New(HealthCacheTTL, 2*HealthCacheTTL),
		logger:     logger,
	}
}

// Configured reports whether a base URL was provided.
func (c *Client) Configured() bool { return c.baseURL != "" }

// Health probes GET /health. Successful answers are cached for
// HealthCacheTTL; failures are not.
func (c *Client) Health(ctx context.Context) (*models.HealthStatus, error) {
	if cached, ok := c.health.Get(healthCacheKey); ok {
		status := cached.(models.HealthStatus)
		return &status, nil
	}
	if !c.Configured() {
		return nil, models.ErrTierDisabled
	}

	ctx, cancel := context.WithTimeout(ctx, healthCheckLimit)
	defer cancel()

	raw, err := clients.Do(ctx, c.httpClient, clients.Request{
		Service: serviceName,
		Method:  http.MethodGet,
		URL:     c.baseURL + HealthPath,
	})
	if err != nil {
		return nil, err
	}

	var status models.HealthStatus
	if err := json.Unmarshal(raw, &status); err != nil {
		return nil, errors.Wrap(err, "failed to decode health response")
	}
	c.health.SetDefault(healthCacheKey, status)
	return &status, nil
}

// Generate posts the request to the generate-hybrid endpoint, bounded by the
// configured timeout. It does not retry.
func (c *Client) Generate(ctx context.Context, req models.OptimizationRequest) (*models.OptimizationResponse, error) {
	ctx, span := otel.Tracer("OptimizerClient").Start(ctx, "Generate", trace.WithAttributes(
		attribute.Int("places.count", len(req.Places)),
		attribute.String("transport_mode", req.TransportMode),
	))
	defer span.End()

	if !c.Configured() {
		span.SetStatus(codes.Error, "Optimizer not configured")
		return nil, models.ErrTierDisabled
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	raw, err := clients.Do(ctx, c.httpClient, clients.Request{
		Service: serviceName,
		Method:  http.MethodPost,
		URL:     c.baseURL + GeneratePath,
		Body:    req,
	})
	if err != nil {
		c.logger.Warn("Optimization request failed",
			zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Optimization request failed")
		return nil, err
	}

	debugger.LogPayload(c.logger, "Optimization response body", raw)

	var resp models.OptimizationResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to decode optimization response")
		return nil, errors.Wrap(err, "failed to decode optimization response")
	}

	span.SetAttributes(
		attribute.Int("days.count", len(resp.Itinerary)),
		attribute.String("ml_model_version", resp.Metadata.MLModelVersion),
	)
	span.SetStatus(codes.Ok, "Optimization received")
	c.logger.Debug("Optimization received",
		zap.Int("days", len(resp.Itinerary)),
		zap.Duration("elapsed", time.Since(start)))
	return &resp, nil
}
