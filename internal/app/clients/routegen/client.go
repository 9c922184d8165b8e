// Package routegen calls the backend route generator function used as the
// secondary itinerary source.
package routegen

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

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
	serviceName = "route generator"

	DefaultTimeout = 30 * time.Second
)

type Config struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

type Client struct {
	url        string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
	logger     *zap.Logger
}

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
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		timeout:    timeout,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Configured reports whether a function URL was provided.
func (c *Client) Configured() bool { return c.url != "" }

// Generate invokes the function and returns its day plans.
func (c *Client) Generate(ctx context.Context, req models.RouteRequest) ([]models.DayItinerary, error) {
	ctx, span := otel.Tracer("RouteGeneratorClient").Start(ctx, "Generate", trace.WithAttributes(
		attribute.String("trip.id", req.TripID),
		attribute.String("route_type", req.RouteType),
	))
	defer span.End()

	if !c.Configured() {
		span.SetStatus(codes.Error, "Route generator not configured")
		return nil, models.ErrTierDisabled
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	header := http.Header{}
	if c.apiKey != "" {
		header.Set("Authorization", "Bearer "+c.apiKey)
		header.Set("apikey", c.apiKey)
	}

	raw, err := clients.Do(ctx, c.httpClient, clients.Request{
		Service: serviceName,
		Method:  http.MethodPost,
		URL:     c.url,
		Header:  header,
		Body:    req,
	})
	if err != nil {
		c.logger.Warn("Route generation request failed", zap.String("tripID", req.TripID), zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Route generation request failed")
		return nil, err
	}

	debugger.LogPayload(c.logger, "Route generator response body", raw)

	days, err := parseRouteResponse(raw)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to decode route response")
		return nil, err
	}

	span.SetAttributes(attribute.Int("days.count", len(days)))
	span.SetStatus(codes.Ok, "Route generated")
	return days, nil
}

// parseRouteResponse accepts {"itinerary": [...]}, the same wrapped in a
// "data" envelope, or a bare array of days. Markdown fences are stripped.
func parseRouteResponse(raw []byte) ([]models.DayItinerary, error) {
	cleaned := []byte(cleanJSONResponse(string(raw)))
	if len(cleaned) == 0 {
		return nil, nil
	}

	var wrapped struct {
		Data models.RouteResponse `json:"data"`
	}
	if err := json.Unmarshal(cleaned, &wrapped); err == nil && len(wrapped.Data.Itinerary) > 0 {
		return wrapped.Data.Itinerary, nil
	}

	var direct models.RouteResponse
	directErr := json.Unmarshal(cleaned, &direct)
	if directErr == nil && len(direct.Itinerary) > 0 {
		return direct.Itinerary, nil
	}

	var days []models.DayItinerary
	if err := json.Unmarshal(cleaned, &days); err == nil {
		return days, nil
	}

	if directErr != nil {
		return nil, errors.Wrap(directErr, "failed to decode route response")
	}
	return direct.Itinerary, nil
}

func cleanJSONResponse(response string) string {
	cleaned := strings.ReplaceAll(response, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}
