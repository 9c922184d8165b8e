package metrics

import (
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// MeterName is the instrumentation scope for every application instrument.
const MeterName = "loci-itinerary"

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	HTTPRequestsTotal      metric.Int64Counter
	TierAttemptsTotal      metric.Int64Counter
	TierFailuresTotal      metric.Int64Counter
	TierDuration           metric.Float64Histogram
	FlightTimingRequests   metric.Int64Counter
	FlightPlansTotal       metric.Int64Counter
	OptimizerCacheHits     metric.Int64Counter
	DBQueryDurationSeconds metric.Float64Histogram
	DBQueryErrorsTotal     metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics creates the instruments once from the global MeterProvider.
// Instrument creation errors are logged and leave a no-op instrument in place.
func InitAppMetrics(logger *zap.Logger) {
	once.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
		meter := otel.GetMeterProvider().Meter(MeterName)
		m := &AppMetrics{}

		m.HTTPRequestsTotal = counter(meter, logger, "http_requests_total",
			"Total number of HTTP requests completed", "{request}")
		m.TierAttemptsTotal = counter(meter, logger, "itinerary_tier_attempts_total",
			"Itinerary generation attempts per fallback tier", "{attempt}")
		m.TierFailuresTotal = counter(meter, logger, "itinerary_tier_failures_total",
			"Itinerary generation failures per fallback tier", "{failure}")
		m.FlightTimingRequests = counter(meter, logger, "flight_timing_requests_total",
			"Flight timing recommendations computed", "{request}")
		m.FlightPlansTotal = counter(meter, logger, "flight_plans_total",
			"Multi-city flight plans built", "{plan}")
		m.OptimizerCacheHits = counter(meter, logger, "optimizer_cache_hits_total",
			"Optimization responses served from cache", "{hit}")
		m.DBQueryErrorsTotal = counter(meter, logger, "db_query_errors_total",
			"Total number of database query errors", "{error}")

		m.TierDuration = histogram(meter, logger, "itinerary_tier_duration_seconds",
			"Duration of each fallback tier in seconds")
		m.DBQueryDurationSeconds = histogram(meter, logger, "db_query_duration_seconds",
			"Duration of database queries in seconds")

		logger.Info("Application metrics instruments initialized")
		appMetrics = m
	})
}

// Get returns the instruments, initializing them against the current global
// provider on first use.
func Get() *AppMetrics {
	InitAppMetrics(nil)
	return appMetrics
}

func counter(meter metric.Meter, logger *zap.Logger, name, desc, unit string) metric.Int64Counter {
	c, err := meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit(unit))
	if err != nil {
		logger.Error("Metrics: failed to create counter", zap.String("name", name), zap.Error(err))
	}
	return c
}

func histogram(meter metric.Meter, logger *zap.Logger, name, desc string) metric.Float64Histogram {
	h, err := meter.Float64Histogram(name, metric.WithDescription(desc), metric.WithUnit("s"))
	if err != nil {
		logger.Error("Metrics: failed to create histogram", zap.String("name", name), zap.Error(err))
	}
	return h
}
