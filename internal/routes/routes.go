package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/FACorreiaa/loci-itinerary/internal/app/clients/optimizer"
	"github.com/FACorreiaa/loci-itinerary/internal/app/clients/routegen"
	"github.com/FACorreiaa/loci-itinerary/internal/app/domain/allocation"
	"github.com/FACorreiaa/loci-itinerary/internal/app/domain/flights"
	"github.com/FACorreiaa/loci-itinerary/internal/app/domain/geo"
	"github.com/FACorreiaa/loci-itinerary/internal/app/domain/itinerary"
	"github.com/FACorreiaa/loci-itinerary/internal/app/domain/trips"
	"github.com/FACorreiaa/loci-itinerary/internal/app/models"
	"github.com/FACorreiaa/loci-itinerary/internal/pkg/cache"
	"github.com/FACorreiaa/loci-itinerary/internal/pkg/config"
)

type AppHandlers struct {
	Itinerary  *itinerary.Handler
	Flights    *flights.Handler
	Allocation *allocation.Handler
	Caches     *cache.CacheManager
}

// NewAppHandlers wires repositories, clients and services. Callers must
// Close the returned handlers' caches on shutdown.
func NewAppHandlers(cfg *config.Config, db trips.DB, logger *zap.Logger) *AppHandlers {
	httpClient := &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}

	resolver := geo.NewResolver(nil)
	tripRepo := trips.NewRepository(db, logger)
	caches := cache.NewCacheManager(cache.DefaultOptimizationTTL, logger)

	optimizerClient := optimizer.New(optimizer.Config{
		BaseURL: cfg.Optimizer.BaseURL,
		Timeout: cfg.Optimizer.Timeout,
	}, httpClient, logger)
	routeClient := routegen.New(routegen.Config{
		URL:     cfg.RouteGenerator.URL,
		APIKey:  cfg.RouteGenerator.APIKey,
		Timeout: cfg.RouteGenerator.Timeout,
	}, httpClient, logger)

	if !optimizerClient.Configured() {
		logger.Warn("OPTIMIZER_BASE_URL not set, ML tier will always fall back")
	}
	if !routeClient.Configured() {
		logger.Warn("ROUTE_GENERATOR_URL not set, secondary tier will always fall back")
	}

	notifier := itinerary.NewLogNotifier(logger)
	transformer := itinerary.NewTransformer(resolver)
	orchestrator := itinerary.NewOrchestrator(notifier, logger,
		itinerary.NewMLTier(optimizerClient, transformer, caches.Optimizations, cfg.Optimizer.Timeout),
		itinerary.NewSecondaryTier(routeClient, transformer, resolver),
		itinerary.NewLocalTier(itinerary.NewLocalGenerator(logger)),
	)
	itinerarySvc := itinerary.NewService(orchestrator, tripRepo, optimizerClient, notifier, logger).
		WithDefaults(models.Preferences{
			DailyStartHour: cfg.Planning.DailyStartHour,
			DailyEndHour:   cfg.Planning.DailyEndHour,
		}).
		WithMaxTripDays(cfg.Planning.MaxTripDays)

	advisor := flights.NewAdvisor(resolver, logger)
	flightSvc := flights.NewService(advisor, flights.NewPlanner(advisor, logger), tripRepo, logger)

	return &AppHandlers{
		Itinerary:  itinerary.NewHandler(itinerarySvc, logger),
		Flights:    flights.NewHandler(flightSvc, logger),
		Allocation: allocation.NewHandler(logger).WithMaxTripDays(cfg.Planning.MaxTripDays),
		Caches:     caches,
	}
}

// Setup registers every route on r.
func Setup(r *gin.Engine, h *AppHandlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		api.GET("/optimizer/health", h.Itinerary.OptimizerHealth)
		api.POST("/itineraries/generate", h.Itinerary.Generate)
		api.POST("/trips/:id/itinerary", h.Itinerary.GenerateForTrip)
		api.POST("/trips/:id/flights", h.Flights.PlanTripFlights)

		api.POST("/flights/timing", h.Flights.RecommendTiming)
		api.POST("/flights/plan", h.Flights.PlanFlights)

		api.POST("/allocations", h.Allocation.Allocate)

		api.GET("/cache/metrics", func(c *gin.Context) {
			c.JSON(http.StatusOK, h.Caches.GetAllMetrics())
		})
	}
}
