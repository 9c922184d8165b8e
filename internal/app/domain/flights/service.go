// Package flights recommends departure timing and builds multi-city flight
// plans from geography alone.
package flights

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/FACorreiaa/loci-itinerary/internal/app/models"
	"github.com/FACorreiaa/loci-itinerary/internal/app/observability/metrics"
)

// TripReader loads trip snapshots.
type TripReader interface {
	GetTrip(ctx context.Context, tripID uuid.UUID) (*models.Trip, error)
}

// Service is the flight planning contract used by the HTTP layer.
type Service interface {
	RecommendTiming(ctx context.Context, origin, destination string, tripStart time.Time) models.FlightTimingRecommendation
	PlanFlights(ctx context.Context, req PlanRequest) ([]models.FlightLeg, error)
	PlanTripFlights(ctx context.Context, tripID uuid.UUID, origin string) ([]models.FlightLeg, error)
}

var _ Service = (*ServiceImpl)(nil)

type ServiceImpl struct {
	logger  *zap.Logger
	advisor *Advisor
	planner *Planner
	trips   TripReader
	now     func() time.Time
}

func NewService(advisor *Advisor, planner *Planner, trips TripReader, logger *zap.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:  logger,
		advisor: advisor,
		planner: planner,
		trips:   trips,
		now:     time.Now,
	}
}

// RecommendTiming wraps the advisor with tracing and metrics.
func (s *ServiceImpl) RecommendTiming(ctx context.Context, origin, destination string, tripStart time.Time) models.FlightTimingRecommendation {
	ctx, span := otel.Tracer("FlightsService").Start(ctx, "RecommendTiming", trace.WithAttributes(
		attribute.String("origin", origin),
		attribute.String("destination", destination),
	))
	defer span.End()

	rec := s.advisor.Recommend(origin, destination, tripStart)
	metrics.Get().FlightTimingRequests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("confidence", string(rec.Confidence)),
		attribute.Bool("day_before", rec.ShouldDepartDayBefore),
	))
	span.SetAttributes(
		attribute.Float64("distance_km", rec.DistanceKm),
		attribute.String("jet_lag", string(rec.JetLagFactor)),
	)
	span.SetStatus(codes.Ok, "Recommendation computed")
	return rec
}

// PlanFlights builds a multi-city plan.
func (s *ServiceImpl) PlanFlights(ctx context.Context, req PlanRequest) ([]models.FlightLeg, error) {
	ctx, span := otel.Tracer("FlightsService").Start(ctx, "PlanFlights", trace.WithAttributes(
		attribute.String("origin", req.Origin),
		attribute.Int("destinations.count", len(req.Destinations)),
	))
	defer span.End()

	l := s.logger.With(zap.String("method", "PlanFlights"), zap.String("origin", req.Origin))

	legs, err := s.planner.Plan(req)
	if err != nil {
		l.Warn("Failed to plan flights", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to plan flights")
		return nil, fmt.Errorf("error planning flights: %w", err)
	}

	metrics.Get().FlightPlansTotal.Add(ctx, 1)
	span.SetAttributes(attribute.Int("legs.count", len(legs)))
	span.SetStatus(codes.Ok, "Flights planned")
	return legs, nil
}

// PlanTripFlights plans flights for a stored trip.
func (s *ServiceImpl) PlanTripFlights(ctx context.Context, tripID uuid.UUID, origin string) ([]models.FlightLeg, error) {
	ctx, span := otel.Tracer("FlightsService").Start(ctx, "PlanTripFlights", trace.WithAttributes(
		attribute.String("trip.id", tripID.String()),
		attribute.String("origin", origin),
	))
	defer span.End()

	l := s.logger.With(zap.String("method", "PlanTripFlights"), zap.String("tripID", tripID.String()))

	trip, err := s.trips.GetTrip(ctx, tripID)
	if err != nil {
		l.Error("Failed to load trip", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to load trip")
		return nil, fmt.Errorf("error loading trip: %w", err)
	}

	legs, err := s.planner.PlanTrip(*trip, origin, s.now())
	if err != nil {
		l.Warn("Failed to plan trip flights", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to plan trip flights")
		return nil, fmt.Errorf("error planning trip flights: %w", err)
	}

	metrics.Get().FlightPlansTotal.Add(ctx, 1)
	span.SetStatus(codes.Ok, "Trip flights planned")
	return legs, nil
}
