// Package itinerary turns trips into day-by-day itineraries through a chain
// of generators: the ML optimization service, the backend route generator
// and a local builder that needs no network.
package itinerary

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/FACorreiaa/loci-itinerary/internal/app/models"
)

// TripReader loads trip snapshots.
type TripReader interface {
	GetTrip(ctx context.Context, tripID uuid.UUID) (*models.Trip, error)
}

// HealthChecker reports the optimization service's health.
type HealthChecker interface {
	Health(ctx context.Context) (*models.HealthStatus, error)
}

// Generation is an orchestration result plus the notifications raised
// while producing it.
type Generation struct {
	models.OrchestrationResult
	Notifications []models.Notification `json:"notifications"`
}

type Service interface {
	Generate(ctx context.Context, trip models.Trip, prefs models.Preferences) (*Generation, error)
	GenerateForTrip(ctx context.Context, tripID uuid.UUID, prefs models.Preferences) (*Generation, error)
	OptimizerHealth(ctx context.Context) (*models.HealthStatus, error)
}

var _ Service = (*ServiceImpl)(nil)

type ServiceImpl struct {
	logger       *zap.Logger
	orchestrator *Orchestrator
	trips        TripReader
	health       HealthChecker
	notifier     Notifier
	defaults     models.Preferences
	maxTripDays  int
}

func NewService(orchestrator *Orchestrator, trips TripReader, health HealthChecker, notifier Notifier, logger *zap.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:       logger,
		orchestrator: orchestrator,
		trips:        trips,
		health:       health,
		notifier:     notifier,
		maxTripDays:  models.DefaultMaxTripDays,
	}
}

// WithDefaults sets the preferences applied to fields a request leaves empty.
func (s *ServiceImpl) WithDefaults(prefs models.Preferences) *ServiceImpl {
	s.defaults = prefs
	return s
}

// WithMaxTripDays sets the longest trip span accepted for generation. Values
// below one keep the default.
func (s *ServiceImpl) WithMaxTripDays(days int) *ServiceImpl {
	if days > 0 {
		s.maxTripDays = days
	}
	return s
}

func (s *ServiceImpl) fill(prefs models.Preferences) models.Preferences {
	if prefs.TransportMode == "" {
		prefs.TransportMode = s.defaults.TransportMode
	}
	if prefs.DailyStartHour == 0 && prefs.DailyEndHour == 0 {
		prefs.DailyStartHour = s.defaults.DailyStartHour
		prefs.DailyEndHour = s.defaults.DailyEndHour
	}
	return prefs
}

// Generate orchestrates a caller supplied trip snapshot. The only error is a
// trip that fails validation; tier failures never surface here.
func (s *ServiceImpl) Generate(ctx context.Context, trip models.Trip, prefs models.Preferences) (*Generation, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "Generate", trace.WithAttributes(
		attribute.String("trip.id", trip.ID.String()),
	))
	defer span.End()

	l := s.logger.With(zap.String("method", "Generate"), zap.String("tripID", trip.ID.String()))

	if err := trip.ValidateWithin(s.maxTripDays); err != nil {
		l.Warn("Rejected trip snapshot", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid trip")
		return nil, fmt.Errorf("error validating trip: %w", err)
	}

	recorder := &RecordingNotifier{}
	result := s.orchestrator.Run(ctx, Request{
		Trip:        trip,
		Preferences: s.fill(prefs),
		Notifier:    Notifiers{recorder, s.notifier},
	})

	span.SetAttributes(attribute.String("source_tier", string(result.SourceTier)))
	span.SetStatus(codes.Ok, "Itinerary orchestrated")
	return &Generation{OrchestrationResult: result, Notifications: recorder.Notifications()}, nil
}

// GenerateForTrip loads a stored trip and orchestrates it.
func (s *ServiceImpl) GenerateForTrip(ctx context.Context, tripID uuid.UUID, prefs models.Preferences) (*Generation, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "GenerateForTrip", trace.WithAttributes(
		attribute.String("trip.id", tripID.String()),
	))
	defer span.End()

	trip, err := s.trips.GetTrip(ctx, tripID)
	if err != nil {
		s.logger.Error("Failed to load trip", zap.String("tripID", tripID.String()), zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to load trip")
		return nil, fmt.Errorf("error loading trip: %w", err)
	}
	return s.Generate(ctx, *trip, prefs)
}

func (s *ServiceImpl) OptimizerHealth(ctx context.Context) (*models.HealthStatus, error) {
	status, err := s.health.Health(ctx)
	if err != nil {
		return nil, fmt.Errorf("error checking optimizer health: %w", err)
	}
	return status, nil
}
