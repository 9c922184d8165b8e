package itinerary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/FACorreiaa/loci-itinerary/internal/app/models"
	"github.com/FACorreiaa/loci-itinerary/internal/app/observability/metrics"
)

var successMessages = map[models.SourceTier]string{
	models.SourceTierML:        "Your itinerary has been optimized",
	models.SourceTierSecondary: "Your itinerary has been generated",
	models.SourceTierLocal:     "Your itinerary has been created from your trip plan",
}

const fallbackMessage = "Optimization service unavailable, trying another planner"

// Orchestrator walks an ordered list of tiers until one produces an
// itinerary. The last tier is always a local one, so Run always returns a
// result and never an error.
type Orchestrator struct {
	tiers    []Tier
	notifier Notifier
	logger   *zap.Logger
}

// NewOrchestrator keeps the tier order as given. A LocalTier backed by a
// fresh generator is appended when the list does not already end with one.
func NewOrchestrator(notifier Notifier, logger *zap.Logger, tiers ...Tier) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = NewLogNotifier(logger)
	}
	if len(tiers) == 0 || tiers[len(tiers)-1].Name() != models.SourceTierLocal {
		tiers = append(tiers, NewLocalTier(NewLocalGenerator(logger)))
	}
	return &Orchestrator{tiers: tiers, notifier: notifier, logger: logger}
}

// Tiers returns the configured tier names in order.
func (o *Orchestrator) Tiers() []models.SourceTier {
	names := make([]models.SourceTier, len(o.tiers))
	for i, t := range o.tiers {
		names[i] = t.Name()
	}
	return names
}

// Run generates an itinerary. Tier errors only surface through the result's
// Error and Attempts fields. If ctx is done before a tier starts, no further
// tier is run and the result has SourceTierNone.
func (o *Orchestrator) Run(ctx context.Context, req Request) models.OrchestrationResult {
	ctx, span := otel.Tracer("ItineraryOrchestrator").Start(ctx, "Run", trace.WithAttributes(
		attribute.String("trip.id", req.Trip.ID.String()),
		attribute.Int("destinations.count", len(req.Trip.Destinations)),
		attribute.Int("saved_places.count", len(req.Trip.SavedPlaces)),
	))
	defer span.End()

	l := o.logger.With(zap.String("method", "Run"), zap.String("tripID", req.Trip.ID.String()))
	notifier := req.Notifier
	if notifier == nil {
		notifier = o.notifier
	}

	result := models.OrchestrationResult{Itinerary: []models.DayItinerary{}}
	var failures []string

	for i, tier := range o.tiers {
		if err := ctx.Err(); err != nil {
			l.Info("Itinerary request abandoned", zap.String("next_tier", string(tier.Name())), zap.Error(err))
			span.SetStatus(codes.Error, "Request abandoned")
			result.SourceTier = models.SourceTierNone
			result.Error = joinFailures(append(failures, fmt.Sprintf("cancelled: %v", err)))
			return result
		}

		out, elapsed, err := o.runTier(ctx, tier, req)
		attempt := models.TierAttempt{Tier: tier.Name(), DurationMs: elapsed.Milliseconds()}

		if err != nil {
			attempt.Error = err.Error()
			result.Attempts = append(result.Attempts, attempt)
			failures = append(failures, fmt.Sprintf("%s: %v", tier.Name(), err))

			l.Warn("Itinerary tier failed, falling back",
				zap.String("tier", string(tier.Name())),
				zap.Duration("elapsed", elapsed),
				zap.Error(err))
			span.AddEvent("tier_failed", trace.WithAttributes(
				attribute.String("tier", string(tier.Name())),
				attribute.String("error", err.Error()),
			))
			if i < len(o.tiers)-1 && !errors.Is(err, context.Canceled) {
				notifier.Notify(ctx, models.NotificationInfo, fallbackMessage)
			}
			continue
		}

		result.Attempts = append(result.Attempts, attempt)
		result.Itinerary = out.Itinerary
		result.Analytics = out.Analytics
		result.SourceTier = tier.Name()
		result.Error = joinFailures(failures)

		l.Info("Itinerary generated",
			zap.String("tier", string(tier.Name())),
			zap.Int("days", len(out.Itinerary)),
			zap.Int("failed_tiers", len(failures)))
		span.SetAttributes(attribute.String("source_tier", string(tier.Name())))
		span.SetStatus(codes.Ok, "Itinerary generated")
		notifier.Notify(ctx, models.NotificationSuccess, successMessages[tier.Name()])
		return result
	}

	// Unreachable while the chain ends with a LocalTier.
	l.Error("Every itinerary tier failed")
	span.SetStatus(codes.Error, "Every tier failed")
	result.SourceTier = models.SourceTierLocal
	result.Error = joinFailures(failures)
	return result
}

func (o *Orchestrator) runTier(ctx context.Context, tier Tier, req Request) (Output, time.Duration, error) {
	name := attribute.String("tier", string(tier.Name()))
	ctx, span := otel.Tracer("ItineraryOrchestrator").Start(ctx, "Tier", trace.WithAttributes(name))
	defer span.End()

	m := metrics.Get()
	m.TierAttemptsTotal.Add(ctx, 1, metric.WithAttributes(name))

	start := time.Now()
	out, err := tier.Run(ctx, req)
	elapsed := time.Since(start)
	m.TierDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(name))

	if err != nil {
		m.TierFailuresTotal.Add(ctx, 1, metric.WithAttributes(name, attribute.String("kind", failureKind(err))))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Tier failed")
		return Output{}, elapsed, err
	}
	if out.Itinerary == nil {
		out.Itinerary = []models.DayItinerary{}
	}
	span.SetStatus(codes.Ok, "Tier succeeded")
	return out, elapsed, nil
}

// failureKind names the error class for metrics labels.
func failureKind(err error) string {
	var statusErr *models.StatusError
	switch {
	case errors.Is(err, context.Canceled):
		return "cancelled"
	case errors.Is(err, models.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &statusErr):
		return "status"
	case errors.Is(err, models.ErrNetwork):
		return "network"
	case errors.Is(err, models.ErrEmptyResult):
		return "empty"
	case errors.Is(err, models.ErrTierDisabled):
		return "disabled"
	default:
		return "other"
	}
}

func joinFailures(failures []string) string {
	return strings.Join(failures, "; ")
}
