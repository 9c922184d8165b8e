// Package trips reads trip snapshots from Postgres. The planning engine never
// writes trips back, so the repository only exposes reads.
package trips

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/loci-itinerary/internal/app/models"
	"github.com/FACorreiaa/loci-itinerary/internal/app/observability/metrics"
)

// DB is the subset of pgxpool.Pool the repository needs.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ Repository = (*RepositoryImpl)(nil)

// Repository defines the interface for trip snapshot reads
type Repository interface {
	GetTrip(ctx context.Context, tripID uuid.UUID) (*models.Trip, error)
}

type RepositoryImpl struct {
	logger *zap.Logger
	pgpool DB
	psql   sq.StatementBuilderType
}

func NewRepository(pgpool DB, logger *zap.Logger) *RepositoryImpl {
	return &RepositoryImpl{
		logger: logger,
		pgpool: pgpool,
		psql:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// GetTrip loads the trip row, then its destinations and saved places in
// parallel. A missing trip is models.ErrNotFound.
func (r *RepositoryImpl) GetTrip(ctx context.Context, tripID uuid.UUID) (*models.Trip, error) {
	ctx, span := otel.Tracer("TripsRepository").Start(ctx, "GetTrip")
	defer span.End()
	span.SetAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("trip.id", tripID.String()),
	)

	trip, err := r.getTripRow(ctx, tripID)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, "trip query failed")
		}
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		dests, err := r.getDestinations(gctx, tripID)
		if err != nil {
			return err
		}
		trip.Destinations = dests
		return nil
	})
	g.Go(func() error {
		places, err := r.getSavedPlaces(gctx, tripID)
		if err != nil {
			return err
		}
		trip.SavedPlaces = places
		return nil
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "trip children query failed")
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("trip.destinations", len(trip.Destinations)),
		attribute.Int("trip.saved_places", len(trip.SavedPlaces)),
	)
	r.logger.Debug("Trip loaded",
		zap.String("trip_id", tripID.String()),
		zap.Int("destinations", len(trip.Destinations)),
		zap.Int("saved_places", len(trip.SavedPlaces)))
	return trip, nil
}

func (r *RepositoryImpl) getTripRow(ctx context.Context, tripID uuid.UUID) (*models.Trip, error) {
	query, args, err := r.psql.
		Select("id", "name", "start_date", "end_date", "dates_label", "travelers").
		From("trips").
		Where(sq.Eq{"id": tripID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build trip query: %w", err)
	}

	start := time.Now()
	var trip models.Trip
	err = r.pgpool.QueryRow(ctx, query, args...).Scan(
		&trip.ID, &trip.Name, &trip.StartDate, &trip.EndDate, &trip.Dates, &trip.Travelers,
	)
	r.observe(ctx, "get_trip", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("trip %s: %w", tripID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query trip: %w", err)
	}
	return &trip, nil
}

func (r *RepositoryImpl) getDestinations(ctx context.Context, tripID uuid.UUID) ([]models.Destination, error) {
	query, args, err := r.psql.
		Select("position", "name", "COALESCE(lat, 0)", "COALESCE(lng, 0)").
		From("trip_destinations").
		Where(sq.Eq{"trip_id": tripID}).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build destinations query: %w", err)
	}

	start := time.Now()
	rows, err := r.pgpool.Query(ctx, query, args...)
	if err != nil {
		r.observe(ctx, "get_destinations", start, err)
		return nil, fmt.Errorf("failed to query destinations: %w", err)
	}
	defer rows.Close()

	dests := []models.Destination{}
	for rows.Next() {
		var d models.Destination
		if err := rows.Scan(&d.Position, &d.Name, &d.Lat, &d.Lng); err != nil {
			r.observe(ctx, "get_destinations", start, err)
			return nil, fmt.Errorf("failed to scan destination row: %w", err)
		}
		dests = append(dests, d)
	}
	err = rows.Err()
	r.observe(ctx, "get_destinations", start, err)
	if err != nil {
		return nil, fmt.Errorf("error iterating destination rows: %w", err)
	}
	return dests, nil
}

func (r *RepositoryImpl) getSavedPlaces(ctx context.Context, tripID uuid.UUID) ([]models.SavedPlace, error) {
	query, args, err := r.psql.
		Select("id", "name", "category", "rating", "lat", "lng", "priority",
			"estimated_time", "destination_name", "position_order").
		From("saved_places").
		Where(sq.Eq{"trip_id": tripID}).
		OrderBy("position_order ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build saved places query: %w", err)
	}

	start := time.Now()
	rows, err := r.pgpool.Query(ctx, query, args...)
	if err != nil {
		r.observe(ctx, "get_saved_places", start, err)
		return nil, fmt.Errorf("failed to query saved places: %w", err)
	}
	defer rows.Close()

	places := []models.SavedPlace{}
	for rows.Next() {
		var p models.SavedPlace
		var priority string
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Rating, &p.Lat, &p.Lng,
			&priority, &p.EstimatedTime, &p.DestinationName, &p.PositionOrder); err != nil {
			r.observe(ctx, "get_saved_places", start, err)
			return nil, fmt.Errorf("failed to scan saved place row: %w", err)
		}
		p.Priority = models.ParsePriority(priority)
		places = append(places, p)
	}
	err = rows.Err()
	r.observe(ctx, "get_saved_places", start, err)
	if err != nil {
		return nil, fmt.Errorf("error iterating saved place rows: %w", err)
	}
	return places, nil
}

func (r *RepositoryImpl) observe(ctx context.Context, op string, start time.Time, err error) {
	m := metrics.Get()
	attrs := metric.WithAttributes(attribute.String("operation", op))
	m.DBQueryDurationSeconds.Record(ctx, time.Since(start).Seconds(), attrs)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		m.DBQueryErrorsTotal.Add(ctx, 1, attrs)
	}
}
