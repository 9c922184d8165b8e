package flights

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/FACorreiaa/loci-itinerary/internal/app/domain/geo"
	"github.com/FACorreiaa/loci-itinerary/internal/app/models"
)

// Distance band thresholds in km. These are policy, not physics.
const (
	RegionalMaxKm         = 500.0
	ContinentalShortMaxKm = 1500.0
	ContinentalMaxKm      = 3000.0
	IntercontinentalMaxKm = 6000.0
	MajorIntercontinental = 10000.0

	// MaxSameDayTimeZoneDelta is the widest time-zone gap still flown on the
	// trip start date in the continental band.
	MaxSameDayTimeZoneDelta = 3

	// DegreesPerTimeZone approximates one hour of offset per 15° of longitude.
	DegreesPerTimeZone = 15.0
)

// LocationResolver turns a place name into coordinates.
type LocationResolver interface {
	Resolve(name string) (models.Location, error)
}

// Advisor recommends whether to fly the day before the trip starts.
type Advisor struct {
	resolver LocationResolver
	logger   *zap.Logger
}

// NewAdvisor creates an advisor. A nil resolver uses the built-in city table.
func NewAdvisor(resolver LocationResolver, logger *zap.Logger) *Advisor {
	if resolver == nil {
		resolver = geo.NewResolver(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Advisor{resolver: resolver, logger: logger}
}

// Recommend never fails. An unresolvable origin or destination degrades to a
// low-confidence same-day recommendation with zero distance.
func (a *Advisor) Recommend(origin, destination string, tripStart time.Time) models.FlightTimingRecommendation {
	l := a.logger.With(zap.String("method", "Recommend"),
		zap.String("origin", origin), zap.String("destination", destination))

	from, err := a.resolver.Resolve(origin)
	if err != nil {
		l.Debug("Origin not resolved, using default recommendation", zap.Error(err))
		return unresolvedRecommendation(origin, destination)
	}
	to, err := a.resolver.Resolve(destination)
	if err != nil {
		l.Debug("Destination not resolved, using default recommendation", zap.Error(err))
		return unresolvedRecommendation(origin, destination)
	}

	rec := RecommendForLocations(from, to)
	l.Debug("Flight timing recommended",
		zap.Float64("distance_km", rec.DistanceKm),
		zap.Int("tz_delta", rec.TimeZoneDeltaHours),
		zap.Bool("day_before", rec.ShouldDepartDayBefore),
		zap.String("trip_start", tripStart.Format(models.DateLayout)))
	return rec
}

// RecommendBetween uses the coordinates carried by each location and only
// falls back to name resolution for the ones without any.
func (a *Advisor) RecommendBetween(from, to models.Location) models.FlightTimingRecommendation {
	var ok bool
	if from, ok = a.locate(from); !ok {
		return unresolvedRecommendation(from.Name, to.Name)
	}
	if to, ok = a.locate(to); !ok {
		return unresolvedRecommendation(from.Name, to.Name)
	}
	return RecommendForLocations(from, to)
}

func (a *Advisor) locate(loc models.Location) (models.Location, bool) {
	if (loc.Lat != 0 || loc.Lng != 0) && models.ValidateCoordinates(loc.Lat, loc.Lng) {
		return loc, true
	}
	resolved, err := a.resolver.Resolve(loc.Name)
	if err != nil {
		a.logger.Debug("Location not resolved", zap.String("name", loc.Name), zap.Error(err))
		return loc, false
	}
	resolved.Name = loc.Name
	return resolved, true
}

// RecommendForLocations classifies an already resolved pair.
func RecommendForLocations(from, to models.Location) models.FlightTimingRecommendation {
	distance := geo.DistanceKm(from, to)
	tzDelta := TimeZoneDelta(from, to)
	rec := classify(distance, tzDelta)
	rec.Reason = fmt.Sprintf("%s to %s is %.0f km with ~%dh time difference: %s",
		from.Name, to.Name, distance, tzDelta, rec.Reason)
	return rec
}

// AdjustDeparture moves the date one day earlier iff the recommendation
// says to depart the day before.
func AdjustDeparture(date time.Time, rec models.FlightTimingRecommendation) time.Time {
	if rec.ShouldDepartDayBefore {
		return date.AddDate(0, 0, -1)
	}
	return date
}

// TimeZoneDelta estimates whole hours of offset from longitude alone. It
// knows nothing about daylight saving or political time zones.
func TimeZoneDelta(a, b models.Location) int {
	return int(math.Round(math.Abs(a.Lng-b.Lng) / DegreesPerTimeZone))
}

// classify maps distance and time-zone delta onto the policy bands. The
// returned Reason is only the band description.
func classify(distanceKm float64, tzDelta int) models.FlightTimingRecommendation {
	rec := models.FlightTimingRecommendation{
		Confidence:         models.ConfidenceHigh,
		DistanceKm:         math.Round(distanceKm*10) / 10,
		TimeZoneDeltaHours: tzDelta,
	}

	switch {
	case distanceKm < RegionalMaxKm:
		rec.JetLagFactor = models.JetLagLow
		rec.EstimatedDurationBand = "1-2 hours"
		rec.Reason = "regional flight, same-day departure is fine"
	case distanceKm < ContinentalShortMaxKm:
		rec.JetLagFactor = models.JetLagLow
		rec.EstimatedDurationBand = "2-3 hours"
		rec.Reason = "short continental flight, same-day departure is fine"
	case distanceKm < ContinentalMaxKm:
		rec.EstimatedDurationBand = "3-5 hours"
		if tzDelta <= MaxSameDayTimeZoneDelta {
			rec.JetLagFactor = models.JetLagLow
			rec.Reason = "continental flight with a small time difference, same-day departure is fine"
		} else {
			rec.JetLagFactor = models.JetLagMedium
			rec.ShouldDepartDayBefore = true
			rec.Reason = "continental flight across several time zones, depart the day before"
		}
	case distanceKm < IntercontinentalMaxKm:
		rec.JetLagFactor = models.JetLagMedium
		rec.ShouldDepartDayBefore = true
		rec.EstimatedDurationBand = "5-8 hours"
		rec.Reason = "intercontinental flight, depart the day before"
	case distanceKm < MajorIntercontinental:
		rec.JetLagFactor = models.JetLagHigh
		rec.ShouldDepartDayBefore = true
		rec.EstimatedDurationBand = "8-12 hours"
		rec.Reason = "long intercontinental flight, depart the day before to recover from jet lag"
	default:
		rec.JetLagFactor = models.JetLagHigh
		rec.ShouldDepartDayBefore = true
		rec.AdaptationDayRecommended = true
		rec.EstimatedDurationBand = "12+ hours"
		rec.Reason = "extreme long-haul flight, depart the day before and plan an extra adaptation day"
	}
	return rec
}

func unresolvedRecommendation(origin, destination string) models.FlightTimingRecommendation {
	return models.FlightTimingRecommendation{
		ShouldDepartDayBefore: false,
		Reason: fmt.Sprintf("could not locate %s or %s, defaulting to a same-day departure",
			origin, destination),
		Confidence:            models.ConfidenceLow,
		EstimatedDurationBand: "unknown",
		DistanceKm:            0,
		TimeZoneDeltaHours:    0,
		JetLagFactor:          models.JetLagLow,
	}
}
