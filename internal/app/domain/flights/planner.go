package flights

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/FACorreiaa/loci-itinerary/internal/app/domain/allocation"
	"github.com/FACorreiaa/loci-itinerary/internal/app/models"
)

// MinDaysPerDestination is the smallest per-hop budget used to place
// intermediate flights.
const MinDaysPerDestination = 2

// PlanRequest describes a multi-city trip to plan flights for.
type PlanRequest struct {
	Origin       string
	Destinations []models.Location
	TripStart    time.Time
	TripEnd      *time.Time
	Travelers    int
	CabinClass   string
}

// Planner builds multi-city flight plans.
type Planner struct {
	advisor *Advisor
	logger  *zap.Logger
}

// NewPlanner creates a planner on top of an advisor.
func NewPlanner(advisor *Advisor, logger *zap.Logger) *Planner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if advisor == nil {
		advisor = NewAdvisor(nil, logger)
	}
	return &Planner{advisor: advisor, logger: logger}
}

// Plan emits one leg per hop plus a return leg when the trip end is known.
// Every outbound hop is timed on its own geography; the return leg always
// departs exactly on TripEnd.
func (p *Planner) Plan(req PlanRequest) ([]models.FlightLeg, error) {
	if len(req.Destinations) == 0 {
		return nil, models.ErrNoDestinations
	}

	l := p.logger.With(zap.String("method", "Plan"),
		zap.String("origin", req.Origin), zap.Int("destinations", len(req.Destinations)))

	passengers := req.Travelers
	if passengers < 1 {
		passengers = 1
	}
	cabin := strings.TrimSpace(req.CabinClass)
	if cabin == "" {
		cabin = models.DefaultCabinClass
	}

	origin := models.Location{Name: req.Origin}
	budget := p.daysPerDestination(req)
	legs := make([]models.FlightLeg, 0, len(req.Destinations)+1)

	first := p.advisor.RecommendBetween(origin, req.Destinations[0])
	legs = append(legs, newLeg(origin.Name, req.Destinations[0].Name,
		AdjustDeparture(req.TripStart, first), passengers, cabin, first))

	for i := 1; i < len(req.Destinations); i++ {
		from, to := req.Destinations[i-1], req.Destinations[i]

		hopDate := req.TripStart.AddDate(0, 0, i*budget)
		if req.TripEnd != nil && hopDate.After(*req.TripEnd) {
			hopDate = *req.TripEnd
		}

		rec := p.advisor.RecommendBetween(from, to)
		legs = append(legs, newLeg(from.Name, to.Name, AdjustDeparture(hopDate, rec), passengers, cabin, rec))
	}

	if req.TripEnd != nil {
		last := req.Destinations[len(req.Destinations)-1]
		legs = append(legs, models.FlightLeg{
			From:       last.Name,
			To:         origin.Name,
			DepartDate: *req.TripEnd,
			Passengers: passengers,
			CabinClass: cabin,
			ReturnLeg:  true,
		})
	}

	l.Info("Flight plan built", zap.Int("legs", len(legs)), zap.Int("days_per_destination", budget))
	return legs, nil
}

// PlanTrip plans flights for a stored trip from origin.
func (p *Planner) PlanTrip(trip models.Trip, origin string, now time.Time) ([]models.FlightLeg, error) {
	if err := trip.Validate(); err != nil {
		return nil, err
	}

	req := PlanRequest{
		Origin:    origin,
		TripStart: now,
		Travelers: trip.TravelerCount(),
	}
	if r, ok := allocation.TripDateRange(trip); ok {
		end := r.End
		req.TripStart = r.Start
		req.TripEnd = &end
	}
	for _, d := range trip.Destinations {
		req.Destinations = append(req.Destinations, d.Location)
	}
	return p.Plan(req)
}

// daysPerDestination is max(2, floor(totalDays/destinations)). Without an
// end date only the minimum applies.
func (p *Planner) daysPerDestination(req PlanRequest) int {
	if req.TripEnd == nil {
		return MinDaysPerDestination
	}
	total := models.DateRange{Start: req.TripStart, End: *req.TripEnd}.Days()
	return max(MinDaysPerDestination, total/len(req.Destinations))
}

func newLeg(from, to string, date time.Time, passengers int, cabin string, rec models.FlightTimingRecommendation) models.FlightLeg {
	timing := rec
	return models.FlightLeg{
		From:        from,
		To:          to,
		DepartDate:  date,
		Passengers:  passengers,
		CabinClass:  cabin,
		AIOptimized: rec.Confidence != models.ConfidenceLow,
		Timing:      &timing,
	}
}
