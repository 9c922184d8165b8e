// Package allocation splits a trip's day budget across its destinations and
// turns the split into calendar windows.
package allocation

import (
	"fmt"
	"time"

	"github.com/FACorreiaa/loci-itinerary/internal/app/models"
)

// DefaultTripDays is used when a trip carries no usable date information.
// It matches the today..today+2 window sent to the optimization service.
const DefaultTripDays = 3

// Allocate distributes totalDays across destinationCount destinations. The
// first totalDays%destinationCount destinations get one extra day, so the
// result always sums to totalDays. Entries are zero only when totalDays is
// smaller than destinationCount.
func Allocate(totalDays, destinationCount int) ([]int, error) {
	if destinationCount < 1 {
		return nil, models.ErrNoDestinations
	}
	if totalDays < 0 {
		return nil, fmt.Errorf("%w: %d", models.ErrInvalidDayCount, totalDays)
	}

	base := totalDays / destinationCount
	remainder := totalDays % destinationCount

	allocation := make([]int, destinationCount)
	for i := range allocation {
		allocation[i] = base
		if i < remainder {
			allocation[i]++
		}
	}
	return allocation, nil
}

// IsDegenerate reports whether some destination received no days.
func IsDegenerate(allocation []int) bool {
	for _, days := range allocation {
		if days == 0 {
			return true
		}
	}
	return false
}

// DateRangesFor walks the allocation from tripStart and returns one
// contiguous, non-overlapping window per destination.
func DateRangesFor(allocation []int, tripStart time.Time) []models.DayAllocation {
	start := truncateDay(tripStart)
	windows := make([]models.DayAllocation, len(allocation))

	cursor := start
	for i, days := range allocation {
		windows[i] = models.DayAllocation{
			DestinationIndex: i,
			DayCount:         days,
			StartDate:        cursor,
			EndDate:          cursor.AddDate(0, 0, days-1),
		}
		cursor = cursor.AddDate(0, 0, days)
	}
	return windows
}

// AllocateTrip allocates the trip's days over its destinations and names
// each window. Trips without a start date are anchored at now.
func AllocateTrip(trip models.Trip, now time.Time) ([]models.DayAllocation, error) {
	if len(trip.Destinations) == 0 {
		return nil, models.ErrNoDestinations
	}

	totalDays := TotalDays(trip, DefaultTripDays)
	allocation, err := Allocate(totalDays, len(trip.Destinations))
	if err != nil {
		return nil, err
	}

	start := now
	if r, ok := TripDateRange(trip); ok {
		start = r.Start
	}

	windows := DateRangesFor(allocation, start)
	for i := range windows {
		windows[i].DestinationName = trip.Destinations[i].Name
	}
	return windows, nil
}

// TotalDays derives the inclusive length of the trip from its explicit
// dates, then from its display string, then falls back.
func TotalDays(trip models.Trip, fallback int) int {
	if r, ok := TripDateRange(trip); ok {
		return r.Days()
	}
	return fallback
}

// TripDateRange prefers the explicit start/end dates over the display string.
func TripDateRange(trip models.Trip) (models.DateRange, bool) {
	if trip.StartDate != nil && trip.EndDate != nil && !trip.EndDate.Before(*trip.StartDate) {
		return models.DateRange{Start: truncateDay(*trip.StartDate), End: truncateDay(*trip.EndDate)}, true
	}
	if trip.Dates != "" {
		if r, err := ParseDateRange(trip.Dates); err == nil {
			return r, true
		}
	}
	return models.DateRange{}, false
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
