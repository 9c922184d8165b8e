package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Trip is the aggregate root every planning operation reads from. Callers
// hand the engine a snapshot; nothing here writes it back.
type Trip struct {
	ID           uuid.UUID     `json:"id" db:"id"`
	Name         string        `json:"name" db:"name"`
	StartDate    *time.Time    `json:"start_date,omitempty" db:"start_date"`
	EndDate      *time.Time    `json:"end_date,omitempty" db:"end_date"`
	Dates        string        `json:"dates,omitempty" db:"dates_label"` // "Mon D - Mon D, YYYY"
	Destinations []Destination `json:"destinations"`
	SavedPlaces  []SavedPlace  `json:"saved_places,omitempty"`
	Travelers    int           `json:"travelers" db:"travelers"`
}

// DefaultMaxTripDays caps the inclusive length of a trip snapshot.
const DefaultMaxTripDays = 365

// Validate checks the invariants that allocation and flight planning rely on,
// with the default length cap.
func (t Trip) Validate() error {
	return t.ValidateWithin(DefaultMaxTripDays)
}

// ValidateWithin is Validate with an explicit cap on the explicit start/end
// span. maxDays < 1 disables the cap.
func (t Trip) ValidateWithin(maxDays int) error {
	if len(t.Destinations) == 0 {
		return ErrNoDestinations
	}
	if t.StartDate == nil || t.EndDate == nil {
		return nil
	}
	if t.EndDate.Before(*t.StartDate) {
		return fmt.Errorf("%w: %s > %s", ErrInvalidDateRange,
			t.StartDate.Format(DateLayout), t.EndDate.Format(DateLayout))
	}
	if days := (DateRange{Start: *t.StartDate, End: *t.EndDate}).Days(); maxDays > 0 && days > maxDays {
		return fmt.Errorf("%w: %d days, limit is %d", ErrTripTooLong, days, maxDays)
	}
	return nil
}

// TravelerCount defaults to a single traveler.
func (t Trip) TravelerCount() int {
	if t.Travelers < 1 {
		return 1
	}
	return t.Travelers
}

// DestinationNames returns the destination names in trip order.
func (t Trip) DestinationNames() []string {
	names := make([]string, len(t.Destinations))
	for i, d := range t.Destinations {
		names[i] = d.Name
	}
	return names
}

// DateLayout is the calendar date format shared with the external services.
const DateLayout = "2006-01-02"

// DateRange is an inclusive calendar window.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Days is the inclusive number of calendar days in the range. It counts
// dates, not elapsed time, so clock times and spans of any length are exact.
func (r DateRange) Days() int {
	days := epochDay(r.End) - epochDay(r.Start)
	if days < 0 {
		return 0
	}
	return int(days) + 1
}

// epochDay is the number of days between the Unix epoch and t's calendar date.
func epochDay(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

// DayAllocation is the slice of the trip owned by one destination. A zero
// DayCount window has EndDate one day before StartDate.
type DayAllocation struct {
	DestinationIndex int       `json:"destination_index"`
	DestinationName  string    `json:"destination_name,omitempty"`
	DayCount         int       `json:"day_count"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
}

// Empty reports whether the destination received no days.
func (a DayAllocation) Empty() bool { return a.DayCount == 0 }
