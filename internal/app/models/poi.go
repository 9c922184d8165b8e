package models

import (
	"strings"

	"github.com/google/uuid"
)

// Priority is how much the traveler cares about a saved place.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ParsePriority normalizes free text into a Priority, defaulting to medium.
func ParsePriority(s string) Priority {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityHigh:
		return PriorityHigh
	case PriorityLow:
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// SavedPlace is a point of interest the user attached to a trip. It is
// associated with a Destination by DestinationName only.
type SavedPlace struct {
	ID              uuid.UUID `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Category        string    `json:"category" db:"category"`
	Rating          *float64  `json:"rating,omitempty" db:"rating"`
	Lat             *float64  `json:"lat,omitempty" db:"lat"`
	Lng             *float64  `json:"lng,omitempty" db:"lng"`
	Priority        Priority  `json:"priority" db:"priority"`
	EstimatedTime   int       `json:"estimated_time" db:"estimated_time"` // minutes
	DestinationName string    `json:"destination_name" db:"destination_name"`
	PositionOrder   int       `json:"position_order" db:"position_order"`
}

// Coordinates returns the place as a Location when both coordinates are
// present and in range.
func (p SavedPlace) Coordinates() (Location, bool) {
	if p.Lat == nil || p.Lng == nil {
		return Location{}, false
	}
	if !ValidateCoordinates(*p.Lat, *p.Lng) {
		return Location{}, false
	}
	return Location{Name: p.Name, Lat: *p.Lat, Lng: *p.Lng}, true
}

// BelongsTo matches the place to a destination name, ignoring case and any
// ", Country" suffix on either side.
func (p SavedPlace) BelongsTo(destination string) bool {
	a := normalizePlaceName(p.DestinationName)
	b := normalizePlaceName(destination)
	return a != "" && a == b
}

func normalizePlaceName(s string) string {
	if i := strings.Index(s, ","); i >= 0 {
		s = s[:i]
	}
	return strings.ToLower(strings.TrimSpace(s))
}
