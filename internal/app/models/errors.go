package models

import (
	"errors"
	"fmt"
)

// Domain specific errors for itinerary generation and flight planning.
var (
	ErrNotFound           = errors.New("requested item not found")
	ErrBadRequest         = errors.New("bad request")
	ErrValidation         = errors.New("validation failed")
	ErrNoDestinations     = errors.New("trip has no destinations")
	ErrInvalidDayCount    = errors.New("total trip days cannot be negative")
	ErrInvalidDateRange   = errors.New("trip end date is before start date")
	ErrTripTooLong        = errors.New("trip exceeds the maximum length")
	ErrLocationUnresolved = errors.New("location could not be resolved")
	ErrDateParse          = errors.New("malformed trip date range")

	// Tier failures. None of these reach the orchestrator's caller.
	ErrNetwork          = errors.New("network error")
	ErrTimeout          = errors.New("request timed out")
	ErrNonSuccessStatus = errors.New("non-success status")
	ErrEmptyResult      = errors.New("tier returned an empty itinerary")
	ErrTierDisabled     = errors.New("tier not configured")
)

// StatusError carries the HTTP status of a non-2xx upstream response.
type StatusError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Service, e.StatusCode)
}

func (e *StatusError) Unwrap() error { return ErrNonSuccessStatus }

// LocationError names the location that failed to resolve.
type LocationError struct {
	Name string
}

func (e *LocationError) Error() string {
	return fmt.Sprintf("location %q could not be resolved", e.Name)
}

func (e *LocationError) Unwrap() error { return ErrLocationUnresolved }
