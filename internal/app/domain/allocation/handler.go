package allocation

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/loci-itinerary/internal/app/models"
)

type Handler struct {
	log     *zap.Logger
	now     func() time.Time
	maxDays int
}

func NewHandler(log *zap.Logger) *Handler {
	return &Handler{log: log, now: time.Now, maxDays: models.DefaultMaxTripDays}
}

// WithMaxTripDays sets the largest day count the handler will allocate.
// Values below one keep the default.
func (h *Handler) WithMaxTripDays(days int) *Handler {
	if days > 0 {
		h.maxDays = days
	}
	return h
}

// AllocateBody is the body of POST /api/v1/allocations. TotalDays wins over
// the dates; with neither the default trip length applies.
type AllocateBody struct {
	Destinations []string `json:"destinations"`
	TotalDays    *int     `json:"total_days,omitempty"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	Dates        string   `json:"dates,omitempty"`
}

// AllocateResponse carries the raw split and its calendar windows.
type AllocateResponse struct {
	TotalDays  int                    `json:"total_days"`
	Allocation []int                  `json:"allocation"`
	Degenerate bool                   `json:"degenerate"`
	Windows    []models.DayAllocation `json:"windows"`
}

// Allocate handles POST /api/v1/allocations
func (h *Handler) Allocate(c *gin.Context) {
	var body AllocateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	trip := models.Trip{Dates: body.Dates}
	for i, name := range body.Destinations {
		trip.Destinations = append(trip.Destinations, models.Destination{
			Location: models.Location{Name: name},
			Position: i,
		})
	}
	for _, d := range []struct {
		raw string
		dst **time.Time
	}{{body.StartDate, &trip.StartDate}, {body.EndDate, &trip.EndDate}} {
		if d.raw == "" {
			continue
		}
		t, err := time.Parse(models.DateLayout, d.raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Dates must be YYYY-MM-DD"})
			return
		}
		*d.dst = &t
	}
	if err := trip.ValidateWithin(h.maxDays); err != nil && !errors.Is(err, models.ErrNoDestinations) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	total := TotalDays(trip, DefaultTripDays)
	if body.TotalDays != nil {
		total = *body.TotalDays
	}
	if h.maxDays > 0 && total > h.maxDays {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%s: %d days, limit is %d", models.ErrTripTooLong, total, h.maxDays)})
		return
	}

	split, err := Allocate(total, len(trip.Destinations))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNoDestinations):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "At least one destination is required"})
		case errors.Is(err, models.ErrInvalidDayCount):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.log.Error("Allocation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to allocate days"})
		}
		return
	}

	start := h.now()
	if r, ok := TripDateRange(trip); ok {
		start = r.Start
	}
	windows := DateRangesFor(split, start)
	for i := range windows {
		windows[i].DestinationName = trip.Destinations[i].Name
	}

	if IsDegenerate(split) {
		h.log.Warn("More destinations than days",
			zap.Int("total_days", total),
			zap.Int("destinations", len(split)))
	}

	c.JSON(http.StatusOK, AllocateResponse{
		TotalDays:  total,
		Allocation: split,
		Degenerate: IsDegenerate(split),
		Windows:    windows,
	})
}
