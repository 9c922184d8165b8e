package flights

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/FACorreiaa/loci-itinerary/internal/app/models"
)

type Handler struct {
	service Service
	log     *zap.Logger
}

func NewHandler(service Service, log *zap.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log,
	}
}

// TimingRequest is the body of POST /api/v1/flights/timing.
type TimingRequest struct {
	Origin        string `json:"origin" binding:"required"`
	Destination   string `json:"destination" binding:"required"`
	TripStartDate string `json:"trip_start_date" binding:"required"`
}

// TimingResponse pairs the recommendation with the adjusted departure.
type TimingResponse struct {
	Recommendation models.FlightTimingRecommendation `json:"recommendation"`
	DepartureDate  string                            `json:"departure_date"`
	TripStartDate  string                            `json:"trip_start_date"`
}

// PlanBody is the body of POST /api/v1/flights/plan.
type PlanBody struct {
	Origin       string            `json:"origin" binding:"required"`
	Destinations []models.Location `json:"destinations"`
	StartDate    string            `json:"start_date" binding:"required"`
	EndDate      string            `json:"end_date,omitempty"`
	Travelers    int               `json:"travelers,omitempty"`
	CabinClass   string            `json:"cabin_class,omitempty"`
}

// TripFlightsBody is the body of POST /api/v1/trips/:id/flights.
type TripFlightsBody struct {
	Origin string `json:"origin" binding:"required"`
}

// RecommendTiming handles POST /api/v1/flights/timing
func (h *Handler) RecommendTiming(c *gin.Context) {
	var req TimingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	start, err := time.Parse(models.DateLayout, req.TripStartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "trip_start_date must be YYYY-MM-DD"})
		return
	}

	rec := h.service.RecommendTiming(c.Request.Context(), req.Origin, req.Destination, start)
	c.JSON(http.StatusOK, TimingResponse{
		Recommendation: rec,
		DepartureDate:  AdjustDeparture(start, rec).Format(models.DateLayout),
		TripStartDate:  start.Format(models.DateLayout),
	})
}

// PlanFlights handles POST /api/v1/flights/plan
func (h *Handler) PlanFlights(c *gin.Context) {
	var body PlanBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	req, err := body.toPlanRequest()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	legs, err := h.service.PlanFlights(c.Request.Context(), req)
	if err != nil {
		h.respondPlanError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"legs": legs})
}

// PlanTripFlights handles POST /api/v1/trips/:id/flights
func (h *Handler) PlanTripFlights(c *gin.Context) {
	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trip ID"})
		return
	}

	var body TripFlightsBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	legs, err := h.service.PlanTripFlights(c.Request.Context(), tripID, body.Origin)
	if err != nil {
		h.respondPlanError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"legs": legs})
}

func (h *Handler) respondPlanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNoDestinations):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Nothing to plan: the trip has no destinations"})
	case errors.Is(err, models.ErrInvalidDateRange), errors.Is(err, models.ErrTripTooLong):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
	default:
		h.log.Error("Flight planning failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to plan flights"})
	}
}

func (b PlanBody) toPlanRequest() (PlanRequest, error) {
	start, err := time.Parse(models.DateLayout, b.StartDate)
	if err != nil {
		return PlanRequest{}, errors.New("start_date must be YYYY-MM-DD")
	}

	req := PlanRequest{
		Origin:       b.Origin,
		Destinations: b.Destinations,
		TripStart:    start,
		Travelers:    b.Travelers,
		CabinClass:   b.CabinClass,
	}
	if b.EndDate != "" {
		end, err := time.Parse(models.DateLayout, b.EndDate)
		if err != nil {
			return PlanRequest{}, errors.New("end_date must be YYYY-MM-DD")
		}
		if end.Before(start) {
			return PlanRequest{}, models.ErrInvalidDateRange
		}
		req.TripEnd = &end
	}
	return req, nil
}
