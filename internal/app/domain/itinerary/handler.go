package itinerary

import (
	"errors"
	"net/http"

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
	return &Handler{service: service, log: log}
}

// GenerateBody is the body of POST /api/v1/itineraries/generate.
type GenerateBody struct {
	Trip        models.Trip        `json:"trip"`
	Preferences models.Preferences `json:"preferences"`
}

// TripGenerateBody is the optional body of POST /api/v1/trips/:id/itinerary.
type TripGenerateBody struct {
	Preferences models.Preferences `json:"preferences"`
}

// Generate handles POST /api/v1/itineraries/generate
func (h *Handler) Generate(c *gin.Context) {
	var body GenerateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if body.Trip.ID == uuid.Nil {
		body.Trip.ID = uuid.New()
	}

	gen, err := h.service.Generate(c.Request.Context(), body.Trip, body.Preferences)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gen)
}

// GenerateForTrip handles POST /api/v1/trips/:id/itinerary
func (h *Handler) GenerateForTrip(c *gin.Context) {
	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trip ID"})
		return
	}

	var body TripGenerateBody
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
	}

	gen, err := h.service.GenerateForTrip(c.Request.Context(), tripID, body.Preferences)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gen)
}

// OptimizerHealth handles GET /api/v1/optimizer/health
func (h *Handler) OptimizerHealth(c *gin.Context) {
	status, err := h.service.OptimizerHealth(c.Request.Context())
	if err != nil {
		if errors.Is(err, models.ErrTierDisabled) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "disabled"})
			return
		}
		h.log.Warn("Optimizer health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNoDestinations):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Trip has no destinations"})
	case errors.Is(err, models.ErrInvalidDateRange), errors.Is(err, models.ErrTripTooLong):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
	default:
		h.log.Error("Itinerary generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate itinerary"})
	}
}
