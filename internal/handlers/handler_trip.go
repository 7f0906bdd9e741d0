package handlers

import (
	"net/http"

	portssvc "github.com/fleetpulse/fleet_expense_app/internal/core/ports/services"
	"github.com/fleetpulse/fleet_expense_app/internal/dto"

	"github.com/gin-gonic/gin"
)

// tripHandler handles HTTP requests related to trips.
type tripHandler struct {
	tripService portssvc.TripSvcFacade
}

// newTripHandler creates a new tripHandler.
func newTripHandler(ts portssvc.TripSvcFacade) *tripHandler {
	return &tripHandler{
		tripService: ts,
	}
}

// registerTripRoutes registers all trip-related routes.
func registerTripRoutes(rg *gin.RouterGroup, tripService portssvc.TripSvcFacade) {
	h := newTripHandler(tripService)

	trips := rg.Group("/trips")
	{
		trips.POST("", h.createTrip)                    // Admin only
		trips.GET("", h.listTrips)                      // Admin only
		trips.PUT("/:tripID/complete", h.completeTrip)  // Admin only
	}
}

// createTrip godoc
// @Summary Start a trip
// @Tags trips
// @Accept json
// @Produce json
// @Param trip body dto.CreateTripRequest true "Trip details"
// @Success 201 {object} dto.TripResponse
// @Security BearerAuth
// @Router /trips [post]
func (h *tripHandler) createTrip(c *gin.Context) {
	var req dto.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	principal, ok := mustGetPrincipal(c)
	if !ok {
		return
	}

	trip, err := h.tripService.CreateTrip(c.Request.Context(), principal, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTripResponse(trip))
}

// completeTrip godoc
// @Summary Complete an ongoing trip
// @Tags trips
// @Param tripID path string true "Trip ID"
// @Success 204
// @Security BearerAuth
// @Router /trips/{tripID}/complete [put]
func (h *tripHandler) completeTrip(c *gin.Context) {
	principal, ok := mustGetPrincipal(c)
	if !ok {
		return
	}

	if err := h.tripService.CompleteTrip(c.Request.Context(), principal, c.Param("tripID")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// listTrips godoc
// @Summary List trips
// @Tags trips
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListTripsResponse
// @Security BearerAuth
// @Router /trips [get]
func (h *tripHandler) listTrips(c *gin.Context) {
	var params dto.ListTripsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	principal, ok := mustGetPrincipal(c)
	if !ok {
		return
	}

	trips, err := h.tripService.ListTrips(c.Request.Context(), principal, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListTripsResponse(trips))
}
