package handlers

import (
	"net/http"

	portssvc "github.com/fleetpulse/fleet_expense_app/internal/core/ports/services"
	"github.com/fleetpulse/fleet_expense_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to fleet reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to fleet reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/dashboard", h.getDashboard)
		reportingGroup.GET("/live-map", h.getLiveMap)
		reportingGroup.GET("/monthly-spend/:driverID", h.getMonthlySpend)
	}
}

// getDashboard godoc
// @Summary Generate the admin dashboard summary
// @Description Aggregate counters for the principal's tenant scope since UTC midnight
// @Tags reports
// @Produce json
// @Success 200 {object} dto.DashboardResponse
// @Failure 403 {object} map[string]string "Admin role required"
// @Security BearerAuth
// @Router /reports/dashboard [get]
func (h *reportingHandler) getDashboard(c *gin.Context) {
	principal, ok := mustGetPrincipal(c)
	if !ok {
		return
	}

	summary, err := h.reportingService.Dashboard(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardResponse(summary))
}

// getLiveMap godoc
// @Summary Latest known position per driver
// @Description Positions derived from the most recent located expense per driver
// @Tags reports
// @Produce json
// @Success 200 {object} dto.LiveMapResponse
// @Security BearerAuth
// @Router /reports/live-map [get]
func (h *reportingHandler) getLiveMap(c *gin.Context) {
	principal, ok := mustGetPrincipal(c)
	if !ok {
		return
	}

	positions, err := h.reportingService.LiveMap(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLiveMapResponse(positions))
}

// getMonthlySpend godoc
// @Summary A driver's spend for the current month
// @Tags reports
// @Produce json
// @Param driverID path string true "Driver ID"
// @Success 200 {object} dto.MonthlySpendResponse
// @Security BearerAuth
// @Router /reports/monthly-spend/{driverID} [get]
func (h *reportingHandler) getMonthlySpend(c *gin.Context) {
	principal, ok := mustGetPrincipal(c)
	if !ok {
		return
	}

	spend, err := h.reportingService.MonthlySpend(c.Request.Context(), principal, c.Param("driverID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMonthlySpendResponse(spend))
}
