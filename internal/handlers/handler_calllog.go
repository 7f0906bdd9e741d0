package handlers

import (
	"net/http"

	portssvc "github.com/fleetpulse/fleet_expense_app/internal/core/ports/services"
	"github.com/fleetpulse/fleet_expense_app/internal/dto"

	"github.com/gin-gonic/gin"
)

// callLogHandler handles HTTP requests related to call logs.
type callLogHandler struct {
	callLogService portssvc.CallLogSvcFacade
}

// newCallLogHandler creates a new callLogHandler.
func newCallLogHandler(cs portssvc.CallLogSvcFacade) *callLogHandler {
	return &callLogHandler{
		callLogService: cs,
	}
}

// registerCallLogRoutes registers all call-log-related routes.
func registerCallLogRoutes(rg *gin.RouterGroup, callLogService portssvc.CallLogSvcFacade) {
	h := newCallLogHandler(callLogService)

	callLogs := rg.Group("/call-logs")
	{
		callLogs.POST("/ingest", h.ingestCallLogs) // Admin only
		callLogs.GET("", h.listCallLogs)           // Admin only
	}
}

// ingestCallLogs godoc
// @Summary Ingest a batch of call logs
// @Description Persists call records from a device export; duplicates are skipped
// @Tags call-logs
// @Accept json
// @Produce json
// @Param logs body dto.IngestCallLogsRequest true "Call log batch"
// @Success 200 {object} dto.IngestCallLogsResponse
// @Security BearerAuth
// @Router /call-logs/ingest [post]
func (h *callLogHandler) ingestCallLogs(c *gin.Context) {
	var req dto.IngestCallLogsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	principal, ok := mustGetPrincipal(c)
	if !ok {
		return
	}

	inserted, skipped, err := h.callLogService.IngestCallLogs(c.Request.Context(), principal, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.IngestCallLogsResponse{
		Inserted: inserted,
		Skipped:  skipped,
	})
}

// listCallLogs godoc
// @Summary List call logs
// @Tags call-logs
// @Produce json
// @Param phoneNumber query string false "Filter by phone number substring"
// @Param callType query string false "Filter by type" Enums(incoming, outgoing, missed)
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Param limit query int false "Page size, capped at 200" default(100)
// @Success 200 {object} dto.ListCallLogsResponse
// @Security BearerAuth
// @Router /call-logs [get]
func (h *callLogHandler) listCallLogs(c *gin.Context) {
	var params dto.ListCallLogsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	principal, ok := mustGetPrincipal(c)
	if !ok {
		return
	}

	logs, err := h.callLogService.ListCallLogs(c.Request.Context(), principal, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListCallLogsResponse(logs))
}
