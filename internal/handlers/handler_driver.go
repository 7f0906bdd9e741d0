package handlers

import (
	"net/http"

	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
	portssvc "github.com/fleetpulse/fleet_expense_app/internal/core/ports/services"
	"github.com/fleetpulse/fleet_expense_app/internal/dto"

	"github.com/gin-gonic/gin"
)

// driverHandler handles HTTP requests related to drivers and their wallets.
type driverHandler struct {
	driverService portssvc.DriverSvcFacade
	walletService portssvc.WalletSvcFacade
}

// newDriverHandler creates a new driverHandler.
func newDriverHandler(ds portssvc.DriverSvcFacade, ws portssvc.WalletSvcFacade) *driverHandler {
	return &driverHandler{
		driverService: ds,
		walletService: ws,
	}
}

// registerDriverRoutes registers all driver-related routes.
func registerDriverRoutes(rg *gin.RouterGroup, driverService portssvc.DriverSvcFacade, walletService portssvc.WalletSvcFacade) {
	h := newDriverHandler(driverService, walletService)

	drivers := rg.Group("/drivers")
	{
		drivers.GET("", h.listDrivers)                              // Admin only
		drivers.GET("/me", h.getOwnDriver)                          // Driver
		drivers.GET("/:driverID", h.getDriver)                      // Admin only
		drivers.PUT("/:driverID/status", h.setDriverStatus)         // Admin only
		drivers.POST("/:driverID/topup", h.topUpWallet)             // Admin only
		drivers.GET("/:driverID/transactions", h.listTransactions)  // Admin only
	}
}

// listDrivers godoc
// @Summary List drivers
// @Description Lists tenant-scoped drivers with user identity and wallet balance
// @Tags drivers
// @Produce json
// @Success 200 {object} dto.ListDriversResponse
// @Security BearerAuth
// @Router /drivers [get]
func (h *driverHandler) listDrivers(c *gin.Context) {
	var params dto.ListDriversParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	principal, ok := mustGetPrincipal(c)
	if !ok {
		return
	}

	drivers, err := h.driverService.ListDrivers(c.Request.Context(), principal, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListDriversResponse(drivers))
}

// getOwnDriver godoc
// @Summary Get own driver profile
// @Tags drivers
// @Produce json
// @Success 200 {object} dto.DriverResponse
// @Security BearerAuth
// @Router /drivers/me [get]
func (h *driverHandler) getOwnDriver(c *gin.Context) {
	principal, ok := mustGetPrincipal(c)
	if !ok {
		return
	}

	driver, err := h.driverService.GetOwnDriver(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDriverResponse(driver))
}

// getDriver godoc
// @Summary Get a driver by ID
// @Tags drivers
// @Produce json
// @Param driverID path string true "Driver ID"
// @Success 200 {object} dto.DriverResponse
// @Security BearerAuth
// @Router /drivers/{driverID} [get]
func (h *driverHandler) getDriver(c *gin.Context) {
	principal, ok := mustGetPrincipal(c)
	if !ok {
		return
	}

	driver, err := h.driverService.GetDriverByID(c.Request.Context(), principal, c.Param("driverID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDriverResponse(driver))
}

// setDriverStatus godoc
// @Summary Activate or deactivate a driver
// @Tags drivers
// @Accept json
// @Param driverID path string true "Driver ID"
// @Param status body dto.UpdateDriverStatusRequest true "New status"
// @Success 204
// @Security BearerAuth
// @Router /drivers/{driverID}/status [put]
func (h *driverHandler) setDriverStatus(c *gin.Context) {
	var req dto.UpdateDriverStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	principal, ok := mustGetPrincipal(c)
	if !ok {
		return
	}

	if err := h.driverService.SetDriverStatus(c.Request.Context(), principal, c.Param("driverID"), domain.DriverStatus(req.Status)); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// topUpWallet godoc
// @Summary Credit a driver's wallet
// @Description Atomically credits the wallet and appends the addition ledger entry
// @Tags drivers
// @Accept json
// @Produce json
// @Param driverID path string true "Driver ID"
// @Param topup body dto.TopUpRequest true "Top-up amount and optional note"
// @Success 200 {object} dto.TopUpResponse
// @Failure 400 {object} map[string]string "Amount not positive"
// @Failure 404 {object} map[string]string "Driver outside tenant scope"
// @Security BearerAuth
// @Router /drivers/{driverID}/topup [post]
func (h *driverHandler) topUpWallet(c *gin.Context) {
	driverID := c.Param("driverID")

	var req dto.TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	principal, ok := mustGetPrincipal(c)
	if !ok {
		return
	}

	newBalance, err := h.walletService.TopUpWallet(c.Request.Context(), principal, driverID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TopUpResponse{
		DriverID:   driverID,
		NewBalance: newBalance,
	})
}

// listTransactions godoc
// @Summary List a driver's wallet transactions
// @Tags drivers
// @Produce json
// @Param driverID path string true "Driver ID"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListWalletTransactionsResponse
// @Security BearerAuth
// @Router /drivers/{driverID}/transactions [get]
func (h *driverHandler) listTransactions(c *gin.Context) {
	var params dto.ListWalletTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	principal, ok := mustGetPrincipal(c)
	if !ok {
		return
	}

	txns, nextToken, err := h.walletService.ListTransactions(c.Request.Context(), principal, c.Param("driverID"), params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListWalletTransactionsResponse(txns, nextToken))
}
