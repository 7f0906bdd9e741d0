package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
	portssvc "github.com/fleetpulse/fleet_expense_app/internal/core/ports/services"
	"github.com/fleetpulse/fleet_expense_app/internal/dto"
	"github.com/fleetpulse/fleet_expense_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// expenseHandler handles HTTP requests related to expenses.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

// newExpenseHandler creates a new expenseHandler.
func newExpenseHandler(es portssvc.ExpenseSvcFacade) *expenseHandler {
	return &expenseHandler{
		expenseService: es,
	}
}

// RegisterExpenseRoutes registers all expense-related routes.
func RegisterExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade) {
	h := newExpenseHandler(expenseService)

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.submitExpense)                    // Driver
		expenses.GET("", h.listExpenses)                      // Admin only
		expenses.GET("/export", h.exportExpenses)             // Admin only
		expenses.GET("/:expenseID", h.getExpense)             // Own or admin
		expenses.PUT("/:expenseID/decision", h.decideExpense) // Admin only
	}
}

// submitExpense godoc
// @Summary Submit an expense
// @Description Creates a pending expense and debits the caller's wallet atomically
// @Tags expenses
// @Accept json
// @Produce json
// @Param expense body dto.SubmitExpenseRequest true "Expense details"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "No active driver profile"
// @Security BearerAuth
// @Router /expenses [post]
func (h *expenseHandler) submitExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SubmitExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	principal, ok := mustGetPrincipal(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.SubmitExpense(c.Request.Context(), principal, req)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Expense submitted", slog.String("expense_id", expense.ExpenseID))
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

// listExpenses godoc
// @Summary List expenses
// @Description Lists tenant-scoped expenses with driver identity, newest first
// @Tags expenses
// @Produce json
// @Param status query string false "Filter by status" Enums(pending, approved, rejected)
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListExpensesResponse
// @Security BearerAuth
// @Router /expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	var params dto.ListExpensesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	principal, ok := mustGetPrincipal(c)
	if !ok {
		return
	}

	expenses, nextToken, err := h.expenseService.ListExpenses(c.Request.Context(), principal, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListExpensesResponse(expenses, nextToken))
}

// getExpense godoc
// @Summary Get an expense by ID
// @Tags expenses
// @Produce json
// @Param expenseID path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Security BearerAuth
// @Router /expenses/{expenseID} [get]
func (h *expenseHandler) getExpense(c *gin.Context) {
	principal, ok := mustGetPrincipal(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.GetExpenseByID(c.Request.Context(), principal, c.Param("expenseID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// decideExpense godoc
// @Summary Decide a pending expense
// @Description Approves or rejects a pending expense; rejection refunds the debit
// @Tags expenses
// @Accept json
// @Produce json
// @Param expenseID path string true "Expense ID"
// @Param decision body dto.DecideExpenseRequest true "approved or rejected"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 409 {object} map[string]string "Expense already decided"
// @Security BearerAuth
// @Router /expenses/{expenseID}/decision [put]
func (h *expenseHandler) decideExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("expenseID")

	var req dto.DecideExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	principal, ok := mustGetPrincipal(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.DecideExpense(c.Request.Context(), principal, expenseID, domain.ExpenseStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Expense decided", slog.String("expense_id", expenseID), slog.String("status", req.Status))
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// exportExpenses godoc
// @Summary Export expenses as xlsx
// @Tags expenses
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /expenses/export [get]
func (h *expenseHandler) exportExpenses(c *gin.Context) {
	principal, ok := mustGetPrincipal(c)
	if !ok {
		return
	}

	workbook, err := h.expenseService.ExportExpenses(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("expenses-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}
