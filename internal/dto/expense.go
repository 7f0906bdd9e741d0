package dto

import (
	"time"

	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SubmitExpenseRequest defines the data a driver sends with a spend claim.
// Photo and coordinates are required evidence.
type SubmitExpenseRequest struct {
	Amount    decimal.Decimal `json:"amount" binding:"required,dgt0"`
	Category  string          `json:"category" binding:"required,oneof=Fuel Toll Food Other"`
	PhotoURL  string          `json:"photoURL" binding:"required"`
	Latitude  *float64        `json:"latitude" binding:"required"`
	Longitude *float64        `json:"longitude" binding:"required"`
	Accuracy  *float64        `json:"accuracy"` // Optional accuracy radius in meters
	Notes     string          `json:"notes"`    // Optional
}

// DecideExpenseRequest defines the admin decision on a pending expense.
type DecideExpenseRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID          string          `json:"expenseID"`
	DriverID           string          `json:"driverID"`
	DriverName         string          `json:"driverName,omitempty"`
	CompanyID          *string         `json:"companyID,omitempty"`
	Amount             decimal.Decimal `json:"amount"`
	Category           string          `json:"category"`
	Notes              string          `json:"notes"`
	PhotoURL           string          `json:"photoURL"`
	Latitude           float64         `json:"latitude"`
	Longitude          float64         `json:"longitude"`
	Accuracy           *float64        `json:"accuracy,omitempty"`
	OccurredAt         time.Time       `json:"occurredAt"`
	Status             string          `json:"status"`
	DecidedBy          *string         `json:"decidedBy,omitempty"`
	DecidedAt          *time.Time      `json:"decidedAt,omitempty"`
	WalletBalanceAfter decimal.Decimal `json:"walletBalanceAfter"`
	CreatedAt          time.Time       `json:"createdAt"`
}

// ListExpensesParams defines query parameters for listing expenses.
type ListExpensesParams struct {
	Status    string  `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListExpensesResponse wraps a page of expenses.
type ListExpensesResponse struct {
	Expenses  []ExpenseResponse `json:"expenses"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse DTO
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:          e.ExpenseID,
		DriverID:           e.DriverID,
		CompanyID:          e.CompanyID,
		Amount:             e.Amount,
		Category:           string(e.Category),
		Notes:              e.Notes,
		PhotoURL:           e.PhotoURL,
		Latitude:           e.Latitude,
		Longitude:          e.Longitude,
		Accuracy:           e.Accuracy,
		OccurredAt:         e.OccurredAt,
		Status:             string(e.Status),
		DecidedBy:          e.DecidedBy,
		DecidedAt:          e.DecidedAt,
		WalletBalanceAfter: e.WalletBalanceAfter,
		CreatedAt:          e.CreatedAt,
	}
}

// ToListExpensesResponse converts joined expenses and the pagination token to the response DTO
func ToListExpensesResponse(expenses []domain.ExpenseWithDriver, nextToken *string) ListExpensesResponse {
	res := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		r := ToExpenseResponse(&e.Expense)
		r.DriverName = e.DriverName
		res[i] = r
	}
	return ListExpensesResponse{
		Expenses:  res,
		NextToken: nextToken,
	}
}
