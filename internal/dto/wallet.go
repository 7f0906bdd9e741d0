package dto

import (
	"time"

	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TopUpRequest defines the data for an administrative wallet credit.
type TopUpRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required,dgt0"`
	Notes  string          `json:"notes"` // Defaults to "Admin top-up" when omitted
}

// TopUpResponse returns the balance after a successful top-up.
type TopUpResponse struct {
	DriverID   string          `json:"driverID"`
	NewBalance decimal.Decimal `json:"newBalance"`
}

// WalletTransactionResponse defines the data returned for a ledger entry.
type WalletTransactionResponse struct {
	TransactionID   string          `json:"transactionID"`
	DriverID        string          `json:"driverID"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionType string          `json:"transactionType"`
	ExpenseID       *string         `json:"expenseID,omitempty"`
	Notes           string          `json:"notes"`
	RunningBalance  decimal.Decimal `json:"runningBalance"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ListWalletTransactionsParams defines query parameters for listing wallet transactions.
type ListWalletTransactionsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListWalletTransactionsResponse wraps a page of wallet transactions.
type ListWalletTransactionsResponse struct {
	Transactions []WalletTransactionResponse `json:"transactions"`
	NextToken    *string                     `json:"nextToken,omitempty"`
}

// ToWalletTransactionResponse converts a domain.WalletTransaction to its response DTO
func ToWalletTransactionResponse(t *domain.WalletTransaction) WalletTransactionResponse {
	return WalletTransactionResponse{
		TransactionID:   t.TransactionID,
		DriverID:        t.DriverID,
		Amount:          t.Amount,
		TransactionType: string(t.TransactionType),
		ExpenseID:       t.ExpenseID,
		Notes:           t.Notes,
		RunningBalance:  t.RunningBalance,
		CreatedAt:       t.CreatedAt,
	}
}

// ToListWalletTransactionsResponse converts transactions and the pagination token to the response DTO
func ToListWalletTransactionsResponse(txns []domain.WalletTransaction, nextToken *string) ListWalletTransactionsResponse {
	res := make([]WalletTransactionResponse, len(txns))
	for i, t := range txns {
		res[i] = ToWalletTransactionResponse(&t)
	}
	return ListWalletTransactionsResponse{
		Transactions: res,
		NextToken:    nextToken,
	}
}
