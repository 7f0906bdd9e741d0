package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalletTransactionType indicates the direction of a wallet transaction.
type WalletTransactionType string

const (
	Addition  WalletTransactionType = "addition"
	Deduction WalletTransactionType = "deduction"
)

// WalletTransaction is an immutable ledger entry against a driver's wallet.
// The signed sum of a driver's transactions (additions positive, deductions
// negative) always equals the driver's current WalletBalance. Rows are never
// updated or deleted after creation.
type WalletTransaction struct {
	TransactionID   string                `json:"transactionID"` // Primary Key (e.g., UUID)
	DriverID        string                `json:"driverID"`      // FK -> drivers.driver_id
	CompanyID       *string               `json:"companyID,omitempty"`
	Amount          decimal.Decimal       `json:"amount"` // Positive value
	TransactionType WalletTransactionType `json:"transactionType"`
	ExpenseID       *string               `json:"expenseID,omitempty"` // Nullable link to the originating expense
	Notes           string                `json:"notes"`
	RunningBalance  decimal.Decimal       `json:"runningBalance"` // Balance immediately after this entry
	CreatedAt       time.Time             `json:"createdAt"`
	CreatedBy       string                `json:"createdBy"`
}
