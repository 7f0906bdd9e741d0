package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalletTransactionType indicates the direction of a wallet ledger entry.
type WalletTransactionType string

const (
	Addition  WalletTransactionType = "addition"
	Deduction WalletTransactionType = "deduction"
)

// WalletTransaction is an immutable ledger row. Never updated or deleted.
type WalletTransaction struct {
	TransactionID   string                `db:"transaction_id"`
	DriverID        string                `db:"driver_id"`
	CompanyID       *string               `db:"company_id"`
	Amount          decimal.Decimal       `db:"amount"`
	TransactionType WalletTransactionType `db:"transaction_type"`
	ExpenseID       *string               `db:"expense_id"` // Nullable link to the originating expense
	Notes           string                `db:"notes"`
	RunningBalance  decimal.Decimal       `db:"running_balance"`
	CreatedAt       time.Time             `db:"created_at"`
	CreatedBy       string                `db:"created_by"`
}
