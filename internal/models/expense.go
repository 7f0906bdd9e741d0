package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseStatus mirrors the domain workflow states.
type ExpenseStatus string

const (
	ExpensePending  ExpenseStatus = "pending"
	ExpenseApproved ExpenseStatus = "approved"
	ExpenseRejected ExpenseStatus = "rejected"
)

// Expense represents a spend claim row. Rows survive driver deletion for audit.
type Expense struct {
	ExpenseID          string          `db:"expense_id"`
	DriverID           string          `db:"driver_id"`
	CompanyID          *string         `db:"company_id"`
	Amount             decimal.Decimal `db:"amount"`
	Category           string          `db:"category"`
	Notes              string          `db:"notes"`
	PhotoURL           string          `db:"photo_url"`
	Latitude           float64         `db:"latitude"`
	Longitude          float64         `db:"longitude"`
	Accuracy           *float64        `db:"accuracy"`
	OccurredAt         time.Time       `db:"occurred_at"`
	Status             ExpenseStatus   `db:"status"`
	DecidedBy          *string         `db:"decided_by"`
	DecidedAt          *time.Time      `db:"decided_at"`
	WalletBalanceAfter decimal.Decimal `db:"wallet_balance_after"`
	AuditFields
}

// ExpenseWithDriver joins an expense row with driver and user identity.
type ExpenseWithDriver struct {
	Expense
	DriverName     string `db:"driver_name"`
	DriverUsername string `db:"driver_username"`
}
