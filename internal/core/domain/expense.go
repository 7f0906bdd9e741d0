package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory classifies a spend claim.
type ExpenseCategory string

const (
	CategoryFuel  ExpenseCategory = "Fuel"
	CategoryToll  ExpenseCategory = "Toll"
	CategoryFood  ExpenseCategory = "Food"
	CategoryOther ExpenseCategory = "Other"
)

// ValidCategory reports whether c is one of the known expense categories.
func ValidCategory(c ExpenseCategory) bool {
	switch c {
	case CategoryFuel, CategoryToll, CategoryFood, CategoryOther:
		return true
	}
	return false
}

// ExpenseStatus is the workflow state of an expense. The only transitions are
// pending to approved and pending to rejected; both are terminal.
type ExpenseStatus string

const (
	ExpensePending  ExpenseStatus = "pending"
	ExpenseApproved ExpenseStatus = "approved"
	ExpenseRejected ExpenseStatus = "rejected"
)

// Expense is a driver-submitted spend claim requiring photo and location
// evidence and an admin decision. Rows are never deleted, even when the owning
// driver is removed.
type Expense struct {
	ExpenseID          string          `json:"expenseID"` // Primary Key (e.g., UUID)
	DriverID           string          `json:"driverID"`  // FK -> drivers.driver_id
	CompanyID          *string         `json:"companyID,omitempty"`
	Amount             decimal.Decimal `json:"amount"` // Positive value
	Category           ExpenseCategory `json:"category"`
	Notes              string          `json:"notes"`
	PhotoURL           string          `json:"photoURL"` // Required evidence reference
	Latitude           float64         `json:"latitude"`
	Longitude          float64         `json:"longitude"`
	Accuracy           *float64        `json:"accuracy,omitempty"` // Optional accuracy radius in meters
	OccurredAt         time.Time       `json:"occurredAt"`
	Status             ExpenseStatus   `json:"status"`
	DecidedBy          *string         `json:"decidedBy,omitempty"` // UserID of the approving/rejecting admin
	DecidedAt          *time.Time      `json:"decidedAt,omitempty"`
	WalletBalanceAfter decimal.Decimal `json:"walletBalanceAfter"` // Balance snapshot after the submission debit
	AuditFields
}

// ExpenseWithDriver is a read-side join of an expense with driver and user identity.
type ExpenseWithDriver struct {
	Expense
	DriverName     string `json:"driverName"`
	DriverUsername string `json:"driverUsername"`
}
