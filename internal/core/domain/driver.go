package domain

import "github.com/shopspring/decimal"

// DriverStatus indicates whether a driver is currently active in the fleet.
type DriverStatus string

const (
	DriverActive   DriverStatus = "active"
	DriverInactive DriverStatus = "inactive"
)

// Driver represents a driver profile with its wallet. WalletBalance is mutated
// only through ledger operations (submission, rejection refund, top-up); it may
// go negative, no floor is enforced.
type Driver struct {
	DriverID      string          `json:"driverID"` // Primary Key (e.g., UUID)
	UserID        string          `json:"userID"`   // FK -> users.user_id (unique)
	CompanyID     *string         `json:"companyID,omitempty"`
	WalletBalance decimal.Decimal `json:"walletBalance"`
	Status        DriverStatus    `json:"status"`
	AuditFields
}

// DriverWithUser is a read-side join of a driver and its owning user identity.
type DriverWithUser struct {
	Driver
	UserName string `json:"userName"`
	Username string `json:"username"`
}
