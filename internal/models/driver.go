package models

import "github.com/shopspring/decimal"

// DriverStatus mirrors the domain driver status values.
type DriverStatus string

const (
	DriverActive   DriverStatus = "active"
	DriverInactive DriverStatus = "inactive"
)

// Driver represents a driver profile row. WalletBalance is only ever written
// inside a ledger transaction alongside a wallet_transactions insert.
type Driver struct {
	DriverID      string          `db:"driver_id"`
	UserID        string          `db:"user_id"`
	CompanyID     *string         `db:"company_id"` // Nullable for legacy records
	WalletBalance decimal.Decimal `db:"wallet_balance"`
	Status        DriverStatus    `db:"status"`
	AuditFields
}

// DriverWithUser joins a driver row with its owning user identity.
type DriverWithUser struct {
	Driver
	UserName string `db:"user_name"`
	Username string `db:"username"`
}
