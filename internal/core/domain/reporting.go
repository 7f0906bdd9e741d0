package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummary holds the aggregate counters shown on the admin dashboard.
// All figures are tenant-scoped and computed since UTC midnight where dated.
type DashboardSummary struct {
	ActiveDrivers      int             `json:"activeDrivers"`
	TripsToday         int             `json:"tripsToday"`
	ApprovedSpendToday decimal.Decimal `json:"approvedSpendToday"`
	TotalWalletBalance decimal.Decimal `json:"totalWalletBalance"`
	CallsToday         int             `json:"callsToday"`
	GeneratedAt        time.Time       `json:"generatedAt"`
}

// LivePosition is the latest known position of a driver, derived from the most
// recent expense submission carrying location data.
type LivePosition struct {
	DriverID   string    `json:"driverID"`
	DriverName string    `json:"driverName"`
	Username   string    `json:"username"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Accuracy   *float64  `json:"accuracy,omitempty"`
	ReportedAt time.Time `json:"reportedAt"`
	ExpenseID  string    `json:"expenseID"`
}

// MonthlySpend summarizes a driver's deductions since the first day of the
// current calendar month alongside the current balance.
type MonthlySpend struct {
	DriverID       string          `json:"driverID"`
	MonthStart     time.Time       `json:"monthStart"`
	TotalSpend     decimal.Decimal `json:"totalSpend"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
}
