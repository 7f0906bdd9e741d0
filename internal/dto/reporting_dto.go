package dto

import (
	"time"

	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DashboardResponse represents the admin dashboard summary response
type DashboardResponse struct {
	ActiveDrivers      int             `json:"activeDrivers"`
	TripsToday         int             `json:"tripsToday"`
	ApprovedSpendToday decimal.Decimal `json:"approvedSpendToday"`
	TotalWalletBalance decimal.Decimal `json:"totalWalletBalance"`
	CallsToday         int             `json:"callsToday"`
	GeneratedAt        time.Time       `json:"generatedAt"`
}

// LivePositionResponse represents a driver's latest known position
type LivePositionResponse struct {
	DriverID   string    `json:"driverID"`
	DriverName string    `json:"driverName"`
	Username   string    `json:"username"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Accuracy   *float64  `json:"accuracy,omitempty"`
	ReportedAt time.Time `json:"reportedAt"`
	ExpenseID  string    `json:"expenseID"`
}

// LiveMapResponse wraps the latest positions of all drivers in scope
type LiveMapResponse struct {
	Positions []LivePositionResponse `json:"positions"`
}

// MonthlySpendResponse represents a driver's spend for the current month
type MonthlySpendResponse struct {
	DriverID       string          `json:"driverID"`
	MonthStart     string          `json:"monthStart"`
	TotalSpend     decimal.Decimal `json:"totalSpend"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
}

// ToDashboardResponse converts a domain dashboard summary to a DTO response
func ToDashboardResponse(s *domain.DashboardSummary) DashboardResponse {
	return DashboardResponse{
		ActiveDrivers:      s.ActiveDrivers,
		TripsToday:         s.TripsToday,
		ApprovedSpendToday: s.ApprovedSpendToday,
		TotalWalletBalance: s.TotalWalletBalance,
		CallsToday:         s.CallsToday,
		GeneratedAt:        s.GeneratedAt,
	}
}

// ToLiveMapResponse converts domain positions to a DTO response
func ToLiveMapResponse(positions []domain.LivePosition) LiveMapResponse {
	res := make([]LivePositionResponse, len(positions))
	for i, p := range positions {
		res[i] = LivePositionResponse{
			DriverID:   p.DriverID,
			DriverName: p.DriverName,
			Username:   p.Username,
			Latitude:   p.Latitude,
			Longitude:  p.Longitude,
			Accuracy:   p.Accuracy,
			ReportedAt: p.ReportedAt,
			ExpenseID:  p.ExpenseID,
		}
	}
	return LiveMapResponse{Positions: res}
}

// ToMonthlySpendResponse converts a domain monthly spend summary to a DTO response
func ToMonthlySpendResponse(s *domain.MonthlySpend) MonthlySpendResponse {
	return MonthlySpendResponse{
		DriverID:       s.DriverID,
		MonthStart:     s.MonthStart.Format("2006-01-02"),
		TotalSpend:     s.TotalSpend,
		CurrentBalance: s.CurrentBalance,
	}
}
