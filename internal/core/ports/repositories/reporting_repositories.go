package repositories

import (
	"context"
	"time"

	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository defines operations for retrieving fleet report data
type ReportingRepository interface {
	// GetDashboardData retrieves the aggregate dashboard counters. Dated figures
	// count records at or after since.
	GetDashboardData(ctx context.Context, filter domain.TenantFilter, since time.Time) (*domain.DashboardSummary, error)

	// GetLivePositions retrieves the latest expense-derived position per driver.
	GetLivePositions(ctx context.Context, filter domain.TenantFilter) ([]domain.LivePosition, error)

	// GetMonthlyDeductions sums deduction transactions for a driver at or after monthStart.
	GetMonthlyDeductions(ctx context.Context, driverID string, filter domain.TenantFilter, monthStart time.Time) (decimal.Decimal, error)
}
