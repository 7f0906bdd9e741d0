package services

import (
	"context"

	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
)

// ReportingService defines read-only operations for fleet reports.
// Implementations never mutate state and return zero values for empty data.
type ReportingService interface {
	// Dashboard generates the admin dashboard summary for the principal's tenant scope.
	Dashboard(ctx context.Context, principal domain.Principal) (*domain.DashboardSummary, error)

	// LiveMap returns the latest expense-derived position per driver in scope.
	LiveMap(ctx context.Context, principal domain.Principal) ([]domain.LivePosition, error)

	// MonthlySpend sums a driver's deductions since the first of the current month.
	MonthlySpend(ctx context.Context, principal domain.Principal, driverID string) (*domain.MonthlySpend, error)
}
