package pgsql

import (
	"context"
	"time"

	"github.com/fleetpulse/fleet_expense_app/internal/apperrors"
	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
	portsrepo "github.com/fleetpulse/fleet_expense_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// Ensure reportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// GetDashboardData retrieves the aggregate dashboard counters in one round trip.
// Dated figures count records at or after since.
func (r *reportingRepository) GetDashboardData(ctx context.Context, filter domain.TenantFilter, since time.Time) (*domain.DashboardSummary, error) {
	args := []interface{}{since}
	scope, args := tenantClause("company_id", filter, args)

	query := `
		SELECT
			(SELECT COUNT(*) FROM drivers WHERE status = 'active'` + scope + `) AS active_drivers,
			(SELECT COUNT(*) FROM trips WHERE started_at >= $1` + scope + `) AS trips_today,
			(SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE status = 'approved' AND occurred_at >= $1` + scope + `) AS approved_spend_today,
			(SELECT COALESCE(SUM(wallet_balance), 0) FROM drivers WHERE 1 = 1` + scope + `) AS total_wallet_balance,
			(SELECT COUNT(*) FROM call_logs WHERE logged_at >= $1` + scope + `) AS calls_today;
	`

	var summary domain.DashboardSummary
	err := r.Pool.QueryRow(ctx, query, args...).Scan(
		&summary.ActiveDrivers,
		&summary.TripsToday,
		&summary.ApprovedSpendToday,
		&summary.TotalWalletBalance,
		&summary.CallsToday,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query dashboard data", err)
	}

	summary.GeneratedAt = time.Now().UTC()
	return &summary, nil
}

// GetLivePositions retrieves the latest expense-derived position per driver.
// Drivers with no located expense yet are absent from the result.
func (r *reportingRepository) GetLivePositions(ctx context.Context, filter domain.TenantFilter) ([]domain.LivePosition, error) {
	args := []interface{}{}
	scope, args := tenantClause("e.company_id", filter, args)

	query := `
		SELECT DISTINCT ON (e.driver_id)
			e.driver_id, COALESCE(u.name, ''), COALESCE(u.username, ''),
			e.latitude, e.longitude, e.accuracy, e.occurred_at, e.expense_id
		FROM expenses e
		JOIN drivers d ON e.driver_id = d.driver_id
		LEFT JOIN users u ON d.user_id = u.user_id
		WHERE d.status = 'active'` + scope + `
		ORDER BY e.driver_id, e.occurred_at DESC, e.created_at DESC;
	`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query live positions", err)
	}
	defer rows.Close()

	positions := []domain.LivePosition{}
	for rows.Next() {
		var p domain.LivePosition
		err := rows.Scan(
			&p.DriverID,
			&p.DriverName,
			&p.Username,
			&p.Latitude,
			&p.Longitude,
			&p.Accuracy,
			&p.ReportedAt,
			&p.ExpenseID,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan live position row", err)
		}
		positions = append(positions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating live position rows", err)
	}

	return positions, nil
}

// GetMonthlyDeductions sums deduction transactions for a driver at or after monthStart.
func (r *reportingRepository) GetMonthlyDeductions(ctx context.Context, driverID string, filter domain.TenantFilter, monthStart time.Time) (decimal.Decimal, error) {
	args := []interface{}{driverID, monthStart}
	scope, args := tenantClause("company_id", filter, args)

	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM wallet_transactions
		WHERE driver_id = $1
			AND transaction_type = 'deduction'
			AND created_at >= $2` + scope + `;`

	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to query monthly deductions for driver "+driverID, err)
	}
	return total, nil
}
