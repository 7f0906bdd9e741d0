package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fleetpulse/fleet_expense_app/internal/apperrors"
	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
	portsrepo "github.com/fleetpulse/fleet_expense_app/internal/core/ports/repositories"
	"github.com/fleetpulse/fleet_expense_app/internal/models"
	"github.com/fleetpulse/fleet_expense_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxDriverRepository struct {
	BaseRepository
}

// newPgxDriverRepository creates a new repository for driver data.
func newPgxDriverRepository(pool *pgxpool.Pool) portsrepo.DriverRepositoryWithTx {
	return &PgxDriverRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxDriverRepository implements portsrepo.DriverRepositoryWithTx
var _ portsrepo.DriverRepositoryWithTx = (*PgxDriverRepository)(nil)

const driverColumns = `driver_id, user_id, company_id, wallet_balance, status, created_at, created_by, last_updated_at, last_updated_by, version`

func scanDriver(row pgx.Row) (*models.Driver, error) {
	var m models.Driver
	err := row.Scan(
		&m.DriverID,
		&m.UserID,
		&m.CompanyID,
		&m.WalletBalance,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveDriver inserts a new driver profile.
func (r *PgxDriverRepository) SaveDriver(ctx context.Context, driver domain.Driver) error {
	m := mapping.ToModelDriver(driver)

	query := `
		INSERT INTO drivers (driver_id, user_id, company_id, wallet_balance, status, created_at, created_by, last_updated_at, last_updated_by, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.DriverID,
		m.UserID,
		m.CompanyID,
		m.WalletBalance,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.Version,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: driver profile for user %s already exists", apperrors.ErrDuplicate, m.UserID)
		}
		return apperrors.NewAppError(500, "failed to save driver "+m.DriverID, err)
	}
	return nil
}

// FindDriverByID retrieves a driver by ID within the tenant scope.
func (r *PgxDriverRepository) FindDriverByID(ctx context.Context, driverID string, filter domain.TenantFilter) (*domain.Driver, error) {
	args := []interface{}{driverID}
	scope, args := tenantClause("company_id", filter, args)
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE driver_id = $1` + scope + `;`

	m, err := scanDriver(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find driver by ID "+driverID, err)
	}

	d := mapping.ToDomainDriver(*m)
	return &d, nil
}

// FindDriverByUserID retrieves the driver profile owned by a user.
func (r *PgxDriverRepository) FindDriverByUserID(ctx context.Context, userID string) (*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE user_id = $1;`

	m, err := scanDriver(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find driver for user "+userID, err)
	}

	d := mapping.ToDomainDriver(*m)
	return &d, nil
}

// ListDrivers retrieves drivers joined with user identity, tenant-scoped.
func (r *PgxDriverRepository) ListDrivers(ctx context.Context, filter domain.TenantFilter, limit int, offset int) ([]domain.DriverWithUser, error) {
	if limit <= 0 {
		limit = 50
	}

	args := []interface{}{}
	scope, args := tenantClause("d.company_id", filter, args)
	query := `
		SELECT d.driver_id, d.user_id, d.company_id, d.wallet_balance, d.status,
		       d.created_at, d.created_by, d.last_updated_at, d.last_updated_by, d.version,
		       u.name, u.username
		FROM drivers d
		JOIN users u ON d.user_id = u.user_id
		WHERE u.deleted_at IS NULL` + scope + `
		ORDER BY u.name
		LIMIT $` + fmt.Sprint(len(args)+1) + ` OFFSET $` + fmt.Sprint(len(args)+2) + `;`
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query drivers", err)
	}
	defer rows.Close()

	drivers := []models.DriverWithUser{}
	for rows.Next() {
		var m models.DriverWithUser
		err := rows.Scan(
			&m.DriverID,
			&m.UserID,
			&m.CompanyID,
			&m.WalletBalance,
			&m.Status,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&m.Version,
			&m.UserName,
			&m.Username,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan driver row", err)
		}
		drivers = append(drivers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating driver rows", err)
	}

	return mapping.ToDomainDriverWithUserSlice(drivers), nil
}

// UpdateDriverStatus changes a driver's active/inactive status.
func (r *PgxDriverRepository) UpdateDriverStatus(ctx context.Context, driverID string, status domain.DriverStatus, userID string, now time.Time) error {
	query := `
		UPDATE drivers
		SET status = $2,
		    last_updated_at = $3,
		    last_updated_by = $4,
		    version = version + 1
		WHERE driver_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, driverID, status, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update driver status for "+driverID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("driver " + driverID + " not found for update")
	}
	return nil
}

// DeleteDriverByUserID removes the driver profile owned by a user.
// Expense and wallet transaction history keeps its driver_id.
func (r *PgxDriverRepository) DeleteDriverByUserID(ctx context.Context, userID string) error {
	_, err := r.Pool.Exec(ctx, `DELETE FROM drivers WHERE user_id = $1;`, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete driver for user "+userID, err)
	}
	return nil
}

// FindDriverByIDForUpdate selects a driver row and locks it for update within a transaction.
func (r *PgxDriverRepository) FindDriverByIDForUpdate(ctx context.Context, tx pgx.Tx, driverID string) (*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE driver_id = $1 FOR UPDATE;`

	m, err := scanDriver(tx.QueryRow(ctx, query, driverID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock driver "+driverID, err)
	}

	d := mapping.ToDomainDriver(*m)
	return &d, nil
}

// UpdateDriverBalanceInTx sets a driver's wallet balance within a given transaction.
// Callers must have locked the row via FindDriverByIDForUpdate first.
func (r *PgxDriverRepository) UpdateDriverBalanceInTx(ctx context.Context, tx pgx.Tx, driverID string, newBalance decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE drivers
		SET wallet_balance = $2,
		    last_updated_at = $3,
		    last_updated_by = $4,
		    version = version + 1
		WHERE driver_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, driverID, newBalance, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update wallet balance for driver "+driverID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("driver " + driverID + " not found for balance update")
	}
	return nil
}
