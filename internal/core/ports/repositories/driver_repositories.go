package repositories

import (
	"context"
	"time"

	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// DriverReader defines read operations for driver data
type DriverReader interface {
	// FindDriverByID retrieves a driver within the given tenant scope.
	FindDriverByID(ctx context.Context, driverID string, filter domain.TenantFilter) (*domain.Driver, error)

	// FindDriverByUserID retrieves the driver profile owned by a user.
	FindDriverByUserID(ctx context.Context, userID string) (*domain.Driver, error)

	// ListDrivers retrieves drivers joined with user identity, tenant-scoped.
	ListDrivers(ctx context.Context, filter domain.TenantFilter, limit int, offset int) ([]domain.DriverWithUser, error)
}

// DriverWriter defines write operations for driver data
type DriverWriter interface {
	// SaveDriver persists a new driver profile.
	SaveDriver(ctx context.Context, driver domain.Driver) error

	// UpdateDriverStatus changes a driver's active/inactive status.
	UpdateDriverStatus(ctx context.Context, driverID string, status domain.DriverStatus, userID string, now time.Time) error

	// DeleteDriverByUserID removes the driver profile owned by a user.
	// Expense and wallet transaction rows are retained.
	DeleteDriverByUserID(ctx context.Context, userID string) error
}

// DriverTransactionSupport defines operations used inside ledger transactions.
type DriverTransactionSupport interface {
	// FindDriverByIDForUpdate selects a driver row and locks it for update within a transaction.
	FindDriverByIDForUpdate(ctx context.Context, tx pgx.Tx, driverID string) (*domain.Driver, error)

	// UpdateDriverBalanceInTx sets a driver's wallet balance within a given transaction.
	UpdateDriverBalanceInTx(ctx context.Context, tx pgx.Tx, driverID string, newBalance decimal.Decimal, userID string, now time.Time) error
}

// DriverRepositoryFacade combines all driver-related repository interfaces
type DriverRepositoryFacade interface {
	DriverReader
	DriverWriter
	DriverTransactionSupport
}

// DriverRepositoryWithTx extends DriverRepositoryFacade with transaction capabilities
type DriverRepositoryWithTx interface {
	DriverRepositoryFacade
	TransactionManager
}
