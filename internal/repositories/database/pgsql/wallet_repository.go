package pgsql

import (
	"context"
	"fmt"

	"github.com/fleetpulse/fleet_expense_app/internal/apperrors"
	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
	portsrepo "github.com/fleetpulse/fleet_expense_app/internal/core/ports/repositories"
	"github.com/fleetpulse/fleet_expense_app/internal/models"
	"github.com/fleetpulse/fleet_expense_app/internal/utils/mapping"
	"github.com/fleetpulse/fleet_expense_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxWalletRepository struct {
	BaseRepository
	driverRepo portsrepo.DriverTransactionSupport
}

// newPgxWalletRepository creates a new repository for wallet ledger data.
func newPgxWalletRepository(pool *pgxpool.Pool, driverRepo portsrepo.DriverTransactionSupport) portsrepo.WalletRepositoryWithTx {
	return &PgxWalletRepository{
		BaseRepository: BaseRepository{Pool: pool},
		driverRepo:     driverRepo,
	}
}

// Ensure PgxWalletRepository implements portsrepo.WalletRepositoryWithTx
var _ portsrepo.WalletRepositoryWithTx = (*PgxWalletRepository)(nil)

// TopUpWallet atomically credits a driver wallet and appends the addition
// ledger entry. The driver row is locked so concurrent credits and expense
// submissions serialize on it.
func (r *PgxWalletRepository) TopUpWallet(ctx context.Context, txn domain.WalletTransaction, filter domain.TenantFilter) (decimal.Decimal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	defer r.Rollback(ctx, tx)

	driver, err := r.driverRepo.FindDriverByIDForUpdate(ctx, tx, txn.DriverID)
	if err != nil {
		return decimal.Zero, err
	}
	if !companyInScope(driver.CompanyID, filter) {
		return decimal.Zero, apperrors.ErrNotFound
	}

	newBalance := driver.WalletBalance.Add(txn.Amount)
	txn.CompanyID = driver.CompanyID
	txn.RunningBalance = newBalance

	if err := insertWalletTransactionTx(ctx, tx, mapping.ToModelWalletTransaction(txn)); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to insert top-up for driver "+txn.DriverID, err)
	}
	if err := r.driverRepo.UpdateDriverBalanceInTx(ctx, tx, txn.DriverID, newBalance, txn.CreatedBy, txn.CreatedAt); err != nil {
		return decimal.Zero, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return decimal.Zero, err
	}
	return newBalance, nil
}

// ListTransactionsByDriver retrieves a page of a driver's wallet transactions,
// newest first, using token-based pagination on created_at.
func (r *PgxWalletRepository) ListTransactionsByDriver(ctx context.Context, driverID string, filter domain.TenantFilter, limit int, nextToken *string) ([]domain.WalletTransaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	args := []interface{}{driverID}
	scope, args := tenantClause("company_id", filter, args)
	query := `
		SELECT transaction_id, driver_id, company_id, amount, transaction_type, expense_id, notes, running_balance, created_at, created_by
		FROM wallet_transactions
		WHERE driver_id = $1` + scope

	if nextToken != nil && *nextToken != "" {
		createdAt, err := pagination.DecodeDateBasedToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		args = append(args, createdAt)
		query += fmt.Sprintf(" AND created_at < $%d", len(args))
	}

	// Fetch one extra row to detect whether another page exists.
	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query wallet transactions", err)
	}
	defer rows.Close()

	txns := []models.WalletTransaction{}
	for rows.Next() {
		var m models.WalletTransaction
		err := rows.Scan(
			&m.TransactionID,
			&m.DriverID,
			&m.CompanyID,
			&m.Amount,
			&m.TransactionType,
			&m.ExpenseID,
			&m.Notes,
			&m.RunningBalance,
			&m.CreatedAt,
			&m.CreatedBy,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan wallet transaction row", err)
		}
		txns = append(txns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating wallet transaction rows", err)
	}

	var newNextToken *string
	if len(txns) > limit {
		txns = txns[:limit]
		token := pagination.EncodeDateBasedToken(txns[len(txns)-1].CreatedAt)
		newNextToken = &token
	}

	return mapping.ToDomainWalletTransactionSlice(txns), newNextToken, nil
}
