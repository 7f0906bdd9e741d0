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
	"github.com/fleetpulse/fleet_expense_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxExpenseRepository struct {
	BaseRepository
	driverRepo portsrepo.DriverTransactionSupport
}

// newPgxExpenseRepository creates a new repository for expense data. It needs
// driver transaction support to lock and move wallet balances atomically.
func newPgxExpenseRepository(pool *pgxpool.Pool, driverRepo portsrepo.DriverTransactionSupport) portsrepo.ExpenseRepositoryWithTx {
	return &PgxExpenseRepository{
		BaseRepository: BaseRepository{Pool: pool},
		driverRepo:     driverRepo,
	}
}

// Ensure PgxExpenseRepository implements portsrepo.ExpenseRepositoryWithTx
var _ portsrepo.ExpenseRepositoryWithTx = (*PgxExpenseRepository)(nil)

const expenseColumns = `expense_id, driver_id, company_id, amount, category, notes, photo_url, latitude, longitude, accuracy, occurred_at, status, decided_by, decided_at, wallet_balance_after, created_at, created_by, last_updated_at, last_updated_by, version`

func scanExpense(row pgx.Row) (*models.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID,
		&m.DriverID,
		&m.CompanyID,
		&m.Amount,
		&m.Category,
		&m.Notes,
		&m.PhotoURL,
		&m.Latitude,
		&m.Longitude,
		&m.Accuracy,
		&m.OccurredAt,
		&m.Status,
		&m.DecidedBy,
		&m.DecidedAt,
		&m.WalletBalanceAfter,
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

func insertWalletTransactionTx(ctx context.Context, tx pgx.Tx, m models.WalletTransaction) error {
	query := `
		INSERT INTO wallet_transactions (transaction_id, driver_id, company_id, amount, transaction_type, expense_id, notes, running_balance, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.DriverID,
		m.CompanyID,
		m.Amount,
		m.TransactionType,
		m.ExpenseID,
		m.Notes,
		m.RunningBalance,
		m.CreatedAt,
		m.CreatedBy,
	)
	return err
}

// SaveExpenseSubmission atomically inserts the expense, debits the driver wallet
// and appends the deduction ledger entry. The driver row is locked first so the
// balance snapshot cannot race with concurrent submissions or top-ups.
func (r *PgxExpenseRepository) SaveExpenseSubmission(ctx context.Context, expense domain.Expense, txn domain.WalletTransaction) (*domain.Expense, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	driver, err := r.driverRepo.FindDriverByIDForUpdate(ctx, tx, expense.DriverID)
	if err != nil {
		return nil, err
	}

	newBalance := driver.WalletBalance.Sub(expense.Amount)
	expense.CompanyID = driver.CompanyID
	expense.WalletBalanceAfter = newBalance
	txn.CompanyID = driver.CompanyID
	txn.RunningBalance = newBalance

	m := mapping.ToModelExpense(expense)
	insertQuery := `
		INSERT INTO expenses (expense_id, driver_id, company_id, amount, category, notes, photo_url, latitude, longitude, accuracy, occurred_at, status, decided_by, decided_at, wallet_balance_after, created_at, created_by, last_updated_at, last_updated_by, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.ExpenseID,
		m.DriverID,
		m.CompanyID,
		m.Amount,
		m.Category,
		m.Notes,
		m.PhotoURL,
		m.Latitude,
		m.Longitude,
		m.Accuracy,
		m.OccurredAt,
		m.Status,
		m.DecidedBy,
		m.DecidedAt,
		m.WalletBalanceAfter,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.Version,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert expense "+m.ExpenseID, err)
	}

	if err := insertWalletTransactionTx(ctx, tx, mapping.ToModelWalletTransaction(txn)); err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert deduction for expense "+m.ExpenseID, err)
	}

	if err := r.driverRepo.UpdateDriverBalanceInTx(ctx, tx, expense.DriverID, newBalance, expense.CreatedBy, expense.CreatedAt); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &expense, nil
}

// FinalizeExpense moves a pending expense to a terminal status. The expense row
// is locked first; an already decided expense yields ErrConflict. A non-nil
// refund re-credits the wallet inside the same transaction.
func (r *PgxExpenseRepository) FinalizeExpense(ctx context.Context, expenseID string, filter domain.TenantFilter, status domain.ExpenseStatus, decidedBy string, refund *domain.WalletTransaction, now time.Time) (*domain.Expense, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1 FOR UPDATE;`
	m, err := scanExpense(tx.QueryRow(ctx, lockQuery, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock expense "+expenseID, err)
	}
	if !companyInScope(m.CompanyID, filter) {
		return nil, apperrors.ErrNotFound
	}
	if m.Status != models.ExpensePending {
		return nil, fmt.Errorf("%w: expense %s is already %s", apperrors.ErrConflict, expenseID, m.Status)
	}

	updateQuery := `
		UPDATE expenses
		SET status = $2,
		    decided_by = $3,
		    decided_at = $4,
		    last_updated_at = $4,
		    last_updated_by = $3,
		    version = version + 1
		WHERE expense_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, expenseID, status, decidedBy, now); err != nil {
		return nil, apperrors.NewAppError(500, "failed to update status of expense "+expenseID, err)
	}

	expense := mapping.ToDomainExpense(*m)
	expense.Status = status
	expense.DecidedBy = &decidedBy
	expense.DecidedAt = &now
	expense.LastUpdatedAt = now
	expense.LastUpdatedBy = decidedBy
	expense.Version++

	if refund != nil {
		driver, err := r.driverRepo.FindDriverByIDForUpdate(ctx, tx, expense.DriverID)
		if err != nil {
			return nil, err
		}

		newBalance := driver.WalletBalance.Add(refund.Amount)
		refund.CompanyID = driver.CompanyID
		refund.RunningBalance = newBalance

		if err := insertWalletTransactionTx(ctx, tx, mapping.ToModelWalletTransaction(*refund)); err != nil {
			return nil, apperrors.NewAppError(500, "failed to insert refund for expense "+expenseID, err)
		}
		if err := r.driverRepo.UpdateDriverBalanceInTx(ctx, tx, expense.DriverID, newBalance, decidedBy, now); err != nil {
			return nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &expense, nil
}

// FindExpenseByID retrieves an expense by ID within the tenant scope.
func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string, filter domain.TenantFilter) (*domain.Expense, error) {
	args := []interface{}{expenseID}
	scope, args := tenantClause("company_id", filter, args)
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1` + scope + `;`

	m, err := scanExpense(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find expense by ID "+expenseID, err)
	}

	e := mapping.ToDomainExpense(*m)
	return &e, nil
}

func scanExpenseWithDriverRows(rows pgx.Rows) ([]models.ExpenseWithDriver, error) {
	expenses := []models.ExpenseWithDriver{}
	for rows.Next() {
		var m models.ExpenseWithDriver
		err := rows.Scan(
			&m.ExpenseID,
			&m.DriverID,
			&m.CompanyID,
			&m.Amount,
			&m.Category,
			&m.Notes,
			&m.PhotoURL,
			&m.Latitude,
			&m.Longitude,
			&m.Accuracy,
			&m.OccurredAt,
			&m.Status,
			&m.DecidedBy,
			&m.DecidedAt,
			&m.WalletBalanceAfter,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&m.Version,
			&m.DriverName,
			&m.DriverUsername,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan expense row", err)
		}
		expenses = append(expenses, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating expense rows", err)
	}
	return expenses, nil
}

const expenseJoinSelect = `
	SELECT e.expense_id, e.driver_id, e.company_id, e.amount, e.category, e.notes, e.photo_url,
	       e.latitude, e.longitude, e.accuracy, e.occurred_at, e.status, e.decided_by, e.decided_at,
	       e.wallet_balance_after, e.created_at, e.created_by, e.last_updated_at, e.last_updated_by, e.version,
	       COALESCE(u.name, '') AS driver_name, COALESCE(u.username, '') AS driver_username
	FROM expenses e
	LEFT JOIN drivers d ON e.driver_id = d.driver_id
	LEFT JOIN users u ON d.user_id = u.user_id`

// ListExpenses retrieves a page of expenses joined with driver identity, newest
// first, using token-based pagination on (occurred_at, created_at).
func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, filter domain.TenantFilter, status *domain.ExpenseStatus, limit int, nextToken *string) ([]domain.ExpenseWithDriver, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	args := []interface{}{}
	scope, args := tenantClause("e.company_id", filter, args)
	query := expenseJoinSelect + `
	WHERE 1 = 1` + scope

	if status != nil {
		args = append(args, *status)
		query += fmt.Sprintf(" AND e.status = $%d", len(args))
	}

	if nextToken != nil && *nextToken != "" {
		occurredAt, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		args = append(args, occurredAt, createdAt)
		query += fmt.Sprintf(" AND (e.occurred_at, e.created_at) < ($%d, $%d)", len(args)-1, len(args))
	}

	// Fetch one extra row to detect whether another page exists.
	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY e.occurred_at DESC, e.created_at DESC LIMIT $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query expenses", err)
	}
	defer rows.Close()

	expenses, err := scanExpenseWithDriverRows(rows)
	if err != nil {
		return nil, nil, err
	}

	var newNextToken *string
	if len(expenses) > limit {
		expenses = expenses[:limit]
		last := expenses[len(expenses)-1]
		token := pagination.EncodeToken(last.OccurredAt, last.CreatedAt)
		newNextToken = &token
	}

	return mapping.ToDomainExpenseWithDriverSlice(expenses), newNextToken, nil
}

// ListExpensesForExport retrieves all tenant-scoped expenses ordered newest first.
func (r *PgxExpenseRepository) ListExpensesForExport(ctx context.Context, filter domain.TenantFilter) ([]domain.ExpenseWithDriver, error) {
	args := []interface{}{}
	scope, args := tenantClause("e.company_id", filter, args)
	query := expenseJoinSelect + `
	WHERE 1 = 1` + scope + `
	ORDER BY e.occurred_at DESC, e.created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query expenses for export", err)
	}
	defer rows.Close()

	expenses, err := scanExpenseWithDriverRows(rows)
	if err != nil {
		return nil, err
	}

	return mapping.ToDomainExpenseWithDriverSlice(expenses), nil
}
