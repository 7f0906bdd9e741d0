package repositories

import (
	"context"
	"time"

	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
)

// ExpenseReader defines read operations for expense data
type ExpenseReader interface {
	// FindExpenseByID retrieves an expense within the given tenant scope.
	FindExpenseByID(ctx context.Context, expenseID string, filter domain.TenantFilter) (*domain.Expense, error)

	// ListExpenses retrieves a paginated list of expenses joined with driver identity,
	// newest first, using token-based pagination. Returns the page and the next token.
	ListExpenses(ctx context.Context, filter domain.TenantFilter, status *domain.ExpenseStatus, limit int, nextToken *string) ([]domain.ExpenseWithDriver, *string, error)

	// ListExpensesForExport retrieves all tenant-scoped expenses for report generation.
	ListExpensesForExport(ctx context.Context, filter domain.TenantFilter) ([]domain.ExpenseWithDriver, error)
}

// ExpenseWriter defines the atomic write operations of the expense workflow.
// Both methods lock the driver row, compute balances from the locked value and
// commit all rows together or not at all.
type ExpenseWriter interface {
	// SaveExpenseSubmission persists the expense, its deduction transaction and the
	// decremented driver balance in one transaction. The returned expense carries
	// the WalletBalanceAfter snapshot computed from the locked balance.
	SaveExpenseSubmission(ctx context.Context, expense domain.Expense, txn domain.WalletTransaction) (*domain.Expense, error)

	// FinalizeExpense transitions a pending expense to a terminal status. A nil
	// refund leaves the wallet untouched (approval); a non-nil refund appends the
	// addition transaction and restores the driver balance (rejection).
	// Returns ErrConflict when the expense is already decided.
	FinalizeExpense(ctx context.Context, expenseID string, filter domain.TenantFilter, status domain.ExpenseStatus, decidedBy string, refund *domain.WalletTransaction, now time.Time) (*domain.Expense, error)
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}

// ExpenseRepositoryWithTx extends ExpenseRepositoryFacade with transaction capabilities
type ExpenseRepositoryWithTx interface {
	ExpenseRepositoryFacade
	TransactionManager
}
