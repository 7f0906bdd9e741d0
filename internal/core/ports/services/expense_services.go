package services

import (
	"context"

	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
	"github.com/fleetpulse/fleet_expense_app/internal/dto"
)

// ExpenseSubmitterSvc defines the driver-facing submission operation
type ExpenseSubmitterSvc interface {
	// SubmitExpense creates a pending expense and debits the caller's wallet
	// atomically. The caller must own an active driver profile.
	SubmitExpense(ctx context.Context, principal domain.Principal, req dto.SubmitExpenseRequest) (*domain.Expense, error)
}

// ExpenseReaderSvc defines read operations for expense data
type ExpenseReaderSvc interface {
	// GetExpenseByID retrieves an expense within the principal's tenant scope.
	GetExpenseByID(ctx context.Context, principal domain.Principal, expenseID string) (*domain.Expense, error)

	// ListExpenses retrieves a tenant-scoped page of expenses with driver identity.
	ListExpenses(ctx context.Context, principal domain.Principal, params dto.ListExpensesParams) ([]domain.ExpenseWithDriver, *string, error)

	// ExportExpenses renders all tenant-scoped expenses as an xlsx workbook.
	ExportExpenses(ctx context.Context, principal domain.Principal) ([]byte, error)
}

// ExpenseDeciderSvc defines the admin decision operation
type ExpenseDeciderSvc interface {
	// DecideExpense transitions a pending expense to approved or rejected.
	// Approval leaves the wallet untouched; rejection refunds the submission debit.
	DecideExpense(ctx context.Context, principal domain.Principal, expenseID string, decision domain.ExpenseStatus) (*domain.Expense, error)
}

// ExpenseSvcFacade combines all expense-related service interfaces
type ExpenseSvcFacade interface {
	ExpenseSubmitterSvc
	ExpenseReaderSvc
	ExpenseDeciderSvc
}
