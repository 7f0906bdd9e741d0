package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/fleetpulse/fleet_expense_app/internal/apperrors"
	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
	portsrepo "github.com/fleetpulse/fleet_expense_app/internal/core/ports/repositories"
	portssvc "github.com/fleetpulse/fleet_expense_app/internal/core/ports/services"
	"github.com/fleetpulse/fleet_expense_app/internal/dto"
	"github.com/fleetpulse/fleet_expense_app/internal/middleware"
	"github.com/fleetpulse/fleet_expense_app/internal/platform/cache"
)

// expenseService provides the expense submission and decision workflow.
type expenseService struct {
	expenseRepo portsrepo.ExpenseRepositoryFacade
	driverRepo  portsrepo.DriverRepositoryFacade
	cache       *cache.Cache
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade, driverRepo portsrepo.DriverRepositoryFacade, c *cache.Cache) portssvc.ExpenseSvcFacade {
	return &expenseService{
		expenseRepo: expenseRepo,
		driverRepo:  driverRepo,
		cache:       c,
	}
}

// Ensure expenseService implements the portssvc.ExpenseSvcFacade interface
var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

// SubmitExpense creates a pending expense for the calling driver and debits the
// wallet atomically. The balance may go negative; no floor is enforced.
func (s *expenseService) SubmitExpense(ctx context.Context, principal domain.Principal, req dto.SubmitExpenseRequest) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if principal.Role != domain.RoleDriver {
		return nil, fmt.Errorf("%w: only drivers submit expenses", apperrors.ErrForbidden)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if !domain.ValidCategory(domain.ExpenseCategory(req.Category)) {
		return nil, fmt.Errorf("%w: unknown category %s", apperrors.ErrValidation, req.Category)
	}

	driver, err := s.driverRepo.FindDriverByUserID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no driver profile for user", apperrors.ErrForbidden)
		}
		return nil, err
	}
	if driver.Status != domain.DriverActive {
		return nil, fmt.Errorf("%w: driver is inactive", apperrors.ErrForbidden)
	}

	now := time.Now().UTC()
	expenseID := uuid.NewString()
	expense := domain.Expense{
		ExpenseID:  expenseID,
		DriverID:   driver.DriverID,
		CompanyID:  driver.CompanyID,
		Amount:     req.Amount,
		Category:   domain.ExpenseCategory(req.Category),
		Notes:      req.Notes,
		PhotoURL:   req.PhotoURL,
		Latitude:   *req.Latitude,
		Longitude:  *req.Longitude,
		Accuracy:   req.Accuracy,
		OccurredAt: now,
		Status:     domain.ExpensePending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     principal.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: principal.UserID,
			Version:       1,
		},
	}
	txn := domain.WalletTransaction{
		TransactionID:   uuid.NewString(),
		DriverID:        driver.DriverID,
		Amount:          req.Amount,
		TransactionType: domain.Deduction,
		ExpenseID:       &expenseID,
		Notes:           "Expense: " + req.Category,
		CreatedAt:       now,
		CreatedBy:       principal.UserID,
	}

	saved, err := s.expenseRepo.SaveExpenseSubmission(ctx, expense, txn)
	if err != nil {
		logger.Error("failed to submit expense", "error", err, "driver_id", driver.DriverID)
		return nil, err
	}

	s.invalidateDashboard(ctx, driver.CompanyID)
	logger.Info("expense submitted",
		"expense_id", saved.ExpenseID,
		"driver_id", saved.DriverID,
		"amount", saved.Amount.String(),
		"balance_after", saved.WalletBalanceAfter.String())
	return saved, nil
}

// DecideExpense transitions a pending expense to approved or rejected.
// Approval only flips the status; the submission debit stands. Rejection
// appends a refund transaction restoring the pre-submission balance.
func (s *expenseService) DecideExpense(ctx context.Context, principal domain.Principal, expenseID string, decision domain.ExpenseStatus) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !principal.IsAdmin() {
		return nil, fmt.Errorf("%w: admin role required", apperrors.ErrForbidden)
	}
	if decision != domain.ExpenseApproved && decision != domain.ExpenseRejected {
		return nil, fmt.Errorf("%w: decision must be approved or rejected", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	var refund *domain.WalletTransaction
	if decision == domain.ExpenseRejected {
		current, err := s.expenseRepo.FindExpenseByID(ctx, expenseID, principal.TenantFilter())
		if err != nil {
			return nil, err
		}
		refund = &domain.WalletTransaction{
			TransactionID:   uuid.NewString(),
			DriverID:        current.DriverID,
			Amount:          current.Amount,
			TransactionType: domain.Addition,
			ExpenseID:       &expenseID,
			Notes:           "Refund for rejected expense",
			CreatedAt:       now,
			CreatedBy:       principal.UserID,
		}
	}

	decided, err := s.expenseRepo.FinalizeExpense(ctx, expenseID, principal.TenantFilter(), decision, principal.UserID, refund, now)
	if err != nil {
		logger.Error("failed to decide expense", "error", err, "expense_id", expenseID)
		return nil, err
	}

	s.invalidateDashboard(ctx, decided.CompanyID)
	logger.Info("expense decided",
		"expense_id", decided.ExpenseID,
		"status", string(decided.Status),
		"decided_by", principal.UserID)
	return decided, nil
}

// GetExpenseByID retrieves an expense. Admins see their tenant scope; drivers
// see only their own submissions.
func (s *expenseService) GetExpenseByID(ctx context.Context, principal domain.Principal, expenseID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID, principal.TenantFilter())
	if err != nil {
		return nil, err
	}

	if principal.Role == domain.RoleDriver {
		driver, err := s.driverRepo.FindDriverByUserID(ctx, principal.UserID)
		if err != nil {
			return nil, apperrors.ErrForbidden
		}
		if driver.DriverID != expense.DriverID {
			return nil, apperrors.ErrNotFound
		}
	}
	return expense, nil
}

// ListExpenses retrieves a tenant-scoped page of expenses with driver identity.
func (s *expenseService) ListExpenses(ctx context.Context, principal domain.Principal, params dto.ListExpensesParams) ([]domain.ExpenseWithDriver, *string, error) {
	if !principal.IsAdmin() {
		return nil, nil, fmt.Errorf("%w: admin role required", apperrors.ErrForbidden)
	}

	var status *domain.ExpenseStatus
	if params.Status != "" {
		st := domain.ExpenseStatus(params.Status)
		status = &st
	}
	return s.expenseRepo.ListExpenses(ctx, principal.TenantFilter(), status, params.Limit, params.NextToken)
}

var exportHeaders = []string{"Expense ID", "Driver", "Username", "Amount", "Category", "Status", "Occurred At", "Decided At", "Notes", "Balance After"}

// ExportExpenses renders all tenant-scoped expenses as an xlsx workbook.
func (s *expenseService) ExportExpenses(ctx context.Context, principal domain.Principal) ([]byte, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !principal.IsAdmin() {
		return nil, fmt.Errorf("%w: admin role required", apperrors.ErrForbidden)
	}

	expenses, err := s.expenseRepo.ListExpensesForExport(ctx, principal.TenantFilter())
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Expenses"
	f.SetSheetName(f.GetSheetName(0), sheet)
	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, apperrors.NewAppError(500, "failed to write export header", err)
		}
	}

	for rowIdx, e := range expenses {
		decidedAt := ""
		if e.DecidedAt != nil {
			decidedAt = e.DecidedAt.Format(time.RFC3339)
		}
		values := []interface{}{
			e.ExpenseID,
			e.DriverName,
			e.DriverUsername,
			e.Amount.String(),
			string(e.Category),
			string(e.Status),
			e.OccurredAt.Format(time.RFC3339),
			decidedAt,
			e.Notes,
			e.WalletBalanceAfter.String(),
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, apperrors.NewAppError(500, "failed to write export row", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, apperrors.NewAppError(500, "failed to render expense export", err)
	}

	logger.Info("expenses exported", "rows", len(expenses))
	return buf.Bytes(), nil
}

func (s *expenseService) invalidateDashboard(ctx context.Context, companyID *string) {
	for _, key := range dashboardCacheKeys(companyID) {
		if err := s.cache.Delete(ctx, key); err != nil {
			middleware.GetLoggerFromCtx(ctx).Warn("failed to invalidate dashboard cache", "key", key, "error", err)
		}
	}
}
