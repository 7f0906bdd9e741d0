package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fleetpulse/fleet_expense_app/internal/apperrors"
	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
	portsrepo "github.com/fleetpulse/fleet_expense_app/internal/core/ports/repositories"
	portssvc "github.com/fleetpulse/fleet_expense_app/internal/core/ports/services"
	"github.com/fleetpulse/fleet_expense_app/internal/dto"
	"github.com/fleetpulse/fleet_expense_app/internal/middleware"
	"github.com/fleetpulse/fleet_expense_app/internal/platform/cache"
)

const defaultTopUpNote = "Admin top-up"

// walletService provides wallet credit and ledger read operations.
type walletService struct {
	walletRepo portsrepo.WalletRepositoryFacade
	driverRepo portsrepo.DriverRepositoryFacade
	cache      *cache.Cache
}

// NewWalletService creates a new WalletService.
func NewWalletService(walletRepo portsrepo.WalletRepositoryFacade, driverRepo portsrepo.DriverRepositoryFacade, c *cache.Cache) portssvc.WalletSvcFacade {
	return &walletService{
		walletRepo: walletRepo,
		driverRepo: driverRepo,
		cache:      c,
	}
}

// Ensure walletService implements the portssvc.WalletSvcFacade interface
var _ portssvc.WalletSvcFacade = (*walletService)(nil)

// TopUpWallet credits a driver's wallet. The note defaults to "Admin top-up"
// when omitted. Returns the new balance.
func (s *walletService) TopUpWallet(ctx context.Context, principal domain.Principal, driverID string, req dto.TopUpRequest) (decimal.Decimal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !principal.IsAdmin() {
		return decimal.Zero, fmt.Errorf("%w: admin role required", apperrors.ErrForbidden)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: top-up amount must be positive", apperrors.ErrValidation)
	}

	notes := req.Notes
	if notes == "" {
		notes = defaultTopUpNote
	}

	now := time.Now().UTC()
	txn := domain.WalletTransaction{
		TransactionID:   uuid.NewString(),
		DriverID:        driverID,
		Amount:          req.Amount,
		TransactionType: domain.Addition,
		Notes:           notes,
		CreatedAt:       now,
		CreatedBy:       principal.UserID,
	}

	newBalance, err := s.walletRepo.TopUpWallet(ctx, txn, principal.TenantFilter())
	if err != nil {
		logger.Error("failed to top up wallet", "error", err, "driver_id", driverID)
		return decimal.Zero, err
	}

	s.invalidateDashboard(ctx, principal.CompanyID)
	logger.Info("wallet topped up",
		"driver_id", driverID,
		"amount", req.Amount.String(),
		"new_balance", newBalance.String())
	return newBalance, nil
}

// ListTransactions retrieves a tenant-scoped page of a driver's wallet transactions.
func (s *walletService) ListTransactions(ctx context.Context, principal domain.Principal, driverID string, params dto.ListWalletTransactionsParams) ([]domain.WalletTransaction, *string, error) {
	if !principal.IsAdmin() {
		return nil, nil, fmt.Errorf("%w: admin role required", apperrors.ErrForbidden)
	}

	// Resolve the driver first so an out-of-scope driver yields 404 rather
	// than an empty page.
	if _, err := s.driverRepo.FindDriverByID(ctx, driverID, principal.TenantFilter()); err != nil {
		return nil, nil, err
	}

	return s.walletRepo.ListTransactionsByDriver(ctx, driverID, principal.TenantFilter(), params.Limit, params.NextToken)
}

func (s *walletService) invalidateDashboard(ctx context.Context, companyID *string) {
	for _, key := range dashboardCacheKeys(companyID) {
		if err := s.cache.Delete(ctx, key); err != nil {
			middleware.GetLoggerFromCtx(ctx).Warn("failed to invalidate dashboard cache", "key", key, "error", err)
		}
	}
}
