package services

import (
	"context"

	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
	"github.com/fleetpulse/fleet_expense_app/internal/dto"
	"github.com/shopspring/decimal"
)

// WalletTopUpSvc defines the administrative wallet credit operation
type WalletTopUpSvc interface {
	// TopUpWallet credits a driver's wallet. Amount must be positive; the note
	// defaults to "Admin top-up" when omitted. Returns the new balance.
	TopUpWallet(ctx context.Context, principal domain.Principal, driverID string, req dto.TopUpRequest) (decimal.Decimal, error)
}

// WalletReaderSvc defines read operations for the wallet ledger
type WalletReaderSvc interface {
	// ListTransactions retrieves a tenant-scoped page of a driver's wallet transactions.
	ListTransactions(ctx context.Context, principal domain.Principal, driverID string, params dto.ListWalletTransactionsParams) ([]domain.WalletTransaction, *string, error)
}

// WalletSvcFacade combines all wallet-related service interfaces
type WalletSvcFacade interface {
	WalletTopUpSvc
	WalletReaderSvc
}
