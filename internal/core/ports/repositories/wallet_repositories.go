package repositories

import (
	"context"

	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// WalletReader defines read operations for wallet transaction data
type WalletReader interface {
	// ListTransactionsByDriver retrieves a paginated list of wallet transactions
	// for a driver, newest first, using token-based pagination.
	ListTransactionsByDriver(ctx context.Context, driverID string, filter domain.TenantFilter, limit int, nextToken *string) ([]domain.WalletTransaction, *string, error)
}

// WalletWriter defines write operations for the wallet ledger
type WalletWriter interface {
	// TopUpWallet credits a driver's wallet and appends the addition transaction
	// in one database transaction. Returns the new balance.
	TopUpWallet(ctx context.Context, txn domain.WalletTransaction, filter domain.TenantFilter) (decimal.Decimal, error)
}

// WalletRepositoryFacade combines all wallet-related repository interfaces
type WalletRepositoryFacade interface {
	WalletReader
	WalletWriter
}

// WalletRepositoryWithTx extends WalletRepositoryFacade with transaction capabilities
type WalletRepositoryWithTx interface {
	WalletRepositoryFacade
	TransactionManager
}
