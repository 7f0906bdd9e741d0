package mapping

import (
	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
	"github.com/fleetpulse/fleet_expense_app/internal/models"
)

// ToModelWalletTransaction converts a domain WalletTransaction to its model form
func ToModelWalletTransaction(d domain.WalletTransaction) models.WalletTransaction {
	return models.WalletTransaction{
		TransactionID:   d.TransactionID,
		DriverID:        d.DriverID,
		CompanyID:       d.CompanyID,
		Amount:          d.Amount,
		TransactionType: models.WalletTransactionType(d.TransactionType),
		ExpenseID:       d.ExpenseID,
		Notes:           d.Notes,
		RunningBalance:  d.RunningBalance,
		CreatedAt:       d.CreatedAt,
		CreatedBy:       d.CreatedBy,
	}
}

// ToDomainWalletTransaction converts a model WalletTransaction to its domain form
func ToDomainWalletTransaction(m models.WalletTransaction) domain.WalletTransaction {
	return domain.WalletTransaction{
		TransactionID:   m.TransactionID,
		DriverID:        m.DriverID,
		CompanyID:       m.CompanyID,
		Amount:          m.Amount,
		TransactionType: domain.WalletTransactionType(m.TransactionType),
		ExpenseID:       m.ExpenseID,
		Notes:           m.Notes,
		RunningBalance:  m.RunningBalance,
		CreatedAt:       m.CreatedAt,
		CreatedBy:       m.CreatedBy,
	}
}

// ToDomainWalletTransactionSlice converts a slice of model wallet transactions
func ToDomainWalletTransactionSlice(ms []models.WalletTransaction) []domain.WalletTransaction {
	ds := make([]domain.WalletTransaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainWalletTransaction(m)
	}
	return ds
}
