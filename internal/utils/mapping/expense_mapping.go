package mapping

import (
	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
	"github.com/fleetpulse/fleet_expense_app/internal/models"
)

// ToModelExpense converts a domain Expense to a model Expense
func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:          d.ExpenseID,
		DriverID:           d.DriverID,
		CompanyID:          d.CompanyID,
		Amount:             d.Amount,
		Category:           string(d.Category),
		Notes:              d.Notes,
		PhotoURL:           d.PhotoURL,
		Latitude:           d.Latitude,
		Longitude:          d.Longitude,
		Accuracy:           d.Accuracy,
		OccurredAt:         d.OccurredAt,
		Status:             models.ExpenseStatus(d.Status),
		DecidedBy:          d.DecidedBy,
		DecidedAt:          d.DecidedAt,
		WalletBalanceAfter: d.WalletBalanceAfter,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpense converts a model Expense to a domain Expense
func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:          m.ExpenseID,
		DriverID:           m.DriverID,
		CompanyID:          m.CompanyID,
		Amount:             m.Amount,
		Category:           domain.ExpenseCategory(m.Category),
		Notes:              m.Notes,
		PhotoURL:           m.PhotoURL,
		Latitude:           m.Latitude,
		Longitude:          m.Longitude,
		Accuracy:           m.Accuracy,
		OccurredAt:         m.OccurredAt,
		Status:             domain.ExpenseStatus(m.Status),
		DecidedBy:          m.DecidedBy,
		DecidedAt:          m.DecidedAt,
		WalletBalanceAfter: m.WalletBalanceAfter,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExpenseWithDriver converts a joined expense row to its domain counterpart
func ToDomainExpenseWithDriver(m models.ExpenseWithDriver) domain.ExpenseWithDriver {
	return domain.ExpenseWithDriver{
		Expense:        ToDomainExpense(m.Expense),
		DriverName:     m.DriverName,
		DriverUsername: m.DriverUsername,
	}
}

// ToDomainExpenseWithDriverSlice converts a slice of joined expense rows
func ToDomainExpenseWithDriverSlice(ms []models.ExpenseWithDriver) []domain.ExpenseWithDriver {
	ds := make([]domain.ExpenseWithDriver, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpenseWithDriver(m)
	}
	return ds
}
