package mapping

import (
	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
	"github.com/fleetpulse/fleet_expense_app/internal/models"
)

// ToModelDriver converts a domain Driver to a model Driver
func ToModelDriver(d domain.Driver) models.Driver {
	return models.Driver{
		DriverID:      d.DriverID,
		UserID:        d.UserID,
		CompanyID:     d.CompanyID,
		WalletBalance: d.WalletBalance,
		Status:        models.DriverStatus(d.Status),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDriver converts a model Driver to a domain Driver
func ToDomainDriver(m models.Driver) domain.Driver {
	return domain.Driver{
		DriverID:      m.DriverID,
		UserID:        m.UserID,
		CompanyID:     m.CompanyID,
		WalletBalance: m.WalletBalance,
		Status:        domain.DriverStatus(m.Status),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainDriverWithUser converts a joined driver row to its domain counterpart
func ToDomainDriverWithUser(m models.DriverWithUser) domain.DriverWithUser {
	return domain.DriverWithUser{
		Driver:   ToDomainDriver(m.Driver),
		UserName: m.UserName,
		Username: m.Username,
	}
}

// ToDomainDriverWithUserSlice converts a slice of joined driver rows
func ToDomainDriverWithUserSlice(ms []models.DriverWithUser) []domain.DriverWithUser {
	ds := make([]domain.DriverWithUser, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDriverWithUser(m)
	}
	return ds
}
