package pgsql

import (
	portsrepo "github.com/fleetpulse/fleet_expense_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	companyRepo := newPgxCompanyRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	driverRepo := newPgxDriverRepository(dbPool)
	expenseRepo := newPgxExpenseRepository(dbPool, driverRepo)
	walletRepo := newPgxWalletRepository(dbPool, driverRepo)
	callLogRepo := newPgxCallLogRepository(dbPool)
	tripRepo := newPgxTripRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		CompanyRepo:   companyRepo,
		UserRepo:      userRepo,
		DriverRepo:    driverRepo,
		ExpenseRepo:   expenseRepo,
		WalletRepo:    walletRepo,
		CallLogRepo:   callLogRepo,
		TripRepo:      tripRepo,
		ReportingRepo: reportingRepo,
	}
}
