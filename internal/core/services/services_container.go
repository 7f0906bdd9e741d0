package services

import (
	portsrepo "github.com/fleetpulse/fleet_expense_app/internal/core/ports/repositories"
	portssvc "github.com/fleetpulse/fleet_expense_app/internal/core/ports/services"
	"github.com/fleetpulse/fleet_expense_app/internal/platform/cache"
	"github.com/fleetpulse/fleet_expense_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, c *cache.Cache) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Company = NewCompanyService(repos.CompanyRepo)
	container.User = NewUserService(repos.UserRepo, repos.DriverRepo)
	container.Driver = NewDriverService(repos.DriverRepo)
	container.Expense = NewExpenseService(repos.ExpenseRepo, repos.DriverRepo, c)
	container.Wallet = NewWalletService(repos.WalletRepo, repos.DriverRepo, c)
	container.CallLog = NewCallLogService(repos.CallLogRepo)
	container.Trip = NewTripService(repos.TripRepo, repos.DriverRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.DriverRepo, c)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.UserSvcFacade    = (*userService)(nil)
	_ portssvc.ExpenseSvcFacade = (*expenseService)(nil)
	_ portssvc.WalletSvcFacade  = (*walletService)(nil)
)
