package services

import (
	"context"

	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
	"github.com/fleetpulse/fleet_expense_app/internal/dto"
)

// DriverReaderSvc defines read operations for driver data
type DriverReaderSvc interface {
	// GetDriverByID retrieves a driver within the principal's tenant scope.
	GetDriverByID(ctx context.Context, principal domain.Principal, driverID string) (*domain.Driver, error)

	// GetOwnDriver retrieves the driver profile owned by the principal.
	GetOwnDriver(ctx context.Context, principal domain.Principal) (*domain.Driver, error)

	// ListDrivers retrieves tenant-scoped drivers with user identity.
	ListDrivers(ctx context.Context, principal domain.Principal, params dto.ListDriversParams) ([]domain.DriverWithUser, error)
}

// DriverWriterSvc defines write operations for driver data
type DriverWriterSvc interface {
	// SetDriverStatus changes a driver's active/inactive status.
	SetDriverStatus(ctx context.Context, principal domain.Principal, driverID string, status domain.DriverStatus) error
}

// DriverSvcFacade combines all driver-related service interfaces
type DriverSvcFacade interface {
	DriverReaderSvc
	DriverWriterSvc
}
