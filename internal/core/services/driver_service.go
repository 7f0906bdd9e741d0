package services

import (
	"context"
	"fmt"
	"time"

	"github.com/fleetpulse/fleet_expense_app/internal/apperrors"
	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
	portsrepo "github.com/fleetpulse/fleet_expense_app/internal/core/ports/repositories"
	portssvc "github.com/fleetpulse/fleet_expense_app/internal/core/ports/services"
	"github.com/fleetpulse/fleet_expense_app/internal/dto"
	"github.com/fleetpulse/fleet_expense_app/internal/middleware"
)

// driverService provides driver profile operations.
type driverService struct {
	driverRepo portsrepo.DriverRepositoryFacade
}

// NewDriverService creates a new DriverService.
func NewDriverService(driverRepo portsrepo.DriverRepositoryFacade) portssvc.DriverSvcFacade {
	return &driverService{driverRepo: driverRepo}
}

// Ensure driverService implements the portssvc.DriverSvcFacade interface
var _ portssvc.DriverSvcFacade = (*driverService)(nil)

// GetDriverByID retrieves a driver within the principal's tenant scope.
func (s *driverService) GetDriverByID(ctx context.Context, principal domain.Principal, driverID string) (*domain.Driver, error) {
	if !principal.IsAdmin() {
		return nil, fmt.Errorf("%w: admin role required", apperrors.ErrForbidden)
	}
	return s.driverRepo.FindDriverByID(ctx, driverID, principal.TenantFilter())
}

// GetOwnDriver retrieves the driver profile owned by the principal.
func (s *driverService) GetOwnDriver(ctx context.Context, principal domain.Principal) (*domain.Driver, error) {
	return s.driverRepo.FindDriverByUserID(ctx, principal.UserID)
}

// ListDrivers retrieves tenant-scoped drivers with user identity.
func (s *driverService) ListDrivers(ctx context.Context, principal domain.Principal, params dto.ListDriversParams) ([]domain.DriverWithUser, error) {
	if !principal.IsAdmin() {
		return nil, fmt.Errorf("%w: admin role required", apperrors.ErrForbidden)
	}
	return s.driverRepo.ListDrivers(ctx, principal.TenantFilter(), params.Limit, params.Offset)
}

// SetDriverStatus changes a driver's active/inactive status.
func (s *driverService) SetDriverStatus(ctx context.Context, principal domain.Principal, driverID string, status domain.DriverStatus) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !principal.IsAdmin() {
		return fmt.Errorf("%w: admin role required", apperrors.ErrForbidden)
	}
	if status != domain.DriverActive && status != domain.DriverInactive {
		return fmt.Errorf("%w: unknown driver status %s", apperrors.ErrValidation, status)
	}

	// Scope check before the write.
	if _, err := s.driverRepo.FindDriverByID(ctx, driverID, principal.TenantFilter()); err != nil {
		return err
	}

	if err := s.driverRepo.UpdateDriverStatus(ctx, driverID, status, principal.UserID, time.Now().UTC()); err != nil {
		logger.Error("failed to update driver status", "error", err, "driver_id", driverID)
		return err
	}

	logger.Info("driver status updated", "driver_id", driverID, "status", string(status))
	return nil
}
