package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fleetpulse/fleet_expense_app/internal/apperrors"
	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
	portsrepo "github.com/fleetpulse/fleet_expense_app/internal/core/ports/repositories"
	portssvc "github.com/fleetpulse/fleet_expense_app/internal/core/ports/services"
	"github.com/fleetpulse/fleet_expense_app/internal/dto"
	"github.com/fleetpulse/fleet_expense_app/internal/middleware"
)

// tripService provides trip management operations.
type tripService struct {
	tripRepo   portsrepo.TripRepositoryFacade
	driverRepo portsrepo.DriverRepositoryFacade
}

// NewTripService creates a new TripService.
func NewTripService(tripRepo portsrepo.TripRepositoryFacade, driverRepo portsrepo.DriverRepositoryFacade) portssvc.TripSvcFacade {
	return &tripService{
		tripRepo:   tripRepo,
		driverRepo: driverRepo,
	}
}

// Ensure tripService implements the portssvc.TripSvcFacade interface
var _ portssvc.TripSvcFacade = (*tripService)(nil)

// CreateTrip starts a trip for a driver within the principal's tenant scope.
func (s *tripService) CreateTrip(ctx context.Context, principal domain.Principal, req dto.CreateTripRequest) (*domain.Trip, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !principal.IsAdmin() {
		return nil, fmt.Errorf("%w: admin role required", apperrors.ErrForbidden)
	}

	driver, err := s.driverRepo.FindDriverByID(ctx, req.DriverID, principal.TenantFilter())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	trip := domain.Trip{
		TripID:      uuid.NewString(),
		DriverID:    driver.DriverID,
		CompanyID:   driver.CompanyID,
		Origin:      req.Origin,
		Destination: req.Destination,
		StartedAt:   now,
		Status:      domain.TripOngoing,
		CreatedAt:   now,
		CreatedBy:   principal.UserID,
	}

	if err := s.tripRepo.SaveTrip(ctx, trip); err != nil {
		logger.Error("failed to create trip", "error", err, "driver_id", driver.DriverID)
		return nil, err
	}

	logger.Info("trip created", "trip_id", trip.TripID, "driver_id", trip.DriverID)
	return &trip, nil
}

// CompleteTrip marks an ongoing trip as completed.
func (s *tripService) CompleteTrip(ctx context.Context, principal domain.Principal, tripID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !principal.IsAdmin() {
		return fmt.Errorf("%w: admin role required", apperrors.ErrForbidden)
	}

	if err := s.tripRepo.CompleteTrip(ctx, tripID, principal.TenantFilter(), time.Now().UTC()); err != nil {
		logger.Error("failed to complete trip", "error", err, "trip_id", tripID)
		return err
	}

	logger.Info("trip completed", "trip_id", tripID)
	return nil
}

// ListTrips retrieves tenant-scoped trips, newest first.
func (s *tripService) ListTrips(ctx context.Context, principal domain.Principal, params dto.ListTripsParams) ([]domain.Trip, error) {
	if !principal.IsAdmin() {
		return nil, fmt.Errorf("%w: admin role required", apperrors.ErrForbidden)
	}
	return s.tripRepo.ListTrips(ctx, principal.TenantFilter(), params.Limit, params.Offset)
}
