package services

import (
	"context"

	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
	"github.com/fleetpulse/fleet_expense_app/internal/dto"
)

// TripSvcFacade defines operations for trip management
type TripSvcFacade interface {
	// CreateTrip starts a trip for a driver within the principal's tenant scope.
	CreateTrip(ctx context.Context, principal domain.Principal, req dto.CreateTripRequest) (*domain.Trip, error)

	// CompleteTrip marks an ongoing trip as completed.
	CompleteTrip(ctx context.Context, principal domain.Principal, tripID string) error

	// ListTrips retrieves tenant-scoped trips.
	ListTrips(ctx context.Context, principal domain.Principal, params dto.ListTripsParams) ([]domain.Trip, error)
}
