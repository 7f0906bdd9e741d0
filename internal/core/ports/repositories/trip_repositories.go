package repositories

import (
	"context"
	"time"

	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
)

// TripReader defines read operations for trip data
type TripReader interface {
	// ListTrips retrieves a paginated list of trips, tenant-scoped, newest first.
	ListTrips(ctx context.Context, filter domain.TenantFilter, limit int, offset int) ([]domain.Trip, error)
}

// TripWriter defines write operations for trip data
type TripWriter interface {
	// SaveTrip persists a new trip.
	SaveTrip(ctx context.Context, trip domain.Trip) error

	// CompleteTrip marks an ongoing trip as completed.
	CompleteTrip(ctx context.Context, tripID string, filter domain.TenantFilter, completedAt time.Time) error
}

// TripRepositoryFacade combines all trip-related repository interfaces
type TripRepositoryFacade interface {
	TripReader
	TripWriter
}
