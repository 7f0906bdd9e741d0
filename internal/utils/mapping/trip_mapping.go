package mapping

import (
	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
	"github.com/fleetpulse/fleet_expense_app/internal/models"
)

// ToModelTrip converts a domain Trip to a model Trip
func ToModelTrip(d domain.Trip) models.Trip {
	return models.Trip{
		TripID:      d.TripID,
		DriverID:    d.DriverID,
		CompanyID:   d.CompanyID,
		Origin:      d.Origin,
		Destination: d.Destination,
		StartedAt:   d.StartedAt,
		CompletedAt: d.CompletedAt,
		Status:      string(d.Status),
		CreatedAt:   d.CreatedAt,
		CreatedBy:   d.CreatedBy,
	}
}

// ToDomainTrip converts a model Trip to a domain Trip
func ToDomainTrip(m models.Trip) domain.Trip {
	return domain.Trip{
		TripID:      m.TripID,
		DriverID:    m.DriverID,
		CompanyID:   m.CompanyID,
		Origin:      m.Origin,
		Destination: m.Destination,
		StartedAt:   m.StartedAt,
		CompletedAt: m.CompletedAt,
		Status:      domain.TripStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		CreatedBy:   m.CreatedBy,
	}
}

// ToDomainTripSlice converts a slice of model trips
func ToDomainTripSlice(ms []models.Trip) []domain.Trip {
	ds := make([]domain.Trip, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTrip(m)
	}
	return ds
}
