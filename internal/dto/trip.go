package dto

import (
	"time"

	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
)

// CreateTripRequest defines the data needed to start a trip.
type CreateTripRequest struct {
	DriverID    string `json:"driverID" binding:"required"`
	Origin      string `json:"origin" binding:"required"`
	Destination string `json:"destination" binding:"required"`
}

// TripResponse defines the data returned for a trip.
type TripResponse struct {
	TripID      string     `json:"tripID"`
	DriverID    string     `json:"driverID"`
	Origin      string     `json:"origin"`
	Destination string     `json:"destination"`
	StartedAt   time.Time  `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Status      string     `json:"status"`
}

// ListTripsParams defines query parameters for listing trips.
type ListTripsParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}

// ListTripsResponse wraps the list of trips.
type ListTripsResponse struct {
	Trips []TripResponse `json:"trips"`
}

// ToTripResponse converts a domain.Trip to TripResponse DTO
func ToTripResponse(t *domain.Trip) TripResponse {
	return TripResponse{
		TripID:      t.TripID,
		DriverID:    t.DriverID,
		Origin:      t.Origin,
		Destination: t.Destination,
		StartedAt:   t.StartedAt,
		CompletedAt: t.CompletedAt,
		Status:      string(t.Status),
	}
}

// ToListTripsResponse converts domain trips to the response DTO
func ToListTripsResponse(trips []domain.Trip) ListTripsResponse {
	res := make([]TripResponse, len(trips))
	for i, t := range trips {
		res[i] = ToTripResponse(&t)
	}
	return ListTripsResponse{Trips: res}
}
