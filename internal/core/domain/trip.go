package domain

import "time"

// TripStatus indicates whether a trip is still underway.
type TripStatus string

const (
	TripOngoing   TripStatus = "ongoing"
	TripCompleted TripStatus = "completed"
)

// Trip is a single journey undertaken by a driver.
type Trip struct {
	TripID      string     `json:"tripID"`   // Primary Key (e.g., UUID)
	DriverID    string     `json:"driverID"` // FK -> drivers.driver_id
	CompanyID   *string    `json:"companyID,omitempty"`
	Origin      string     `json:"origin"`
	Destination string     `json:"destination"`
	StartedAt   time.Time  `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Status      TripStatus `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	CreatedBy   string     `json:"createdBy"`
}
