package models

import "time"

// Trip represents a journey row.
type Trip struct {
	TripID      string     `db:"trip_id"`
	DriverID    string     `db:"driver_id"`
	CompanyID   *string    `db:"company_id"`
	Origin      string     `db:"origin"`
	Destination string     `db:"destination"`
	StartedAt   time.Time  `db:"started_at"`
	CompletedAt *time.Time `db:"completed_at"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	CreatedBy   string     `db:"created_by"`
}
