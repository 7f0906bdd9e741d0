package models

import "time"

// CallLog represents a phone call row. Unique on (phone_number, logged_at,
// duration_seconds) so repeated ingests of the same export are deduplicated.
type CallLog struct {
	CallLogID       string    `db:"call_log_id"`
	CompanyID       *string   `db:"company_id"`
	PhoneNumber     string    `db:"phone_number"`
	CallerName      string    `db:"caller_name"`
	DurationSeconds int       `db:"duration_seconds"`
	CallType        string    `db:"call_type"`
	LoggedAt        time.Time `db:"logged_at"`
	CreatedAt       time.Time `db:"created_at"`
}
