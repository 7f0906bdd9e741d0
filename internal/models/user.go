package models

import "time"

// User represents a user of the application.
// Includes username and password hash for authentication.
type User struct {
	UserID       string  `db:"user_id"`
	Username     string  `db:"username"`
	PasswordHash string  `db:"password_hash"`
	Name         string  `db:"name"`
	Role         string  `db:"role"`
	CompanyID    *string `db:"company_id"` // Nullable for super admins and legacy records
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
