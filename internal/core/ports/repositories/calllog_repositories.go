package repositories

import (
	"context"

	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
)

// CallLogReader defines read operations for call log data
type CallLogReader interface {
	// ListCallLogs retrieves call logs matching the query, tenant-scoped, newest first.
	ListCallLogs(ctx context.Context, filter domain.TenantFilter, query domain.CallLogFilter) ([]domain.CallLog, error)
}

// CallLogWriter defines write operations for call log data
type CallLogWriter interface {
	// InsertCallLogs persists a batch of call logs, skipping rows that collide on
	// the (phone number, logged at, duration) uniqueness constraint.
	// Returns inserted and skipped counts.
	InsertCallLogs(ctx context.Context, logs []domain.CallLog) (inserted int, skipped int, err error)
}

// CallLogRepositoryFacade combines all call-log-related repository interfaces
type CallLogRepositoryFacade interface {
	CallLogReader
	CallLogWriter
}
