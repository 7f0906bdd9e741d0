package services

import (
	"context"

	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
	"github.com/fleetpulse/fleet_expense_app/internal/dto"
)

// CallLogSvcFacade defines operations for call log ingest and retrieval
type CallLogSvcFacade interface {
	// IngestCallLogs persists a batch of call records, skipping duplicates.
	IngestCallLogs(ctx context.Context, principal domain.Principal, req dto.IngestCallLogsRequest) (inserted int, skipped int, err error)

	// ListCallLogs retrieves tenant-scoped call logs matching the query.
	ListCallLogs(ctx context.Context, principal domain.Principal, params dto.ListCallLogsParams) ([]domain.CallLog, error)
}
