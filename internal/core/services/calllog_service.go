package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fleetpulse/fleet_expense_app/internal/apperrors"
	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
	portsrepo "github.com/fleetpulse/fleet_expense_app/internal/core/ports/repositories"
	portssvc "github.com/fleetpulse/fleet_expense_app/internal/core/ports/services"
	"github.com/fleetpulse/fleet_expense_app/internal/dto"
	"github.com/fleetpulse/fleet_expense_app/internal/middleware"
)

// maxCallLogPageSize caps a single call log listing.
const maxCallLogPageSize = 200

// callLogService provides call log ingest and retrieval.
type callLogService struct {
	callLogRepo portsrepo.CallLogRepositoryFacade
}

// NewCallLogService creates a new CallLogService.
func NewCallLogService(callLogRepo portsrepo.CallLogRepositoryFacade) portssvc.CallLogSvcFacade {
	return &callLogService{callLogRepo: callLogRepo}
}

// Ensure callLogService implements the portssvc.CallLogSvcFacade interface
var _ portssvc.CallLogSvcFacade = (*callLogService)(nil)

// IngestCallLogs persists a batch of call records. Rows that collide on
// (phone number, logged at, duration) are skipped, so re-sending the same
// device export is idempotent.
func (s *callLogService) IngestCallLogs(ctx context.Context, principal domain.Principal, req dto.IngestCallLogsRequest) (int, int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !principal.IsAdmin() {
		return 0, 0, fmt.Errorf("%w: admin role required", apperrors.ErrForbidden)
	}

	now := time.Now().UTC()
	logs := make([]domain.CallLog, len(req.Logs))
	for i, entry := range req.Logs {
		logs[i] = domain.CallLog{
			CallLogID:       uuid.NewString(),
			CompanyID:       principal.CompanyID,
			PhoneNumber:     entry.PhoneNumber,
			CallerName:      entry.CallerName,
			DurationSeconds: entry.DurationSeconds,
			CallType:        domain.CallType(entry.CallType),
			LoggedAt:        entry.LoggedAt,
			CreatedAt:       now,
		}
	}

	inserted, skipped, err := s.callLogRepo.InsertCallLogs(ctx, logs)
	if err != nil {
		logger.Error("failed to ingest call logs", "error", err, "batch_size", len(logs))
		return 0, 0, err
	}

	logger.Info("call logs ingested", "inserted", inserted, "skipped", skipped)
	return inserted, skipped, nil
}

// ListCallLogs retrieves tenant-scoped call logs matching the query.
func (s *callLogService) ListCallLogs(ctx context.Context, principal domain.Principal, params dto.ListCallLogsParams) ([]domain.CallLog, error) {
	if !principal.IsAdmin() {
		return nil, fmt.Errorf("%w: admin role required", apperrors.ErrForbidden)
	}

	limit := params.Limit
	if limit <= 0 || limit > maxCallLogPageSize {
		limit = maxCallLogPageSize
	}

	query := domain.CallLogFilter{
		PhoneNumber: params.PhoneNumber,
		CallType:    domain.CallType(params.CallType),
		From:        params.From,
		To:          params.To,
		Limit:       limit,
	}
	return s.callLogRepo.ListCallLogs(ctx, principal.TenantFilter(), query)
}
