package pgsql

import (
	"context"
	"fmt"

	"github.com/fleetpulse/fleet_expense_app/internal/apperrors"
	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
	portsrepo "github.com/fleetpulse/fleet_expense_app/internal/core/ports/repositories"
	"github.com/fleetpulse/fleet_expense_app/internal/models"
	"github.com/fleetpulse/fleet_expense_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCallLogRepository struct {
	BaseRepository
}

// newPgxCallLogRepository creates a new repository for call log data.
func newPgxCallLogRepository(pool *pgxpool.Pool) portsrepo.CallLogRepositoryFacade {
	return &PgxCallLogRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxCallLogRepository implements portsrepo.CallLogRepositoryFacade
var _ portsrepo.CallLogRepositoryFacade = (*PgxCallLogRepository)(nil)

// InsertCallLogs persists a batch of call logs inside one transaction. Rows
// colliding on the dedupe constraint are skipped via ON CONFLICT DO NOTHING
// and counted from each statement's affected rows.
func (r *PgxCallLogRepository) InsertCallLogs(ctx context.Context, logs []domain.CallLog) (int, int, error) {
	if len(logs) == 0 {
		return 0, 0, nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, 0, err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO call_logs (call_log_id, company_id, phone_number, caller_name, duration_seconds, call_type, logged_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT ON CONSTRAINT uq_call_logs_dedupe DO NOTHING;
	`

	batch := &pgx.Batch{}
	for _, l := range logs {
		m := mapping.ToModelCallLog(l)
		batch.Queue(query,
			m.CallLogID,
			m.CompanyID,
			m.PhoneNumber,
			m.CallerName,
			m.DurationSeconds,
			m.CallType,
			m.LoggedAt,
			m.CreatedAt,
		)
	}

	br := tx.SendBatch(ctx, batch)
	inserted := 0
	for range logs {
		cmdTag, err := br.Exec()
		if err != nil {
			br.Close()
			return 0, 0, apperrors.NewAppError(500, "failed to insert call log batch", err)
		}
		inserted += int(cmdTag.RowsAffected())
	}
	if err := br.Close(); err != nil {
		return 0, 0, apperrors.NewAppError(500, "failed to close call log batch", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, 0, err
	}
	return inserted, len(logs) - inserted, nil
}

// ListCallLogs retrieves call logs matching the query, tenant-scoped, newest first.
func (r *PgxCallLogRepository) ListCallLogs(ctx context.Context, filter domain.TenantFilter, query domain.CallLogFilter) ([]domain.CallLog, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = 100
	}

	args := []interface{}{}
	scope, args := tenantClause("company_id", filter, args)
	sqlQuery := `
		SELECT call_log_id, company_id, phone_number, caller_name, duration_seconds, call_type, logged_at, created_at
		FROM call_logs
		WHERE 1 = 1` + scope

	if query.PhoneNumber != "" {
		args = append(args, "%"+query.PhoneNumber+"%")
		sqlQuery += fmt.Sprintf(" AND phone_number LIKE $%d", len(args))
	}
	if query.CallType != "" {
		args = append(args, query.CallType)
		sqlQuery += fmt.Sprintf(" AND call_type = $%d", len(args))
	}
	if query.From != nil {
		args = append(args, *query.From)
		sqlQuery += fmt.Sprintf(" AND logged_at >= $%d", len(args))
	}
	if query.To != nil {
		args = append(args, *query.To)
		sqlQuery += fmt.Sprintf(" AND logged_at <= $%d", len(args))
	}

	args = append(args, limit)
	sqlQuery += fmt.Sprintf(" ORDER BY logged_at DESC LIMIT $%d;", len(args))

	rows, err := r.Pool.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query call logs", err)
	}
	defer rows.Close()

	callLogs := []models.CallLog{}
	for rows.Next() {
		var m models.CallLog
		err := rows.Scan(
			&m.CallLogID,
			&m.CompanyID,
			&m.PhoneNumber,
			&m.CallerName,
			&m.DurationSeconds,
			&m.CallType,
			&m.LoggedAt,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan call log row", err)
		}
		callLogs = append(callLogs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating call log rows", err)
	}

	return mapping.ToDomainCallLogSlice(callLogs), nil
}
