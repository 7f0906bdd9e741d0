package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/fleetpulse/fleet_expense_app/internal/apperrors"
	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
	portsrepo "github.com/fleetpulse/fleet_expense_app/internal/core/ports/repositories"
	"github.com/fleetpulse/fleet_expense_app/internal/models"
	"github.com/fleetpulse/fleet_expense_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTripRepository struct {
	BaseRepository
}

// newPgxTripRepository creates a new repository for trip data.
func newPgxTripRepository(pool *pgxpool.Pool) portsrepo.TripRepositoryFacade {
	return &PgxTripRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxTripRepository implements portsrepo.TripRepositoryFacade
var _ portsrepo.TripRepositoryFacade = (*PgxTripRepository)(nil)

// SaveTrip inserts a new trip.
func (r *PgxTripRepository) SaveTrip(ctx context.Context, trip domain.Trip) error {
	m := mapping.ToModelTrip(trip)

	query := `
		INSERT INTO trips (trip_id, driver_id, company_id, origin, destination, started_at, completed_at, status, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TripID,
		m.DriverID,
		m.CompanyID,
		m.Origin,
		m.Destination,
		m.StartedAt,
		m.CompletedAt,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save trip "+m.TripID, err)
	}
	return nil
}

// CompleteTrip marks an ongoing trip as completed. A trip that is missing, out
// of scope or already completed yields ErrNotFound.
func (r *PgxTripRepository) CompleteTrip(ctx context.Context, tripID string, filter domain.TenantFilter, completedAt time.Time) error {
	args := []interface{}{tripID, completedAt}
	scope, args := tenantClause("company_id", filter, args)
	query := `
		UPDATE trips
		SET status = 'completed',
		    completed_at = $2
		WHERE trip_id = $1 AND status = 'ongoing'` + scope + `;`

	cmdTag, err := r.Pool.Exec(ctx, query, args...)
	if err != nil {
		return apperrors.NewAppError(500, "failed to complete trip "+tripID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("ongoing trip " + tripID + " not found")
	}
	return nil
}

// ListTrips retrieves a paginated list of trips, tenant-scoped, newest first.
func (r *PgxTripRepository) ListTrips(ctx context.Context, filter domain.TenantFilter, limit int, offset int) ([]domain.Trip, error) {
	if limit <= 0 {
		limit = 50
	}

	args := []interface{}{}
	scope, args := tenantClause("company_id", filter, args)
	query := `
		SELECT trip_id, driver_id, company_id, origin, destination, started_at, completed_at, status, created_at, created_by
		FROM trips
		WHERE 1 = 1` + scope + `
		ORDER BY started_at DESC
		LIMIT $` + fmt.Sprint(len(args)+1) + ` OFFSET $` + fmt.Sprint(len(args)+2) + `;`
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query trips", err)
	}
	defer rows.Close()

	trips := []models.Trip{}
	for rows.Next() {
		var m models.Trip
		err := rows.Scan(
			&m.TripID,
			&m.DriverID,
			&m.CompanyID,
			&m.Origin,
			&m.Destination,
			&m.StartedAt,
			&m.CompletedAt,
			&m.Status,
			&m.CreatedAt,
			&m.CreatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan trip row", err)
		}
		trips = append(trips, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating trip rows", err)
	}

	return mapping.ToDomainTripSlice(trips), nil
}
