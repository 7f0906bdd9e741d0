package services

import (
	"context"
	"fmt"
	"time"

	"github.com/fleetpulse/fleet_expense_app/internal/apperrors"
	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
	portsrepo "github.com/fleetpulse/fleet_expense_app/internal/core/ports/repositories"
	portssvc "github.com/fleetpulse/fleet_expense_app/internal/core/ports/services"
	"github.com/fleetpulse/fleet_expense_app/internal/middleware"
	"github.com/fleetpulse/fleet_expense_app/internal/platform/cache"
)

// reportingService provides read-only fleet reports.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
	driverRepo    portsrepo.DriverRepositoryFacade
	cache         *cache.Cache
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, driverRepo portsrepo.DriverRepositoryFacade, c *cache.Cache) portssvc.ReportingService {
	return &reportingService{
		reportingRepo: reportingRepo,
		driverRepo:    driverRepo,
		cache:         c,
	}
}

// Ensure reportingService implements the portssvc.ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// utcMidnight returns the start of the current day in UTC.
func utcMidnight(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// Dashboard generates the admin dashboard summary for the principal's tenant
// scope. Results are cached per scope with a short TTL.
func (s *reportingService) Dashboard(ctx context.Context, principal domain.Principal) (*domain.DashboardSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !principal.IsAdmin() {
		return nil, fmt.Errorf("%w: admin role required", apperrors.ErrForbidden)
	}

	filter := principal.TenantFilter()
	key := dashboardCacheKey(filter)

	var cached domain.DashboardSummary
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("dashboard cache read failed", "key", key, "error", err)
	} else if hit {
		return &cached, nil
	}

	summary, err := s.reportingRepo.GetDashboardData(ctx, filter, utcMidnight(time.Now()))
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, summary); err != nil {
		logger.Warn("dashboard cache write failed", "key", key, "error", err)
	}
	return summary, nil
}

// LiveMap returns the latest expense-derived position per driver in scope.
func (s *reportingService) LiveMap(ctx context.Context, principal domain.Principal) ([]domain.LivePosition, error) {
	if !principal.IsAdmin() {
		return nil, fmt.Errorf("%w: admin role required", apperrors.ErrForbidden)
	}
	return s.reportingRepo.GetLivePositions(ctx, principal.TenantFilter())
}

// MonthlySpend sums a driver's deductions since the first of the current month
// alongside the current balance.
func (s *reportingService) MonthlySpend(ctx context.Context, principal domain.Principal, driverID string) (*domain.MonthlySpend, error) {
	if !principal.IsAdmin() {
		return nil, fmt.Errorf("%w: admin role required", apperrors.ErrForbidden)
	}

	filter := principal.TenantFilter()
	driver, err := s.driverRepo.FindDriverByID(ctx, driverID, filter)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	total, err := s.reportingRepo.GetMonthlyDeductions(ctx, driverID, filter, monthStart)
	if err != nil {
		return nil, err
	}

	return &domain.MonthlySpend{
		DriverID:       driverID,
		MonthStart:     monthStart,
		TotalSpend:     total,
		CurrentBalance: driver.WalletBalance,
	}, nil
}
