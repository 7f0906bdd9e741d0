package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fleetpulse/fleet_expense_app/internal/apperrors"
	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
	portssvc "github.com/fleetpulse/fleet_expense_app/internal/core/ports/services"
	"github.com/fleetpulse/fleet_expense_app/internal/core/services"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
	GetDashboardDataFn     func(ctx context.Context, filter domain.TenantFilter, since time.Time) (*domain.DashboardSummary, error)
	GetLivePositionsFn     func(ctx context.Context, filter domain.TenantFilter) ([]domain.LivePosition, error)
	GetMonthlyDeductionsFn func(ctx context.Context, driverID string, filter domain.TenantFilter, monthStart time.Time) (decimal.Decimal, error)
}

func (m *MockReportingRepository) GetDashboardData(ctx context.Context, filter domain.TenantFilter, since time.Time) (*domain.DashboardSummary, error) {
	if m.GetDashboardDataFn != nil {
		return m.GetDashboardDataFn(ctx, filter, since)
	}
	args := m.Called(ctx, filter, since)
	var summary *domain.DashboardSummary
	if args.Get(0) != nil {
		summary = args.Get(0).(*domain.DashboardSummary)
	}
	return summary, args.Error(1)
}

func (m *MockReportingRepository) GetLivePositions(ctx context.Context, filter domain.TenantFilter) ([]domain.LivePosition, error) {
	if m.GetLivePositionsFn != nil {
		return m.GetLivePositionsFn(ctx, filter)
	}
	args := m.Called(ctx, filter)
	var positions []domain.LivePosition
	if args.Get(0) != nil {
		positions = args.Get(0).([]domain.LivePosition)
	}
	return positions, args.Error(1)
}

func (m *MockReportingRepository) GetMonthlyDeductions(ctx context.Context, driverID string, filter domain.TenantFilter, monthStart time.Time) (decimal.Decimal, error) {
	if m.GetMonthlyDeductionsFn != nil {
		return m.GetMonthlyDeductionsFn(ctx, driverID, filter, monthStart)
	}
	args := m.Called(ctx, driverID, filter, monthStart)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Test Suite ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockDriverRepo    *MockDriverRepository
	service           portssvc.ReportingService
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockDriverRepo = new(MockDriverRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockDriverRepo, nil)
}

// --- Dashboard Tests ---
func (suite *ReportingServiceTestSuite) TestDashboard_Success() {
	ctx := context.Background()
	principal := adminPrincipal()
	expected := &domain.DashboardSummary{
		ActiveDrivers:      4,
		TripsToday:         2,
		ApprovedSpendToday: decimal.NewFromInt(1200),
		TotalWalletBalance: decimal.NewFromInt(5400),
		CallsToday:         17,
	}

	suite.mockReportingRepo.GetDashboardDataFn = func(ctx context.Context, filter domain.TenantFilter, since time.Time) (*domain.DashboardSummary, error) {
		// Dated counters start at UTC midnight of the current day.
		now := time.Now().UTC()
		suite.Equal(time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), since)
		return expected, nil
	}

	summary, err := suite.service.Dashboard(ctx, principal)

	suite.Require().NoError(err)
	suite.Equal(expected, summary)
}

func (suite *ReportingServiceTestSuite) TestDashboard_EmptyDataReturnsZeros() {
	ctx := context.Background()
	principal := adminPrincipal()
	empty := &domain.DashboardSummary{
		ApprovedSpendToday: decimal.Zero,
		TotalWalletBalance: decimal.Zero,
	}

	suite.mockReportingRepo.On("GetDashboardData", ctx, principal.TenantFilter(), mock.AnythingOfType("time.Time")).Return(empty, nil).Once()

	summary, err := suite.service.Dashboard(ctx, principal)

	suite.Require().NoError(err)
	suite.Zero(summary.ActiveDrivers)
	suite.Zero(summary.TripsToday)
	suite.Zero(summary.CallsToday)
	suite.True(summary.ApprovedSpendToday.IsZero())
	suite.True(summary.TotalWalletBalance.IsZero())
}

func (suite *ReportingServiceTestSuite) TestDashboard_DriverForbidden() {
	ctx := context.Background()

	summary, err := suite.service.Dashboard(ctx, driverPrincipal())

	suite.Require().Error(err)
	suite.Nil(summary)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "GetDashboardData", mock.Anything, mock.Anything, mock.Anything)
}

// --- LiveMap Tests ---
func (suite *ReportingServiceTestSuite) TestLiveMap_Success() {
	ctx := context.Background()
	principal := superAdminPrincipal()
	expected := []domain.LivePosition{
		{DriverID: uuid.NewString(), DriverName: "Driver One", Latitude: 12.97, Longitude: 77.59},
	}

	suite.mockReportingRepo.On("GetLivePositions", ctx, principal.TenantFilter()).Return(expected, nil).Once()

	positions, err := suite.service.LiveMap(ctx, principal)

	suite.Require().NoError(err)
	suite.Equal(expected, positions)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestLiveMap_DriverForbidden() {
	ctx := context.Background()

	positions, err := suite.service.LiveMap(ctx, driverPrincipal())

	suite.Require().Error(err)
	suite.Nil(positions)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- MonthlySpend Tests ---
func (suite *ReportingServiceTestSuite) TestMonthlySpend_Success() {
	ctx := context.Background()
	principal := adminPrincipal()
	driverID := uuid.NewString()
	driver := &domain.Driver{DriverID: driverID, WalletBalance: decimal.NewFromInt(700)}

	suite.mockDriverRepo.On("FindDriverByID", ctx, driverID, principal.TenantFilter()).Return(driver, nil).Once()
	suite.mockReportingRepo.GetMonthlyDeductionsFn = func(ctx context.Context, id string, filter domain.TenantFilter, monthStart time.Time) (decimal.Decimal, error) {
		suite.Equal(driverID, id)
		now := time.Now().UTC()
		suite.Equal(time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), monthStart)
		return decimal.NewFromInt(300), nil
	}

	spend, err := suite.service.MonthlySpend(ctx, principal, driverID)

	suite.Require().NoError(err)
	suite.Equal(driverID, spend.DriverID)
	suite.True(spend.TotalSpend.Equal(decimal.NewFromInt(300)))
	suite.True(spend.CurrentBalance.Equal(decimal.NewFromInt(700)))
}

func (suite *ReportingServiceTestSuite) TestMonthlySpend_DriverOutOfScope() {
	ctx := context.Background()
	companyID := uuid.NewString()
	principal := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleAdmin, CompanyID: &companyID}
	driverID := uuid.NewString()

	suite.mockDriverRepo.On("FindDriverByID", ctx, driverID, principal.TenantFilter()).Return(nil, apperrors.ErrNotFound).Once()

	spend, err := suite.service.MonthlySpend(ctx, principal, driverID)

	suite.Require().Error(err)
	suite.Nil(spend)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "GetMonthlyDeductions", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
