package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fleetpulse/fleet_expense_app/internal/apperrors"
	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
	portssvc "github.com/fleetpulse/fleet_expense_app/internal/core/ports/services"
	"github.com/fleetpulse/fleet_expense_app/internal/core/services"
	"github.com/fleetpulse/fleet_expense_app/internal/dto"
)

// --- Mock CallLogRepository ---
type MockCallLogRepository struct {
	mock.Mock
	InsertCallLogsFn func(ctx context.Context, logs []domain.CallLog) (int, int, error)
	ListCallLogsFn   func(ctx context.Context, filter domain.TenantFilter, query domain.CallLogFilter) ([]domain.CallLog, error)
}

func (m *MockCallLogRepository) InsertCallLogs(ctx context.Context, logs []domain.CallLog) (int, int, error) {
	if m.InsertCallLogsFn != nil {
		return m.InsertCallLogsFn(ctx, logs)
	}
	args := m.Called(ctx, logs)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockCallLogRepository) ListCallLogs(ctx context.Context, filter domain.TenantFilter, query domain.CallLogFilter) ([]domain.CallLog, error) {
	if m.ListCallLogsFn != nil {
		return m.ListCallLogsFn(ctx, filter, query)
	}
	args := m.Called(ctx, filter, query)
	var logs []domain.CallLog
	if args.Get(0) != nil {
		logs = args.Get(0).([]domain.CallLog)
	}
	return logs, args.Error(1)
}

// --- Test Suite ---
type CallLogServiceTestSuite struct {
	suite.Suite
	mockCallLogRepo *MockCallLogRepository
	service         portssvc.CallLogSvcFacade
}

func (suite *CallLogServiceTestSuite) SetupTest() {
	suite.mockCallLogRepo = new(MockCallLogRepository)
	suite.service = services.NewCallLogService(suite.mockCallLogRepo)
}

// --- IngestCallLogs Tests ---
func (suite *CallLogServiceTestSuite) TestIngestCallLogs_Success() {
	ctx := context.Background()
	companyID := uuid.NewString()
	principal := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleAdmin, CompanyID: &companyID}
	loggedAt := time.Now().UTC().Add(-time.Hour)
	req := dto.IngestCallLogsRequest{
		Logs: []dto.CallLogEntry{
			{PhoneNumber: "+919876543210", CallerName: "Depot", DurationSeconds: 45, CallType: "incoming", LoggedAt: loggedAt},
			{PhoneNumber: "+919876543211", DurationSeconds: 0, CallType: "missed", LoggedAt: loggedAt.Add(time.Minute)},
		},
	}

	suite.mockCallLogRepo.InsertCallLogsFn = func(ctx context.Context, logs []domain.CallLog) (int, int, error) {
		suite.Require().Len(logs, 2)
		for _, l := range logs {
			suite.NotEmpty(l.CallLogID)
			// Ingested records take the caller's company.
			suite.Require().NotNil(l.CompanyID)
			suite.Equal(companyID, *l.CompanyID)
		}
		suite.Equal(domain.CallIncoming, logs[0].CallType)
		suite.Equal(domain.CallMissed, logs[1].CallType)
		return 1, 1, nil
	}

	inserted, skipped, err := suite.service.IngestCallLogs(ctx, principal, req)

	suite.Require().NoError(err)
	suite.Equal(1, inserted)
	suite.Equal(1, skipped)
}

func (suite *CallLogServiceTestSuite) TestIngestCallLogs_DriverForbidden() {
	ctx := context.Background()

	inserted, skipped, err := suite.service.IngestCallLogs(ctx, driverPrincipal(), dto.IngestCallLogsRequest{})

	suite.Require().Error(err)
	suite.Zero(inserted)
	suite.Zero(skipped)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockCallLogRepo.AssertNotCalled(suite.T(), "InsertCallLogs", mock.Anything, mock.Anything)
}

// --- ListCallLogs Tests ---
func (suite *CallLogServiceTestSuite) TestListCallLogs_Success() {
	ctx := context.Background()
	principal := adminPrincipal()
	params := dto.ListCallLogsParams{PhoneNumber: "98765", CallType: "outgoing", Limit: 50}
	expected := []domain.CallLog{{CallLogID: uuid.NewString(), PhoneNumber: "+919876543210"}}

	suite.mockCallLogRepo.ListCallLogsFn = func(ctx context.Context, filter domain.TenantFilter, query domain.CallLogFilter) ([]domain.CallLog, error) {
		suite.Equal("98765", query.PhoneNumber)
		suite.Equal(domain.CallOutgoing, query.CallType)
		suite.Equal(50, query.Limit)
		return expected, nil
	}

	logs, err := suite.service.ListCallLogs(ctx, principal, params)

	suite.Require().NoError(err)
	suite.Equal(expected, logs)
}

func (suite *CallLogServiceTestSuite) TestListCallLogs_LimitCapped() {
	ctx := context.Background()
	principal := adminPrincipal()

	suite.mockCallLogRepo.ListCallLogsFn = func(ctx context.Context, filter domain.TenantFilter, query domain.CallLogFilter) ([]domain.CallLog, error) {
		suite.Equal(200, query.Limit)
		return []domain.CallLog{}, nil
	}

	_, err := suite.service.ListCallLogs(ctx, principal, dto.ListCallLogsParams{Limit: 5000})

	suite.Require().NoError(err)
}

func (suite *CallLogServiceTestSuite) TestListCallLogs_ZeroLimitDefaultsToCap() {
	ctx := context.Background()
	principal := adminPrincipal()

	suite.mockCallLogRepo.ListCallLogsFn = func(ctx context.Context, filter domain.TenantFilter, query domain.CallLogFilter) ([]domain.CallLog, error) {
		suite.Equal(200, query.Limit)
		return []domain.CallLog{}, nil
	}

	_, err := suite.service.ListCallLogs(ctx, principal, dto.ListCallLogsParams{})

	suite.Require().NoError(err)
}

func (suite *CallLogServiceTestSuite) TestListCallLogs_DriverForbidden() {
	ctx := context.Background()

	logs, err := suite.service.ListCallLogs(ctx, driverPrincipal(), dto.ListCallLogsParams{Limit: 10})

	suite.Require().Error(err)
	suite.Nil(logs)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestCallLogServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CallLogServiceTestSuite))
}
