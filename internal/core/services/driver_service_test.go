package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fleetpulse/fleet_expense_app/internal/apperrors"
	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
	portssvc "github.com/fleetpulse/fleet_expense_app/internal/core/ports/services"
	"github.com/fleetpulse/fleet_expense_app/internal/core/services"
	"github.com/fleetpulse/fleet_expense_app/internal/dto"
)

// --- Mock DriverRepository ---
// Shared by the driver, expense, wallet and user service suites.
type MockDriverRepository struct {
	mock.Mock
	FindDriverByIDFn       func(ctx context.Context, driverID string, filter domain.TenantFilter) (*domain.Driver, error)
	FindDriverByUserIDFn   func(ctx context.Context, userID string) (*domain.Driver, error)
	ListDriversFn          func(ctx context.Context, filter domain.TenantFilter, limit int, offset int) ([]domain.DriverWithUser, error)
	SaveDriverFn           func(ctx context.Context, driver domain.Driver) error
	UpdateDriverStatusFn   func(ctx context.Context, driverID string, status domain.DriverStatus, userID string, now time.Time) error
	DeleteDriverByUserIDFn func(ctx context.Context, userID string) error
}

func (m *MockDriverRepository) FindDriverByID(ctx context.Context, driverID string, filter domain.TenantFilter) (*domain.Driver, error) {
	if m.FindDriverByIDFn != nil {
		return m.FindDriverByIDFn(ctx, driverID, filter)
	}
	args := m.Called(ctx, driverID, filter)
	var driver *domain.Driver
	if args.Get(0) != nil {
		driver = args.Get(0).(*domain.Driver)
	}
	return driver, args.Error(1)
}

func (m *MockDriverRepository) FindDriverByUserID(ctx context.Context, userID string) (*domain.Driver, error) {
	if m.FindDriverByUserIDFn != nil {
		return m.FindDriverByUserIDFn(ctx, userID)
	}
	args := m.Called(ctx, userID)
	var driver *domain.Driver
	if args.Get(0) != nil {
		driver = args.Get(0).(*domain.Driver)
	}
	return driver, args.Error(1)
}

func (m *MockDriverRepository) ListDrivers(ctx context.Context, filter domain.TenantFilter, limit int, offset int) ([]domain.DriverWithUser, error) {
	if m.ListDriversFn != nil {
		return m.ListDriversFn(ctx, filter, limit, offset)
	}
	args := m.Called(ctx, filter, limit, offset)
	var drivers []domain.DriverWithUser
	if args.Get(0) != nil {
		drivers = args.Get(0).([]domain.DriverWithUser)
	}
	return drivers, args.Error(1)
}

func (m *MockDriverRepository) SaveDriver(ctx context.Context, driver domain.Driver) error {
	if m.SaveDriverFn != nil {
		return m.SaveDriverFn(ctx, driver)
	}
	args := m.Called(ctx, driver)
	return args.Error(0)
}

func (m *MockDriverRepository) UpdateDriverStatus(ctx context.Context, driverID string, status domain.DriverStatus, userID string, now time.Time) error {
	if m.UpdateDriverStatusFn != nil {
		return m.UpdateDriverStatusFn(ctx, driverID, status, userID, now)
	}
	args := m.Called(ctx, driverID, status, userID, now)
	return args.Error(0)
}

func (m *MockDriverRepository) DeleteDriverByUserID(ctx context.Context, userID string) error {
	if m.DeleteDriverByUserIDFn != nil {
		return m.DeleteDriverByUserIDFn(ctx, userID)
	}
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockDriverRepository) FindDriverByIDForUpdate(ctx context.Context, tx pgx.Tx, driverID string) (*domain.Driver, error) {
	args := m.Called(ctx, tx, driverID)
	var driver *domain.Driver
	if args.Get(0) != nil {
		driver = args.Get(0).(*domain.Driver)
	}
	return driver, args.Error(1)
}

func (m *MockDriverRepository) UpdateDriverBalanceInTx(ctx context.Context, tx pgx.Tx, driverID string, newBalance decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, driverID, newBalance, userID, now)
	return args.Error(0)
}

// --- Shared principals ---

func adminPrincipal() domain.Principal {
	return domain.Principal{UserID: uuid.NewString(), Role: domain.RoleAdmin}
}

func superAdminPrincipal() domain.Principal {
	return domain.Principal{UserID: uuid.NewString(), Role: domain.RoleSuperAdmin}
}

func driverPrincipal() domain.Principal {
	return domain.Principal{UserID: uuid.NewString(), Role: domain.RoleDriver}
}

// --- Test Suite ---
type DriverServiceTestSuite struct {
	suite.Suite
	mockDriverRepo *MockDriverRepository
	service        portssvc.DriverSvcFacade
}

func (suite *DriverServiceTestSuite) SetupTest() {
	suite.mockDriverRepo = new(MockDriverRepository)
	suite.service = services.NewDriverService(suite.mockDriverRepo)
}

// --- GetDriverByID Tests ---
func (suite *DriverServiceTestSuite) TestGetDriverByID_Success() {
	ctx := context.Background()
	principal := adminPrincipal()
	driverID := uuid.NewString()
	expected := &domain.Driver{DriverID: driverID, WalletBalance: decimal.NewFromInt(250), Status: domain.DriverActive}

	suite.mockDriverRepo.On("FindDriverByID", ctx, driverID, principal.TenantFilter()).Return(expected, nil).Once()

	driver, err := suite.service.GetDriverByID(ctx, principal, driverID)

	suite.Require().NoError(err)
	suite.Equal(expected, driver)
	suite.mockDriverRepo.AssertExpectations(suite.T())
}

func (suite *DriverServiceTestSuite) TestGetDriverByID_DriverRoleForbidden() {
	ctx := context.Background()

	driver, err := suite.service.GetDriverByID(ctx, driverPrincipal(), uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(driver)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockDriverRepo.AssertNotCalled(suite.T(), "FindDriverByID", mock.Anything, mock.Anything, mock.Anything)
}

// --- GetOwnDriver Tests ---
func (suite *DriverServiceTestSuite) TestGetOwnDriver_Success() {
	ctx := context.Background()
	principal := driverPrincipal()
	expected := &domain.Driver{DriverID: uuid.NewString(), UserID: principal.UserID, Status: domain.DriverActive}

	suite.mockDriverRepo.On("FindDriverByUserID", ctx, principal.UserID).Return(expected, nil).Once()

	driver, err := suite.service.GetOwnDriver(ctx, principal)

	suite.Require().NoError(err)
	suite.Equal(expected, driver)
	suite.mockDriverRepo.AssertExpectations(suite.T())
}

func (suite *DriverServiceTestSuite) TestGetOwnDriver_NoProfile() {
	ctx := context.Background()
	principal := driverPrincipal()

	suite.mockDriverRepo.On("FindDriverByUserID", ctx, principal.UserID).Return(nil, apperrors.ErrNotFound).Once()

	driver, err := suite.service.GetOwnDriver(ctx, principal)

	suite.Require().Error(err)
	suite.Nil(driver)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockDriverRepo.AssertExpectations(suite.T())
}

// --- ListDrivers Tests ---
func (suite *DriverServiceTestSuite) TestListDrivers_Success() {
	ctx := context.Background()
	principal := adminPrincipal()
	params := dto.ListDriversParams{Limit: 50, Offset: 0}
	expected := []domain.DriverWithUser{
		{Driver: domain.Driver{DriverID: uuid.NewString()}, UserName: "Driver One", Username: "driver1"},
		{Driver: domain.Driver{DriverID: uuid.NewString()}, UserName: "Driver Two", Username: "driver2"},
	}

	suite.mockDriverRepo.On("ListDrivers", ctx, principal.TenantFilter(), params.Limit, params.Offset).Return(expected, nil).Once()

	drivers, err := suite.service.ListDrivers(ctx, principal, params)

	suite.Require().NoError(err)
	suite.Len(drivers, 2)
	suite.Equal("driver1", drivers[0].Username)
	suite.mockDriverRepo.AssertExpectations(suite.T())
}

func (suite *DriverServiceTestSuite) TestListDrivers_NonAdminForbidden() {
	ctx := context.Background()

	drivers, err := suite.service.ListDrivers(ctx, driverPrincipal(), dto.ListDriversParams{Limit: 10})

	suite.Require().Error(err)
	suite.Nil(drivers)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- SetDriverStatus Tests ---
func (suite *DriverServiceTestSuite) TestSetDriverStatus_Success() {
	ctx := context.Background()
	principal := adminPrincipal()
	driverID := uuid.NewString()
	existing := &domain.Driver{DriverID: driverID, Status: domain.DriverActive}

	suite.mockDriverRepo.On("FindDriverByID", ctx, driverID, principal.TenantFilter()).Return(existing, nil).Once()
	suite.mockDriverRepo.On("UpdateDriverStatus", ctx, driverID, domain.DriverInactive, principal.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.SetDriverStatus(ctx, principal, driverID, domain.DriverInactive)

	suite.Require().NoError(err)
	suite.mockDriverRepo.AssertExpectations(suite.T())
}

func (suite *DriverServiceTestSuite) TestSetDriverStatus_UnknownStatus() {
	ctx := context.Background()

	err := suite.service.SetDriverStatus(ctx, adminPrincipal(), uuid.NewString(), domain.DriverStatus("suspended"))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDriverRepo.AssertNotCalled(suite.T(), "UpdateDriverStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DriverServiceTestSuite) TestSetDriverStatus_OutOfScope() {
	ctx := context.Background()
	companyID := uuid.NewString()
	principal := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleAdmin, CompanyID: &companyID}
	driverID := uuid.NewString()

	suite.mockDriverRepo.On("FindDriverByID", ctx, driverID, principal.TenantFilter()).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.SetDriverStatus(ctx, principal, driverID, domain.DriverActive)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockDriverRepo.AssertNotCalled(suite.T(), "UpdateDriverStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DriverServiceTestSuite) TestSetDriverStatus_RepoError() {
	ctx := context.Background()
	principal := adminPrincipal()
	driverID := uuid.NewString()
	expectedErr := assert.AnError

	suite.mockDriverRepo.On("FindDriverByID", ctx, driverID, principal.TenantFilter()).Return(&domain.Driver{DriverID: driverID}, nil).Once()
	suite.mockDriverRepo.On("UpdateDriverStatus", ctx, driverID, domain.DriverActive, principal.UserID, mock.AnythingOfType("time.Time")).Return(expectedErr).Once()

	err := suite.service.SetDriverStatus(ctx, principal, driverID, domain.DriverActive)

	suite.Require().Error(err)
	suite.ErrorIs(err, expectedErr)
	suite.mockDriverRepo.AssertExpectations(suite.T())
}

func TestDriverServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DriverServiceTestSuite))
}
