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

// --- Mock TripRepository ---
type MockTripRepository struct {
	mock.Mock
	ListTripsFn    func(ctx context.Context, filter domain.TenantFilter, limit int, offset int) ([]domain.Trip, error)
	SaveTripFn     func(ctx context.Context, trip domain.Trip) error
	CompleteTripFn func(ctx context.Context, tripID string, filter domain.TenantFilter, completedAt time.Time) error
}

func (m *MockTripRepository) ListTrips(ctx context.Context, filter domain.TenantFilter, limit int, offset int) ([]domain.Trip, error) {
	if m.ListTripsFn != nil {
		return m.ListTripsFn(ctx, filter, limit, offset)
	}
	args := m.Called(ctx, filter, limit, offset)
	var trips []domain.Trip
	if args.Get(0) != nil {
		trips = args.Get(0).([]domain.Trip)
	}
	return trips, args.Error(1)
}

func (m *MockTripRepository) SaveTrip(ctx context.Context, trip domain.Trip) error {
	if m.SaveTripFn != nil {
		return m.SaveTripFn(ctx, trip)
	}
	args := m.Called(ctx, trip)
	return args.Error(0)
}

func (m *MockTripRepository) CompleteTrip(ctx context.Context, tripID string, filter domain.TenantFilter, completedAt time.Time) error {
	if m.CompleteTripFn != nil {
		return m.CompleteTripFn(ctx, tripID, filter, completedAt)
	}
	args := m.Called(ctx, tripID, filter, completedAt)
	return args.Error(0)
}

// --- Test Suite ---
type TripServiceTestSuite struct {
	suite.Suite
	mockTripRepo   *MockTripRepository
	mockDriverRepo *MockDriverRepository
	service        portssvc.TripSvcFacade
}

func (suite *TripServiceTestSuite) SetupTest() {
	suite.mockTripRepo = new(MockTripRepository)
	suite.mockDriverRepo = new(MockDriverRepository)
	suite.service = services.NewTripService(suite.mockTripRepo, suite.mockDriverRepo)
}

// --- CreateTrip Tests ---
func (suite *TripServiceTestSuite) TestCreateTrip_Success() {
	ctx := context.Background()
	companyID := uuid.NewString()
	principal := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleAdmin, CompanyID: &companyID}
	driverID := uuid.NewString()
	driver := &domain.Driver{DriverID: driverID, CompanyID: &companyID, Status: domain.DriverActive}
	req := dto.CreateTripRequest{DriverID: driverID, Origin: "Bengaluru", Destination: "Chennai"}

	suite.mockDriverRepo.On("FindDriverByID", ctx, driverID, principal.TenantFilter()).Return(driver, nil).Once()
	suite.mockTripRepo.SaveTripFn = func(ctx context.Context, trip domain.Trip) error {
		suite.NotEmpty(trip.TripID)
		suite.Equal(driverID, trip.DriverID)
		suite.Equal(domain.TripOngoing, trip.Status)
		// The trip inherits the driver's company, not the caller's.
		suite.Require().NotNil(trip.CompanyID)
		suite.Equal(companyID, *trip.CompanyID)
		return nil
	}

	trip, err := suite.service.CreateTrip(ctx, principal, req)

	suite.Require().NoError(err)
	suite.Equal("Bengaluru", trip.Origin)
	suite.Equal("Chennai", trip.Destination)
	suite.Equal(domain.TripOngoing, trip.Status)
	suite.mockDriverRepo.AssertExpectations(suite.T())
}

func (suite *TripServiceTestSuite) TestCreateTrip_DriverOutOfScope() {
	ctx := context.Background()
	principal := adminPrincipal()
	driverID := uuid.NewString()

	suite.mockDriverRepo.On("FindDriverByID", ctx, driverID, principal.TenantFilter()).Return(nil, apperrors.ErrNotFound).Once()

	trip, err := suite.service.CreateTrip(ctx, principal, dto.CreateTripRequest{DriverID: driverID, Origin: "A", Destination: "B"})

	suite.Require().Error(err)
	suite.Nil(trip)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTripRepo.AssertNotCalled(suite.T(), "SaveTrip", mock.Anything, mock.Anything)
}

func (suite *TripServiceTestSuite) TestCreateTrip_NonAdminForbidden() {
	ctx := context.Background()

	trip, err := suite.service.CreateTrip(ctx, driverPrincipal(), dto.CreateTripRequest{DriverID: uuid.NewString(), Origin: "A", Destination: "B"})

	suite.Require().Error(err)
	suite.Nil(trip)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- CompleteTrip Tests ---
func (suite *TripServiceTestSuite) TestCompleteTrip_Success() {
	ctx := context.Background()
	principal := adminPrincipal()
	tripID := uuid.NewString()

	suite.mockTripRepo.On("CompleteTrip", ctx, tripID, principal.TenantFilter(), mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.CompleteTrip(ctx, principal, tripID)

	suite.Require().NoError(err)
	suite.mockTripRepo.AssertExpectations(suite.T())
}

func (suite *TripServiceTestSuite) TestCompleteTrip_NotOngoing() {
	ctx := context.Background()
	principal := adminPrincipal()
	tripID := uuid.NewString()

	suite.mockTripRepo.On("CompleteTrip", ctx, tripID, principal.TenantFilter(), mock.AnythingOfType("time.Time")).Return(apperrors.ErrNotFound).Once()

	err := suite.service.CompleteTrip(ctx, principal, tripID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- ListTrips Tests ---
func (suite *TripServiceTestSuite) TestListTrips_Success() {
	ctx := context.Background()
	principal := adminPrincipal()
	params := dto.ListTripsParams{Limit: 50, Offset: 0}
	expected := []domain.Trip{{TripID: uuid.NewString(), Status: domain.TripOngoing}}

	suite.mockTripRepo.On("ListTrips", ctx, principal.TenantFilter(), params.Limit, params.Offset).Return(expected, nil).Once()

	trips, err := suite.service.ListTrips(ctx, principal, params)

	suite.Require().NoError(err)
	suite.Equal(expected, trips)
	suite.mockTripRepo.AssertExpectations(suite.T())
}

func (suite *TripServiceTestSuite) TestListTrips_NonAdminForbidden() {
	ctx := context.Background()

	trips, err := suite.service.ListTrips(ctx, driverPrincipal(), dto.ListTripsParams{Limit: 50})

	suite.Require().Error(err)
	suite.Nil(trips)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestTripServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TripServiceTestSuite))
}
