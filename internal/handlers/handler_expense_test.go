package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fleetpulse/fleet_expense_app/internal/apperrors"
	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
	portssvc "github.com/fleetpulse/fleet_expense_app/internal/core/ports/services"
	"github.com/fleetpulse/fleet_expense_app/internal/dto"
	"github.com/fleetpulse/fleet_expense_app/internal/handlers"
	"github.com/fleetpulse/fleet_expense_app/internal/middleware"
	"github.com/fleetpulse/fleet_expense_app/internal/utils"
)

const testJWTSecret = "test-secret-for-handler-tests"

// MockExpenseService is a mock implementation of the expense service facade.
type MockExpenseService struct {
	mock.Mock
}

var _ portssvc.ExpenseSvcFacade = (*MockExpenseService)(nil)

func (m *MockExpenseService) SubmitExpense(ctx context.Context, principal domain.Principal, req dto.SubmitExpenseRequest) (*domain.Expense, error) {
	args := m.Called(ctx, principal, req)
	expense, _ := args.Get(0).(*domain.Expense)
	return expense, args.Error(1)
}

func (m *MockExpenseService) GetExpenseByID(ctx context.Context, principal domain.Principal, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, principal, expenseID)
	expense, _ := args.Get(0).(*domain.Expense)
	return expense, args.Error(1)
}

func (m *MockExpenseService) ListExpenses(ctx context.Context, principal domain.Principal, params dto.ListExpensesParams) ([]domain.ExpenseWithDriver, *string, error) {
	args := m.Called(ctx, principal, params)
	expenses, _ := args.Get(0).([]domain.ExpenseWithDriver)
	nextToken, _ := args.Get(1).(*string)
	return expenses, nextToken, args.Error(2)
}

func (m *MockExpenseService) ExportExpenses(ctx context.Context, principal domain.Principal) ([]byte, error) {
	args := m.Called(ctx, principal)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *MockExpenseService) DecideExpense(ctx context.Context, principal domain.Principal, expenseID string, decision domain.ExpenseStatus) (*domain.Expense, error) {
	args := m.Called(ctx, principal, expenseID, decision)
	expense, _ := args.Get(0).(*domain.Expense)
	return expense, args.Error(1)
}

type ExpenseHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockExpenseService

	companyID    string
	adminID      string
	driverUserID string
	adminToken   string
	driverToken  string
}

func (suite *ExpenseHandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	handlers.RegisterCustomValidations()
}

func (suite *ExpenseHandlerTestSuite) SetupTest() {
	suite.mockService = new(MockExpenseService)

	suite.router = gin.New()
	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(testJWTSecret))
	handlers.RegisterExpenseRoutes(v1, suite.mockService)

	suite.companyID = uuid.NewString()
	suite.adminID = uuid.NewString()
	suite.driverUserID = uuid.NewString()
	suite.adminToken = suite.generateToken(suite.adminID, domain.RoleAdmin, &suite.companyID)
	suite.driverToken = suite.generateToken(suite.driverUserID, domain.RoleDriver, &suite.companyID)
}

func (suite *ExpenseHandlerTestSuite) generateToken(userID string, role domain.Role, companyID *string) string {
	token, err := utils.GenerateJWT(userID, string(role), companyID, testJWTSecret, time.Hour, "test-issuer")
	suite.Require().NoError(err)
	return token
}

func (suite *ExpenseHandlerTestSuite) doRequest(method, url, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *ExpenseHandlerTestSuite) testExpense(driverID string) *domain.Expense {
	lat, lng := 48.137, 11.575
	now := time.Now().UTC()
	return &domain.Expense{
		ExpenseID:          uuid.NewString(),
		DriverID:           driverID,
		CompanyID:          &suite.companyID,
		Amount:             decimal.NewFromInt(300),
		Category:           domain.CategoryFuel,
		Notes:              "Diesel refill",
		PhotoURL:           "https://cdn.example.com/receipts/r1.jpg",
		Latitude:           lat,
		Longitude:          lng,
		OccurredAt:         now,
		Status:             domain.ExpensePending,
		WalletBalanceAfter: decimal.NewFromInt(700),
		AuditFields:        domain.AuditFields{CreatedAt: now, Version: 1},
	}
}

func (suite *ExpenseHandlerTestSuite) TestSubmitExpense_Created() {
	lat, lng := 48.137, 11.575
	reqBody := dto.SubmitExpenseRequest{
		Amount:    decimal.NewFromInt(300),
		Category:  "Fuel",
		PhotoURL:  "https://cdn.example.com/receipts/r1.jpg",
		Latitude:  &lat,
		Longitude: &lng,
		Notes:     "Diesel refill",
	}
	expected := suite.testExpense(uuid.NewString())

	suite.mockService.On("SubmitExpense",
		mock.Anything,
		mock.MatchedBy(func(p domain.Principal) bool {
			return p.UserID == suite.driverUserID && p.Role == domain.RoleDriver
		}),
		mock.AnythingOfType("dto.SubmitExpenseRequest"),
	).Return(expected, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/expenses", suite.driverToken, reqBody)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ExpenseResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.ExpenseID, resp.ExpenseID)
	suite.Equal("pending", resp.Status)
	suite.True(resp.WalletBalanceAfter.Equal(decimal.NewFromInt(700)))
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestSubmitExpense_MissingEvidenceRejected() {
	// No photo and no coordinates. Binding must fail before the service runs.
	w := suite.doRequest(http.MethodPost, "/api/v1/expenses", suite.driverToken, map[string]any{
		"amount":   "300",
		"category": "Fuel",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "SubmitExpense", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExpenseHandlerTestSuite) TestSubmitExpense_NonPositiveAmountRejected() {
	lat, lng := 48.137, 11.575
	w := suite.doRequest(http.MethodPost, "/api/v1/expenses", suite.driverToken, dto.SubmitExpenseRequest{
		Amount:    decimal.NewFromInt(-50),
		Category:  "Fuel",
		PhotoURL:  "https://cdn.example.com/receipts/r1.jpg",
		Latitude:  &lat,
		Longitude: &lng,
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "SubmitExpense", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExpenseHandlerTestSuite) TestListExpenses_Success() {
	expected := []domain.ExpenseWithDriver{
		{Expense: *suite.testExpense(uuid.NewString()), DriverName: "Ramesh Kumar"},
	}

	suite.mockService.On("ListExpenses",
		mock.Anything,
		mock.MatchedBy(func(p domain.Principal) bool {
			return p.UserID == suite.adminID && p.Role == domain.RoleAdmin &&
				p.CompanyID != nil && *p.CompanyID == suite.companyID
		}),
		mock.MatchedBy(func(params dto.ListExpensesParams) bool {
			return params.Status == "pending" && params.Limit == 20
		}),
	).Return(expected, (*string)(nil), nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/expenses?status=pending", suite.adminToken, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListExpensesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Expenses, 1)
	suite.Equal("Ramesh Kumar", resp.Expenses[0].DriverName)
	suite.Nil(resp.NextToken)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestListExpenses_InvalidStatusRejected() {
	w := suite.doRequest(http.MethodGet, "/api/v1/expenses?status=bogus", suite.adminToken, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "ListExpenses", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExpenseHandlerTestSuite) TestGetExpense_NotFound() {
	expenseID := uuid.NewString()
	suite.mockService.On("GetExpenseByID", mock.Anything, mock.Anything, expenseID).
		Return(nil, fmt.Errorf("%w: expense not found", apperrors.ErrNotFound)).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/expenses/"+expenseID, suite.driverToken, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestDecideExpense_Success() {
	expected := suite.testExpense(uuid.NewString())
	expected.Status = domain.ExpenseApproved
	expected.DecidedBy = &suite.adminID

	suite.mockService.On("DecideExpense",
		mock.Anything,
		mock.MatchedBy(func(p domain.Principal) bool { return p.UserID == suite.adminID }),
		expected.ExpenseID,
		domain.ExpenseApproved,
	).Return(expected, nil).Once()

	w := suite.doRequest(http.MethodPut, "/api/v1/expenses/"+expected.ExpenseID+"/decision",
		suite.adminToken, dto.DecideExpenseRequest{Status: "approved"})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ExpenseResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("approved", resp.Status)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestDecideExpense_AlreadyDecidedConflict() {
	expenseID := uuid.NewString()
	suite.mockService.On("DecideExpense", mock.Anything, mock.Anything, expenseID, domain.ExpenseRejected).
		Return(nil, fmt.Errorf("%w: expense %s is already approved", apperrors.ErrConflict, expenseID)).Once()

	w := suite.doRequest(http.MethodPut, "/api/v1/expenses/"+expenseID+"/decision",
		suite.adminToken, dto.DecideExpenseRequest{Status: "rejected"})

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestDecideExpense_InvalidStatusRejected() {
	w := suite.doRequest(http.MethodPut, "/api/v1/expenses/"+uuid.NewString()+"/decision",
		suite.adminToken, map[string]string{"status": "maybe"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "DecideExpense", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExpenseHandlerTestSuite) TestExportExpenses_Success() {
	suite.mockService.On("ExportExpenses", mock.Anything, mock.Anything).
		Return([]byte("PK\x03\x04workbook"), nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/expenses/export", suite.adminToken, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Header().Get("Content-Disposition"), "attachment")
	suite.True(bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestMissingAuthorizationHeader() {
	w := suite.doRequest(http.MethodGet, "/api/v1/expenses", "", nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "ListExpenses", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExpenseHandlerTestSuite) TestForgedTokenRejected() {
	forged, err := utils.GenerateJWT(uuid.NewString(), string(domain.RoleAdmin), nil, "some-other-secret", time.Hour, "test-issuer")
	suite.Require().NoError(err)

	w := suite.doRequest(http.MethodGet, "/api/v1/expenses", forged, nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "ListExpenses", mock.Anything, mock.Anything, mock.Anything)
}

func TestExpenseHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseHandlerTestSuite))
}
