package handlers

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
	"github.com/perkvault/rewards_backend/internal/apperrors"
	"github.com/perkvault/rewards_backend/internal/core/domain"
	portssvc "github.com/perkvault/rewards_backend/internal/core/ports/services"
	"github.com/perkvault/rewards_backend/internal/dto"
	"github.com/perkvault/rewards_backend/internal/middleware"
	"github.com/perkvault/rewards_backend/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock PurchaseService ---
type MockPurchaseService struct {
	mock.Mock
}

// Ensure mock implements the interface
var _ portssvc.PurchaseSvcFacade = (*MockPurchaseService)(nil)

func (m *MockPurchaseService) GetPurchaseByID(ctx context.Context, purchaseID int64) (*domain.Purchase, error) {
	args := m.Called(ctx, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Purchase), args.Error(1)
}

func (m *MockPurchaseService) ListMyPurchases(ctx context.Context, employeeID int64, limit, offset int) ([]domain.Purchase, error) {
	args := m.Called(ctx, employeeID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Purchase), args.Error(1)
}

func (m *MockPurchaseService) ListPendingPurchases(ctx context.Context, limit, offset int) ([]domain.Purchase, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Purchase), args.Error(1)
}

func (m *MockPurchaseService) CreatePurchase(ctx context.Context, employeeID, productID, quantity int64) (*domain.Purchase, int64, error) {
	args := m.Called(ctx, employeeID, productID, quantity)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*domain.Purchase), args.Get(1).(int64), args.Error(2)
}

func (m *MockPurchaseService) ApprovePurchase(ctx context.Context, purchaseID, adminID int64) (*domain.Purchase, error) {
	args := m.Called(ctx, purchaseID, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Purchase), args.Error(1)
}

func (m *MockPurchaseService) RejectPurchase(ctx context.Context, purchaseID, adminID int64, reason string) (*domain.Purchase, int64, error) {
	args := m.Called(ctx, purchaseID, adminID, reason)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*domain.Purchase), args.Get(1).(int64), args.Error(2)
}

// --- Test Suite ---
type PurchaseHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockPurchaseService
	jwtSecret   string
}

func (suite *PurchaseHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockService = new(MockPurchaseService)

	adminOnly := middleware.RequireRole(domain.RoleAdmin)
	adminOrHR := middleware.RequireRole(domain.RoleAdmin, domain.RoleHR)
	v1 := suite.router.Group("/api/v1")
	registerPurchaseRoutes(v1, suite.mockService, adminOnly, adminOrHR)
}

// generateTestToken creates a signed JWT for the given identity.
func (suite *PurchaseHandlerTestSuite) generateTestToken(employeeID int64, role domain.Role) string {
	token, err := utils.GenerateJWT(employeeID, string(role), suite.jwtSecret, time.Hour, "rewards-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *PurchaseHandlerTestSuite) doJSON(method, url string, body any, employeeID int64, role domain.Role) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(employeeID, role))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *PurchaseHandlerTestSuite) TestCreatePurchase_Success() {
	expected := &domain.Purchase{
		ID:          7,
		EmployeeID:  3,
		ProductID:   12,
		ProductName: "Coffee Mug",
		Quantity:    2,
		DiamondCost: 100,
		Status:      domain.PurchaseStatusPending,
		CreatedAt:   time.Now().UTC(),
	}

	suite.mockService.On("CreatePurchase",
		mock.Anything, int64(3), int64(12), int64(2),
	).Return(expected, int64(400), nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/purchases",
		dto.CreatePurchaseRequest{ProductID: 12, Quantity: 2}, 3, domain.RoleUser)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.CreatePurchaseResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(7), resp.Purchase.ID)
	suite.Equal("pending", resp.Purchase.Status)
	suite.Equal(int64(400), resp.NewBalance)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *PurchaseHandlerTestSuite) TestCreatePurchase_InsufficientBalance() {
	svcErr := apperrors.NewValidationError("Insufficient balance. Required: 100, Available: 40")

	suite.mockService.On("CreatePurchase",
		mock.Anything, int64(3), int64(12), int64(2),
	).Return(nil, int64(0), svcErr).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/purchases",
		dto.CreatePurchaseRequest{ProductID: 12, Quantity: 2}, 3, domain.RoleUser)

	suite.Equal(http.StatusBadRequest, w.Code)
	var resp map[string]string
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Insufficient balance. Required: 100, Available: 40", resp["error"])
}

func (suite *PurchaseHandlerTestSuite) TestCreatePurchase_ZeroQuantityRejectedByBinding() {
	w := suite.doJSON(http.MethodPost, "/api/v1/purchases",
		map[string]any{"productID": 12, "quantity": 0}, 3, domain.RoleUser)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "CreatePurchase",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PurchaseHandlerTestSuite) TestApprovePurchase_ForbiddenForUser() {
	w := suite.doJSON(http.MethodPost, "/api/v1/purchases/7/approve", nil, 3, domain.RoleUser)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "ApprovePurchase", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PurchaseHandlerTestSuite) TestApprovePurchase_Success() {
	expected := &domain.Purchase{ID: 7, Status: domain.PurchaseStatusAccepted}

	suite.mockService.On("ApprovePurchase", mock.Anything, int64(7), int64(1)).
		Return(expected, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/purchases/7/approve", nil, 1, domain.RoleAdmin)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ApprovePurchaseResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(7), resp.PurchaseID)
	suite.Equal("accepted", resp.Status)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *PurchaseHandlerTestSuite) TestRejectPurchase_MissingReason() {
	w := suite.doJSON(http.MethodPost, "/api/v1/purchases/7/reject",
		map[string]any{}, 1, domain.RoleAdmin)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "RejectPurchase",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PurchaseHandlerTestSuite) TestRejectPurchase_Success() {
	expected := &domain.Purchase{
		ID:              7,
		DiamondCost:     100,
		Status:          domain.PurchaseStatusRejected,
		RejectionReason: "Out of budget",
	}

	suite.mockService.On("RejectPurchase", mock.Anything, int64(7), int64(1), "Out of budget").
		Return(expected, int64(500), nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/purchases/7/reject",
		dto.RejectPurchaseRequest{Reason: "Out of budget"}, 1, domain.RoleAdmin)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.RejectPurchaseResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(100), resp.RefundedAmount)
	suite.Equal(int64(500), resp.NewBalance)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *PurchaseHandlerTestSuite) TestGetPurchase_OwnerOnly() {
	other := &domain.Purchase{ID: 7, EmployeeID: 99}

	suite.mockService.On("GetPurchaseByID", mock.Anything, int64(7)).
		Return(other, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/purchases/7", nil, 3, domain.RoleUser)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *PurchaseHandlerTestSuite) TestGetPurchase_HRSeesAny() {
	other := &domain.Purchase{ID: 7, EmployeeID: 99, Status: domain.PurchaseStatusPending}

	suite.mockService.On("GetPurchaseByID", mock.Anything, int64(7)).
		Return(other, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/purchases/7", nil, 2, domain.RoleHR)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.PurchaseResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(99), resp.EmployeeID)
}

func (suite *PurchaseHandlerTestSuite) TestListMyPurchases_Success() {
	purchases := []domain.Purchase{
		{ID: 8, EmployeeID: 3, Status: domain.PurchaseStatusAccepted},
		{ID: 7, EmployeeID: 3, Status: domain.PurchaseStatusPending},
	}

	suite.mockService.On("ListMyPurchases", mock.Anything, int64(3), 10, 0).
		Return(purchases, nil).Once()

	url := fmt.Sprintf("/api/v1/purchases/mine?limit=%d", 10)
	w := suite.doJSON(http.MethodGet, url, nil, 3, domain.RoleUser)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.PurchaseResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp, 2)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *PurchaseHandlerTestSuite) TestListPendingPurchases_ForbiddenForUser() {
	w := suite.doJSON(http.MethodGet, "/api/v1/purchases/pending", nil, 3, domain.RoleUser)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *PurchaseHandlerTestSuite) TestUnauthenticatedRequestRejected() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/purchases/mine", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

// --- Run Test Suite ---
func TestPurchaseHandler(t *testing.T) {
	suite.Run(t, new(PurchaseHandlerTestSuite))
}
