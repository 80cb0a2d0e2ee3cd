package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/perkvault/rewards_backend/internal/apperrors"
	"github.com/perkvault/rewards_backend/internal/core/domain"
	portsrepo "github.com/perkvault/rewards_backend/internal/core/ports/repositories"
	"github.com/perkvault/rewards_backend/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock PurchaseRepository ---
type MockPurchaseRepository struct {
	mock.Mock
}

// Ensure MockPurchaseRepository implements portsrepo.PurchaseRepositoryWithTx
var _ portsrepo.PurchaseRepositoryWithTx = (*MockPurchaseRepository)(nil)

func (m *MockPurchaseRepository) FindPurchaseByID(ctx context.Context, purchaseID int64) (*domain.Purchase, error) {
	args := m.Called(ctx, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) ListPurchasesByEmployee(ctx context.Context, employeeID int64, limit, offset int) ([]domain.Purchase, error) {
	args := m.Called(ctx, employeeID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) ListPurchasesByStatus(ctx context.Context, status domain.PurchaseStatus, limit, offset int) ([]domain.Purchase, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) CreatePurchase(ctx context.Context, employeeID, productID, quantity int64, now time.Time) (*domain.Purchase, int64, error) {
	args := m.Called(ctx, employeeID, productID, quantity, now)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*domain.Purchase), args.Get(1).(int64), args.Error(2)
}

func (m *MockPurchaseRepository) ApprovePurchase(ctx context.Context, purchaseID, adminID int64, adminName string, now time.Time) (*domain.Purchase, error) {
	args := m.Called(ctx, purchaseID, adminID, adminName, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) RejectPurchase(ctx context.Context, purchaseID, adminID int64, adminName, reason string, now time.Time) (*domain.Purchase, int64, error) {
	args := m.Called(ctx, purchaseID, adminID, adminName, reason, now)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*domain.Purchase), args.Get(1).(int64), args.Error(2)
}

func (m *MockPurchaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockPurchaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPurchaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock EmployeeRepository ---
type MockEmployeeRepository struct {
	mock.Mock
}

var _ portsrepo.EmployeeRepositoryFacade = (*MockEmployeeRepository)(nil)

func (m *MockEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID int64) (*domain.Employee, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) ListEmployees(ctx context.Context, limit, offset int) ([]domain.Employee, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) SaveEmployee(ctx context.Context, employee domain.Employee) (*domain.Employee, error) {
	args := m.Called(ctx, employee)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) UpdateEmployeeProfile(ctx context.Context, employee domain.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) UpdateEmployeeRole(ctx context.Context, employeeID int64, role domain.Role, now time.Time) error {
	args := m.Called(ctx, employeeID, role, now)
	return args.Error(0)
}

func (m *MockEmployeeRepository) DeleteEmployee(ctx context.Context, employeeID int64) error {
	args := m.Called(ctx, employeeID)
	return args.Error(0)
}

func (m *MockEmployeeRepository) FindEmployeeForUpdate(ctx context.Context, tx pgx.Tx, employeeID int64) (*domain.Employee, error) {
	args := m.Called(ctx, tx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) AddToBalanceInTx(ctx context.Context, tx pgx.Tx, employeeID int64, delta int64, now time.Time) (int64, error) {
	args := m.Called(ctx, tx, employeeID, delta, now)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock EventBroadcaster ---
type MockBroadcaster struct {
	mock.Mock
}

func (m *MockBroadcaster) BroadcastEvent(eventType string, payload any) {
	m.Called(eventType, payload)
}

// --- Test Suite ---
type PurchaseServiceTestSuite struct {
	suite.Suite
	mockPurchaseRepo *MockPurchaseRepository
	mockEmployeeRepo *MockEmployeeRepository
	mockBroadcaster  *MockBroadcaster
	service          interface {
		CreatePurchase(ctx context.Context, employeeID, productID, quantity int64) (*domain.Purchase, int64, error)
		ApprovePurchase(ctx context.Context, purchaseID, adminID int64) (*domain.Purchase, error)
		RejectPurchase(ctx context.Context, purchaseID, adminID int64, reason string) (*domain.Purchase, int64, error)
		ListPendingPurchases(ctx context.Context, limit, offset int) ([]domain.Purchase, error)
	}
	ctx context.Context
}

func (suite *PurchaseServiceTestSuite) SetupTest() {
	suite.mockPurchaseRepo = new(MockPurchaseRepository)
	suite.mockEmployeeRepo = new(MockEmployeeRepository)
	suite.mockBroadcaster = new(MockBroadcaster)
	suite.service = services.NewPurchaseService(suite.mockPurchaseRepo, suite.mockEmployeeRepo, suite.mockBroadcaster)
	suite.ctx = context.Background()
}

func (suite *PurchaseServiceTestSuite) TestCreatePurchase_Success() {
	expected := &domain.Purchase{
		ID:          7,
		EmployeeID:  3,
		ProductID:   12,
		ProductName: "Coffee Mug",
		Quantity:    2,
		DiamondCost: 100,
		Status:      domain.PurchaseStatusPending,
	}

	suite.mockPurchaseRepo.On("CreatePurchase",
		suite.ctx, int64(3), int64(12), int64(2), mock.AnythingOfType("time.Time"),
	).Return(expected, int64(400), nil).Once()
	suite.mockBroadcaster.On("BroadcastEvent", "purchase.created", mock.Anything).Once()

	purchase, newBalance, err := suite.service.CreatePurchase(suite.ctx, 3, 12, 2)

	suite.NoError(err)
	suite.Equal(expected, purchase)
	suite.Equal(int64(400), newBalance)
	suite.mockPurchaseRepo.AssertExpectations(suite.T())
	suite.mockBroadcaster.AssertExpectations(suite.T())
}

func (suite *PurchaseServiceTestSuite) TestCreatePurchase_NonPositiveQuantity() {
	purchase, newBalance, err := suite.service.CreatePurchase(suite.ctx, 3, 12, 0)

	suite.Nil(purchase)
	suite.Zero(newBalance)
	suite.ErrorIs(err, apperrors.ErrValidation)
	var appErr *apperrors.AppError
	suite.ErrorAs(err, &appErr)
	suite.Equal("Quantity must be greater than 0", appErr.Message)
	suite.mockPurchaseRepo.AssertNotCalled(suite.T(), "CreatePurchase",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PurchaseServiceTestSuite) TestCreatePurchase_InsufficientBalance() {
	repoErr := apperrors.NewValidationError("Insufficient balance. Required: 100, Available: 40")

	suite.mockPurchaseRepo.On("CreatePurchase",
		suite.ctx, int64(3), int64(12), int64(2), mock.AnythingOfType("time.Time"),
	).Return(nil, int64(0), repoErr).Once()

	purchase, newBalance, err := suite.service.CreatePurchase(suite.ctx, 3, 12, 2)

	suite.Nil(purchase)
	suite.Zero(newBalance)
	suite.ErrorIs(err, apperrors.ErrValidation)
	var appErr *apperrors.AppError
	suite.ErrorAs(err, &appErr)
	suite.Equal("Insufficient balance. Required: 100, Available: 40", appErr.Message)
	suite.mockBroadcaster.AssertNotCalled(suite.T(), "BroadcastEvent", mock.Anything, mock.Anything)
}

func (suite *PurchaseServiceTestSuite) TestApprovePurchase_Success() {
	admin := &domain.Employee{ID: 1, Name: "Alex Admin", Role: domain.RoleAdmin}
	expected := &domain.Purchase{ID: 7, Status: domain.PurchaseStatusAccepted}

	suite.mockEmployeeRepo.On("FindEmployeeByID", suite.ctx, int64(1)).Return(admin, nil).Once()
	suite.mockPurchaseRepo.On("ApprovePurchase",
		suite.ctx, int64(7), int64(1), "Alex Admin", mock.AnythingOfType("time.Time"),
	).Return(expected, nil).Once()
	suite.mockBroadcaster.On("BroadcastEvent", "purchase.approved", mock.Anything).Once()

	purchase, err := suite.service.ApprovePurchase(suite.ctx, 7, 1)

	suite.NoError(err)
	suite.Equal(domain.PurchaseStatusAccepted, purchase.Status)
	suite.mockPurchaseRepo.AssertExpectations(suite.T())
	suite.mockEmployeeRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseServiceTestSuite) TestApprovePurchase_AlreadyDecided() {
	admin := &domain.Employee{ID: 1, Name: "Alex Admin", Role: domain.RoleAdmin}
	repoErr := apperrors.NewValidationError("Purchase has already been rejected")

	suite.mockEmployeeRepo.On("FindEmployeeByID", suite.ctx, int64(1)).Return(admin, nil).Once()
	suite.mockPurchaseRepo.On("ApprovePurchase",
		suite.ctx, int64(7), int64(1), "Alex Admin", mock.AnythingOfType("time.Time"),
	).Return(nil, repoErr).Once()

	purchase, err := suite.service.ApprovePurchase(suite.ctx, 7, 1)

	suite.Nil(purchase)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBroadcaster.AssertNotCalled(suite.T(), "BroadcastEvent", mock.Anything, mock.Anything)
}

func (suite *PurchaseServiceTestSuite) TestRejectPurchase_BlankReason() {
	purchase, newBalance, err := suite.service.RejectPurchase(suite.ctx, 7, 1, "   ")

	suite.Nil(purchase)
	suite.Zero(newBalance)
	suite.ErrorIs(err, apperrors.ErrValidation)
	var appErr *apperrors.AppError
	suite.ErrorAs(err, &appErr)
	suite.Equal("Rejection reason is required", appErr.Message)
	suite.mockPurchaseRepo.AssertNotCalled(suite.T(), "RejectPurchase",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PurchaseServiceTestSuite) TestRejectPurchase_Success() {
	admin := &domain.Employee{ID: 1, Name: "Alex Admin", Role: domain.RoleAdmin}
	expected := &domain.Purchase{
		ID:              7,
		DiamondCost:     100,
		Status:          domain.PurchaseStatusRejected,
		RejectionReason: "Out of budget",
	}

	suite.mockEmployeeRepo.On("FindEmployeeByID", suite.ctx, int64(1)).Return(admin, nil).Once()
	suite.mockPurchaseRepo.On("RejectPurchase",
		suite.ctx, int64(7), int64(1), "Alex Admin", "Out of budget", mock.AnythingOfType("time.Time"),
	).Return(expected, int64(500), nil).Once()
	suite.mockBroadcaster.On("BroadcastEvent", "purchase.rejected", mock.Anything).Once()

	purchase, newBalance, err := suite.service.RejectPurchase(suite.ctx, 7, 1, "  Out of budget  ")

	suite.NoError(err)
	suite.Equal(domain.PurchaseStatusRejected, purchase.Status)
	suite.Equal(int64(500), newBalance)
	suite.mockPurchaseRepo.AssertExpectations(suite.T())
	suite.mockBroadcaster.AssertExpectations(suite.T())
}

func (suite *PurchaseServiceTestSuite) TestRejectPurchase_ReasonLengthCountsRunes() {
	// 400 characters but 1200 bytes; must pass the 500-character limit.
	reason := strings.Repeat("予", 400)
	admin := &domain.Employee{ID: 1, Name: "Alex Admin", Role: domain.RoleAdmin}
	expected := &domain.Purchase{ID: 7, DiamondCost: 100, Status: domain.PurchaseStatusRejected}

	suite.mockEmployeeRepo.On("FindEmployeeByID", suite.ctx, int64(1)).Return(admin, nil).Once()
	suite.mockPurchaseRepo.On("RejectPurchase",
		suite.ctx, int64(7), int64(1), "Alex Admin", reason, mock.AnythingOfType("time.Time"),
	).Return(expected, int64(500), nil).Once()
	suite.mockBroadcaster.On("BroadcastEvent", "purchase.rejected", mock.Anything).Once()

	_, _, err := suite.service.RejectPurchase(suite.ctx, 7, 1, reason)

	suite.NoError(err)
	suite.mockPurchaseRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseServiceTestSuite) TestRejectPurchase_ReasonTooLong() {
	purchase, newBalance, err := suite.service.RejectPurchase(suite.ctx, 7, 1, strings.Repeat("あ", 501))

	suite.Nil(purchase)
	suite.Zero(newBalance)
	suite.ErrorIs(err, apperrors.ErrValidation)
	var appErr *apperrors.AppError
	suite.ErrorAs(err, &appErr)
	suite.Equal("Rejection reason must be 500 characters or fewer", appErr.Message)
	suite.mockPurchaseRepo.AssertNotCalled(suite.T(), "RejectPurchase",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PurchaseServiceTestSuite) TestListPendingPurchases_DefaultsPage() {
	suite.mockPurchaseRepo.On("ListPurchasesByStatus",
		suite.ctx, domain.PurchaseStatusPending, 50, 0,
	).Return([]domain.Purchase{}, nil).Once()

	_, err := suite.service.ListPendingPurchases(suite.ctx, 0, 0)

	suite.NoError(err)
	suite.mockPurchaseRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseServiceTestSuite) TestRejectPurchase_RepoFailurePropagates() {
	admin := &domain.Employee{ID: 1, Name: "Alex Admin", Role: domain.RoleAdmin}
	repoErr := errors.New("connection reset")

	suite.mockEmployeeRepo.On("FindEmployeeByID", suite.ctx, int64(1)).Return(admin, nil).Once()
	suite.mockPurchaseRepo.On("RejectPurchase",
		suite.ctx, int64(7), int64(1), "Alex Admin", "Damaged item", mock.AnythingOfType("time.Time"),
	).Return(nil, int64(0), repoErr).Once()

	purchase, _, err := suite.service.RejectPurchase(suite.ctx, 7, 1, "Damaged item")

	suite.Nil(purchase)
	suite.ErrorIs(err, repoErr)
}

// --- Run Test Suite ---
func TestPurchaseService(t *testing.T) {
	suite.Run(t, new(PurchaseServiceTestSuite))
}
