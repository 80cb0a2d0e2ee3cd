package services_test

import (
	"context"
	"testing"

	"github.com/perkvault/rewards_backend/internal/apperrors"
	"github.com/perkvault/rewards_backend/internal/core/domain"
	portsrepo "github.com/perkvault/rewards_backend/internal/core/ports/repositories"
	"github.com/perkvault/rewards_backend/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock InvitationCodeRepository ---
type MockInvitationRepository struct {
	mock.Mock
}

// Ensure MockInvitationRepository implements portsrepo.InvitationCodeRepository
var _ portsrepo.InvitationCodeRepository = (*MockInvitationRepository)(nil)

func (m *MockInvitationRepository) FindInvitationByCode(ctx context.Context, code string) (*domain.InvitationCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvitationCode), args.Error(1)
}

func (m *MockInvitationRepository) ListInvitationCodes(ctx context.Context, limit, offset int) ([]domain.InvitationCodeWithUsage, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvitationCodeWithUsage), args.Error(1)
}

func (m *MockInvitationRepository) SaveInvitationCode(ctx context.Context, code domain.InvitationCode) (*domain.InvitationCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvitationCode), args.Error(1)
}

func (m *MockInvitationRepository) SetInvitationActive(ctx context.Context, invitationID int64, active bool) error {
	args := m.Called(ctx, invitationID, active)
	return args.Error(0)
}

// --- Test Suite ---
type InvitationServiceTestSuite struct {
	suite.Suite
	mockRepo *MockInvitationRepository
	service  interface {
		CreateInvitationCode(ctx context.Context, createdBy int64, label string) (*domain.InvitationCode, error)
		SetInvitationActive(ctx context.Context, codeID int64, active bool) error
	}
	ctx context.Context
}

func (suite *InvitationServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockInvitationRepository)
	suite.service = services.NewInvitationService(suite.mockRepo)
	suite.ctx = context.Background()
}

func (suite *InvitationServiceTestSuite) TestCreateInvitationCode_Success() {
	suite.mockRepo.On("SaveInvitationCode", suite.ctx, mock.MatchedBy(func(c domain.InvitationCode) bool {
		return c.Label == "Q3 onboarding" && c.CreatedBy == 1 && c.IsActive && len(c.Code) == 10
	})).Return(&domain.InvitationCode{ID: 5, Code: "ABCDEFGHJK", Label: "Q3 onboarding", CreatedBy: 1, IsActive: true}, nil).Once()

	created, err := suite.service.CreateInvitationCode(suite.ctx, 1, "Q3 onboarding")

	suite.NoError(err)
	suite.Equal(int64(5), created.ID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InvitationServiceTestSuite) TestCreateInvitationCode_EmptyLabelAllowed() {
	// The label is optional; an empty one is stored as an empty string,
	// never as NULL.
	suite.mockRepo.On("SaveInvitationCode", suite.ctx, mock.MatchedBy(func(c domain.InvitationCode) bool {
		return c.Label == "" && c.IsActive
	})).Return(&domain.InvitationCode{ID: 6, Code: "QRSTUVWXYZ", Label: "", CreatedBy: 1, IsActive: true}, nil).Once()

	created, err := suite.service.CreateInvitationCode(suite.ctx, 1, "")

	suite.NoError(err)
	suite.Equal("", created.Label)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InvitationServiceTestSuite) TestCreateInvitationCode_RetriesOnCollision() {
	dup := apperrors.NewDuplicateError("invitation code already exists")
	saved := &domain.InvitationCode{ID: 7, Code: "ZZZZZZZZZZ", CreatedBy: 1, IsActive: true}

	suite.mockRepo.On("SaveInvitationCode", suite.ctx, mock.Anything).Return(nil, dup).Once()
	suite.mockRepo.On("SaveInvitationCode", suite.ctx, mock.Anything).Return(saved, nil).Once()

	created, err := suite.service.CreateInvitationCode(suite.ctx, 1, "")

	suite.NoError(err)
	suite.Equal(int64(7), created.ID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InvitationServiceTestSuite) TestSetInvitationActive_NotFound() {
	suite.mockRepo.On("SetInvitationActive", suite.ctx, int64(99), false).Return(apperrors.ErrNotFound).Once()

	err := suite.service.SetInvitationActive(suite.ctx, 99, false)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Run Test Suite ---
func TestInvitationService(t *testing.T) {
	suite.Run(t, new(InvitationServiceTestSuite))
}
