package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/perkvault/rewards_backend/internal/apperrors"
	"github.com/perkvault/rewards_backend/internal/core/domain"
	portsrepo "github.com/perkvault/rewards_backend/internal/core/ports/repositories"
	portssvc "github.com/perkvault/rewards_backend/internal/core/ports/services"
	"github.com/perkvault/rewards_backend/internal/core/services"
	"github.com/perkvault/rewards_backend/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AchievementRepository ---
type MockAchievementRepository struct {
	mock.Mock
}

// Ensure MockAchievementRepository implements portsrepo.AchievementRepositoryWithTx
var _ portsrepo.AchievementRepositoryWithTx = (*MockAchievementRepository)(nil)

func (m *MockAchievementRepository) FindAchievementByID(ctx context.Context, achievementID int64) (*domain.Achievement, error) {
	args := m.Called(ctx, achievementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Achievement), args.Error(1)
}

func (m *MockAchievementRepository) ListAchievements(ctx context.Context, limit, offset int) ([]domain.Achievement, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Achievement), args.Error(1)
}

func (m *MockAchievementRepository) FindProgress(ctx context.Context, employeeID, achievementID int64) (*domain.AchievementProgress, error) {
	args := m.Called(ctx, employeeID, achievementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AchievementProgress), args.Error(1)
}

func (m *MockAchievementRepository) ListProgressByEmployee(ctx context.Context, employeeID int64) ([]domain.AchievementProgress, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AchievementProgress), args.Error(1)
}

func (m *MockAchievementRepository) SaveAchievement(ctx context.Context, achievement domain.Achievement) (*domain.Achievement, error) {
	args := m.Called(ctx, achievement)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Achievement), args.Error(1)
}

func (m *MockAchievementRepository) UpdateAchievement(ctx context.Context, achievement domain.Achievement) error {
	args := m.Called(ctx, achievement)
	return args.Error(0)
}

func (m *MockAchievementRepository) DeleteAchievement(ctx context.Context, achievementID int64) error {
	args := m.Called(ctx, achievementID)
	return args.Error(0)
}

func (m *MockAchievementRepository) UpsertProgress(ctx context.Context, employeeID, achievementID int64, percentage int, now time.Time) (*domain.AchievementProgress, error) {
	args := m.Called(ctx, employeeID, achievementID, percentage, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AchievementProgress), args.Error(1)
}

func (m *MockAchievementRepository) ClaimReward(ctx context.Context, employeeID, achievementID int64, now time.Time) (int64, time.Time, error) {
	args := m.Called(ctx, employeeID, achievementID, now)
	return args.Get(0).(int64), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockAchievementRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockAchievementRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockAchievementRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Test Suite ---
type AchievementServiceTestSuite struct {
	suite.Suite
	mockRepo        *MockAchievementRepository
	mockBroadcaster *MockBroadcaster
	service         portssvc.AchievementSvcFacade
	ctx             context.Context
}

func (suite *AchievementServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAchievementRepository)
	suite.mockBroadcaster = new(MockBroadcaster)
	suite.service = services.NewAchievementService(suite.mockRepo, suite.mockBroadcaster)
	suite.ctx = context.Background()
}

func (suite *AchievementServiceTestSuite) TestCreateAchievement_Success() {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	req := dto.CreateAchievementRequest{
		Title:         "Q3 Wellness Challenge",
		Description:   "Log 20 workouts",
		Conditions:    "20 gym check-ins",
		DiamondReward: 150,
		StartDate:     start,
		EndDate:       end,
	}
	expected := &domain.Achievement{ID: 5, Title: req.Title, DiamondReward: 150, StartDate: start, EndDate: end, CreatedBy: 1}

	suite.mockRepo.On("SaveAchievement", suite.ctx, mock.MatchedBy(func(a domain.Achievement) bool {
		return a.Title == req.Title && a.CreatedBy == int64(1) && a.DiamondReward == int64(150)
	})).Return(expected, nil).Once()

	achievement, err := suite.service.CreateAchievement(suite.ctx, req, 1)

	suite.NoError(err)
	suite.Equal(expected, achievement)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AchievementServiceTestSuite) TestCreateAchievement_EndBeforeStart() {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	req := dto.CreateAchievementRequest{
		Title:         "Backwards window",
		DiamondReward: 10,
		StartDate:     start,
		EndDate:       start.AddDate(0, 0, -1),
	}

	achievement, err := suite.service.CreateAchievement(suite.ctx, req, 1)

	suite.Nil(achievement)
	suite.ErrorIs(err, apperrors.ErrValidation)
	var appErr *apperrors.AppError
	suite.ErrorAs(err, &appErr)
	suite.Equal("End date must be after start date", appErr.Message)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAchievement", mock.Anything, mock.Anything)
}

func (suite *AchievementServiceTestSuite) TestUpdateProgress_ForbiddenForUserRole() {
	progress, err := suite.service.UpdateProgress(suite.ctx, domain.RoleUser, 3, 5, 80)

	suite.Nil(progress)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpsertProgress",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AchievementServiceTestSuite) TestUpdateProgress_PercentageOutOfRange() {
	progress, err := suite.service.UpdateProgress(suite.ctx, domain.RoleHR, 3, 5, 101)

	suite.Nil(progress)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AchievementServiceTestSuite) TestUpdateProgress_Success() {
	achievement := &domain.Achievement{ID: 5, Title: "Q3 Wellness Challenge"}
	expected := &domain.AchievementProgress{
		EmployeeID:         3,
		AchievementID:      5,
		ProgressPercentage: 100,
		Status:             domain.ProgressCompleted,
	}

	suite.mockRepo.On("FindAchievementByID", suite.ctx, int64(5)).Return(achievement, nil).Once()
	suite.mockRepo.On("UpsertProgress",
		suite.ctx, int64(3), int64(5), 100, mock.AnythingOfType("time.Time"),
	).Return(expected, nil).Once()

	progress, err := suite.service.UpdateProgress(suite.ctx, domain.RoleHR, 3, 5, 100)

	suite.NoError(err)
	suite.Equal(domain.ProgressCompleted, progress.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AchievementServiceTestSuite) TestUpdateProgress_ClaimedIsImmutable() {
	achievement := &domain.Achievement{ID: 5}
	repoErr := apperrors.NewValidationError("Achievement reward already claimed")

	suite.mockRepo.On("FindAchievementByID", suite.ctx, int64(5)).Return(achievement, nil).Once()
	suite.mockRepo.On("UpsertProgress",
		suite.ctx, int64(3), int64(5), 50, mock.AnythingOfType("time.Time"),
	).Return(nil, repoErr).Once()

	progress, err := suite.service.UpdateProgress(suite.ctx, domain.RoleAdmin, 3, 5, 50)

	suite.Nil(progress)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AchievementServiceTestSuite) TestClaimReward_Success() {
	claimedAt := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	suite.mockRepo.On("ClaimReward",
		suite.ctx, int64(3), int64(5), mock.AnythingOfType("time.Time"),
	).Return(int64(650), claimedAt, nil).Once()
	suite.mockBroadcaster.On("BroadcastEvent", "achievement.claimed", mock.Anything).Once()

	newBalance, at, err := suite.service.ClaimReward(suite.ctx, 3, 5)

	suite.NoError(err)
	suite.Equal(int64(650), newBalance)
	suite.Equal(claimedAt, at)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockBroadcaster.AssertExpectations(suite.T())
}

func (suite *AchievementServiceTestSuite) TestClaimReward_NotCompleted() {
	repoErr := apperrors.NewValidationError("Achievement not completed yet")

	suite.mockRepo.On("ClaimReward",
		suite.ctx, int64(3), int64(5), mock.AnythingOfType("time.Time"),
	).Return(int64(0), time.Time{}, repoErr).Once()

	newBalance, _, err := suite.service.ClaimReward(suite.ctx, 3, 5)

	suite.Zero(newBalance)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBroadcaster.AssertNotCalled(suite.T(), "BroadcastEvent", mock.Anything, mock.Anything)
}

func (suite *AchievementServiceTestSuite) TestGetAchievementByID_NoProgressYet() {
	achievement := &domain.Achievement{ID: 5, Title: "Q3 Wellness Challenge"}

	suite.mockRepo.On("FindAchievementByID", suite.ctx, int64(5)).Return(achievement, nil).Once()
	suite.mockRepo.On("FindProgress", suite.ctx, int64(3), int64(5)).Return(nil, apperrors.ErrNotFound).Once()

	got, progress, err := suite.service.GetAchievementByID(suite.ctx, 5, 3)

	suite.NoError(err)
	suite.Equal(achievement, got)
	suite.Nil(progress)
}

// --- Run Test Suite ---
func TestAchievementService(t *testing.T) {
	suite.Run(t, new(AchievementServiceTestSuite))
}
