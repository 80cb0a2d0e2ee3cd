package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/perkvault/rewards_backend/internal/apperrors"
	"github.com/perkvault/rewards_backend/internal/core/domain"
	portsrepo "github.com/perkvault/rewards_backend/internal/core/ports/repositories"
	portssvc "github.com/perkvault/rewards_backend/internal/core/ports/services"
	"github.com/perkvault/rewards_backend/internal/dto"
	"github.com/perkvault/rewards_backend/internal/middleware"
)

// achievementService manages achievement definitions, progress tracking and
// reward claims. Claim atomicity lives in the repository workflow.
type achievementService struct {
	achievementRepo portsrepo.AchievementRepositoryWithTx
	broadcaster     portssvc.EventBroadcaster
}

// NewAchievementService creates a new AchievementService.
func NewAchievementService(achievementRepo portsrepo.AchievementRepositoryWithTx, broadcaster portssvc.EventBroadcaster) portssvc.AchievementSvcFacade {
	return &achievementService{
		achievementRepo: achievementRepo,
		broadcaster:     broadcaster,
	}
}

// Ensure achievementService implements the portssvc.AchievementSvcFacade interface
var _ portssvc.AchievementSvcFacade = (*achievementService)(nil)

// CreateAchievement defines a new achievement.
func (s *achievementService) CreateAchievement(ctx context.Context, req dto.CreateAchievementRequest, creatorID int64) (*domain.Achievement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.EndDate.After(req.StartDate) {
		return nil, apperrors.NewValidationError("End date must be after start date")
	}

	now := time.Now().UTC()
	achievement := domain.Achievement{
		Title:         req.Title,
		Description:   req.Description,
		Conditions:    req.Conditions,
		DiamondReward: req.DiamondReward,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		CreatedBy:     creatorID,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	saved, err := s.achievementRepo.SaveAchievement(ctx, achievement)
	if err != nil {
		logger.Error("Failed to save achievement", slog.String("title", req.Title), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Achievement created", slog.Int64("achievement_id", saved.ID), slog.String("title", saved.Title))
	return saved, nil
}

// UpdateAchievement updates definition fields.
func (s *achievementService) UpdateAchievement(ctx context.Context, achievementID int64, req dto.UpdateAchievementRequest) (*domain.Achievement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	achievement, err := s.achievementRepo.FindAchievementByID(ctx, achievementID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Achievement not found")
		}
		return nil, err
	}

	if req.Title != nil {
		achievement.Title = *req.Title
	}
	if req.Description != nil {
		achievement.Description = *req.Description
	}
	if req.Conditions != nil {
		achievement.Conditions = *req.Conditions
	}
	if req.DiamondReward != nil {
		achievement.DiamondReward = *req.DiamondReward
	}
	if req.StartDate != nil {
		achievement.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		achievement.EndDate = *req.EndDate
	}
	if !achievement.EndDate.After(achievement.StartDate) {
		return nil, apperrors.NewValidationError("End date must be after start date")
	}

	achievement.UpdatedAt = time.Now().UTC()
	if err := s.achievementRepo.UpdateAchievement(ctx, *achievement); err != nil {
		logger.Error("Failed to update achievement", slog.Int64("achievement_id", achievementID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Achievement updated", slog.Int64("achievement_id", achievementID))
	return achievement, nil
}

// DeleteAchievement removes an achievement definition.
func (s *achievementService) DeleteAchievement(ctx context.Context, achievementID int64) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.achievementRepo.DeleteAchievement(ctx, achievementID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("Achievement not found")
		}
		return err
	}

	logger.Info("Achievement deleted", slog.Int64("achievement_id", achievementID))
	return nil
}

// GetAchievementByID retrieves an achievement, attaching the employee's
// progress when employeeID is non-zero.
func (s *achievementService) GetAchievementByID(ctx context.Context, achievementID int64, employeeID int64) (*domain.Achievement, *domain.AchievementProgress, error) {
	achievement, err := s.achievementRepo.FindAchievementByID(ctx, achievementID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.NewNotFoundError("Achievement not found")
		}
		return nil, nil, err
	}

	if employeeID == 0 {
		return achievement, nil, nil
	}

	progress, err := s.achievementRepo.FindProgress(ctx, employeeID, achievementID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// No progress yet is a normal state, not an error.
			return achievement, nil, nil
		}
		return nil, nil, err
	}
	return achievement, progress, nil
}

// ListAchievements retrieves achievements with the employee's progress rows.
func (s *achievementService) ListAchievements(ctx context.Context, employeeID int64, limit int, offset int) ([]domain.Achievement, map[int64]domain.AchievementProgress, error) {
	limit, offset = normalizePage(limit, offset)

	achievements, err := s.achievementRepo.ListAchievements(ctx, limit, offset)
	if err != nil {
		return nil, nil, err
	}

	progressByAchievement := make(map[int64]domain.AchievementProgress)
	if employeeID != 0 {
		progress, err := s.achievementRepo.ListProgressByEmployee(ctx, employeeID)
		if err != nil {
			return nil, nil, err
		}
		for _, p := range progress {
			progressByAchievement[p.AchievementID] = p
		}
	}
	return achievements, progressByAchievement, nil
}

// UpdateProgress upserts an employee's completion percentage. Only admin
// and HR callers may write progress.
func (s *achievementService) UpdateProgress(ctx context.Context, callerRole domain.Role, employeeID int64, achievementID int64, percentage int) (*domain.AchievementProgress, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !callerRole.CanManageProgress() {
		return nil, apperrors.ErrForbidden
	}
	if percentage < 0 || percentage > 100 {
		return nil, apperrors.NewValidationError("Progress percentage must be between 0 and 100")
	}

	if _, err := s.achievementRepo.FindAchievementByID(ctx, achievementID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Achievement not found")
		}
		return nil, err
	}

	now := time.Now().UTC()
	progress, err := s.achievementRepo.UpsertProgress(ctx, employeeID, achievementID, percentage, now)
	if err != nil {
		logger.Warn("Failed to upsert achievement progress", slog.Int64("employee_id", employeeID), slog.Int64("achievement_id", achievementID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Achievement progress updated",
		slog.Int64("employee_id", employeeID),
		slog.Int64("achievement_id", achievementID),
		slog.Int("percentage", percentage),
		slog.String("status", string(progress.Status)),
	)
	return progress, nil
}

// ClaimReward pays out a completed achievement.
func (s *achievementService) ClaimReward(ctx context.Context, employeeID int64, achievementID int64) (int64, time.Time, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	newBalance, claimedAt, err := s.achievementRepo.ClaimReward(ctx, employeeID, achievementID, now)
	if err != nil {
		logger.Warn("Failed to claim achievement reward", slog.Int64("employee_id", employeeID), slog.Int64("achievement_id", achievementID), slog.String("error", err.Error()))
		return 0, time.Time{}, err
	}

	logger.Info("Achievement reward claimed",
		slog.Int64("employee_id", employeeID),
		slog.Int64("achievement_id", achievementID),
		slog.Int64("new_balance", newBalance),
	)

	if s.broadcaster != nil {
		s.broadcaster.BroadcastEvent("achievement.claimed", map[string]any{
			"employeeID":    employeeID,
			"achievementID": achievementID,
			"newBalance":    newBalance,
			"claimedAt":     claimedAt,
		})
	}
	return newBalance, claimedAt, nil
}
