package services

import (
	"context"
	"time"

	"github.com/perkvault/rewards_backend/internal/core/domain"
	"github.com/perkvault/rewards_backend/internal/dto"
)

// AchievementReaderSvc defines read operations for achievements
type AchievementReaderSvc interface {
	// GetAchievementByID retrieves an achievement, attaching the employee's
	// progress when employeeID is non-zero.
	GetAchievementByID(ctx context.Context, achievementID int64, employeeID int64) (*domain.Achievement, *domain.AchievementProgress, error)

	// ListAchievements retrieves achievements with the employee's progress rows.
	ListAchievements(ctx context.Context, employeeID int64, limit int, offset int) ([]domain.Achievement, map[int64]domain.AchievementProgress, error)
}

// AchievementWriterSvc defines write operations for achievement definitions
type AchievementWriterSvc interface {
	// CreateAchievement defines a new achievement. Admin only.
	CreateAchievement(ctx context.Context, req dto.CreateAchievementRequest, creatorID int64) (*domain.Achievement, error)

	// UpdateAchievement updates definition fields. Admin only.
	UpdateAchievement(ctx context.Context, achievementID int64, req dto.UpdateAchievementRequest) (*domain.Achievement, error)

	// DeleteAchievement removes an achievement definition. Admin only.
	DeleteAchievement(ctx context.Context, achievementID int64) error
}

// ProgressSvcFacade defines progress tracking and claiming operations
type ProgressSvcFacade interface {
	// UpdateProgress upserts an employee's completion percentage. Only admin
	// and HR callers may write progress.
	UpdateProgress(ctx context.Context, callerRole domain.Role, employeeID int64, achievementID int64, percentage int) (*domain.AchievementProgress, error)

	// ClaimReward pays out a completed achievement. Returns the employee's new
	// balance and the claim timestamp.
	ClaimReward(ctx context.Context, employeeID int64, achievementID int64) (int64, time.Time, error)
}

// AchievementSvcFacade combines all achievement-related service interfaces
type AchievementSvcFacade interface {
	AchievementReaderSvc
	AchievementWriterSvc
	ProgressSvcFacade
}
