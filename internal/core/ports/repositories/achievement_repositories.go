package repositories

import (
	"context"
	"time"

	"github.com/perkvault/rewards_backend/internal/core/domain"
)

// AchievementReader defines read operations for achievements and progress.
type AchievementReader interface {
	// FindAchievementByID retrieves an achievement by primary key.
	FindAchievementByID(ctx context.Context, achievementID int64) (*domain.Achievement, error)

	// ListAchievements retrieves all achievements, newest start date first.
	ListAchievements(ctx context.Context, limit, offset int) ([]domain.Achievement, error)

	// FindProgress retrieves the progress row for one (employee, achievement)
	// pair, or ErrNotFound when no progress exists yet.
	FindProgress(ctx context.Context, employeeID, achievementID int64) (*domain.AchievementProgress, error)

	// ListProgressByEmployee retrieves all progress rows for an employee.
	ListProgressByEmployee(ctx context.Context, employeeID int64) ([]domain.AchievementProgress, error)
}

// AchievementWriter defines write operations for achievement definitions
// and progress tracking.
type AchievementWriter interface {
	// SaveAchievement inserts a new achievement and returns the stored row.
	SaveAchievement(ctx context.Context, achievement domain.Achievement) (*domain.Achievement, error)

	// UpdateAchievement updates the definition fields.
	UpdateAchievement(ctx context.Context, achievement domain.Achievement) error

	// DeleteAchievement removes an achievement and its progress rows.
	DeleteAchievement(ctx context.Context, achievementID int64) error

	// UpsertProgress creates or updates the progress row for the pair,
	// deriving the stored status from the percentage. Claimed rows are
	// immutable and cause a validation error.
	UpsertProgress(ctx context.Context, employeeID, achievementID int64, percentage int, now time.Time) (*domain.AchievementProgress, error)
}

// ClaimWorkflow is the balance-mutating claim operation: one atomic unit of
// work that re-validates eligibility on the locked progress row, credits the
// reward, marks the progress claimed and appends the audit record.
type ClaimWorkflow interface {
	// ClaimReward returns the employee's new balance and the claim instant.
	ClaimReward(ctx context.Context, employeeID, achievementID int64, now time.Time) (int64, time.Time, error)
}

// AchievementRepositoryFacade combines all achievement repository interfaces.
type AchievementRepositoryFacade interface {
	AchievementReader
	AchievementWriter
	ClaimWorkflow
}

// AchievementRepositoryWithTx extends the facade with transaction capabilities.
type AchievementRepositoryWithTx interface {
	AchievementRepositoryFacade
	TransactionManager
}
