package domain

import (
	"time"

	"github.com/perkvault/rewards_backend/internal/apperrors"
)

// AchievementStatus is derived from the clock and the achievement's date
// range; it is never stored.
type AchievementStatus string

const (
	AchievementUpcoming AchievementStatus = "upcoming"
	AchievementOngoing  AchievementStatus = "ongoing"
	AchievementExpired  AchievementStatus = "expired"
)

// Achievement is a time-boxed task with a fixed diamond reward, claimable
// once per employee after full completion and before expiry.
type Achievement struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Conditions    string    `json:"conditions"`
	DiamondReward int64     `json:"diamondReward"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	CreatedBy     int64     `json:"createdBy"`
	Timestamps
}

// StatusAt classifies the achievement relative to now. The range is
// inclusive on both ends: an achievement is ongoing at the exact start and
// end instants.
func (a Achievement) StatusAt(now time.Time) AchievementStatus {
	if now.Before(a.StartDate) {
		return AchievementUpcoming
	}
	if now.After(a.EndDate) {
		return AchievementExpired
	}
	return AchievementOngoing
}

// ProgressStatus is the lifecycle of one employee's progress against one
// achievement. Transitions only move forward: on_doing -> completed ->
// claimed.
type ProgressStatus string

const (
	ProgressOnDoing   ProgressStatus = "on_doing"
	ProgressCompleted ProgressStatus = "completed"
	ProgressClaimed   ProgressStatus = "claimed"
)

// ProgressStatusFor derives the stored status from a percentage: completed
// exactly when the percentage reaches 100.
func ProgressStatusFor(percentage int) ProgressStatus {
	if percentage == 100 {
		return ProgressCompleted
	}
	return ProgressOnDoing
}

// AchievementProgress is one employee's completion state against one
// achievement. There is at most one row per (employee, achievement) pair.
type AchievementProgress struct {
	ID                 int64          `json:"id"`
	EmployeeID         int64          `json:"employeeID"`
	AchievementID      int64          `json:"achievementID"`
	ProgressPercentage int            `json:"progressPercentage"`
	Status             ProgressStatus `json:"status"`
	ClaimedAt          *time.Time     `json:"claimedAt,omitempty"`
	Timestamps
}

// ValidateClaim decides claim eligibility. The expiry gate applies even at
// 100% progress; the claimed guard makes the operation non-repeatable by
// construction. progress is nil when no progress row exists. Like
// ValidatePurchase, this must be evaluated against a locked progress row.
func ValidateClaim(achievement Achievement, progress *AchievementProgress, now time.Time) error {
	if now.After(achievement.EndDate) {
		return apperrors.NewValidationError("Cannot claim expired achievement")
	}
	if progress == nil {
		return apperrors.NewNotFoundError("Achievement progress not found")
	}
	if progress.Status == ProgressClaimed {
		return apperrors.NewValidationError("Achievement reward already claimed")
	}
	if progress.ProgressPercentage != 100 {
		return apperrors.NewValidationError("Achievement not completed yet")
	}
	return nil
}
