package dto

import (
	"time"

	"github.com/perkvault/rewards_backend/internal/core/domain"
)

// CreateAchievementRequest defines a new achievement. EndDate must be
// strictly after StartDate; the service enforces it.
type CreateAchievementRequest struct {
	Title         string    `json:"title" binding:"required,max=100"`
	Description   string    `json:"description" binding:"max=1000"`
	Conditions    string    `json:"conditions" binding:"max=1000"`
	DiamondReward int64     `json:"diamondReward" binding:"required,gt=0"`
	StartDate     time.Time `json:"startDate" binding:"required"`
	EndDate       time.Time `json:"endDate" binding:"required"`
}

// UpdateAchievementRequest updates definition fields; nil fields are left
// unchanged.
type UpdateAchievementRequest struct {
	Title         *string    `json:"title,omitempty" binding:"omitempty,max=100"`
	Description   *string    `json:"description,omitempty" binding:"omitempty,max=1000"`
	Conditions    *string    `json:"conditions,omitempty" binding:"omitempty,max=1000"`
	DiamondReward *int64     `json:"diamondReward,omitempty" binding:"omitempty,gt=0"`
	StartDate     *time.Time `json:"startDate,omitempty"`
	EndDate       *time.Time `json:"endDate,omitempty"`
}

// UpdateProgressRequest sets an employee's completion percentage. EmployeeID
// lets admin/HR update another employee's progress; absent means the caller.
type UpdateProgressRequest struct {
	ProgressPercentage int    `json:"progressPercentage" binding:"gte=0,lte=100"`
	EmployeeID         *int64 `json:"employeeID,omitempty" binding:"omitempty,gt=0"`
}

// ProgressResponse is the projection of one progress row.
type ProgressResponse struct {
	EmployeeID         int64      `json:"employeeID"`
	AchievementID      int64      `json:"achievementID"`
	ProgressPercentage int        `json:"progressPercentage"`
	Status             string     `json:"status"`
	ClaimedAt          *time.Time `json:"claimedAt,omitempty"`
}

// AchievementResponse combines the definition with its derived status and,
// when requested for an employee, their progress.
type AchievementResponse struct {
	ID            int64             `json:"id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Conditions    string            `json:"conditions"`
	DiamondReward int64             `json:"diamondReward"`
	StartDate     time.Time         `json:"startDate"`
	EndDate       time.Time         `json:"endDate"`
	Status        string            `json:"status"`
	Progress      *ProgressResponse `json:"progress,omitempty"`
}

// ClaimRewardResponse is the result of a successful claim.
type ClaimRewardResponse struct {
	Success    bool      `json:"success"`
	NewBalance int64     `json:"newBalance"`
	ClaimedAt  time.Time `json:"claimed_at"`
}

// ToProgressResponse converts a domain progress row.
func ToProgressResponse(p *domain.AchievementProgress) ProgressResponse {
	return ProgressResponse{
		EmployeeID:         p.EmployeeID,
		AchievementID:      p.AchievementID,
		ProgressPercentage: p.ProgressPercentage,
		Status:             string(p.Status),
		ClaimedAt:          p.ClaimedAt,
	}
}

// ToAchievementResponse converts a domain achievement, deriving its status
// at now and attaching progress when present.
func ToAchievementResponse(a *domain.Achievement, progress *domain.AchievementProgress, now time.Time) AchievementResponse {
	resp := AchievementResponse{
		ID:            a.ID,
		Title:         a.Title,
		Description:   a.Description,
		Conditions:    a.Conditions,
		DiamondReward: a.DiamondReward,
		StartDate:     a.StartDate,
		EndDate:       a.EndDate,
		Status:        string(a.StatusAt(now)),
	}
	if progress != nil {
		p := ToProgressResponse(progress)
		resp.Progress = &p
	}
	return resp
}
