package mapping

import (
	"github.com/perkvault/rewards_backend/internal/core/domain"
	"github.com/perkvault/rewards_backend/internal/models"
)

// ToDomainAchievement converts a model Achievement to a domain Achievement.
func ToDomainAchievement(m models.Achievement) domain.Achievement {
	return domain.Achievement{
		ID:            m.ID,
		Title:         m.Title,
		Description:   m.Description,
		Conditions:    m.Conditions,
		DiamondReward: m.DiamondReward,
		StartDate:     m.StartDate,
		EndDate:       m.EndDate,
		CreatedBy:     m.CreatedBy,
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

// ToDomainAchievementSlice converts a slice of model Achievements.
func ToDomainAchievementSlice(ms []models.Achievement) []domain.Achievement {
	ds := make([]domain.Achievement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAchievement(m)
	}
	return ds
}

// ToDomainProgress converts a model AchievementProgress to its domain form.
func ToDomainProgress(m models.AchievementProgress) domain.AchievementProgress {
	return domain.AchievementProgress{
		ID:                 m.ID,
		EmployeeID:         m.EmployeeID,
		AchievementID:      m.AchievementID,
		ProgressPercentage: m.ProgressPercentage,
		Status:             domain.ProgressStatus(m.Status),
		ClaimedAt:          m.ClaimedAt,
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}
