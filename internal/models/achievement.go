package models

import "time"

// Achievement is the database row shape for the achievements table.
type Achievement struct {
	ID            int64
	Title         string
	Description   string
	Conditions    string
	DiamondReward int64
	StartDate     time.Time
	EndDate       time.Time
	CreatedBy     int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProgressStatus mirrors domain.ProgressStatus at the storage layer.
type ProgressStatus string

// AchievementProgress is the database row shape for achievement_progress.
// (employee_id, achievement_id) carries a unique constraint.
type AchievementProgress struct {
	ID                 int64
	EmployeeID         int64
	AchievementID      int64
	ProgressPercentage int
	Status             ProgressStatus
	ClaimedAt          *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
