package domain

import "time"

// HistoryType groups history records by the workflow that produced them.
type HistoryType string

const (
	HistoryTypeClaim    HistoryType = "claim"
	HistoryTypePurchase HistoryType = "purchase"
)

// HistoryAction is the event within the workflow.
type HistoryAction string

const (
	HistoryActionCreated  HistoryAction = "created"
	HistoryActionApproved HistoryAction = "approved"
	HistoryActionRejected HistoryAction = "rejected"
	HistoryActionClaimed  HistoryAction = "claimed"
)

// History is one immutable audit record. Diamonds is the signed delta this
// event applied to the employee's balance (0 for pure status transitions).
// EmployeeName is a snapshot so the trail survives renames. Details is a
// write-only descriptive note, free text or JSON.
type History struct {
	ID           int64         `json:"id"`
	EmployeeID   int64         `json:"employeeID"`
	EmployeeName string        `json:"employeeName"`
	Type         HistoryType   `json:"type"`
	Action       HistoryAction `json:"action"`
	Details      string        `json:"details"`
	Diamonds     int64         `json:"diamonds"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// HistoryFilter narrows history listings. Nil/zero fields are ignored.
type HistoryFilter struct {
	EmployeeID *int64
	Type       *HistoryType
	Action     *HistoryAction
	From       *time.Time
	To         *time.Time
	Search     string // substring match against details
	Limit      int
	Offset     int
}

// ClaimDetails is the JSON payload stored in Details for claim events.
type ClaimDetails struct {
	AchievementID    int64  `json:"achievement_id"`
	AchievementTitle string `json:"achievement_title"`
	DiamondReward    int64  `json:"diamond_reward"`
}
