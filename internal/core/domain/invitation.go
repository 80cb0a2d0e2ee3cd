package domain

import "time"

// InvitationCode gates employee registration. Codes are created by admins
// and may be deactivated; a deactivated code keeps its usage history.
type InvitationCode struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Label     string    `json:"label,omitempty"`
	CreatedBy int64     `json:"createdBy"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// InvitationCodeWithUsage adds listing metadata for the admin view.
type InvitationCodeWithUsage struct {
	InvitationCode
	CreatedByName string `json:"createdByName"`
	UsageCount    int64  `json:"usageCount"`
}
