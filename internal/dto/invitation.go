package dto

import (
	"time"

	"github.com/perkvault/rewards_backend/internal/core/domain"
)

// CreateInvitationRequest creates a new invitation code; the code itself is
// generated server side.
type CreateInvitationRequest struct {
	Label string `json:"label" binding:"max=100"`
}

// SetInvitationActiveRequest toggles whether a code accepts registrations.
type SetInvitationActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// InvitationResponse is the admin projection of an invitation code.
type InvitationResponse struct {
	ID            int64     `json:"id"`
	Code          string    `json:"code"`
	Label         string    `json:"label,omitempty"`
	CreatedByName string    `json:"createdByName,omitempty"`
	IsActive      bool      `json:"isActive"`
	UsageCount    int64     `json:"usageCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ToInvitationResponse converts a domain code with usage metadata.
func ToInvitationResponse(c *domain.InvitationCodeWithUsage) InvitationResponse {
	return InvitationResponse{
		ID:            c.ID,
		Code:          c.Code,
		Label:         c.Label,
		CreatedByName: c.CreatedByName,
		IsActive:      c.IsActive,
		UsageCount:    c.UsageCount,
		CreatedAt:     c.CreatedAt,
	}
}
