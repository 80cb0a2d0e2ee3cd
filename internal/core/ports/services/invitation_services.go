package services

import (
	"context"

	"github.com/perkvault/rewards_backend/internal/core/domain"
)

// InvitationSvcFacade defines invitation code management. Admin only.
type InvitationSvcFacade interface {
	// CreateInvitationCode generates a new random code.
	CreateInvitationCode(ctx context.Context, createdBy int64, label string) (*domain.InvitationCode, error)

	// ListInvitationCodes retrieves all codes with usage counts.
	ListInvitationCodes(ctx context.Context) ([]domain.InvitationCodeWithUsage, error)

	// SetInvitationActive enables or disables a code.
	SetInvitationActive(ctx context.Context, codeID int64, active bool) error
}
