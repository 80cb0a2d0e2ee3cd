package repositories

import (
	"context"

	"github.com/perkvault/rewards_backend/internal/core/domain"
)

// InvitationCodeRepository defines operations for invitation codes.
type InvitationCodeRepository interface {
	// FindInvitationByCode retrieves a code row by its code string.
	FindInvitationByCode(ctx context.Context, code string) (*domain.InvitationCode, error)

	// ListInvitationCodes retrieves all codes with creator name and usage
	// counts, newest first.
	ListInvitationCodes(ctx context.Context, limit, offset int) ([]domain.InvitationCodeWithUsage, error)

	// SaveInvitationCode inserts a new code and returns the stored row.
	SaveInvitationCode(ctx context.Context, code domain.InvitationCode) (*domain.InvitationCode, error)

	// SetInvitationActive toggles the active flag.
	SetInvitationActive(ctx context.Context, invitationID int64, active bool) error
}
