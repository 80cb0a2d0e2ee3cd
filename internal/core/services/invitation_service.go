package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/perkvault/rewards_backend/internal/apperrors"
	"github.com/perkvault/rewards_backend/internal/core/domain"
	portsrepo "github.com/perkvault/rewards_backend/internal/core/ports/repositories"
	portssvc "github.com/perkvault/rewards_backend/internal/core/ports/services"
	"github.com/perkvault/rewards_backend/internal/middleware"
	"github.com/perkvault/rewards_backend/internal/utils"
)

// invitationService manages invitation codes for registration gating.
type invitationService struct {
	invitationRepo portsrepo.InvitationCodeRepository
}

// NewInvitationService creates a new InvitationService.
func NewInvitationService(invitationRepo portsrepo.InvitationCodeRepository) portssvc.InvitationSvcFacade {
	return &invitationService{invitationRepo: invitationRepo}
}

// Ensure invitationService implements the portssvc.InvitationSvcFacade interface
var _ portssvc.InvitationSvcFacade = (*invitationService)(nil)

// CreateInvitationCode generates a new random code.
func (s *invitationService) CreateInvitationCode(ctx context.Context, createdBy int64, label string) (*domain.InvitationCode, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	code, err := utils.GenerateInvitationCode()
	if err != nil {
		logger.Error("Failed to generate invitation code", slog.String("error", err.Error()))
		return nil, apperrors.NewAppError(500, "failed to generate invitation code", err)
	}

	invitation := domain.InvitationCode{
		Code:      code,
		Label:     label,
		CreatedBy: createdBy,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}

	saved, err := s.invitationRepo.SaveInvitationCode(ctx, invitation)
	if err != nil {
		// A collision on the random code is possible in theory; one retry
		// covers it without looping forever.
		if errors.Is(err, apperrors.ErrDuplicate) {
			if code, err = utils.GenerateInvitationCode(); err != nil {
				return nil, apperrors.NewAppError(500, "failed to generate invitation code", err)
			}
			invitation.Code = code
			saved, err = s.invitationRepo.SaveInvitationCode(ctx, invitation)
		}
		if err != nil {
			logger.Error("Failed to save invitation code", slog.String("error", err.Error()))
			return nil, err
		}
	}

	logger.Info("Invitation code created", slog.Int64("invitation_id", saved.ID))
	return saved, nil
}

// ListInvitationCodes retrieves all codes with usage counts.
func (s *invitationService) ListInvitationCodes(ctx context.Context) ([]domain.InvitationCodeWithUsage, error) {
	limit, offset := normalizePage(0, 0)
	return s.invitationRepo.ListInvitationCodes(ctx, limit, offset)
}

// SetInvitationActive enables or disables a code.
func (s *invitationService) SetInvitationActive(ctx context.Context, codeID int64, active bool) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.invitationRepo.SetInvitationActive(ctx, codeID, active); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("Invitation code not found")
		}
		return err
	}

	logger.Info("Invitation code active flag set", slog.Int64("invitation_id", codeID), slog.Bool("active", active))
	return nil
}
