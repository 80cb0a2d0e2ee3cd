package mapping

import (
	"github.com/perkvault/rewards_backend/internal/core/domain"
	"github.com/perkvault/rewards_backend/internal/models"
)

// ToDomainInvitationCode converts a model InvitationCode to its domain form.
func ToDomainInvitationCode(m models.InvitationCode) domain.InvitationCode {
	d := domain.InvitationCode{
		ID:        m.ID,
		Code:      m.Code,
		CreatedBy: m.CreatedBy,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
	}
	if m.Label != nil {
		d.Label = *m.Label
	}
	return d
}
