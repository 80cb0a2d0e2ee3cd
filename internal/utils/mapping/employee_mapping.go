package mapping

import (
	"github.com/perkvault/rewards_backend/internal/core/domain"
	"github.com/perkvault/rewards_backend/internal/models"
)

// ToDomainEmployee converts a model Employee to a domain Employee.
func ToDomainEmployee(m models.Employee) domain.Employee {
	e := domain.Employee{
		ID:             m.ID,
		EmployeeID:     m.EmployeeID,
		Name:           m.Name,
		Email:          m.Email,
		PasswordHash:   m.PasswordHash,
		Contact:        m.Contact,
		Address:        m.Address,
		Role:           domain.Role(m.Role),
		DiamondBalance: m.DiamondBalance,
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
	if m.InvitationCodeUsed != nil {
		e.InvitationCodeUsed = *m.InvitationCodeUsed
	}
	return e
}

// ToModelEmployee converts a domain Employee to a model Employee.
func ToModelEmployee(d domain.Employee) models.Employee {
	m := models.Employee{
		ID:             d.ID,
		EmployeeID:     d.EmployeeID,
		Name:           d.Name,
		Email:          d.Email,
		PasswordHash:   d.PasswordHash,
		Contact:        d.Contact,
		Address:        d.Address,
		Role:           models.Role(d.Role),
		DiamondBalance: d.DiamondBalance,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
	if d.InvitationCodeUsed != "" {
		code := d.InvitationCodeUsed
		m.InvitationCodeUsed = &code
	}
	return m
}
