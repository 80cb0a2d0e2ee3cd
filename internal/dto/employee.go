package dto

import (
	"time"

	"github.com/perkvault/rewards_backend/internal/core/domain"
)

// EmployeeResponse is the public projection of an employee (no password hash).
type EmployeeResponse struct {
	ID             int64     `json:"id"`
	EmployeeID     string    `json:"employeeID"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Contact        string    `json:"contact,omitempty"`
	Address        string    `json:"address,omitempty"`
	Role           string    `json:"role"`
	DiamondBalance int64     `json:"diamondBalance"`
	CreatedAt      time.Time `json:"createdAt"`
}

// UpdateEmployeeRequest updates profile fields; nil fields are left unchanged.
type UpdateEmployeeRequest struct {
	Name    *string `json:"name,omitempty" binding:"omitempty,max=100"`
	Email   *string `json:"email,omitempty" binding:"omitempty,email"`
	Contact *string `json:"contact,omitempty" binding:"omitempty,max=50"`
	Address *string `json:"address,omitempty" binding:"omitempty,max=200"`
}

// UpdateRoleRequest changes an employee's role.
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user hr admin"`
}

// ToEmployeeResponse converts a domain.Employee to its public projection.
func ToEmployeeResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:             e.ID,
		EmployeeID:     e.EmployeeID,
		Name:           e.Name,
		Email:          e.Email,
		Contact:        e.Contact,
		Address:        e.Address,
		Role:           string(e.Role),
		DiamondBalance: e.DiamondBalance,
		CreatedAt:      e.CreatedAt,
	}
}

// ToEmployeeResponses converts a slice of domain employees.
func ToEmployeeResponses(es []domain.Employee) []EmployeeResponse {
	responses := make([]EmployeeResponse, len(es))
	for i := range es {
		responses[i] = ToEmployeeResponse(&es[i])
	}
	return responses
}
