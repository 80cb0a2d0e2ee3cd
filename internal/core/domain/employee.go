package domain

// Role describes what an employee is allowed to do.
type Role string

const (
	RoleUser  Role = "user"
	RoleHR    Role = "hr"
	RoleAdmin Role = "admin"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleHR, RoleAdmin:
		return true
	}
	return false
}

// CanManageProgress reports whether the role may update achievement progress
// for other employees.
func (r Role) CanManageProgress() bool {
	return r == RoleAdmin || r == RoleHR
}

// Employee represents an employee account. DiamondBalance is the single
// source of truth for spending power; it is mutated only by the purchase and
// claim workflows and must never go negative.
type Employee struct {
	ID                 int64  `json:"id"`
	EmployeeID         string `json:"employeeID"` // company-assigned code, unique
	Name               string `json:"name"`
	Email              string `json:"email"`
	PasswordHash       string `json:"-"`
	Contact            string `json:"contact"`
	Address            string `json:"address"`
	Role               Role   `json:"role"`
	DiamondBalance     int64  `json:"diamondBalance"`
	InvitationCodeUsed string `json:"invitationCodeUsed,omitempty"`
	Timestamps
}
