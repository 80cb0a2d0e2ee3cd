package dto

// RegisterRequest is the payload for employee self-registration. The
// invitation code must reference an active code.
type RegisterRequest struct {
	Name           string `json:"name" binding:"required,max=100"`
	EmployeeID     string `json:"employeeID" binding:"required,max=50"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=8,max=72"`
	Contact        string `json:"contact" binding:"max=50"`
	Address        string `json:"address" binding:"max=200"`
	InvitationCode string `json:"invitationCode" binding:"required"`
}

// LoginRequest is the payload for password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the access token and the authenticated employee.
type AuthResponse struct {
	Token    string           `json:"token"`
	Employee EmployeeResponse `json:"employee"`
}
