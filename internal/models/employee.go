package models

import "time"

// Role mirrors domain.Role at the storage layer.
type Role string

// Employee is the database row shape for the employees table.
type Employee struct {
	ID                 int64
	EmployeeID         string
	Name               string
	Email              string
	PasswordHash       string
	Contact            string
	Address            string
	Role               Role
	DiamondBalance     int64
	InvitationCodeUsed *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
