package services

import (
	"context"

	"github.com/perkvault/rewards_backend/internal/core/domain"
	"github.com/perkvault/rewards_backend/internal/dto"
)

// EmployeeReaderSvc defines read operations for employee data
type EmployeeReaderSvc interface {
	// GetEmployeeByID retrieves a specific employee by its ID.
	GetEmployeeByID(ctx context.Context, employeeID int64) (*domain.Employee, error)

	// ListEmployees retrieves a paginated list of employees.
	ListEmployees(ctx context.Context, limit int, offset int) ([]domain.Employee, error)
}

// EmployeeWriterSvc defines write operations for employee data
type EmployeeWriterSvc interface {
	// UpdateEmployee updates profile fields of an employee.
	UpdateEmployee(ctx context.Context, employeeID int64, req dto.UpdateEmployeeRequest) (*domain.Employee, error)

	// UpdateEmployeeRole changes an employee's role. Admin only.
	UpdateEmployeeRole(ctx context.Context, employeeID int64, role domain.Role) (*domain.Employee, error)

	// DeleteEmployee removes an employee account. Admin only.
	DeleteEmployee(ctx context.Context, employeeID int64) error
}

// EmployeeSvcFacade combines all employee-related service interfaces
type EmployeeSvcFacade interface {
	EmployeeReaderSvc
	EmployeeWriterSvc
}
