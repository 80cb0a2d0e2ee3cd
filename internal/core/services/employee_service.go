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
	"github.com/perkvault/rewards_backend/internal/dto"
	"github.com/perkvault/rewards_backend/internal/middleware"
)

// employeeService manages employee accounts. Balance mutations never happen
// here; they belong to the purchase and claim workflows.
type employeeService struct {
	employeeRepo portsrepo.EmployeeRepositoryFacade
}

// NewEmployeeService creates a new EmployeeService.
func NewEmployeeService(employeeRepo portsrepo.EmployeeRepositoryFacade) portssvc.EmployeeSvcFacade {
	return &employeeService{employeeRepo: employeeRepo}
}

// Ensure employeeService implements the portssvc.EmployeeSvcFacade interface
var _ portssvc.EmployeeSvcFacade = (*employeeService)(nil)

// GetEmployeeByID retrieves a specific employee by its ID.
func (s *employeeService) GetEmployeeByID(ctx context.Context, employeeID int64) (*domain.Employee, error) {
	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Employee not found")
		}
		return nil, err
	}
	return employee, nil
}

// ListEmployees retrieves a paginated list of employees.
func (s *employeeService) ListEmployees(ctx context.Context, limit int, offset int) ([]domain.Employee, error) {
	limit, offset = normalizePage(limit, offset)
	return s.employeeRepo.ListEmployees(ctx, limit, offset)
}

// UpdateEmployee updates profile fields of an employee.
func (s *employeeService) UpdateEmployee(ctx context.Context, employeeID int64, req dto.UpdateEmployeeRequest) (*domain.Employee, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Employee not found")
		}
		return nil, err
	}

	if req.Name != nil {
		employee.Name = *req.Name
	}
	if req.Email != nil {
		employee.Email = *req.Email
	}
	if req.Contact != nil {
		employee.Contact = *req.Contact
	}
	if req.Address != nil {
		employee.Address = *req.Address
	}

	employee.UpdatedAt = time.Now().UTC()
	if err := s.employeeRepo.UpdateEmployeeProfile(ctx, *employee); err != nil {
		logger.Error("Failed to update employee profile", slog.Int64("employee_id", employeeID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Employee profile updated", slog.Int64("employee_id", employeeID))
	return employee, nil
}

// UpdateEmployeeRole changes an employee's role.
func (s *employeeService) UpdateEmployeeRole(ctx context.Context, employeeID int64, role domain.Role) (*domain.Employee, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !role.IsValid() {
		return nil, apperrors.NewValidationError("Invalid role")
	}

	now := time.Now().UTC()
	if err := s.employeeRepo.UpdateEmployeeRole(ctx, employeeID, role, now); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Employee not found")
		}
		return nil, err
	}

	logger.Info("Employee role updated", slog.Int64("employee_id", employeeID), slog.String("role", string(role)))
	return s.employeeRepo.FindEmployeeByID(ctx, employeeID)
}

// DeleteEmployee removes an employee account.
func (s *employeeService) DeleteEmployee(ctx context.Context, employeeID int64) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.employeeRepo.DeleteEmployee(ctx, employeeID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("Employee not found")
		}
		return err
	}

	logger.Info("Employee deleted", slog.Int64("employee_id", employeeID))
	return nil
}
