package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/perkvault/rewards_backend/internal/core/domain"
)

// EmployeeReader defines read operations for employee data.
type EmployeeReader interface {
	// FindEmployeeByID retrieves an employee by primary key.
	FindEmployeeByID(ctx context.Context, employeeID int64) (*domain.Employee, error)

	// FindEmployeeByEmail retrieves an employee by email (login lookup).
	FindEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error)

	// ListEmployees retrieves employees ordered by name.
	ListEmployees(ctx context.Context, limit, offset int) ([]domain.Employee, error)
}

// EmployeeWriter defines write operations for employee data. Balance is
// deliberately absent here: it is only ever mutated through the workflow
// methods below, inside their transactions.
type EmployeeWriter interface {
	// SaveEmployee inserts a new employee and returns the stored row.
	SaveEmployee(ctx context.Context, employee domain.Employee) (*domain.Employee, error)

	// UpdateEmployeeProfile updates name/contact/address/email.
	UpdateEmployeeProfile(ctx context.Context, employee domain.Employee) error

	// UpdateEmployeeRole changes an employee's role.
	UpdateEmployeeRole(ctx context.Context, employeeID int64, role domain.Role, now time.Time) error

	// DeleteEmployee removes an employee.
	DeleteEmployee(ctx context.Context, employeeID int64) error
}

// EmployeeBalancer exposes the in-transaction primitives the workflow
// repositories compose: row locking and balance deltas. Both must be called
// with the transaction that will commit the rest of the workflow.
type EmployeeBalancer interface {
	// FindEmployeeForUpdate loads an employee row with FOR UPDATE.
	FindEmployeeForUpdate(ctx context.Context, tx pgx.Tx, employeeID int64) (*domain.Employee, error)

	// AddToBalanceInTx applies a signed delta and returns the new balance.
	AddToBalanceInTx(ctx context.Context, tx pgx.Tx, employeeID int64, delta int64, now time.Time) (int64, error)
}

// EmployeeRepositoryFacade combines all employee repository interfaces.
type EmployeeRepositoryFacade interface {
	EmployeeReader
	EmployeeWriter
	EmployeeBalancer
}
