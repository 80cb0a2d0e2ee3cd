package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/perkvault/rewards_backend/internal/apperrors"
	"github.com/perkvault/rewards_backend/internal/core/domain"
	portsrepo "github.com/perkvault/rewards_backend/internal/core/ports/repositories"
	"github.com/perkvault/rewards_backend/internal/models"
	"github.com/perkvault/rewards_backend/internal/utils/mapping"
)

type PgxEmployeeRepository struct {
	pool *pgxpool.Pool
}

// newPgxEmployeeRepository creates a new repository for employee data.
func newPgxEmployeeRepository(pool *pgxpool.Pool) portsrepo.EmployeeRepositoryFacade {
	return &PgxEmployeeRepository{pool: pool}
}

// Ensure PgxEmployeeRepository implements portsrepo.EmployeeRepositoryFacade
var _ portsrepo.EmployeeRepositoryFacade = (*PgxEmployeeRepository)(nil)

const employeeColumns = `id, employee_id, name, email, password_hash, contact, address, role, diamond_balance, invitation_code_used, created_at, updated_at`

func scanEmployee(row pgx.Row) (*models.Employee, error) {
	var m models.Employee
	err := row.Scan(
		&m.ID,
		&m.EmployeeID,
		&m.Name,
		&m.Email,
		&m.PasswordHash,
		&m.Contact,
		&m.Address,
		&m.Role,
		&m.DiamondBalance,
		&m.InvitationCodeUsed,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveEmployee inserts a new employee and returns the stored row.
func (r *PgxEmployeeRepository) SaveEmployee(ctx context.Context, employee domain.Employee) (*domain.Employee, error) {
	m := mapping.ToModelEmployee(employee)

	query := `
		INSERT INTO employees (employee_id, name, email, password_hash, contact, address, role, diamond_balance, invitation_code_used, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at;
	`
	err := r.pool.QueryRow(ctx, query,
		m.EmployeeID,
		m.Name,
		m.Email,
		m.PasswordHash,
		m.Contact,
		m.Address,
		m.Role,
		m.DiamondBalance,
		m.InvitationCodeUsed,
		m.CreatedAt,
		m.UpdatedAt,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return nil, apperrors.NewDuplicateError("employee with this email or employee ID already exists")
		}
		return nil, apperrors.NewAppError(500, "failed to insert employee", err)
	}

	saved := mapping.ToDomainEmployee(m)
	return &saved, nil
}

// FindEmployeeByID retrieves an employee by primary key.
func (r *PgxEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID int64) (*domain.Employee, error) {
	query := fmt.Sprintf(`SELECT %s FROM employees WHERE id = $1;`, employeeColumns)

	m, err := scanEmployee(r.pool.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find employee by ID: %w", err)
	}

	emp := mapping.ToDomainEmployee(*m)
	return &emp, nil
}

// FindEmployeeByEmail retrieves an employee by email (login lookup).
func (r *PgxEmployeeRepository) FindEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	query := fmt.Sprintf(`SELECT %s FROM employees WHERE email = $1;`, employeeColumns)

	m, err := scanEmployee(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find employee by email: %w", err)
	}

	emp := mapping.ToDomainEmployee(*m)
	return &emp, nil
}

// ListEmployees retrieves employees ordered by name.
func (r *PgxEmployeeRepository) ListEmployees(ctx context.Context, limit, offset int) ([]domain.Employee, error) {
	query := fmt.Sprintf(`SELECT %s FROM employees ORDER BY name ASC LIMIT $1 OFFSET $2;`, employeeColumns)

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var ms []models.Employee
	for rows.Next() {
		m, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee row: %w", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employee rows: %w", err)
	}

	employees := make([]domain.Employee, len(ms))
	for i, m := range ms {
		employees[i] = mapping.ToDomainEmployee(m)
	}
	return employees, nil
}

// UpdateEmployeeProfile updates name/contact/address/email.
func (r *PgxEmployeeRepository) UpdateEmployeeProfile(ctx context.Context, employee domain.Employee) error {
	query := `
		UPDATE employees
		SET name = $2, email = $3, contact = $4, address = $5, updated_at = $6
		WHERE id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		employee.ID,
		employee.Name,
		employee.Email,
		employee.Contact,
		employee.Address,
		employee.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewDuplicateError("email already in use")
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateEmployeeRole changes an employee's role.
func (r *PgxEmployeeRepository) UpdateEmployeeRole(ctx context.Context, employeeID int64, role domain.Role, now time.Time) error {
	query := `UPDATE employees SET role = $2, updated_at = $3 WHERE id = $1;`

	tag, err := r.pool.Exec(ctx, query, employeeID, string(role), now)
	if err != nil {
		return fmt.Errorf("failed to update employee role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteEmployee removes an employee.
func (r *PgxEmployeeRepository) DeleteEmployee(ctx context.Context, employeeID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM employees WHERE id = $1;`, employeeID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // FK violation
			return apperrors.NewValidationError("employee has ledger records and cannot be deleted")
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindEmployeeForUpdate loads an employee row with FOR UPDATE.
// Must be called within a transaction.
func (r *PgxEmployeeRepository) FindEmployeeForUpdate(ctx context.Context, tx pgx.Tx, employeeID int64) (*domain.Employee, error) {
	query := fmt.Sprintf(`SELECT %s FROM employees WHERE id = $1 FOR UPDATE;`, employeeColumns)

	m, err := scanEmployee(tx.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("Employee not found")
		}
		return nil, fmt.Errorf("failed to lock employee row: %w", err)
	}

	emp := mapping.ToDomainEmployee(*m)
	return &emp, nil
}

// AddToBalanceInTx applies a signed delta and returns the new balance.
// Must be called with the row already locked via FindEmployeeForUpdate.
func (r *PgxEmployeeRepository) AddToBalanceInTx(ctx context.Context, tx pgx.Tx, employeeID int64, delta int64, now time.Time) (int64, error) {
	query := `
		UPDATE employees
		SET diamond_balance = diamond_balance + $2, updated_at = $3
		WHERE id = $1
		RETURNING diamond_balance;
	`
	var newBalance int64
	err := tx.QueryRow(ctx, query, employeeID, delta, now).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.NewNotFoundError("Employee not found")
		}
		return 0, fmt.Errorf("failed to update diamond balance: %w", err)
	}
	return newBalance, nil
}
