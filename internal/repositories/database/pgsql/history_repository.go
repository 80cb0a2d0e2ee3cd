package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/perkvault/rewards_backend/internal/core/domain"
	portsrepo "github.com/perkvault/rewards_backend/internal/core/ports/repositories"
	"github.com/perkvault/rewards_backend/internal/models"
	"github.com/perkvault/rewards_backend/internal/utils/mapping"
)

type PgxHistoryRepository struct {
	pool *pgxpool.Pool
}

// newPgxHistoryRepository creates a new repository for the audit trail.
func newPgxHistoryRepository(pool *pgxpool.Pool) portsrepo.HistoryRepositoryFacade {
	return &PgxHistoryRepository{pool: pool}
}

// Ensure PgxHistoryRepository implements portsrepo.HistoryRepositoryFacade
var _ portsrepo.HistoryRepositoryFacade = (*PgxHistoryRepository)(nil)

// AppendHistoryInTx inserts one audit record using the caller's transaction
// so the record commits or rolls back with the workflow that produced it.
func (r *PgxHistoryRepository) AppendHistoryInTx(ctx context.Context, tx pgx.Tx, record domain.History) error {
	query := `
		INSERT INTO history (employee_id, employee_name, type, action, details, diamonds, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := tx.Exec(ctx, query,
		record.EmployeeID,
		record.EmployeeName,
		string(record.Type),
		string(record.Action),
		record.Details,
		record.Diamonds,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert history record: %w", err)
	}
	return nil
}

// ListHistory retrieves records matching the filter, newest first.
func (r *PgxHistoryRepository) ListHistory(ctx context.Context, filter domain.HistoryFilter) ([]domain.History, error) {
	query := `
		SELECT id, employee_id, employee_name, type, action, details, diamonds, created_at
		FROM history
		WHERE 1=1`
	args := []any{}
	argIdx := 1

	if filter.EmployeeID != nil {
		query += fmt.Sprintf(` AND employee_id = $%d`, argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Type != nil {
		query += fmt.Sprintf(` AND type = $%d`, argIdx)
		args = append(args, string(*filter.Type))
		argIdx++
	}
	if filter.Action != nil {
		query += fmt.Sprintf(` AND action = $%d`, argIdx)
		args = append(args, string(*filter.Action))
		argIdx++
	}
	if filter.From != nil {
		query += fmt.Sprintf(` AND created_at >= $%d`, argIdx)
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		query += fmt.Sprintf(` AND created_at <= $%d`, argIdx)
		args = append(args, *filter.To)
		argIdx++
	}
	if filter.Search != "" {
		query += fmt.Sprintf(` AND (details ILIKE $%d OR employee_name ILIKE $%d)`, argIdx, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d;`, argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var ms []models.History
	for rows.Next() {
		var m models.History
		err := rows.Scan(
			&m.ID,
			&m.EmployeeID,
			&m.EmployeeName,
			&m.Type,
			&m.Action,
			&m.Details,
			&m.Diamonds,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history rows: %w", err)
	}

	return mapping.ToDomainHistorySlice(ms), nil
}
