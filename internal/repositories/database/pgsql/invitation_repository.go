package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/perkvault/rewards_backend/internal/apperrors"
	"github.com/perkvault/rewards_backend/internal/core/domain"
	portsrepo "github.com/perkvault/rewards_backend/internal/core/ports/repositories"
	"github.com/perkvault/rewards_backend/internal/models"
	"github.com/perkvault/rewards_backend/internal/utils/mapping"
)

type PgxInvitationRepository struct {
	pool *pgxpool.Pool
}

// newPgxInvitationRepository creates a new repository for invitation codes.
func newPgxInvitationRepository(pool *pgxpool.Pool) portsrepo.InvitationCodeRepository {
	return &PgxInvitationRepository{pool: pool}
}

// Ensure PgxInvitationRepository implements portsrepo.InvitationCodeRepository
var _ portsrepo.InvitationCodeRepository = (*PgxInvitationRepository)(nil)

// FindInvitationByCode retrieves a code row by its code string.
func (r *PgxInvitationRepository) FindInvitationByCode(ctx context.Context, code string) (*domain.InvitationCode, error) {
	query := `
		SELECT id, code, label, created_by, is_active, created_at
		FROM invitation_codes
		WHERE code = $1;
	`
	var m models.InvitationCode
	err := r.pool.QueryRow(ctx, query, code).Scan(
		&m.ID,
		&m.Code,
		&m.Label,
		&m.CreatedBy,
		&m.IsActive,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invitation code: %w", err)
	}

	d := mapping.ToDomainInvitationCode(m)
	return &d, nil
}

// ListInvitationCodes retrieves all codes with creator name and usage
// counts, newest first.
func (r *PgxInvitationRepository) ListInvitationCodes(ctx context.Context, limit, offset int) ([]domain.InvitationCodeWithUsage, error) {
	query := `
		SELECT ic.id, ic.code, ic.label, ic.created_by, ic.is_active, ic.created_at,
			COALESCE(e.name, '') AS created_by_name,
			(SELECT COUNT(*) FROM employees u WHERE u.invitation_code_used = ic.code) AS usage_count
		FROM invitation_codes ic
		LEFT JOIN employees e ON e.id = ic.created_by
		ORDER BY ic.created_at DESC, ic.id DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query invitation codes: %w", err)
	}
	defer rows.Close()

	var codes []domain.InvitationCodeWithUsage
	for rows.Next() {
		var m models.InvitationCode
		var createdByName string
		var usageCount int64
		err := rows.Scan(
			&m.ID,
			&m.Code,
			&m.Label,
			&m.CreatedBy,
			&m.IsActive,
			&m.CreatedAt,
			&createdByName,
			&usageCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invitation code row: %w", err)
		}
		codes = append(codes, domain.InvitationCodeWithUsage{
			InvitationCode: mapping.ToDomainInvitationCode(m),
			CreatedByName:  createdByName,
			UsageCount:     usageCount,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invitation code rows: %w", err)
	}

	return codes, nil
}

// SaveInvitationCode inserts a new code and returns the stored row.
func (r *PgxInvitationRepository) SaveInvitationCode(ctx context.Context, code domain.InvitationCode) (*domain.InvitationCode, error) {
	query := `
		INSERT INTO invitation_codes (code, label, created_by, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at;
	`
	saved := code
	err := r.pool.QueryRow(ctx, query,
		code.Code,
		code.Label,
		code.CreatedBy,
		code.IsActive,
		code.CreatedAt,
	).Scan(&saved.ID, &saved.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return nil, apperrors.NewDuplicateError("invitation code already exists")
		}
		return nil, apperrors.NewAppError(500, "failed to insert invitation code", err)
	}

	return &saved, nil
}

// SetInvitationActive toggles the active flag.
func (r *PgxInvitationRepository) SetInvitationActive(ctx context.Context, invitationID int64, active bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE invitation_codes SET is_active = $2 WHERE id = $1;`, invitationID, active)
	if err != nil {
		return fmt.Errorf("failed to update invitation code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
