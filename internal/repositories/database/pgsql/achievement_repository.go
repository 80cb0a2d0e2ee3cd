package pgsql

import (
	"context"
	"encoding/json"
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

type PgxAchievementRepository struct {
	BaseRepository
	employeeRepo portsrepo.EmployeeRepositoryFacade
	historyRepo  portsrepo.HistoryRecorder
}

// newPgxAchievementRepository creates a new repository for achievement data.
func newPgxAchievementRepository(pool *pgxpool.Pool, employeeRepo portsrepo.EmployeeRepositoryFacade, historyRepo portsrepo.HistoryRecorder) portsrepo.AchievementRepositoryWithTx {
	return &PgxAchievementRepository{
		BaseRepository: BaseRepository{Pool: pool},
		employeeRepo:   employeeRepo,
		historyRepo:    historyRepo,
	}
}

// Ensure PgxAchievementRepository implements portsrepo.AchievementRepositoryWithTx
var _ portsrepo.AchievementRepositoryWithTx = (*PgxAchievementRepository)(nil)

const achievementColumns = `id, title, description, conditions, diamond_reward, start_date, end_date, created_by, created_at, updated_at`

const progressColumns = `id, employee_id, achievement_id, progress_percentage, status, claimed_at, created_at, updated_at`

func scanAchievement(row pgx.Row) (*models.Achievement, error) {
	var m models.Achievement
	err := row.Scan(
		&m.ID,
		&m.Title,
		&m.Description,
		&m.Conditions,
		&m.DiamondReward,
		&m.StartDate,
		&m.EndDate,
		&m.CreatedBy,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanProgress(row pgx.Row) (*models.AchievementProgress, error) {
	var m models.AchievementProgress
	err := row.Scan(
		&m.ID,
		&m.EmployeeID,
		&m.AchievementID,
		&m.ProgressPercentage,
		&m.Status,
		&m.ClaimedAt,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveAchievement inserts a new achievement and returns the stored row.
func (r *PgxAchievementRepository) SaveAchievement(ctx context.Context, achievement domain.Achievement) (*domain.Achievement, error) {
	query := `
		INSERT INTO achievements (title, description, conditions, diamond_reward, start_date, end_date, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at;
	`
	m := models.Achievement{
		Title:         achievement.Title,
		Description:   achievement.Description,
		Conditions:    achievement.Conditions,
		DiamondReward: achievement.DiamondReward,
		StartDate:     achievement.StartDate,
		EndDate:       achievement.EndDate,
		CreatedBy:     achievement.CreatedBy,
		CreatedAt:     achievement.CreatedAt,
		UpdatedAt:     achievement.UpdatedAt,
	}
	err := r.Pool.QueryRow(ctx, query,
		m.Title,
		m.Description,
		m.Conditions,
		m.DiamondReward,
		m.StartDate,
		m.EndDate,
		m.CreatedBy,
		m.CreatedAt,
		m.UpdatedAt,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert achievement", err)
	}

	saved := mapping.ToDomainAchievement(m)
	return &saved, nil
}

// FindAchievementByID retrieves an achievement by primary key.
func (r *PgxAchievementRepository) FindAchievementByID(ctx context.Context, achievementID int64) (*domain.Achievement, error) {
	query := fmt.Sprintf(`SELECT %s FROM achievements WHERE id = $1;`, achievementColumns)

	m, err := scanAchievement(r.Pool.QueryRow(ctx, query, achievementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find achievement by ID: %w", err)
	}

	a := mapping.ToDomainAchievement(*m)
	return &a, nil
}

// ListAchievements retrieves all achievements, newest start date first.
func (r *PgxAchievementRepository) ListAchievements(ctx context.Context, limit, offset int) ([]domain.Achievement, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM achievements
		ORDER BY start_date DESC, id DESC
		LIMIT $1 OFFSET $2;`, achievementColumns)

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query achievements: %w", err)
	}
	defer rows.Close()

	var ms []models.Achievement
	for rows.Next() {
		m, err := scanAchievement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan achievement row: %w", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating achievement rows: %w", err)
	}

	return mapping.ToDomainAchievementSlice(ms), nil
}

// UpdateAchievement updates the definition fields.
func (r *PgxAchievementRepository) UpdateAchievement(ctx context.Context, achievement domain.Achievement) error {
	query := `
		UPDATE achievements
		SET title = $2, description = $3, conditions = $4, diamond_reward = $5, start_date = $6, end_date = $7, updated_at = $8
		WHERE id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		achievement.ID,
		achievement.Title,
		achievement.Description,
		achievement.Conditions,
		achievement.DiamondReward,
		achievement.StartDate,
		achievement.EndDate,
		achievement.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update achievement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAchievement removes an achievement and its progress rows (cascade).
func (r *PgxAchievementRepository) DeleteAchievement(ctx context.Context, achievementID int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM achievements WHERE id = $1;`, achievementID)
	if err != nil {
		return fmt.Errorf("failed to delete achievement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindProgress retrieves the progress row for one (employee, achievement)
// pair, or ErrNotFound when no progress exists yet.
func (r *PgxAchievementRepository) FindProgress(ctx context.Context, employeeID, achievementID int64) (*domain.AchievementProgress, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM achievement_progress
		WHERE employee_id = $1 AND achievement_id = $2;`, progressColumns)

	m, err := scanProgress(r.Pool.QueryRow(ctx, query, employeeID, achievementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find achievement progress: %w", err)
	}

	p := mapping.ToDomainProgress(*m)
	return &p, nil
}

// ListProgressByEmployee retrieves all progress rows for an employee.
func (r *PgxAchievementRepository) ListProgressByEmployee(ctx context.Context, employeeID int64) ([]domain.AchievementProgress, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM achievement_progress
		WHERE employee_id = $1;`, progressColumns)

	rows, err := r.Pool.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query achievement progress: %w", err)
	}
	defer rows.Close()

	var progress []domain.AchievementProgress
	for rows.Next() {
		m, err := scanProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan progress row: %w", err)
		}
		progress = append(progress, mapping.ToDomainProgress(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating progress rows: %w", err)
	}

	return progress, nil
}

// UpsertProgress creates or updates the progress row for the pair. The
// stored status is derived from the percentage; claimed rows are excluded
// from the update so a paid-out claim can never be reopened.
func (r *PgxAchievementRepository) UpsertProgress(ctx context.Context, employeeID, achievementID int64, percentage int, now time.Time) (*domain.AchievementProgress, error) {
	status := domain.ProgressStatusFor(percentage)

	query := fmt.Sprintf(`
		INSERT INTO achievement_progress (employee_id, achievement_id, progress_percentage, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (employee_id, achievement_id) DO UPDATE
		SET progress_percentage = EXCLUDED.progress_percentage,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at
		WHERE achievement_progress.status <> 'claimed'
		RETURNING %s;`, progressColumns)

	m, err := scanProgress(r.Pool.QueryRow(ctx, query, employeeID, achievementID, percentage, string(status), now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The conflict row exists but is claimed, so the WHERE excluded it.
			return nil, apperrors.NewValidationError("Achievement reward already claimed")
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // FK violation
			return nil, apperrors.NewNotFoundError("Employee or achievement not found")
		}
		return nil, fmt.Errorf("failed to upsert achievement progress: %w", err)
	}

	p := mapping.ToDomainProgress(*m)
	return &p, nil
}

// ClaimReward pays out a completed achievement inside one transaction: the
// progress row is locked, eligibility is re-validated on the locked values,
// then the credit, the claimed status and the audit record commit together.
func (r *PgxAchievementRepository) ClaimReward(ctx context.Context, employeeID, achievementID int64, now time.Time) (int64, time.Time, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, time.Time{}, err
	}
	defer r.Rollback(ctx, tx) // Ignored once the transaction commits

	achievement, err := r.findAchievementInTx(ctx, tx, achievementID)
	if err != nil {
		return 0, time.Time{}, err
	}

	progress, err := r.findProgressForUpdate(ctx, tx, employeeID, achievementID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return 0, time.Time{}, err
	}

	if err := domain.ValidateClaim(*achievement, progress, now); err != nil {
		return 0, time.Time{}, err
	}

	employee, err := r.employeeRepo.FindEmployeeForUpdate(ctx, tx, employeeID)
	if err != nil {
		return 0, time.Time{}, err
	}

	newBalance, err := r.employeeRepo.AddToBalanceInTx(ctx, tx, employeeID, achievement.DiamondReward, now)
	if err != nil {
		return 0, time.Time{}, err
	}

	updateQuery := `
		UPDATE achievement_progress
		SET status = 'claimed', claimed_at = $2, updated_at = $2
		WHERE id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, progress.ID, now); err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to mark progress claimed: %w", err)
	}

	details, err := json.Marshal(domain.ClaimDetails{
		AchievementID:    achievement.ID,
		AchievementTitle: achievement.Title,
		DiamondReward:    achievement.DiamondReward,
	})
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to encode claim details: %w", err)
	}

	record := domain.History{
		EmployeeID:   employeeID,
		EmployeeName: employee.Name,
		Type:         domain.HistoryTypeClaim,
		Action:       domain.HistoryActionClaimed,
		Details:      string(details),
		Diamonds:     achievement.DiamondReward,
		CreatedAt:    now,
	}
	if err := r.historyRepo.AppendHistoryInTx(ctx, tx, record); err != nil {
		return 0, time.Time{}, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, time.Time{}, err
	}

	return newBalance, now, nil
}

func (r *PgxAchievementRepository) findAchievementInTx(ctx context.Context, tx pgx.Tx, achievementID int64) (*domain.Achievement, error) {
	query := fmt.Sprintf(`SELECT %s FROM achievements WHERE id = $1;`, achievementColumns)

	m, err := scanAchievement(tx.QueryRow(ctx, query, achievementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("Achievement not found")
		}
		return nil, fmt.Errorf("failed to find achievement: %w", err)
	}

	a := mapping.ToDomainAchievement(*m)
	return &a, nil
}

// findProgressForUpdate locks the progress row so concurrent claims on the
// same pair serialize; the loser sees status claimed and fails validation.
func (r *PgxAchievementRepository) findProgressForUpdate(ctx context.Context, tx pgx.Tx, employeeID, achievementID int64) (*domain.AchievementProgress, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM achievement_progress
		WHERE employee_id = $1 AND achievement_id = $2
		FOR UPDATE;`, progressColumns)

	m, err := scanProgress(tx.QueryRow(ctx, query, employeeID, achievementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock progress row: %w", err)
	}

	p := mapping.ToDomainProgress(*m)
	return &p, nil
}
