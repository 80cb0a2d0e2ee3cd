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

type PgxProductRepository struct {
	pool *pgxpool.Pool
}

// newPgxProductRepository creates a new repository for catalog data.
func newPgxProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepositoryFacade {
	return &PgxProductRepository{pool: pool}
}

// Ensure PgxProductRepository implements portsrepo.ProductRepositoryFacade
var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

const productColumns = `id, name, description, diamond_price, quantity, image_url, is_archived, created_at, updated_at`

func scanProduct(row pgx.Row) (*models.Product, error) {
	var m models.Product
	err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Description,
		&m.DiamondPrice,
		&m.Quantity,
		&m.ImageURL,
		&m.IsArchived,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveProduct inserts a new product and returns the stored row.
func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	m := mapping.ToModelProduct(product)

	query := `
		INSERT INTO products (name, description, diamond_price, quantity, image_url, is_archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at;
	`
	err := r.pool.QueryRow(ctx, query,
		m.Name,
		m.Description,
		m.DiamondPrice,
		m.Quantity,
		m.ImageURL,
		m.IsArchived,
		m.CreatedAt,
		m.UpdatedAt,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert product", err)
	}

	saved := mapping.ToDomainProduct(m)
	return &saved, nil
}

// FindProductByID retrieves a product by primary key.
func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID int64) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1;`, productColumns)

	m, err := scanProduct(r.pool.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	p := mapping.ToDomainProduct(*m)
	return &p, nil
}

// ListProducts retrieves products ordered by name. Archived products are
// included only when includeArchived is set; search filters by name.
func (r *PgxProductRepository) ListProducts(ctx context.Context, includeArchived bool, search string, limit, offset int) ([]domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE 1=1`, productColumns)
	args := []any{}
	argIdx := 1

	if !includeArchived {
		query += ` AND is_archived = FALSE`
	}
	if search != "" {
		query += fmt.Sprintf(` AND name ILIKE $%d`, argIdx)
		args = append(args, "%"+search+"%")
		argIdx++
	}
	query += fmt.Sprintf(` ORDER BY name ASC LIMIT $%d OFFSET $%d;`, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var ms []models.Product
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}

	return mapping.ToDomainProductSlice(ms), nil
}

// UpdateProduct updates the mutable catalog fields.
func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	m := mapping.ToModelProduct(product)

	query := `
		UPDATE products
		SET name = $2, description = $3, diamond_price = $4, quantity = $5, image_url = $6, updated_at = $7
		WHERE id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		m.ID,
		m.Name,
		m.Description,
		m.DiamondPrice,
		m.Quantity,
		m.ImageURL,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetProductArchived toggles the archived flag.
func (r *PgxProductRepository) SetProductArchived(ctx context.Context, productID int64, archived bool, now time.Time) error {
	query := `UPDATE products SET is_archived = $2, updated_at = $3 WHERE id = $1;`

	tag, err := r.pool.Exec(ctx, query, productID, archived, now)
	if err != nil {
		return fmt.Errorf("failed to set product archived flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteProduct removes a product that has never been purchased. Products
// referenced by purchases hit the FK and must be archived instead.
func (r *PgxProductRepository) DeleteProduct(ctx context.Context, productID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1;`, productID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // FK violation
			return apperrors.NewValidationError("product has purchases and cannot be deleted; archive it instead")
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindProductForUpdate loads a product row with FOR UPDATE.
// Must be called within a transaction.
func (r *PgxProductRepository) FindProductForUpdate(ctx context.Context, tx pgx.Tx, productID int64) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1 FOR UPDATE;`, productColumns)

	m, err := scanProduct(tx.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("Product not found")
		}
		return nil, fmt.Errorf("failed to lock product row: %w", err)
	}

	p := mapping.ToDomainProduct(*m)
	return &p, nil
}

// AdjustQuantityInTx applies a signed stock delta.
// Must be called with the row already locked via FindProductForUpdate.
func (r *PgxProductRepository) AdjustQuantityInTx(ctx context.Context, tx pgx.Tx, productID int64, delta int64, now time.Time) error {
	query := `
		UPDATE products
		SET quantity = quantity + $2, updated_at = $3
		WHERE id = $1;
	`
	tag, err := tx.Exec(ctx, query, productID, delta, now)
	if err != nil {
		return fmt.Errorf("failed to adjust product quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("Product not found")
	}
	return nil
}
