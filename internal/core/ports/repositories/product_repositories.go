package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/perkvault/rewards_backend/internal/core/domain"
)

// ProductReader defines read operations for the product catalog.
type ProductReader interface {
	// FindProductByID retrieves a product by primary key.
	FindProductByID(ctx context.Context, productID int64) (*domain.Product, error)

	// ListProducts retrieves products ordered by name. Archived products are
	// included only when includeArchived is set; search filters by name.
	ListProducts(ctx context.Context, includeArchived bool, search string, limit, offset int) ([]domain.Product, error)
}

// ProductWriter defines write operations for the product catalog.
type ProductWriter interface {
	// SaveProduct inserts a new product and returns the stored row.
	SaveProduct(ctx context.Context, product domain.Product) (*domain.Product, error)

	// UpdateProduct updates the mutable catalog fields.
	UpdateProduct(ctx context.Context, product domain.Product) error

	// SetProductArchived toggles the archived flag.
	SetProductArchived(ctx context.Context, productID int64, archived bool, now time.Time) error

	// DeleteProduct removes a product that has never been purchased.
	DeleteProduct(ctx context.Context, productID int64) error
}

// ProductStocker exposes the in-transaction stock primitives used by the
// purchase workflow.
type ProductStocker interface {
	// FindProductForUpdate loads a product row with FOR UPDATE.
	FindProductForUpdate(ctx context.Context, tx pgx.Tx, productID int64) (*domain.Product, error)

	// AdjustQuantityInTx applies a signed stock delta.
	AdjustQuantityInTx(ctx context.Context, tx pgx.Tx, productID int64, delta int64, now time.Time) error
}

// ProductRepositoryFacade combines all product repository interfaces.
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
	ProductStocker
}
