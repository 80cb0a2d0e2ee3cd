package services

import (
	"context"

	"github.com/perkvault/rewards_backend/internal/core/domain"
	"github.com/perkvault/rewards_backend/internal/dto"
)

// ProductReaderSvc defines read operations for the reward catalog
type ProductReaderSvc interface {
	// GetProductByID retrieves a specific product by its ID.
	GetProductByID(ctx context.Context, productID int64) (*domain.Product, error)

	// ListProducts retrieves catalog products. Archived products are included
	// only when includeArchived is set.
	ListProducts(ctx context.Context, includeArchived bool, search string, limit int, offset int) ([]domain.Product, error)
}

// ProductWriterSvc defines write operations for the reward catalog
type ProductWriterSvc interface {
	// CreateProduct adds a product to the catalog. Admin only.
	CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*domain.Product, error)

	// UpdateProduct updates catalog fields of a product. Admin only.
	UpdateProduct(ctx context.Context, productID int64, req dto.UpdateProductRequest) (*domain.Product, error)

	// ArchiveProduct hides a product from the catalog without deleting it.
	ArchiveProduct(ctx context.Context, productID int64, archived bool) (*domain.Product, error)

	// DeleteProduct removes a product that has never been purchased.
	DeleteProduct(ctx context.Context, productID int64) error
}

// ProductSvcFacade combines all product-related service interfaces
type ProductSvcFacade interface {
	ProductReaderSvc
	ProductWriterSvc
}
