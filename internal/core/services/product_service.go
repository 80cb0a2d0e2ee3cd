package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/perkvault/rewards_backend/internal/apperrors"
	"github.com/perkvault/rewards_backend/internal/core/domain"
	portsrepo "github.com/perkvault/rewards_backend/internal/core/ports/repositories"
	portssvc "github.com/perkvault/rewards_backend/internal/core/ports/services"
	"github.com/perkvault/rewards_backend/internal/dto"
	"github.com/perkvault/rewards_backend/internal/middleware"
)

// productService manages the reward catalog.
type productService struct {
	productRepo portsrepo.ProductRepositoryFacade
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo portsrepo.ProductRepositoryFacade) portssvc.ProductSvcFacade {
	return &productService{productRepo: productRepo}
}

// Ensure productService implements the portssvc.ProductSvcFacade interface
var _ portssvc.ProductSvcFacade = (*productService)(nil)

// CreateProduct adds a product to the catalog.
func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.NewValidationError("Product name is required")
	}

	now := time.Now().UTC()
	product := domain.Product{
		Name:         req.Name,
		Description:  req.Description,
		DiamondPrice: req.DiamondPrice,
		Quantity:     req.Quantity,
		ImageURL:     req.ImageURL,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	saved, err := s.productRepo.SaveProduct(ctx, product)
	if err != nil {
		logger.Error("Failed to save product", slog.String("name", req.Name), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Product created", slog.Int64("product_id", saved.ID), slog.String("name", saved.Name))
	return saved, nil
}

// GetProductByID retrieves a specific product by its ID.
func (s *productService) GetProductByID(ctx context.Context, productID int64) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Product not found")
		}
		return nil, err
	}
	return product, nil
}

// ListProducts retrieves catalog products.
func (s *productService) ListProducts(ctx context.Context, includeArchived bool, search string, limit int, offset int) ([]domain.Product, error) {
	limit, offset = normalizePage(limit, offset)
	return s.productRepo.ListProducts(ctx, includeArchived, search, limit, offset)
}

// UpdateProduct updates catalog fields of a product.
func (s *productService) UpdateProduct(ctx context.Context, productID int64, req dto.UpdateProductRequest) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Product not found")
		}
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.DiamondPrice != nil {
		product.DiamondPrice = *req.DiamondPrice
	}
	if req.Quantity != nil {
		product.Quantity = *req.Quantity
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}

	product.UpdatedAt = time.Now().UTC()
	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		logger.Error("Failed to update product", slog.Int64("product_id", productID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Product updated", slog.Int64("product_id", productID))
	return product, nil
}

// ArchiveProduct hides a product from the catalog without deleting it.
func (s *productService) ArchiveProduct(ctx context.Context, productID int64, archived bool) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	if err := s.productRepo.SetProductArchived(ctx, productID, archived, now); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Product not found")
		}
		return nil, err
	}

	logger.Info("Product archive flag set", slog.Int64("product_id", productID), slog.Bool("archived", archived))
	return s.productRepo.FindProductByID(ctx, productID)
}

// DeleteProduct removes a product that has never been purchased.
func (s *productService) DeleteProduct(ctx context.Context, productID int64) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.productRepo.DeleteProduct(ctx, productID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("Product not found")
		}
		return err
	}

	logger.Info("Product deleted", slog.Int64("product_id", productID))
	return nil
}
