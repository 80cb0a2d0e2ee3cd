package dto

import (
	"time"

	"github.com/perkvault/rewards_backend/internal/core/domain"
)

// CreateProductRequest adds a product to the catalog.
type CreateProductRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	Description  string `json:"description" binding:"max=1000"`
	DiamondPrice int64  `json:"diamondPrice" binding:"required,gt=0"`
	Quantity     int64  `json:"quantity" binding:"gte=0"`
	ImageURL     string `json:"imageURL" binding:"omitempty,url"`
}

// UpdateProductRequest updates catalog fields; nil fields are left unchanged.
type UpdateProductRequest struct {
	Name         *string `json:"name,omitempty" binding:"omitempty,max=100"`
	Description  *string `json:"description,omitempty" binding:"omitempty,max=1000"`
	DiamondPrice *int64  `json:"diamondPrice,omitempty" binding:"omitempty,gt=0"`
	Quantity     *int64  `json:"quantity,omitempty" binding:"omitempty,gte=0"`
	ImageURL     *string `json:"imageURL,omitempty" binding:"omitempty,url"`
}

// ArchiveProductRequest toggles catalog visibility.
type ArchiveProductRequest struct {
	Archived *bool `json:"archived" binding:"required"`
}

// ProductResponse is the catalog projection of a product.
type ProductResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	DiamondPrice int64     `json:"diamondPrice"`
	Quantity     int64     `json:"quantity"`
	ImageURL     string    `json:"imageURL,omitempty"`
	IsArchived   bool      `json:"isArchived"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToProductResponse converts a domain.Product.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		DiamondPrice: p.DiamondPrice,
		Quantity:     p.Quantity,
		ImageURL:     p.ImageURL,
		IsArchived:   p.IsArchived,
		CreatedAt:    p.CreatedAt,
	}
}

// ToProductResponses converts a slice of domain products.
func ToProductResponses(ps []domain.Product) []ProductResponse {
	responses := make([]ProductResponse, len(ps))
	for i := range ps {
		responses[i] = ToProductResponse(&ps[i])
	}
	return responses
}
