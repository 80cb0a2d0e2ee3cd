package mapping

import (
	"github.com/perkvault/rewards_backend/internal/core/domain"
	"github.com/perkvault/rewards_backend/internal/models"
)

// ToDomainProduct converts a model Product to a domain Product.
func ToDomainProduct(m models.Product) domain.Product {
	p := domain.Product{
		ID:           m.ID,
		Name:         m.Name,
		Description:  m.Description,
		DiamondPrice: m.DiamondPrice,
		Quantity:     m.Quantity,
		IsArchived:   m.IsArchived,
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
	if m.ImageURL != nil {
		p.ImageURL = *m.ImageURL
	}
	return p
}

// ToModelProduct converts a domain Product to a model Product.
func ToModelProduct(d domain.Product) models.Product {
	m := models.Product{
		ID:           d.ID,
		Name:         d.Name,
		Description:  d.Description,
		DiamondPrice: d.DiamondPrice,
		Quantity:     d.Quantity,
		IsArchived:   d.IsArchived,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	if d.ImageURL != "" {
		url := d.ImageURL
		m.ImageURL = &url
	}
	return m
}

// ToDomainProductSlice converts a slice of model Products.
func ToDomainProductSlice(ms []models.Product) []domain.Product {
	ds := make([]domain.Product, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProduct(m)
	}
	return ds
}
