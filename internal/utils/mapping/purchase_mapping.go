package mapping

import (
	"github.com/perkvault/rewards_backend/internal/core/domain"
	"github.com/perkvault/rewards_backend/internal/models"
)

// ToDomainPurchase converts a model Purchase to a domain Purchase.
func ToDomainPurchase(m models.Purchase) domain.Purchase {
	p := domain.Purchase{
		ID:          m.ID,
		EmployeeID:  m.EmployeeID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Quantity:    m.Quantity,
		DiamondCost: m.DiamondCost,
		Status:      domain.PurchaseStatus(m.Status),
		ApprovedBy:  m.ApprovedBy,
		ApprovedAt:  m.ApprovedAt,
		CreatedAt:   m.CreatedAt,
	}
	if m.RejectionReason != nil {
		p.RejectionReason = *m.RejectionReason
	}
	return p
}

// ToDomainPurchaseSlice converts a slice of model Purchases.
func ToDomainPurchaseSlice(ms []models.Purchase) []domain.Purchase {
	ds := make([]domain.Purchase, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPurchase(m)
	}
	return ds
}
