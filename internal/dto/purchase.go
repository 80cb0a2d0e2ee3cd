package dto

import (
	"time"

	"github.com/perkvault/rewards_backend/internal/core/domain"
)

// CreatePurchaseRequest spends diamonds on a product. A quantity above one
// is a single batched purchase: one purchase row, one aggregate debit.
type CreatePurchaseRequest struct {
	ProductID int64 `json:"productID" binding:"required,gt=0"`
	Quantity  int64 `json:"quantity" binding:"required,gt=0"`
}

// RejectPurchaseRequest carries the mandatory rejection reason.
type RejectPurchaseRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// PurchaseResponse is the projection of a purchase row.
type PurchaseResponse struct {
	ID              int64      `json:"id"`
	EmployeeID      int64      `json:"employeeID"`
	ProductID       int64      `json:"productID"`
	ProductName     string     `json:"productName"`
	Quantity        int64      `json:"quantity"`
	DiamondCost     int64      `json:"diamondCost"`
	Status          string     `json:"status"`
	RejectionReason string     `json:"rejectionReason,omitempty"`
	ApprovedBy      *int64     `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time `json:"approvedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// CreatePurchaseResponse returns the new purchase and the remaining balance.
type CreatePurchaseResponse struct {
	Purchase   PurchaseResponse `json:"purchase"`
	NewBalance int64            `json:"newBalance"`
}

// ApprovePurchaseResponse confirms the pending -> accepted transition.
type ApprovePurchaseResponse struct {
	PurchaseID int64  `json:"purchaseId"`
	Status     string `json:"status"`
}

// RejectPurchaseResponse confirms the rejection and the refund applied.
type RejectPurchaseResponse struct {
	PurchaseID     int64 `json:"purchaseId"`
	RefundedAmount int64 `json:"refundedAmount"`
	NewBalance     int64 `json:"newBalance"`
}

// ToPurchaseResponse converts a domain.Purchase.
func ToPurchaseResponse(p *domain.Purchase) PurchaseResponse {
	return PurchaseResponse{
		ID:              p.ID,
		EmployeeID:      p.EmployeeID,
		ProductID:       p.ProductID,
		ProductName:     p.ProductName,
		Quantity:        p.Quantity,
		DiamondCost:     p.DiamondCost,
		Status:          string(p.Status),
		RejectionReason: p.RejectionReason,
		ApprovedBy:      p.ApprovedBy,
		ApprovedAt:      p.ApprovedAt,
		CreatedAt:       p.CreatedAt,
	}
}

// ToPurchaseResponses converts a slice of domain purchases.
func ToPurchaseResponses(ps []domain.Purchase) []PurchaseResponse {
	responses := make([]PurchaseResponse, len(ps))
	for i := range ps {
		responses[i] = ToPurchaseResponse(&ps[i])
	}
	return responses
}
