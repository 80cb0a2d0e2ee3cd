package services

import (
	"context"

	"github.com/perkvault/rewards_backend/internal/core/domain"
)

// PurchaseReaderSvc defines read operations for purchases
type PurchaseReaderSvc interface {
	// GetPurchaseByID retrieves a specific purchase by its ID.
	GetPurchaseByID(ctx context.Context, purchaseID int64) (*domain.Purchase, error)

	// ListMyPurchases retrieves the employee's purchases, newest first.
	ListMyPurchases(ctx context.Context, employeeID int64, limit int, offset int) ([]domain.Purchase, error)

	// ListPendingPurchases retrieves the approval queue, oldest first.
	ListPendingPurchases(ctx context.Context, limit int, offset int) ([]domain.Purchase, error)
}

// PurchaseWriterSvc defines the purchase lifecycle operations. Each call is
// atomic: balances, stock, the purchase row and its history record move
// together or not at all.
type PurchaseWriterSvc interface {
	// CreatePurchase spends diamonds on a product and returns the pending
	// purchase together with the employee's new balance.
	CreatePurchase(ctx context.Context, employeeID int64, productID int64, quantity int64) (*domain.Purchase, int64, error)

	// ApprovePurchase finalizes a pending purchase. No balance movement.
	ApprovePurchase(ctx context.Context, purchaseID int64, adminID int64) (*domain.Purchase, error)

	// RejectPurchase rejects a pending purchase, refunds the full cost and
	// restocks the product. Returns the purchase and the new balance.
	RejectPurchase(ctx context.Context, purchaseID int64, adminID int64, reason string) (*domain.Purchase, int64, error)
}

// PurchaseSvcFacade combines all purchase-related service interfaces
type PurchaseSvcFacade interface {
	PurchaseReaderSvc
	PurchaseWriterSvc
}
