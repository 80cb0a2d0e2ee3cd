package repositories

import (
	"context"
	"time"

	"github.com/perkvault/rewards_backend/internal/core/domain"
)

// PurchaseReader defines read operations for purchase data.
type PurchaseReader interface {
	// FindPurchaseByID retrieves a purchase by primary key.
	FindPurchaseByID(ctx context.Context, purchaseID int64) (*domain.Purchase, error)

	// ListPurchasesByEmployee retrieves an employee's purchases, newest first.
	ListPurchasesByEmployee(ctx context.Context, employeeID int64, limit, offset int) ([]domain.Purchase, error)

	// ListPurchasesByStatus retrieves purchases in a given status, oldest
	// first (approval queue order).
	ListPurchasesByStatus(ctx context.Context, status domain.PurchaseStatus, limit, offset int) ([]domain.Purchase, error)
}

// PurchaseWorkflow defines the balance-mutating purchase operations. Each
// method is one atomic unit of work: every read and write inside it either
// commits together or not at all, and a validation failure leaves balance,
// stock and status untouched.
type PurchaseWorkflow interface {
	// CreatePurchase locks the employee and product rows, validates stock
	// and balance, debits the employee, decrements stock, inserts a pending
	// purchase with name/cost snapshots and appends the audit record. It
	// returns the stored purchase and the employee's new balance.
	CreatePurchase(ctx context.Context, employeeID, productID, quantity int64, now time.Time) (*domain.Purchase, int64, error)

	// ApprovePurchase transitions pending -> accepted. No balance or stock
	// effect; the debit happened at creation.
	ApprovePurchase(ctx context.Context, purchaseID, adminID int64, adminName string, now time.Time) (*domain.Purchase, error)

	// RejectPurchase transitions pending -> rejected, refunds the full
	// snapshot cost and restores the purchased quantity to stock. It
	// returns the stored purchase and the employee's new balance.
	RejectPurchase(ctx context.Context, purchaseID, adminID int64, adminName, reason string, now time.Time) (*domain.Purchase, int64, error)
}

// PurchaseRepositoryFacade combines all purchase repository interfaces.
type PurchaseRepositoryFacade interface {
	PurchaseReader
	PurchaseWorkflow
}

// PurchaseRepositoryWithTx extends the facade with transaction capabilities.
type PurchaseRepositoryWithTx interface {
	PurchaseRepositoryFacade
	TransactionManager
}
