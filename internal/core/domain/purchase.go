package domain

import (
	"fmt"
	"time"

	"github.com/perkvault/rewards_backend/internal/apperrors"
)

// PurchaseStatus is the state of a purchase request. Pending is the only
// non-terminal state; accepted and rejected are terminal and never reversed.
type PurchaseStatus string

const (
	PurchaseStatusPending  PurchaseStatus = "pending"
	PurchaseStatusAccepted PurchaseStatus = "accepted"
	PurchaseStatusRejected PurchaseStatus = "rejected"
)

// Purchase is an employee's request to exchange diamonds for stock.
// ProductName and DiamondCost are snapshots taken at creation time: later
// price or name changes on the product must not alter a pending purchase's
// refund amount.
type Purchase struct {
	ID              int64          `json:"id"`
	EmployeeID      int64          `json:"employeeID"`
	ProductID       int64          `json:"productID"`
	ProductName     string         `json:"productName"`
	Quantity        int64          `json:"quantity"`
	DiamondCost     int64          `json:"diamondCost"`
	Status          PurchaseStatus `json:"status"`
	RejectionReason string         `json:"rejectionReason,omitempty"`
	ApprovedBy      *int64         `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time     `json:"approvedAt,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
}

// ValidatePurchase checks a prospective purchase against the current
// employee and product rows and returns the total diamond cost. It must be
// evaluated against rows the caller has locked, so that concurrent
// purchases cannot both observe pre-decrement stock.
func ValidatePurchase(employee Employee, product Product, quantity int64) (int64, error) {
	if quantity <= 0 {
		return 0, apperrors.NewValidationError("Quantity must be greater than 0")
	}
	if product.Quantity < quantity {
		return 0, apperrors.NewValidationError(
			fmt.Sprintf("Insufficient stock. Available: %d, Requested: %d", product.Quantity, quantity))
	}
	totalCost := product.DiamondPrice * quantity
	if employee.DiamondBalance < totalCost {
		return 0, apperrors.NewValidationError(
			fmt.Sprintf("Insufficient balance. Required: %d, Available: %d", totalCost, employee.DiamondBalance))
	}
	return totalCost, nil
}

// RejectionRefund returns the balance credit and the stock restore applied
// when a pending purchase is rejected: the full snapshot cost and the full
// purchased quantity. Partial refunds do not exist.
func (p Purchase) RejectionRefund() (diamonds int64, stock int64) {
	return p.DiamondCost, p.Quantity
}

// EnsurePending guards the terminal transition: approving or rejecting a
// purchase that has already been processed is refused, naming the current
// status.
func (p Purchase) EnsurePending() error {
	if p.Status != PurchaseStatusPending {
		return apperrors.NewValidationError(fmt.Sprintf("Purchase has already been %s", p.Status))
	}
	return nil
}
