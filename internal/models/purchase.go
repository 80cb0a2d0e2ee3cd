package models

import "time"

// PurchaseStatus mirrors domain.PurchaseStatus at the storage layer.
type PurchaseStatus string

// Purchase is the database row shape for the purchases table. ProductName
// and DiamondCost are creation-time snapshots, never re-joined from products.
type Purchase struct {
	ID              int64
	EmployeeID      int64
	ProductID       int64
	ProductName     string
	Quantity        int64
	DiamondCost     int64
	Status          PurchaseStatus
	RejectionReason *string
	ApprovedBy      *int64
	ApprovedAt      *time.Time
	CreatedAt       time.Time
}
