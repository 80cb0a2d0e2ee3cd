package models

import "time"

// Product is the database row shape for the products table.
type Product struct {
	ID           int64
	Name         string
	Description  string
	DiamondPrice int64
	Quantity     int64
	ImageURL     *string
	IsArchived   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
