package domain

// Product is a catalog item purchasable with diamonds. Quantity is the
// available, unreserved stock; it is decremented at purchase creation and
// restored when a purchase is rejected. Archived products stay in the store
// so that historical purchases keep a valid reference, but are hidden from
// non-admin listings.
type Product struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	DiamondPrice int64  `json:"diamondPrice"`
	Quantity     int64  `json:"quantity"`
	ImageURL     string `json:"imageURL,omitempty"`
	IsArchived   bool   `json:"isArchived"`
	Timestamps
}
