package domain

import "time"

// Timestamps holds the standard creation/update audit pair carried by most entities.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
