package models

import "time"

// InvitationCode is the database row shape for the invitation_codes table.
type InvitationCode struct {
	ID        int64
	Code      string
	Label     *string
	CreatedBy int64
	IsActive  bool
	CreatedAt time.Time
}
