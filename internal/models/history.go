package models

import "time"

// History is the database row shape for the history table. Rows are insert
// only; no repository method updates or deletes them.
type History struct {
	ID           int64
	EmployeeID   int64
	EmployeeName string
	Type         string
	Action       string
	Details      string
	Diamonds     int64
	CreatedAt    time.Time
}
