package services

import (
	"context"

	"github.com/perkvault/rewards_backend/internal/core/domain"
)

// HistorySvcFacade defines read access to the audit trail. History rows are
// written only by the purchase and claim workflows, never directly.
type HistorySvcFacade interface {
	// ListHistory retrieves audit records matching the filter, newest first.
	ListHistory(ctx context.Context, filter domain.HistoryFilter) ([]domain.History, error)

	// ListMyHistory retrieves the employee's own audit records, newest first.
	ListMyHistory(ctx context.Context, employeeID int64, limit int, offset int) ([]domain.History, error)
}
