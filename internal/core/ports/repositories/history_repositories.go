package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/perkvault/rewards_backend/internal/core/domain"
)

// HistoryRecorder appends one immutable record per state-changing event.
// AppendHistoryInTx takes the workflow's transaction so that "debit implies
// audit record" holds atomically; there is no update or delete counterpart.
type HistoryRecorder interface {
	AppendHistoryInTx(ctx context.Context, tx pgx.Tx, record domain.History) error
}

// HistoryReader defines read operations over the audit trail.
type HistoryReader interface {
	// ListHistory retrieves records matching the filter, newest first.
	ListHistory(ctx context.Context, filter domain.HistoryFilter) ([]domain.History, error)
}

// HistoryRepositoryFacade combines the history repository interfaces.
type HistoryRepositoryFacade interface {
	HistoryRecorder
	HistoryReader
}
