package services

import (
	"context"

	"github.com/perkvault/rewards_backend/internal/core/domain"
	portsrepo "github.com/perkvault/rewards_backend/internal/core/ports/repositories"
	portssvc "github.com/perkvault/rewards_backend/internal/core/ports/services"
)

// historyService exposes read access to the audit trail. Records are only
// ever written by the purchase and claim workflows.
type historyService struct {
	historyRepo portsrepo.HistoryRepositoryFacade
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(historyRepo portsrepo.HistoryRepositoryFacade) portssvc.HistorySvcFacade {
	return &historyService{historyRepo: historyRepo}
}

// Ensure historyService implements the portssvc.HistorySvcFacade interface
var _ portssvc.HistorySvcFacade = (*historyService)(nil)

// ListHistory retrieves audit records matching the filter, newest first.
func (s *historyService) ListHistory(ctx context.Context, filter domain.HistoryFilter) ([]domain.History, error) {
	filter.Limit, filter.Offset = normalizePage(filter.Limit, filter.Offset)
	return s.historyRepo.ListHistory(ctx, filter)
}

// ListMyHistory retrieves the employee's own audit records, newest first.
func (s *historyService) ListMyHistory(ctx context.Context, employeeID int64, limit int, offset int) ([]domain.History, error) {
	limit, offset = normalizePage(limit, offset)
	filter := domain.HistoryFilter{
		EmployeeID: &employeeID,
		Limit:      limit,
		Offset:     offset,
	}
	return s.historyRepo.ListHistory(ctx, filter)
}
