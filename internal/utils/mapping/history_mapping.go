package mapping

import (
	"github.com/perkvault/rewards_backend/internal/core/domain"
	"github.com/perkvault/rewards_backend/internal/models"
)

// ToDomainHistory converts a model History to a domain History.
func ToDomainHistory(m models.History) domain.History {
	return domain.History{
		ID:           m.ID,
		EmployeeID:   m.EmployeeID,
		EmployeeName: m.EmployeeName,
		Type:         domain.HistoryType(m.Type),
		Action:       domain.HistoryAction(m.Action),
		Details:      m.Details,
		Diamonds:     m.Diamonds,
		CreatedAt:    m.CreatedAt,
	}
}

// ToDomainHistorySlice converts a slice of model History rows.
func ToDomainHistorySlice(ms []models.History) []domain.History {
	ds := make([]domain.History, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainHistory(m)
	}
	return ds
}
