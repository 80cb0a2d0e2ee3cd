package dto

import (
	"time"

	"github.com/perkvault/rewards_backend/internal/core/domain"
)

// HistoryResponse is the projection of one audit record.
type HistoryResponse struct {
	ID           int64     `json:"id"`
	EmployeeID   int64     `json:"employeeID"`
	EmployeeName string    `json:"employeeName"`
	Type         string    `json:"type"`
	Action       string    `json:"action"`
	Details      string    `json:"details"`
	Diamonds     int64     `json:"diamonds"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToHistoryResponse converts a domain.History.
func ToHistoryResponse(h *domain.History) HistoryResponse {
	return HistoryResponse{
		ID:           h.ID,
		EmployeeID:   h.EmployeeID,
		EmployeeName: h.EmployeeName,
		Type:         string(h.Type),
		Action:       string(h.Action),
		Details:      h.Details,
		Diamonds:     h.Diamonds,
		CreatedAt:    h.CreatedAt,
	}
}

// ToHistoryResponses converts a slice of domain history records.
func ToHistoryResponses(hs []domain.History) []HistoryResponse {
	responses := make([]HistoryResponse, len(hs))
	for i := range hs {
		responses[i] = ToHistoryResponse(&hs[i])
	}
	return responses
}
