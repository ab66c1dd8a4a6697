package update_status

import (
	"time"

	updateStatus "github.com/agendei/agenda-service/internal/usecase/update_status"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"` // "completed" | "cancelled"
}

// UpdateStatusResponse HTTP response model
type UpdateStatusResponse struct {
	ID              string `json:"id"`
	EstablishmentID string `json:"establishmentId"`
	StartAt         string `json:"startAt"`
	EndAt           string `json:"endAt"`
	Status          string `json:"status"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateStatus.Response) *UpdateStatusResponse {
	return &UpdateStatusResponse{
		ID:              resp.ID.String(),
		EstablishmentID: resp.EstablishmentID.String(),
		StartAt:         resp.StartAt.Format(time.RFC3339),
		EndAt:           resp.EndAt.Format(time.RFC3339),
		Status:          resp.Status,
	}
}
