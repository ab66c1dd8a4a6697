package block_slot

import (
	"time"

	"github.com/google/uuid"

	blockSlot "github.com/agendei/agenda-service/internal/usecase/block_slot"
)

// BlockSlotRequest HTTP request model
type BlockSlotRequest struct {
	EstablishmentID string `json:"establishmentId"`
	StartAt         string `json:"startAt"` // RFC 3339
	EndAt           string `json:"endAt"`   // RFC 3339
}

// BlockSlotResponse HTTP response model
type BlockSlotResponse struct {
	ID              string `json:"id"`
	EstablishmentID string `json:"establishmentId"`
	StartAt         string `json:"startAt"`
	EndAt           string `json:"endAt"`
	Status          string `json:"status"`
	CreatedAt       string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BlockSlotRequest) ToUseCaseRequest() (*blockSlot.Request, error) {
	establishmentID, err := uuid.Parse(r.EstablishmentID)
	if err != nil {
		return nil, err
	}

	startAt, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return nil, err
	}

	endAt, err := time.Parse(time.RFC3339, r.EndAt)
	if err != nil {
		return nil, err
	}

	return &blockSlot.Request{
		EstablishmentID: establishmentID,
		StartAt:         startAt,
		EndAt:           endAt,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *blockSlot.Response) *BlockSlotResponse {
	return &BlockSlotResponse{
		ID:              resp.ID.String(),
		EstablishmentID: resp.EstablishmentID.String(),
		StartAt:         resp.StartAt.Format(time.RFC3339),
		EndAt:           resp.EndAt.Format(time.RFC3339),
		Status:          resp.Status,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
