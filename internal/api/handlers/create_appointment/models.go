package create_appointment

import (
	"time"

	"github.com/google/uuid"

	createAppointment "github.com/agendei/agenda-service/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	EstablishmentID string  `json:"establishmentId"`
	ClientID        *string `json:"clientId,omitempty"`
	ServiceID       string  `json:"serviceId"`
	StartAt         string  `json:"startAt"` // RFC 3339
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              string  `json:"id"`
	EstablishmentID string  `json:"establishmentId"`
	ClientID        *string `json:"clientId,omitempty"`
	ServiceID       *string `json:"serviceId,omitempty"`
	StartAt         string  `json:"startAt"`
	EndAt           string  `json:"endAt"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	establishmentID, err := uuid.Parse(r.EstablishmentID)
	if err != nil {
		return nil, err
	}

	serviceID, err := uuid.Parse(r.ServiceID)
	if err != nil {
		return nil, err
	}

	var clientID *uuid.UUID
	if r.ClientID != nil {
		parsed, err := uuid.Parse(*r.ClientID)
		if err != nil {
			return nil, err
		}
		clientID = &parsed
	}

	startAt, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		EstablishmentID: establishmentID,
		ClientID:        clientID,
		ServiceID:       serviceID,
		StartAt:         startAt,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	out := &AppointmentResponse{
		ID:              resp.ID.String(),
		EstablishmentID: resp.EstablishmentID.String(),
		StartAt:         resp.StartAt.Format(time.RFC3339),
		EndAt:           resp.EndAt.Format(time.RFC3339),
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		ServicePrice:    resp.ServicePrice,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
	if resp.ClientID != nil {
		s := resp.ClientID.String()
		out.ClientID = &s
	}
	if resp.ServiceID != nil {
		s := resp.ServiceID.String()
		out.ServiceID = &s
	}
	return out
}
