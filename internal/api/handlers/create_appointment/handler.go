package create_appointment

import (
	"errors"
	"net/http"

	"github.com/agendei/agenda-service/internal/api/handlers"
	createAppointment "github.com/agendei/agenda-service/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody    = "corpo da requisição inválido"
	msgInvalidRequestFields  = "identificadores ou horário de início inválidos"
	msgEstablishmentNotFound = "estabelecimento não encontrado"
	msgServiceNotFound       = "serviço não encontrado"
	msgSlotConflict          = "o horário conflita com um agendamento existente"
	msgSlotNoLongerAvailable = "o horário não está mais disponível"
	msgOutsideWorkingHours   = "horário fora do expediente"
	msgDateInPast            = "o horário de início já passou"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestFields)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotConflict):
			h.logger.Warn("POST /appointments - Slot conflict: establishment=%s", req.EstablishmentID)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, createAppointment.ErrSlotNoLongerAvailable):
			h.logger.Warn("POST /appointments - Slot taken concurrently: establishment=%s", req.EstablishmentID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNoLongerAvailable)

		case errors.Is(err, createAppointment.ErrEstablishmentNotFound):
			h.logger.Warn("POST /appointments - Establishment not found: %s", req.EstablishmentID)
			handlers.RespondNotFound(w, msgEstablishmentNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: %s", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrOutsideWorkingHours):
			h.logger.Warn("POST /appointments - Outside working hours: establishment=%s", req.EstablishmentID)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, createAppointment.ErrDateInPast):
			h.logger.Warn("POST /appointments - Start in the past: establishment=%s", req.EstablishmentID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createAppointment.ErrInvalidInterval),
			errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestFields)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: establishment=%s, error=%v",
				req.EstablishmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: id=%s, establishment=%s",
		result.ID, req.EstablishmentID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
