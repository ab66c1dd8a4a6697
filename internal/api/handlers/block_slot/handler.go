package block_slot

import (
	"errors"
	"net/http"

	"github.com/agendei/agenda-service/internal/api/handlers"
	blockSlot "github.com/agendei/agenda-service/internal/usecase/block_slot"
)

const (
	msgInvalidRequestBody    = "corpo da requisição inválido"
	msgInvalidRequestFields  = "identificadores ou intervalo inválidos"
	msgSlotConflict          = "o intervalo conflita com um agendamento existente"
	msgSlotNoLongerAvailable = "o intervalo não está mais disponível"
	msgHoldTooLong           = "bloqueio excede a duração máxima permitida"
)

type Handler struct {
	useCase BlockSlotUseCase
	logger  Logger
}

func NewHandler(useCase BlockSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/block
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BlockSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/block - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments/block - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestFields)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, blockSlot.ErrSlotConflict):
			h.logger.Warn("POST /appointments/block - Conflict: establishment=%s", req.EstablishmentID)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, blockSlot.ErrSlotNoLongerAvailable):
			h.logger.Warn("POST /appointments/block - Slot taken concurrently: establishment=%s", req.EstablishmentID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNoLongerAvailable)

		case errors.Is(err, blockSlot.ErrHoldTooLong):
			h.logger.Warn("POST /appointments/block - Hold too long: establishment=%s", req.EstablishmentID)
			handlers.RespondBadRequest(w, msgHoldTooLong)

		case errors.Is(err, blockSlot.ErrInvalidInterval),
			errors.Is(err, blockSlot.ErrInvalidInput):
			h.logger.Warn("POST /appointments/block - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestFields)

		default:
			h.logger.Error("POST /appointments/block - Failed to block slot: establishment=%s, error=%v",
				req.EstablishmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/block - Hold created: id=%s, establishment=%s",
		result.ID, req.EstablishmentID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
