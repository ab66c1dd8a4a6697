package release_slot

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/agendei/agenda-service/internal/api/handlers"
	releaseSlot "github.com/agendei/agenda-service/internal/usecase/release_slot"
)

const (
	msgInvalidID    = "identificador de bloqueio inválido"
	msgHoldNotFound = "bloqueio não encontrado"
	msgNotBlocked   = "o agendamento não é um bloqueio"
)

type Handler struct {
	useCase ReleaseSlotUseCase
	logger  Logger
}

func NewHandler(useCase ReleaseSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/appointments/block/{holdId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	holdID, err := uuid.Parse(vars["holdId"])
	if err != nil {
		h.logger.Warn("DELETE /appointments/block - Invalid hold id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.useCase.Execute(r.Context(), holdID); err != nil {
		switch {
		case errors.Is(err, releaseSlot.ErrHoldNotFound):
			h.logger.Warn("DELETE /appointments/block - Hold not found: %s", holdID)
			handlers.RespondNotFound(w, msgHoldNotFound)

		case errors.Is(err, releaseSlot.ErrNotBlocked):
			h.logger.Warn("DELETE /appointments/block - Not a blocked hold: %s", holdID)
			handlers.RespondError(w, http.StatusConflict, msgNotBlocked)

		case errors.Is(err, releaseSlot.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidID)

		default:
			h.logger.Error("DELETE /appointments/block - Failed to release hold %s: %v", holdID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /appointments/block - Hold released: %s", holdID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
