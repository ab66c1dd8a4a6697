package update_schedule

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/agendei/agenda-service/internal/api/handlers"
	scheduleService "github.com/agendei/agenda-service/internal/service/schedule"
)

const (
	msgInvalidRequestBody    = "corpo da requisição inválido"
	msgInvalidEstablishment  = "identificador de estabelecimento inválido"
	msgInvalidSchedule       = "configuração de horário inválida"
	msgEstablishmentNotFound = "estabelecimento não encontrado"
)

type Handler struct {
	schedules ScheduleService
	logger    Logger
}

func NewHandler(schedules ScheduleService, logger Logger) *Handler {
	return &Handler{
		schedules: schedules,
		logger:    logger,
	}
}

// Handle PUT /api/v1/establishments/{establishmentId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	establishmentID, err := uuid.Parse(vars["establishmentId"])
	if err != nil {
		h.logger.Warn("PUT /schedule - Invalid establishment id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEstablishment)
		return
	}

	var req UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.schedules.UpdateSchedule(r.Context(), req.ToDomain(establishmentID)); err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrInvalidSchedule):
			h.logger.Warn("PUT /schedule - Invalid schedule for %s: %v", establishmentID, err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		case errors.Is(err, scheduleService.ErrEstablishmentNotFound):
			h.logger.Warn("PUT /schedule - Establishment not found: %s", establishmentID)
			handlers.RespondNotFound(w, msgEstablishmentNotFound)

		default:
			h.logger.Error("PUT /schedule - Failed for %s: %v", establishmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /schedule - Schedule updated for establishment=%s", establishmentID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
