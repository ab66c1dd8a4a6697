package get_schedule

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/agendei/agenda-service/internal/api/handlers"
	scheduleService "github.com/agendei/agenda-service/internal/service/schedule"
)

const (
	msgInvalidEstablishment  = "identificador de estabelecimento inválido"
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

// Handle GET /api/v1/establishments/{establishmentId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	establishmentID, err := uuid.Parse(vars["establishmentId"])
	if err != nil {
		h.logger.Warn("GET /schedule - Invalid establishment id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEstablishment)
		return
	}

	// force=true обходит мемоизацию, когда клиенту нужно свежее состояние
	force := r.URL.Query().Get("force") == "true"

	cfg, err := h.schedules.GetSchedule(r.Context(), establishmentID, force)
	if err != nil {
		if errors.Is(err, scheduleService.ErrEstablishmentNotFound) {
			h.logger.Warn("GET /schedule - Establishment not found: %s", establishmentID)
			handlers.RespondNotFound(w, msgEstablishmentNotFound)
			return
		}
		h.logger.Error("GET /schedule - Failed for %s: %v", establishmentID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(cfg))
}
