package get_day_view

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/agendei/agenda-service/internal/api/handlers"
	"github.com/agendei/agenda-service/internal/domain"
	"github.com/agendei/agenda-service/internal/service/agenda"
	scheduleService "github.com/agendei/agenda-service/internal/service/schedule"
)

const (
	msgInvalidEstablishment  = "identificador de estabelecimento inválido"
	msgInvalidDate           = "formato de data inválido, esperado YYYY-MM-DD"
	msgEstablishmentNotFound = "estabelecimento não encontrado"
	msgFetchFailure          = "não foi possível carregar a agenda"
)

type Handler struct {
	views  AgendaViews
	logger Logger
}

func NewHandler(views AgendaViews, logger Logger) *Handler {
	return &Handler{
		views:  views,
		logger: logger,
	}
}

// Handle GET /api/v1/establishments/{establishmentId}/agenda/day?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	establishmentID, err := uuid.Parse(vars["establishmentId"])
	if err != nil {
		h.logger.Warn("GET /agenda/day - Invalid establishment id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEstablishment)
		return
	}

	date, err := parseDate(r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /agenda/day - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	model, err := h.views.DayView(r.Context(), establishmentID, date)
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrEstablishmentNotFound):
			h.logger.Warn("GET /agenda/day - Establishment not found: %s", establishmentID)
			handlers.RespondNotFound(w, msgEstablishmentNotFound)

		case errors.Is(err, agenda.ErrFetchFailure):
			h.logger.Error("GET /agenda/day - Fetch failure for %s: %v", establishmentID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgFetchFailure)

		default:
			h.logger.Error("GET /agenda/day - Failed for %s: %v", establishmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromViewModel(model))
}

// parseDate парсит дату запроса; пустая строка означает сегодня
func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse(domain.DateFormat, raw)
}
