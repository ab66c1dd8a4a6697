package get_week_view

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/agendei/agenda-service/internal/api/handlers"
	"github.com/agendei/agenda-service/internal/domain"
	"github.com/agendei/agenda-service/internal/service/agenda"
)

const (
	msgInvalidEstablishment = "identificador de estabelecimento inválido"
	msgInvalidDate          = "formato de data inválido, esperado YYYY-MM-DD"
	msgFetchFailure         = "não foi possível carregar a agenda"
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

// Handle GET /api/v1/establishments/{establishmentId}/agenda/week?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	establishmentID, err := uuid.Parse(vars["establishmentId"])
	if err != nil {
		h.logger.Warn("GET /agenda/week - Invalid establishment id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEstablishment)
		return
	}

	date := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		date, err = time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /agenda/week - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}

	model, err := h.views.WeekView(r.Context(), establishmentID, date)
	if err != nil {
		if errors.Is(err, agenda.ErrFetchFailure) {
			h.logger.Error("GET /agenda/week - Fetch failure for %s: %v", establishmentID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgFetchFailure)
			return
		}
		h.logger.Error("GET /agenda/week - Failed for %s: %v", establishmentID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromViewModel(model))
}
