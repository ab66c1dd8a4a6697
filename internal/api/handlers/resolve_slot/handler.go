package resolve_slot

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/agendei/agenda-service/internal/api/handlers"
	"github.com/agendei/agenda-service/internal/domain"
	scheduleService "github.com/agendei/agenda-service/internal/service/schedule"
)

const (
	msgInvalidEstablishment  = "identificador de estabelecimento inválido"
	msgInvalidDate           = "formato de data inválido, esperado YYYY-MM-DD"
	msgInvalidOffset         = "deslocamento em pixels inválido"
	msgEstablishmentNotFound = "estabelecimento não encontrado"
)

// ResolveSlotResponse HTTP response model
type ResolveSlotResponse struct {
	StartAt string `json:"startAt"` // RFC 3339, snapped to the slot grid
}

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

// Handle GET /api/v1/establishments/{establishmentId}/agenda/resolve?date=YYYY-MM-DD&offset=<px>
//
// Инвертирует размещение: пиксельная позиция клика на сетке дня превращается
// в привязанное к шагу сетки время начала слота
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	establishmentID, err := uuid.Parse(vars["establishmentId"])
	if err != nil {
		h.logger.Warn("GET /agenda/resolve - Invalid establishment id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEstablishment)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /agenda/resolve - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		h.logger.Warn("GET /agenda/resolve - Invalid offset %q", r.URL.Query().Get("offset"))
		handlers.RespondBadRequest(w, msgInvalidOffset)
		return
	}

	startAt, err := h.views.ResolveClick(r.Context(), establishmentID, date, offset)
	if err != nil {
		if errors.Is(err, scheduleService.ErrEstablishmentNotFound) {
			h.logger.Warn("GET /agenda/resolve - Establishment not found: %s", establishmentID)
			handlers.RespondNotFound(w, msgEstablishmentNotFound)
			return
		}
		h.logger.Error("GET /agenda/resolve - Failed for %s: %v", establishmentID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ResolveSlotResponse{
		StartAt: startAt.Format(time.RFC3339),
	})
}
