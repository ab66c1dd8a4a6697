package export_agenda

import (
	"fmt"
	"net/http"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/agendei/agenda-service/internal/api/handlers"
	"github.com/agendei/agenda-service/internal/domain"
	"github.com/agendei/agenda-service/pkg/ptr"
)

const (
	msgInvalidEstablishment = "identificador de estabelecimento inválido"
	msgInvalidRange         = "intervalo de datas inválido, esperado YYYY-MM-DD"

	summaryBlocked   = "Bloqueado"
	summaryUnnamed   = "Agendamento"
	descriptionPrice = "Serviço: %s (R$ %.2f)"
)

type Handler struct {
	appointments AppointmentRepository
	logger       Logger
}

func NewHandler(appointments AppointmentRepository, logger Logger) *Handler {
	return &Handler{
		appointments: appointments,
		logger:       logger,
	}
}

// Handle GET /api/v1/establishments/{establishmentId}/agenda/export.ics?from=YYYY-MM-DD&to=YYYY-MM-DD
//
// Экспортирует агенду заведения в формате iCalendar. Отменённые записи не
// попадают в выгрузку; блокировки экспортируются как занятое время
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	establishmentID, err := uuid.Parse(vars["establishmentId"])
	if err != nil {
		h.logger.Warn("GET /agenda/export.ics - Invalid establishment id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEstablishment)
		return
	}

	from, to, err := parseRange(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		h.logger.Warn("GET /agenda/export.ics - Invalid range: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	apps, err := h.appointments.ListWindow(r.Context(), domain.AppointmentsFilter{
		EstablishmentID: establishmentID,
		From:            ptr.Ptr(from),
		To:              ptr.Ptr(to),
	})
	if err != nil {
		h.logger.Error("GET /agenda/export.ics - Failed to list window for %s: %v", establishmentID, err)
		handlers.RespondInternalError(w)
		return
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//agendei//agenda-service//PT")

	now := time.Now().UTC()
	for _, app := range apps {
		event := cal.AddEvent(app.ID.String())
		event.SetDtStampTime(now)
		event.SetStartAt(app.StartAt)
		event.SetEndAt(app.EndAt)
		event.SetSummary(summaryFor(app))
		if app.ServiceName != nil && app.ServicePrice != nil {
			event.SetDescription(fmt.Sprintf(descriptionPrice, *app.ServiceName, *app.ServicePrice))
		}
	}

	h.logger.Info("GET /agenda/export.ics - Exported %d events for establishment=%s", len(apps), establishmentID)

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="agenda.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(cal.Serialize()))
}

func summaryFor(app *domain.Appointment) string {
	if app.IsBlocked() {
		return summaryBlocked
	}
	if app.ClientName != nil && *app.ClientName != "" {
		return *app.ClientName
	}
	return summaryUnnamed
}

// parseRange парсит границы выгрузки; по умолчанию текущий месяц
func parseRange(rawFrom, rawTo string) (time.Time, time.Time, error) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)

	var err error
	if rawFrom != "" {
		from, err = time.Parse(domain.DateFormat, rawFrom)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if rawTo != "" {
		to, err = time.Parse(domain.DateFormat, rawTo)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("to %s before from %s", rawTo, rawFrom)
	}
	return from, to, nil
}
