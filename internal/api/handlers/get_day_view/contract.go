package get_day_view

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agendei/agenda-service/internal/service/agenda"
)

type AgendaViews interface {
	DayView(ctx context.Context, establishmentID uuid.UUID, date time.Time) (*agenda.DayViewModel, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
