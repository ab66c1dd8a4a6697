package get_week_view

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agendei/agenda-service/internal/service/agenda"
)

type AgendaViews interface {
	WeekView(ctx context.Context, establishmentID uuid.UUID, date time.Time) (*agenda.WeekViewModel, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
