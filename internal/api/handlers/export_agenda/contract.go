package export_agenda

import (
	"context"

	"github.com/agendei/agenda-service/internal/domain"
)

type AppointmentRepository interface {
	ListWindow(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
