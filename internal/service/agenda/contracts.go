package agenda

import (
	"context"

	"github.com/google/uuid"

	"github.com/agendei/agenda-service/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	ListWindow(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// ScheduleProvider интерфейс провайдера конфигурации расписания
type ScheduleProvider interface {
	GetSchedule(ctx context.Context, establishmentID uuid.UUID, force bool) (*domain.ScheduleConfig, error)
}

// Subscription is a cancellable handle on a change feed.
type Subscription interface {
	Events() <-chan struct{}
	Close() error
}

// ChangeFeed интерфейс фида изменений по заведению
type ChangeFeed interface {
	Subscribe(ctx context.Context, establishmentID uuid.UUID) (Subscription, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
