package create_appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agendei/agenda-service/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	ListWindow(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// EstablishmentRepository интерфейс репозитория заведений
type EstablishmentRepository interface {
	GetService(ctx context.Context, establishmentID, serviceID uuid.UUID) (*domain.Service, error)
}

// ScheduleProvider интерфейс провайдера конфигурации расписания
type ScheduleProvider interface {
	GetSchedule(ctx context.Context, establishmentID uuid.UUID, force bool) (*domain.ScheduleConfig, error)
}

// ChangeNotifier публикует уведомление об изменении агенды заведения
type ChangeNotifier interface {
	NotifyChanged(ctx context.Context, establishmentID uuid.UUID)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
