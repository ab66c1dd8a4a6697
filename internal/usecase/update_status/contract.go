package update_status

import (
	"context"

	"github.com/google/uuid"

	"github.com/agendei/agenda-service/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AppointmentStatus) error
}

// ChangeNotifier публикует уведомление об изменении агенды заведения
type ChangeNotifier interface {
	NotifyChanged(ctx context.Context, establishmentID uuid.UUID)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
