package schedule

import (
	"context"

	"github.com/google/uuid"

	"github.com/agendei/agenda-service/internal/domain"
)

// EstablishmentRepository интерфейс репозитория заведений
type EstablishmentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Establishment, error)
	UpdateSchedule(ctx context.Context, cfg *domain.ScheduleConfig) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
