package get_schedule

import (
	"context"

	"github.com/google/uuid"

	"github.com/agendei/agenda-service/internal/domain"
)

type ScheduleService interface {
	GetSchedule(ctx context.Context, establishmentID uuid.UUID, force bool) (*domain.ScheduleConfig, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
