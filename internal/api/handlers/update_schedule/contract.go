package update_schedule

import (
	"context"

	"github.com/agendei/agenda-service/internal/domain"
)

type ScheduleService interface {
	UpdateSchedule(ctx context.Context, cfg *domain.ScheduleConfig) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
