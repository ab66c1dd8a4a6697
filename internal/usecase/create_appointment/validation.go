package create_appointment

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agendei/agenda-service/internal/calendar"
	"github.com/agendei/agenda-service/internal/domain"
	"github.com/agendei/agenda-service/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.EstablishmentID == uuid.Nil {
		return fmt.Errorf("%w: establishmentID is required", ErrInvalidInput)
	}

	if req.ServiceID == uuid.Nil {
		return fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}

	if req.StartAt.IsZero() {
		return fmt.Errorf("%w: startAt is required", ErrInvalidInput)
	}

	return nil
}

// validateNotInPast проверяет, что время начала не в прошлом
func validateNotInPast(startAt, now time.Time) error {
	if startAt.Before(now) {
		return ErrDateInPast
	}
	return nil
}

// validateWithinWorkingHours проверяет, что интервал целиком внутри рабочих
// часов заведения. Обеденный перерыв не блокирует запись: он только
// подсвечивается в интерфейсе.
func validateWithinWorkingHours(c calendar.Candidate, cfg *domain.ScheduleConfig) error {
	openMin, err := cfg.OpeningTime.Minutes()
	if err != nil {
		openMin, _ = types.TimeString(domain.DefaultOpeningTime).Minutes()
	}
	closeMin, err := cfg.ClosingTime.Minutes()
	if err != nil || closeMin <= openMin {
		closeMin, _ = types.TimeString(domain.DefaultClosingTime).Minutes()
	}

	startMin := c.Start.Hour()*60 + c.Start.Minute()
	endMin := startMin + int(c.End.Sub(c.Start).Minutes())

	if startMin < openMin || endMin > closeMin {
		return fmt.Errorf("%w: %02d:%02d-%02d:%02d is outside %s-%s",
			ErrOutsideWorkingHours,
			startMin/60, startMin%60, endMin/60, endMin%60,
			cfg.OpeningTime, cfg.ClosingTime)
	}
	return nil
}
