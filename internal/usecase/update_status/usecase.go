package update_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	appointmentRepo "github.com/agendei/agenda-service/internal/infra/storage/appointment"
)

// UseCase use case для смены статуса записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	notifier        ChangeNotifier
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(appointments AppointmentRepository, notifier ChangeNotifier, logger Logger) *UseCase {
	return &UseCase{
		appointmentRepo: appointments,
		notifier:        notifier,
		logger:          logger,
	}
}

// Execute выполняет use case смены статуса.
// Недопустимый переход отклоняется до какого-либо обращения на запись:
// состояние записи при отказе не меняется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateStatus: appointment=%s, target=%s", req.AppointmentID, req.Status)

	// 1. Валидация входных данных
	if req.AppointmentID == uuid.Nil {
		return nil, fmt.Errorf("%w: appointmentID is required", ErrInvalidInput)
	}

	target, err := parseTargetStatus(req.Status)
	if err != nil {
		uc.logger.Warn("UpdateStatus: %v", err)
		return nil, err
	}

	// 2. Получаем текущее состояние записи
	appointment, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("UpdateStatus: appointment id=%s not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("UpdateStatus: failed to get appointment id=%s: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	// 3. Проверяем переход по таблице состояний до записи в хранилище
	if appointment.IsBlocked() {
		uc.logger.Warn("UpdateStatus: appointment id=%s is a blocked hold", req.AppointmentID)
		return nil, ErrBlockedHold
	}

	if !appointment.CanTransitionTo(target) {
		uc.logger.Warn("UpdateStatus: transition %s -> %s rejected for appointment id=%s",
			appointment.Status, target, req.AppointmentID)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appointment.Status, target)
	}

	// 4. Применяем переход
	if err := uc.appointmentRepo.UpdateStatus(ctx, req.AppointmentID, target); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("UpdateStatus: failed to update appointment id=%s: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
	}

	// 5. Уведомляем подписчиков агенды: они перечитают своё окно целиком
	uc.notifier.NotifyChanged(ctx, appointment.EstablishmentID)

	uc.logger.Info("UpdateStatus: appointment id=%s is now %s", req.AppointmentID, target)

	return &Response{
		ID:              appointment.ID,
		EstablishmentID: appointment.EstablishmentID,
		StartAt:         appointment.StartAt,
		EndAt:           appointment.EndAt,
		Status:          string(target),
	}, nil
}
