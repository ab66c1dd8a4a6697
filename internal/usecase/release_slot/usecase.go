package release_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	appointmentRepo "github.com/agendei/agenda-service/internal/infra/storage/appointment"
)

// UseCase use case для снятия блокировки владельцем.
// Блокировки удаляются физически: у них нет истории статусов, в отличие от
// клиентских записей, которые отменяются переходом в cancelled
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

// Execute выполняет use case снятия блокировки
func (uc *UseCase) Execute(ctx context.Context, id uuid.UUID) error {
	uc.logger.Info("ReleaseSlot: hold=%s", id)

	// 1. Валидация входных данных
	if id == uuid.Nil {
		return fmt.Errorf("%w: hold id is required", ErrInvalidInput)
	}

	// 2. Получаем запись и проверяем, что это блокировка
	hold, err := uc.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("ReleaseSlot: hold id=%s not found", id)
			return ErrHoldNotFound
		}
		uc.logger.Error("ReleaseSlot: failed to get hold id=%s: %v", id, err)
		return fmt.Errorf("%w: failed to get hold: %v", ErrInternal, err)
	}

	if !hold.IsBlocked() {
		uc.logger.Warn("ReleaseSlot: appointment id=%s has status %s, refusing to delete", id, hold.Status)
		return ErrNotBlocked
	}

	// 3. Удаляем блокировку
	if err := uc.appointmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrHoldNotFound
		}
		uc.logger.Error("ReleaseSlot: failed to delete hold id=%s: %v", id, err)
		return fmt.Errorf("%w: failed to delete hold: %v", ErrInternal, err)
	}

	// 4. Уведомляем подписчиков агенды
	uc.notifier.NotifyChanged(ctx, hold.EstablishmentID)

	uc.logger.Info("ReleaseSlot: successfully released hold id=%s", id)
	return nil
}
