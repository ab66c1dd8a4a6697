package block_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agendei/agenda-service/internal/calendar"
	"github.com/agendei/agenda-service/internal/domain"
	appointmentRepo "github.com/agendei/agenda-service/internal/infra/storage/appointment"
	"github.com/agendei/agenda-service/pkg/ptr"
)

// UseCase use case для блокировки интервала владельцем заведения.
// Блокировка занимает время в инварианте непересечения, но не имеет ни
// клиента, ни услуги; интервал задаётся явно, а не через длительность услуги
type UseCase struct {
	appointmentRepo AppointmentRepository
	notifier        ChangeNotifier
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(appointments AppointmentRepository, notifier ChangeNotifier, logger Logger) *UseCase {
	return &UseCase{
		appointmentRepo: appointments,
		notifier:        notifier,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case блокировки интервала
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BlockSlot: establishment=%s, start=%s, end=%s",
		req.EstablishmentID, req.StartAt.Format(time.RFC3339), req.EndAt.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("BlockSlot: validation failed: %v", err)
		return nil, err
	}

	candidate := calendar.Candidate{Start: req.StartAt, End: req.EndAt}

	// 2. Ранняя проверка конфликта по занятым записям. Окно расширено назад
	// на максимальную длину блокировки, чтобы захватить интервалы,
	// начавшиеся накануне и переходящие через полночь
	existing, err := uc.appointmentRepo.ListWindow(ctx, domain.AppointmentsFilter{
		EstablishmentID: req.EstablishmentID,
		From:            ptr.Ptr(candidate.Start.Add(-domain.MaxBlockedHoldHours * time.Hour)),
		To:              ptr.Ptr(candidate.End),
	})
	if err != nil {
		uc.logger.Error("BlockSlot: failed to list day window: %v", err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}

	if err := calendar.Validate(candidate, existing); err != nil {
		if errors.Is(err, calendar.ErrSlotConflict) {
			uc.logger.Warn("BlockSlot: interval conflicts with an existing appointment")
			return nil, ErrSlotConflict
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}

	// 3. Создаем блокировку: клиент и услуга отсутствуют
	hold := &domain.Appointment{
		EstablishmentID: req.EstablishmentID,
		StartAt:         req.StartAt,
		EndAt:           req.EndAt,
		Status:          domain.StatusBlocked,
	}

	created, err := uc.appointmentRepo.Create(ctx, hold)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotTaken) {
			uc.logger.Warn("BlockSlot: slot %s taken concurrently", req.StartAt.Format(time.RFC3339))
			return nil, ErrSlotNoLongerAvailable
		}
		uc.logger.Error("BlockSlot: failed to create hold: %v", err)
		return nil, fmt.Errorf("%w: failed to create hold: %v", ErrInternal, err)
	}

	// 4. Уведомляем подписчиков агенды
	uc.notifier.NotifyChanged(ctx, req.EstablishmentID)

	uc.logger.Info("BlockSlot: successfully created hold id=%s", created.ID)

	return &Response{
		ID:              created.ID,
		EstablishmentID: created.EstablishmentID,
		StartAt:         created.StartAt,
		EndAt:           created.EndAt,
		Status:          string(created.Status),
		CreatedAt:       created.CreatedAt,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if req.EstablishmentID == uuid.Nil {
		return fmt.Errorf("%w: establishmentID is required", ErrInvalidInput)
	}

	if req.StartAt.IsZero() || req.EndAt.IsZero() {
		return fmt.Errorf("%w: startAt and endAt are required", ErrInvalidInput)
	}

	if !req.EndAt.After(req.StartAt) {
		return ErrInvalidInterval
	}

	if req.EndAt.Before(now) {
		return fmt.Errorf("%w: interval is entirely in the past", ErrInvalidInput)
	}

	if req.EndAt.Sub(req.StartAt) > time.Duration(domain.MaxBlockedHoldHours)*time.Hour {
		return fmt.Errorf("%w: longer than %d hours", ErrHoldTooLong, domain.MaxBlockedHoldHours)
	}

	return nil
}
