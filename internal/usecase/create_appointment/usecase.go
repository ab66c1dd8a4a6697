package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agendei/agenda-service/internal/calendar"
	"github.com/agendei/agenda-service/internal/domain"
	appointmentRepo "github.com/agendei/agenda-service/internal/infra/storage/appointment"
	establishmentRepo "github.com/agendei/agenda-service/internal/infra/storage/establishment"
	scheduleService "github.com/agendei/agenda-service/internal/service/schedule"
	"github.com/agendei/agenda-service/pkg/ptr"
)

// UseCase use case для создания записи клиента
type UseCase struct {
	appointmentRepo AppointmentRepository
	establishments  EstablishmentRepository
	schedules       ScheduleProvider
	notifier        ChangeNotifier
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointments AppointmentRepository,
	establishments EstablishmentRepository,
	schedules ScheduleProvider,
	notifier ChangeNotifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointments,
		establishments:  establishments,
		schedules:       schedules,
		notifier:        notifier,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Длительность и конец интервала всегда выводятся из услуги; финальная
// проверка конфликта выполняется ограничением исключения в БД
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: establishment=%s, service=%s, startAt=%s",
		req.EstablishmentID, req.ServiceID, req.StartAt.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что время начала не в прошлом
	if err := validateNotInPast(req.StartAt, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateAppointment: start time %s is in the past", req.StartAt.Format(time.RFC3339))
		return nil, err
	}

	// 3. Получаем услугу, чтобы вывести интервал записи
	service, err := uc.establishments.GetService(ctx, req.EstablishmentID, req.ServiceID)
	if err != nil {
		if errors.Is(err, establishmentRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	candidate := calendar.CandidateForService(req.StartAt, service)

	// 4. Получаем конфигурацию расписания заведения
	cfg, err := uc.schedules.GetSchedule(ctx, req.EstablishmentID, false)
	if err != nil {
		if errors.Is(err, scheduleService.ErrEstablishmentNotFound) {
			uc.logger.Warn("CreateAppointment: establishment id=%s not found", req.EstablishmentID)
			return nil, ErrEstablishmentNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get schedule for establishment=%s: %v", req.EstablishmentID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	// 5. Проверяем, что интервал внутри рабочих часов
	if err := validateWithinWorkingHours(candidate, cfg); err != nil {
		uc.logger.Warn("CreateAppointment: %v", err)
		return nil, err
	}

	// 6. Получаем занятые записи и проверяем конфликт заранее.
	// Это только ранний отказ для клиента: авторитетная проверка - в БД.
	// Окно расширено назад на максимальную длину блокировки, чтобы захватить
	// интервалы, начавшиеся накануне и переходящие через полночь.
	existing, err := uc.appointmentRepo.ListWindow(ctx, domain.AppointmentsFilter{
		EstablishmentID: req.EstablishmentID,
		From:            ptr.Ptr(candidate.Start.Add(-domain.MaxBlockedHoldHours * time.Hour)),
		To:              ptr.Ptr(candidate.End),
	})
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to list day window: %v", err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}

	if err := calendar.Validate(candidate, existing); err != nil {
		if errors.Is(err, calendar.ErrSlotConflict) {
			uc.logger.Warn("CreateAppointment: slot %s-%s conflicts with an existing appointment",
				candidate.Start.Format(domain.TimeFormat), candidate.End.Format(domain.TimeFormat))
			return nil, ErrSlotConflict
		}
		uc.logger.Warn("CreateAppointment: interval validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}

	// 7. Создаем запись с денормализацией данных услуги
	appointment := &domain.Appointment{
		EstablishmentID: req.EstablishmentID,
		ClientID:        req.ClientID,
		ServiceID:       ptr.Ptr(req.ServiceID),
		StartAt:         candidate.Start,
		EndAt:           candidate.End,
		Status:          domain.StatusScheduled,
		ServiceName:     ptr.Ptr(service.Name),
		ServicePrice:    ptr.Ptr(service.Price),
	}

	created, err := uc.appointmentRepo.Create(ctx, appointment)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotTaken) {
			// Проиграли гонку: кто-то занял слот между проверкой и вставкой
			uc.logger.Warn("CreateAppointment: slot %s taken concurrently", candidate.Start.Format(time.RFC3339))
			return nil, ErrSlotNoLongerAvailable
		}
		uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
		return nil, fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
	}

	// 8. Уведомляем подписчиков агенды
	uc.notifier.NotifyChanged(ctx, req.EstablishmentID)

	uc.logger.Info("CreateAppointment: successfully created appointment id=%s", created.ID)

	return &Response{
		ID:              created.ID,
		EstablishmentID: created.EstablishmentID,
		ClientID:        created.ClientID,
		ServiceID:       created.ServiceID,
		StartAt:         created.StartAt,
		EndAt:           created.EndAt,
		Status:          string(created.Status),
		ServiceName:     service.Name,
		ServicePrice:    service.Price,
		CreatedAt:       created.CreatedAt,
		UpdatedAt:       created.UpdatedAt,
	}, nil
}
