package schedule

import "errors"

var (
	// ErrEstablishmentNotFound возвращается, когда заведение не найдено
	ErrEstablishmentNotFound = errors.New("schedule.service: establishment not found")

	// ErrInvalidSchedule возвращается при некорректной конфигурации расписания
	ErrInvalidSchedule = errors.New("schedule.service: invalid schedule config")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule.service: internal error")
)
