package create_appointment

import "errors"

var (
	// ErrEstablishmentNotFound возвращается, когда заведение не найдено
	ErrEstablishmentNotFound = errors.New("create_appointment: establishment not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrInvalidInterval возвращается при некорректном интервале записи
	ErrInvalidInterval = errors.New("create_appointment: invalid time interval")

	// ErrDateInPast возвращается, когда время начала уже прошло
	ErrDateInPast = errors.New("create_appointment: start time is in the past")

	// ErrOutsideWorkingHours возвращается, когда запись выходит за рабочие часы
	ErrOutsideWorkingHours = errors.New("create_appointment: outside working hours")

	// ErrSlotConflict возвращается, когда интервал пересекается с существующей записью
	ErrSlotConflict = errors.New("create_appointment: time slot conflicts with an existing appointment")

	// ErrSlotNoLongerAvailable возвращается, когда слот занят конкурирующей записью
	// между проверкой и вставкой
	ErrSlotNoLongerAvailable = errors.New("create_appointment: time slot is no longer available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
