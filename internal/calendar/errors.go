package calendar

import "errors"

var (
	// ErrMalformedSchedule возвращается, когда opening/closing время не парсится.
	// Грид при этом строится на дефолтном окне - ошибка только для логирования.
	ErrMalformedSchedule = errors.New("calendar: malformed schedule config")

	// ErrInvalidInterval возвращается, когда конец интервала не позже начала
	ErrInvalidInterval = errors.New("calendar: interval end must be after start")

	// ErrSlotConflict возвращается, когда кандидат пересекается с существующей записью
	ErrSlotConflict = errors.New("calendar: time slot conflicts with an existing appointment")
)
