package block_slot

import "errors"

var (
	// ErrInvalidInterval возвращается при некорректном интервале блокировки
	ErrInvalidInterval = errors.New("block_slot: invalid time interval")

	// ErrHoldTooLong возвращается, когда блокировка превышает допустимую длительность
	ErrHoldTooLong = errors.New("block_slot: hold exceeds maximum duration")

	// ErrSlotConflict возвращается, когда интервал пересекается с существующей записью
	ErrSlotConflict = errors.New("block_slot: time slot conflicts with an existing appointment")

	// ErrSlotNoLongerAvailable возвращается, когда слот занят конкурирующей записью
	ErrSlotNoLongerAvailable = errors.New("block_slot: time slot is no longer available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("block_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("block_slot: internal error")
)
