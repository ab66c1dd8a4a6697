package release_slot

import "errors"

var (
	// ErrHoldNotFound возвращается, когда блокировка не найдена
	ErrHoldNotFound = errors.New("release_slot: hold not found")

	// ErrNotBlocked возвращается при попытке удалить запись, не являющуюся блокировкой
	ErrNotBlocked = errors.New("release_slot: appointment is not a blocked hold")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("release_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("release_slot: internal error")
)
