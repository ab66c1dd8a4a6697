package agenda

import "errors"

var (
	// ErrFetchFailure is returned when a window fetch fails. Already
	// displayed data is kept: stale-but-visible beats blank.
	ErrFetchFailure = errors.New("agenda: failed to fetch appointments, showing last known state")

	// ErrNotOpen возвращается при обращении к контроллеру до Open
	ErrNotOpen = errors.New("agenda: controller is not open")

	// ErrInvalidView возвращается при неизвестном режиме отображения
	ErrInvalidView = errors.New("agenda: invalid view mode")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("agenda: internal error")
)
