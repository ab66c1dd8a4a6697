package profileservice

import "errors"

var (
	// ErrProfileNotFound возвращается, когда профиль не найден
	ErrProfileNotFound = errors.New("profileservice: profile not found")

	// ErrResolutionTimeout is returned when identity resolution exceeds the
	// configured bound. Callers surface it with an explicit retry action,
	// distinct from a generic failure.
	ErrResolutionTimeout = errors.New("profileservice: identity resolution timed out")

	// ErrInvalidResponse возвращается при некорректном ответе сервиса
	ErrInvalidResponse = errors.New("profileservice: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("profileservice: internal error")
)
