package update_status

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agendei/agenda-service/internal/domain"
)

// Request модель запроса на смену статуса записи
type Request struct {
	AppointmentID uuid.UUID // ID записи
	Status        string    // Целевой статус ("completed" или "cancelled")
}

// Response модель ответа с обновленной записью
type Response struct {
	ID              uuid.UUID // ID записи
	EstablishmentID uuid.UUID // ID заведения
	StartAt         time.Time // Время начала
	EndAt           time.Time // Время конца
	Status          string    // Новый статус
}

// parseTargetStatus валидирует целевой статус запроса.
// Целевыми могут быть только терминальные статусы: scheduled задаётся при
// создании, blocked - отдельным путём создания
func parseTargetStatus(s string) (domain.AppointmentStatus, error) {
	switch domain.AppointmentStatus(s) {
	case domain.StatusCompleted, domain.StatusCancelled:
		return domain.AppointmentStatus(s), nil
	case domain.StatusScheduled, domain.StatusBlocked:
		return "", fmt.Errorf("%w: %q is not a valid transition target", ErrInvalidTransition, s)
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}
