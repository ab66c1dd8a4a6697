package block_slot

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на блокировку интервала владельцем
type Request struct {
	EstablishmentID uuid.UUID // ID заведения
	StartAt         time.Time // Начало блокировки
	EndAt           time.Time // Конец блокировки (указывается явно, услуги нет)
}

// Response модель ответа с созданной блокировкой
type Response struct {
	ID              uuid.UUID // ID блокировки
	EstablishmentID uuid.UUID // ID заведения
	StartAt         time.Time // Начало
	EndAt           time.Time // Конец
	Status          string    // Всегда "blocked"
	CreatedAt       time.Time // Время создания
}
