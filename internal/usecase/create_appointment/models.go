package create_appointment

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на создание записи
type Request struct {
	EstablishmentID uuid.UUID  // ID заведения
	ClientID        *uuid.UUID // ID клиента (опционально для записей от владельца)
	ServiceID       uuid.UUID  // ID услуги
	StartAt         time.Time  // Время начала записи
}

// Response модель ответа с созданной записью
type Response struct {
	ID              uuid.UUID  // ID созданной записи
	EstablishmentID uuid.UUID  // ID заведения
	ClientID        *uuid.UUID // ID клиента
	ServiceID       *uuid.UUID // ID услуги
	StartAt         time.Time  // Время начала
	EndAt           time.Time  // Время конца (начало + длительность услуги)
	Status          string     // Статус записи

	// Денормализованные данные услуги
	ServiceName  string  // Название услуги
	ServicePrice float64 // Цена услуги

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
