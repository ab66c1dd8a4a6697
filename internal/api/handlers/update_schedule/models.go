package update_schedule

import (
	"github.com/google/uuid"

	"github.com/agendei/agenda-service/internal/domain"
	"github.com/agendei/agenda-service/pkg/types"
)

// UpdateScheduleRequest HTTP request model
type UpdateScheduleRequest struct {
	OpeningTime            string  `json:"openingTime"` // "HH:MM"
	ClosingTime            string  `json:"closingTime"`
	LunchStart             *string `json:"lunchStart,omitempty"`
	LunchEnd               *string `json:"lunchEnd,omitempty"`
	SlotGranularityMinutes int     `json:"slotGranularityMinutes"`
}

// ToDomain конвертирует HTTP запрос в доменную конфигурацию.
// Форматы времени здесь не валидируются: этим занимается сервис расписаний
func (r *UpdateScheduleRequest) ToDomain(establishmentID uuid.UUID) *domain.ScheduleConfig {
	cfg := &domain.ScheduleConfig{
		EstablishmentID:        establishmentID,
		OpeningTime:            types.TimeString(r.OpeningTime),
		ClosingTime:            types.TimeString(r.ClosingTime),
		SlotGranularityMinutes: r.SlotGranularityMinutes,
	}
	if r.LunchStart != nil {
		ls := types.TimeString(*r.LunchStart)
		cfg.LunchStart = &ls
	}
	if r.LunchEnd != nil {
		le := types.TimeString(*r.LunchEnd)
		cfg.LunchEnd = &le
	}
	return cfg
}
