package get_schedule

import (
	"github.com/agendei/agenda-service/internal/domain"
)

// ScheduleResponse HTTP response model
type ScheduleResponse struct {
	EstablishmentID        string  `json:"establishmentId"`
	OpeningTime            string  `json:"openingTime"` // "HH:MM"
	ClosingTime            string  `json:"closingTime"`
	LunchStart             *string `json:"lunchStart,omitempty"`
	LunchEnd               *string `json:"lunchEnd,omitempty"`
	SlotGranularityMinutes int     `json:"slotGranularityMinutes"`
}

// FromDomain конвертирует доменную конфигурацию в HTTP response
func FromDomain(cfg *domain.ScheduleConfig) *ScheduleResponse {
	resp := &ScheduleResponse{
		EstablishmentID:        cfg.EstablishmentID.String(),
		OpeningTime:            cfg.OpeningTime.String(),
		ClosingTime:            cfg.ClosingTime.String(),
		SlotGranularityMinutes: cfg.Granularity(),
	}
	if cfg.LunchStart != nil {
		s := cfg.LunchStart.String()
		resp.LunchStart = &s
	}
	if cfg.LunchEnd != nil {
		s := cfg.LunchEnd.String()
		resp.LunchEnd = &s
	}
	return resp
}
