package get_day_view

import (
	"time"

	"github.com/agendei/agenda-service/internal/domain"
	"github.com/agendei/agenda-service/internal/service/agenda"
)

// HourMark одна часовая отметка на сетке дня
type HourMark struct {
	Time      string `json:"time"` // "HH:MM"
	TopOffset int    `json:"topOffset"`
}

// BandResponse вертикальная полоса на сетке (обеденный перерыв)
type BandResponse struct {
	TopOffset int `json:"topOffset"`
	Height    int `json:"height"`
}

// PlacedAppointmentResponse запись, размещённая на сетке дня
type PlacedAppointmentResponse struct {
	ID          string  `json:"id"`
	ClientID    *string `json:"clientId,omitempty"`
	ServiceID   *string `json:"serviceId,omitempty"`
	StartAt     string  `json:"startAt"`
	EndAt       string  `json:"endAt"`
	Status      string  `json:"status"`
	TopOffset   int     `json:"topOffset"`
	Height      int     `json:"height"`
	Title       string  `json:"title"`
	Subtitle    string  `json:"subtitle,omitempty"`
	ShowDetails bool    `json:"showDetails"`
}

// DayViewResponse HTTP response model
type DayViewResponse struct {
	Date                   string                      `json:"date"` // YYYY-MM-DD
	Fallback               bool                        `json:"fallback"`
	TotalHeight            int                         `json:"totalHeight"`
	HourMarks              []HourMark                  `json:"hourMarks"`
	LunchBand              *BandResponse               `json:"lunchBand,omitempty"`
	SlotGranularityMinutes int                         `json:"slotGranularityMinutes"`
	Appointments           []PlacedAppointmentResponse `json:"appointments"`
}

// FromViewModel конвертирует модель представления в HTTP response
func FromViewModel(m *agenda.DayViewModel) *DayViewResponse {
	resp := &DayViewResponse{
		Date:                   m.Date.Format(domain.DateFormat),
		Fallback:               m.Grid.Fallback,
		TotalHeight:            m.Grid.TotalHeight(),
		HourMarks:              make([]HourMark, 0, len(m.Grid.HourMarks)),
		SlotGranularityMinutes: m.SlotGranularityMinutes,
		Appointments:           make([]PlacedAppointmentResponse, 0, len(m.Appointments)),
	}

	for _, mark := range m.Grid.HourMarks {
		resp.HourMarks = append(resp.HourMarks, HourMark{
			Time:      mark.Format(domain.TimeFormat),
			TopOffset: m.Grid.HourMarkOffset(mark),
		})
	}

	if m.LunchBand != nil {
		resp.LunchBand = &BandResponse{
			TopOffset: m.LunchBand.TopOffset,
			Height:    m.LunchBand.Height,
		}
	}

	for _, p := range m.Appointments {
		item := PlacedAppointmentResponse{
			ID:          p.Appointment.ID.String(),
			StartAt:     p.Appointment.StartAt.Format(time.RFC3339),
			EndAt:       p.Appointment.EndAt.Format(time.RFC3339),
			Status:      string(p.Appointment.Status),
			TopOffset:   p.TopOffset,
			Height:      p.Height,
			Title:       p.Title,
			Subtitle:    p.Subtitle,
			ShowDetails: p.ShowDetails,
		}
		if p.Appointment.ClientID != nil {
			s := p.Appointment.ClientID.String()
			item.ClientID = &s
		}
		if p.Appointment.ServiceID != nil {
			s := p.Appointment.ServiceID.String()
			item.ServiceID = &s
		}
		resp.Appointments = append(resp.Appointments, item)
	}

	return resp
}
