package get_week_view

import (
	"github.com/agendei/agenda-service/internal/domain"
	"github.com/agendei/agenda-service/internal/service/agenda"
)

// DayCellResponse одна ячейка-день недельной сетки
type DayCellResponse struct {
	Date    string `json:"date"` // YYYY-MM-DD
	Weekday string `json:"weekday"`
	Count   int    `json:"count"`
}

// WeekViewResponse HTTP response model
type WeekViewResponse struct {
	Anchor string            `json:"anchor"`
	Cells  []DayCellResponse `json:"cells"`
}

// FromViewModel конвертирует модель представления в HTTP response
func FromViewModel(m *agenda.WeekViewModel) *WeekViewResponse {
	resp := &WeekViewResponse{
		Anchor: m.Anchor.Format(domain.DateFormat),
		Cells:  make([]DayCellResponse, 0, len(m.Cells)),
	}
	for _, cell := range m.Cells {
		resp.Cells = append(resp.Cells, DayCellResponse{
			Date:    cell.Date.Format(domain.DateFormat),
			Weekday: cell.Date.Weekday().String(),
			Count:   cell.Count,
		})
	}
	return resp
}
