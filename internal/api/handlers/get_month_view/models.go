package get_month_view

import (
	"github.com/agendei/agenda-service/internal/domain"
	"github.com/agendei/agenda-service/internal/service/agenda"
)

// DayCellResponse одна ячейка календарной сетки месяца
type DayCellResponse struct {
	Date    string `json:"date"` // YYYY-MM-DD
	InMonth bool   `json:"inMonth"`
	Count   int    `json:"count"`
}

// MonthViewResponse HTTP response model
type MonthViewResponse struct {
	Anchor string            `json:"anchor"`
	Cells  []DayCellResponse `json:"cells"`
}

// FromViewModel конвертирует модель представления в HTTP response
func FromViewModel(m *agenda.MonthViewModel) *MonthViewResponse {
	resp := &MonthViewResponse{
		Anchor: m.Anchor.Format(domain.DateFormat),
		Cells:  make([]DayCellResponse, 0, len(m.Cells)),
	}
	for _, cell := range m.Cells {
		resp.Cells = append(resp.Cells, DayCellResponse{
			Date:    cell.Date.Format(domain.DateFormat),
			InMonth: cell.InMonth,
			Count:   cell.Count,
		})
	}
	return resp
}
