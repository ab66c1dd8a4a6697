package calendar

import (
	"fmt"
	"sort"

	"github.com/agendei/agenda-service/internal/domain"
)

const (
	// MinAppointmentHeight is a presentation floor so very short services
	// remain clickable. It never changes the underlying data.
	MinAppointmentHeight = 28

	// detailHeightThreshold: below this height only the title line fits,
	// above it a secondary line (service + time range) is shown too.
	detailHeightThreshold = 30
)

const (
	titleBlocked       = "Blocked"
	titleUnnamedClient = "Unnamed client"
)

// PlacedAppointment is an appointment positioned on a day grid.
type PlacedAppointment struct {
	Appointment *domain.Appointment

	TopOffset int // pixels from the top of the grid
	Height    int // pixels, after the presentation floor

	// Rendering policy, reproduced here for layout parity.
	Title       string
	Subtitle    string
	ShowDetails bool
}

// PlaceForDay maps appointments onto the day grid the view was built with,
// so offsets and hour marks share one coordinate system. Visibility is
// anchored by StartAt falling within the grid's day - an interval straddling
// midnight is never split across days. Overlapping records are placed as-is,
// including illegally overlapping ones (e.g. from a race): a human should see
// the conflict, not have it hidden.
func PlaceForDay(grid DayGrid, appointments []*domain.Appointment) []PlacedAppointment {
	placed := make([]PlacedAppointment, 0, len(appointments))
	for _, app := range appointments {
		if !isSameDay(app.StartAt, grid.Date) {
			continue
		}

		startMinutes := app.StartAt.Hour()*60 + app.StartAt.Minute()
		top := (startMinutes - grid.StartMinutes) * PixelsPerMinute
		height := app.DurationMinutes() * PixelsPerMinute
		if height < MinAppointmentHeight {
			height = MinAppointmentHeight
		}

		p := PlacedAppointment{
			Appointment: app,
			TopOffset:   top,
			Height:      height,
			Title:       titleFor(app),
			ShowDetails: height > detailHeightThreshold,
		}
		if p.ShowDetails && !app.IsBlocked() {
			p.Subtitle = subtitleFor(app)
		}
		placed = append(placed, p)
	}

	// Later-starting entries render on top; ties keep creation order so the
	// layout is stable across refreshes.
	sort.SliceStable(placed, func(i, j int) bool {
		a, b := placed[i].Appointment, placed[j].Appointment
		if !a.StartAt.Equal(b.StartAt) {
			return a.StartAt.Before(b.StartAt)
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})

	return placed
}

func titleFor(app *domain.Appointment) string {
	if app.IsBlocked() {
		return titleBlocked
	}
	if app.ClientName != nil && *app.ClientName != "" {
		return *app.ClientName
	}
	return titleUnnamedClient
}

// subtitleFor renders the secondary line: "Corte • 10:00 - 10:30".
func subtitleFor(app *domain.Appointment) string {
	name := ""
	if app.ServiceName != nil {
		name = *app.ServiceName
	}
	return fmt.Sprintf("%s • %s - %s",
		name,
		app.StartAt.Format(domain.TimeFormat),
		app.EndAt.Format(domain.TimeFormat),
	)
}
