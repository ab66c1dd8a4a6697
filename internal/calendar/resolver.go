package calendar

import (
	"time"

	"github.com/agendei/agenda-service/internal/domain"
	"github.com/agendei/agenda-service/pkg/types"
)

// ResolveClick is the inverse of PlaceForDay: it converts a pointer offset on
// the day timeline back into a calendar timestamp, snapped DOWN to the given
// granularity so a click always proposes a start at or before the pointer.
// granularity <= 0 falls back to the default snapping unit.
func ResolveClick(date time.Time, opening types.TimeString, offsetPixels int, granularity int) time.Time {
	if granularity <= 0 {
		granularity = domain.DefaultSlotGranularityMinutes
	}

	openMinutes, err := opening.Minutes()
	if err != nil {
		// Same fallback as the grid, so the two stay consistent.
		openMinutes, _ = types.TimeString(domain.DefaultOpeningTime).Minutes()
	}

	minutesFromOpening := offsetPixels / PixelsPerMinute
	raw := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location()).
		Add(time.Duration(openMinutes+minutesFromOpening) * time.Minute)

	// Snap down, never up.
	return raw.Add(-time.Duration(raw.Minute()%granularity) * time.Minute)
}

// ResolveDayCell resolves a day-cell selection in week/month view to midnight
// of the clicked day. Coarse on purpose: a time axis only exists in day view,
// the booking workflow prompts for a precise time afterwards.
func ResolveDayCell(day time.Time) time.Time {
	return startOfDay(day)
}
