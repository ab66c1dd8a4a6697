package calendar

import (
	"time"

	"github.com/agendei/agenda-service/internal/domain"
	"github.com/agendei/agenda-service/pkg/types"
)

// PixelsPerMinute is the height of one minute on the day timeline.
// Placement and click resolution both derive from this constant, so the two
// stay inverses of each other.
const PixelsPerMinute = 2

// DayGrid is the coordinate system of a single day view: one mark per whole
// hour from opening through closing inclusive, and the vertical extent in
// minutes shared by placement and click resolution.
type DayGrid struct {
	Date         time.Time
	HourMarks    []time.Time
	StartMinutes int // minutes since midnight at the top of the grid
	TotalMinutes int
	Fallback     bool // true when the schedule failed to parse
}

// Band is a vertical pixel band on a day grid (lunch overlay etc.).
type Band struct {
	TopOffset int
	Height    int
}

// BuildDayGrid converts opening/closing wall-clock strings into the day
// coordinate system. A malformed schedule never breaks the view: the grid
// falls back to the default window and the parse error is returned alongside
// it for logging.
func BuildDayGrid(date time.Time, opening, closing types.TimeString) (DayGrid, error) {
	var parseErr error

	openMinutes, err := opening.Minutes()
	if err != nil {
		parseErr = ErrMalformedSchedule
		openMinutes, _ = types.TimeString(domain.DefaultOpeningTime).Minutes()
	}

	closeHour, err := closing.Hour()
	if err != nil {
		parseErr = ErrMalformedSchedule
		closeHour, _ = types.TimeString(domain.DefaultClosingTime).Hour()
	}

	if closeHour*60 <= openMinutes {
		// Инвертированное окно тоже считаем сломанной конфигурацией
		parseErr = ErrMalformedSchedule
		openMinutes, _ = types.TimeString(domain.DefaultOpeningTime).Minutes()
		closeHour, _ = types.TimeString(domain.DefaultClosingTime).Hour()
	}

	grid := DayGrid{
		Date:         startOfDay(date),
		StartMinutes: openMinutes,
		TotalMinutes: closeHour*60 - openMinutes,
		Fallback:     parseErr != nil,
	}

	// One mark per whole hour, from the first full hour at or after opening
	// through closing inclusive. A half-hour opening gets no mark above the
	// grid top.
	firstMarkHour := (openMinutes + 59) / 60
	grid.HourMarks = make([]time.Time, 0, closeHour-firstMarkHour+1)
	for h := firstMarkHour; h <= closeHour; h++ {
		grid.HourMarks = append(grid.HourMarks,
			time.Date(date.Year(), date.Month(), date.Day(), h, 0, 0, 0, date.Location()))
	}

	return grid, parseErr
}

// TotalHeight returns the pixel height of the day timeline.
func (g DayGrid) TotalHeight() int {
	return g.TotalMinutes * PixelsPerMinute
}

// HourMarkOffset returns the pixel offset of a mark from the top of the grid.
func (g DayGrid) HourMarkOffset(mark time.Time) int {
	markMinutes := mark.Hour()*60 + mark.Minute()
	return (markMinutes - g.StartMinutes) * PixelsPerMinute
}

// IntervalBand projects a wall-clock interval (e.g. the lunch break) onto the
// grid. Returns nil when the interval is malformed or empty.
func (g DayGrid) IntervalBand(start, end types.TimeString) *Band {
	startMin, err := start.Minutes()
	if err != nil {
		return nil
	}
	endMin, err := end.Minutes()
	if err != nil || endMin <= startMin {
		return nil
	}
	return &Band{
		TopOffset: (startMin - g.StartMinutes) * PixelsPerMinute,
		Height:    (endMin - startMin) * PixelsPerMinute,
	}
}

// DayCell is one day of a week or month grid. At that zoom level only a
// per-day appointment count is computed, no per-minute positioning.
type DayCell struct {
	Date    time.Time
	InMonth bool
	Count   int
}

// BuildWeekGrid partitions the week containing date into 7 Sunday-start day
// cells with per-day appointment counts.
func BuildWeekGrid(date time.Time, appointments []*domain.Appointment) []DayCell {
	start := startOfWeek(date)

	cells := make([]DayCell, 7)
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		cells[i] = DayCell{
			Date:    day,
			InMonth: day.Month() == date.Month(),
			Count:   countOnDay(day, appointments),
		}
	}
	return cells
}

// BuildMonthGrid produces a calendar-aligned month grid including the leading
// and trailing days of adjacent months, so the result is always a whole
// number of Sunday-start weeks.
func BuildMonthGrid(date time.Time, appointments []*domain.Appointment) []DayCell {
	monthStart := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	monthEnd := monthStart.AddDate(0, 1, -1)

	first := startOfWeek(monthStart)
	last := endOfWeek(monthEnd)

	cells := make([]DayCell, 0, 42)
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		cells = append(cells, DayCell{
			Date:    day,
			InMonth: day.Month() == date.Month(),
			Count:   countOnDay(day, appointments),
		})
	}
	return cells
}

func countOnDay(day time.Time, appointments []*domain.Appointment) int {
	count := 0
	for _, app := range appointments {
		if isSameDay(app.StartAt, day) {
			count++
		}
	}
	return count
}

// startOfWeek returns the Sunday starting the week of date.
func startOfWeek(date time.Time) time.Time {
	d := startOfDay(date)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// endOfWeek returns the Saturday ending the week of date.
func endOfWeek(date time.Time) time.Time {
	return startOfWeek(date).AddDate(0, 0, 6)
}

func startOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
