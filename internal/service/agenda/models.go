package agenda

import (
	"fmt"
	"time"

	"github.com/agendei/agenda-service/internal/calendar"
)

// ViewMode режим отображения агенды
type ViewMode string

const (
	ViewDay   ViewMode = "day"
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
)

// ParseViewMode валидирует строковый режим отображения
func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(s) {
	case ViewDay, ViewWeek, ViewMonth:
		return ViewMode(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidView, s)
	}
}

// Valid reports whether the mode is one of the known view modes.
func (m ViewMode) Valid() bool {
	switch m {
	case ViewDay, ViewWeek, ViewMonth:
		return true
	}
	return false
}

// Window is the visible time window of the agenda: a view mode anchored on a
// date. Bounds returns the inclusive fetch range on start_at for the store.
type Window struct {
	Mode   ViewMode
	Anchor time.Time
}

// Bounds возвращает границы окна для выборки (включительно по start_at)
func (w Window) Bounds() (from, to time.Time) {
	switch w.Mode {
	case ViewWeek:
		from = startOfWeek(w.Anchor)
		to = endOfDay(from.AddDate(0, 0, 6))
	case ViewMonth:
		from = time.Date(w.Anchor.Year(), w.Anchor.Month(), 1, 0, 0, 0, 0, w.Anchor.Location())
		to = endOfDay(from.AddDate(0, 1, -1))
	default:
		from = startOfDay(w.Anchor)
		to = endOfDay(w.Anchor)
	}
	return from, to
}

// DayViewModel is everything a day view needs to render: the coordinate
// system, the positioned appointments and the lunch overlay, if any.
type DayViewModel struct {
	Date         time.Time
	Grid         calendar.DayGrid
	Appointments []calendar.PlacedAppointment
	LunchBand    *calendar.Band
	// SlotGranularityMinutes is the snap unit for click resolution on this
	// establishment's timeline.
	SlotGranularityMinutes int
}

// WeekViewModel неделя из семи ячеек-дней (воскресенье первым)
type WeekViewModel struct {
	Anchor time.Time
	Cells  []calendar.DayCell
}

// MonthViewModel календарная сетка месяца с ведущими/замыкающими днями
type MonthViewModel struct {
	Anchor time.Time
	Cells  []calendar.DayCell
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

func startOfWeek(t time.Time) time.Time {
	d := startOfDay(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}
