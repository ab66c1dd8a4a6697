package agenda

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agendei/agenda-service/internal/calendar"
	"github.com/agendei/agenda-service/internal/domain"
	"github.com/agendei/agenda-service/pkg/ptr"
)

// Views assembles render-ready view models for an establishment's agenda.
// Stateless: every call fetches the window it needs and positions it on the
// grid. The stateful window ownership lives in Controller.
type Views struct {
	repo      AppointmentRepository
	schedules ScheduleProvider
	logger    Logger
}

// NewViews создает новый экземпляр сборщика представлений
func NewViews(repo AppointmentRepository, schedules ScheduleProvider, logger Logger) *Views {
	return &Views{repo: repo, schedules: schedules, logger: logger}
}

// DayView builds the day timeline for one establishment and date. A
// malformed schedule config is logged and recovered with the default window,
// never surfaced as a failure.
func (v *Views) DayView(ctx context.Context, establishmentID uuid.UUID, date time.Time) (*DayViewModel, error) {
	cfg, err := v.schedules.GetSchedule(ctx, establishmentID, false)
	if err != nil {
		return nil, err
	}

	apps, err := v.fetchWindow(ctx, establishmentID, Window{Mode: ViewDay, Anchor: date})
	if err != nil {
		return nil, err
	}

	grid, gridErr := calendar.BuildDayGrid(date, cfg.OpeningTime, cfg.ClosingTime)
	if gridErr != nil {
		v.logger.Warn("DayView: malformed schedule for establishment=%s (%q-%q), using default window",
			establishmentID, cfg.OpeningTime, cfg.ClosingTime)
	}

	model := &DayViewModel{
		Date:                   date,
		Grid:                   grid,
		Appointments:           calendar.PlaceForDay(grid, apps),
		SlotGranularityMinutes: cfg.Granularity(),
	}
	if cfg.HasLunchBreak() {
		model.LunchBand = grid.IntervalBand(*cfg.LunchStart, *cfg.LunchEnd)
	}

	return model, nil
}

// WeekView builds the Sunday-start week cells around date.
func (v *Views) WeekView(ctx context.Context, establishmentID uuid.UUID, date time.Time) (*WeekViewModel, error) {
	apps, err := v.fetchWindow(ctx, establishmentID, Window{Mode: ViewWeek, Anchor: date})
	if err != nil {
		return nil, err
	}
	return &WeekViewModel{Anchor: date, Cells: calendar.BuildWeekGrid(date, apps)}, nil
}

// MonthView builds the calendar-aligned month grid around date.
func (v *Views) MonthView(ctx context.Context, establishmentID uuid.UUID, date time.Time) (*MonthViewModel, error) {
	apps, err := v.fetchWindow(ctx, establishmentID, Window{Mode: ViewMonth, Anchor: date})
	if err != nil {
		return nil, err
	}
	return &MonthViewModel{Anchor: date, Cells: calendar.BuildMonthGrid(date, apps)}, nil
}

// ResolveClick converts a pixel offset on the establishment's day timeline
// into a snapped timestamp, using the establishment's granularity.
func (v *Views) ResolveClick(ctx context.Context, establishmentID uuid.UUID, date time.Time, offsetPixels int) (time.Time, error) {
	cfg, err := v.schedules.GetSchedule(ctx, establishmentID, false)
	if err != nil {
		return time.Time{}, err
	}
	return calendar.ResolveClick(date, cfg.OpeningTime, offsetPixels, cfg.Granularity()), nil
}

func (v *Views) fetchWindow(ctx context.Context, establishmentID uuid.UUID, w Window) ([]*domain.Appointment, error) {
	from, to := w.Bounds()
	apps, err := v.repo.ListWindow(ctx, domain.AppointmentsFilter{
		EstablishmentID: establishmentID,
		From:            ptr.Ptr(from),
		To:              ptr.Ptr(to),
		IncludeVoided:   true, // cancelled entries stay visible, greyed out
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		v.logger.Error("fetchWindow: establishment=%s window=%s: %v", establishmentID, w.Mode, err)
		return nil, fmt.Errorf("%w: %v", ErrFetchFailure, err)
	}
	return apps, nil
}
