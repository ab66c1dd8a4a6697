package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendei/agenda-service/internal/domain"
	appointmentRepo "github.com/agendei/agenda-service/internal/infra/storage/appointment"
	"github.com/agendei/agenda-service/pkg/ptr"
	"github.com/agendei/agenda-service/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeAppointments struct {
	existing   []*domain.Appointment
	createErr  error
	created    *domain.Appointment
	lastFilter domain.AppointmentsFilter
}

func (f *fakeAppointments) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := *a
	out.ID = uuid.New()
	out.CreatedAt = time.Now()
	out.UpdatedAt = out.CreatedAt
	f.created = &out
	return &out, nil
}

func (f *fakeAppointments) ListWindow(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	f.lastFilter = filter
	return f.existing, nil
}

type fakeEstablishments struct {
	service *domain.Service
	err     error
}

func (f *fakeEstablishments) GetService(context.Context, uuid.UUID, uuid.UUID) (*domain.Service, error) {
	return f.service, f.err
}

type fakeSchedules struct {
	cfg *domain.ScheduleConfig
	err error
}

func (f *fakeSchedules) GetSchedule(context.Context, uuid.UUID, bool) (*domain.ScheduleConfig, error) {
	return f.cfg, f.err
}

type fakeNotifier struct{ notified int }

func (f *fakeNotifier) NotifyChanged(context.Context, uuid.UUID) { f.notified++ }

var (
	testEstablishment = uuid.New()
	testDay           = time.Date(2025, time.November, 12, 0, 0, 0, 0, time.UTC)
)

func testService(durationMin int) *domain.Service {
	return &domain.Service{
		ID:              uuid.New(),
		EstablishmentID: testEstablishment,
		Name:            "Corte",
		Price:           50,
		DurationMinutes: durationMin,
	}
}

func testConfig() *domain.ScheduleConfig {
	return &domain.ScheduleConfig{
		EstablishmentID: testEstablishment,
		OpeningTime:     types.TimeString("08:00"),
		ClosingTime:     types.TimeString("20:00"),
	}
}

func occupying(start time.Time, durationMin int) *domain.Appointment {
	return &domain.Appointment{
		ID:              uuid.New(),
		EstablishmentID: testEstablishment,
		StartAt:         start,
		EndAt:           start.Add(time.Duration(durationMin) * time.Minute),
		Status:          domain.StatusScheduled,
	}
}

func newUseCase(apps *fakeAppointments, svc *domain.Service, notifier *fakeNotifier) *UseCase {
	uc := NewUseCase(apps, &fakeEstablishments{service: svc}, &fakeSchedules{cfg: testConfig()}, notifier, nopLogger{})
	uc.timeProvider = fixedClock{now: testDay}
	return uc
}

func TestExecute_DerivesEndFromServiceDuration(t *testing.T) {
	apps := &fakeAppointments{}
	notifier := &fakeNotifier{}
	svc := testService(45)
	uc := newUseCase(apps, svc, notifier)

	start := testDay.Add(10 * time.Hour)
	resp, err := uc.Execute(context.Background(), &Request{
		EstablishmentID: testEstablishment,
		ServiceID:       svc.ID,
		StartAt:         start,
	})
	require.NoError(t, err)

	assert.Equal(t, start, resp.StartAt)
	assert.Equal(t, start.Add(45*time.Minute), resp.EndAt)
	assert.Equal(t, string(domain.StatusScheduled), resp.Status)
	assert.Equal(t, "Corte", resp.ServiceName)
	assert.Equal(t, 50.0, resp.ServicePrice)
	assert.Equal(t, 1, notifier.notified)

	require.NotNil(t, apps.created)
	require.NotNil(t, apps.created.ServiceID)
	assert.Equal(t, svc.ID, *apps.created.ServiceID)
}

func TestExecute_BackToBackSlotsDoNotConflict(t *testing.T) {
	svc := testService(30)
	apps := &fakeAppointments{existing: []*domain.Appointment{
		occupying(testDay.Add(9*time.Hour+30*time.Minute), 30), // 09:30-10:00
	}}
	uc := newUseCase(apps, svc, &fakeNotifier{})

	// Starts exactly where the existing one ends.
	_, err := uc.Execute(context.Background(), &Request{
		EstablishmentID: testEstablishment,
		ServiceID:       svc.ID,
		StartAt:         testDay.Add(10 * time.Hour),
	})
	assert.NoError(t, err)
}

func TestExecute_OverlappingSlotRejected(t *testing.T) {
	svc := testService(30)
	apps := &fakeAppointments{existing: []*domain.Appointment{
		occupying(testDay.Add(10*time.Hour), 30), // 10:00-10:30
	}}
	notifier := &fakeNotifier{}
	uc := newUseCase(apps, svc, notifier)

	_, err := uc.Execute(context.Background(), &Request{
		EstablishmentID: testEstablishment,
		ServiceID:       svc.ID,
		StartAt:         testDay.Add(10*time.Hour + 15*time.Minute),
	})
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Nil(t, apps.created, "conflicting appointment must not be persisted")
	assert.Zero(t, notifier.notified)
}

func TestExecute_CancelledEntriesDoNotBlock(t *testing.T) {
	svc := testService(30)
	cancelled := occupying(testDay.Add(10*time.Hour), 30)
	cancelled.Status = domain.StatusCancelled
	apps := &fakeAppointments{existing: []*domain.Appointment{cancelled}}
	uc := newUseCase(apps, svc, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), &Request{
		EstablishmentID: testEstablishment,
		ServiceID:       svc.ID,
		StartAt:         testDay.Add(10 * time.Hour),
	})
	assert.NoError(t, err)
}

func TestExecute_LostRaceMapsToSlotNoLongerAvailable(t *testing.T) {
	svc := testService(30)
	apps := &fakeAppointments{createErr: appointmentRepo.ErrSlotTaken}
	notifier := &fakeNotifier{}
	uc := newUseCase(apps, svc, notifier)

	_, err := uc.Execute(context.Background(), &Request{
		EstablishmentID: testEstablishment,
		ServiceID:       svc.ID,
		StartAt:         testDay.Add(10 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrSlotNoLongerAvailable)
	assert.Zero(t, notifier.notified)
}

func TestExecute_OutsideWorkingHoursRejected(t *testing.T) {
	svc := testService(60)
	uc := newUseCase(&fakeAppointments{}, svc, &fakeNotifier{})

	tests := []struct {
		name  string
		start time.Time
	}{
		{"before opening", testDay.Add(7 * time.Hour)},
		{"spills past closing", testDay.Add(19*time.Hour + 30*time.Minute)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), &Request{
				EstablishmentID: testEstablishment,
				ServiceID:       svc.ID,
				StartAt:         tc.start,
			})
			assert.ErrorIs(t, err, ErrOutsideWorkingHours)
		})
	}
}

func TestExecute_StartInPastRejected(t *testing.T) {
	svc := testService(30)
	uc := newUseCase(&fakeAppointments{}, svc, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), &Request{
		EstablishmentID: testEstablishment,
		ServiceID:       svc.ID,
		StartAt:         testDay.Add(-time.Hour),
	})
	assert.ErrorIs(t, err, ErrDateInPast)
}

func TestExecute_InputValidation(t *testing.T) {
	svc := testService(30)
	uc := newUseCase(&fakeAppointments{}, svc, &fakeNotifier{})

	tests := []struct {
		name string
		req  *Request
	}{
		{"missing establishment", &Request{ServiceID: svc.ID, StartAt: testDay.Add(10 * time.Hour)}},
		{"missing service", &Request{EstablishmentID: testEstablishment, StartAt: testDay.Add(10 * time.Hour)}},
		{"missing start", &Request{EstablishmentID: testEstablishment, ServiceID: svc.ID}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tc.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_ClientIsOptional(t *testing.T) {
	svc := testService(30)
	apps := &fakeAppointments{}
	uc := newUseCase(apps, svc, &fakeNotifier{})

	clientID := uuid.New()
	resp, err := uc.Execute(context.Background(), &Request{
		EstablishmentID: testEstablishment,
		ClientID:        ptr.Ptr(clientID),
		ServiceID:       svc.ID,
		StartAt:         testDay.Add(10 * time.Hour),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.ClientID)
	assert.Equal(t, clientID, *resp.ClientID)
}

func TestExecute_ConflictWindowCoversMidnightStraddle(t *testing.T) {
	// Блокировка, начавшаяся накануне, занимает утро текущего дня.
	hold := occupying(testDay.AddDate(0, 0, -1).Add(23*time.Hour), 10*60)
	hold.Status = domain.StatusBlocked

	apps := &fakeAppointments{existing: []*domain.Appointment{hold}}
	notifier := &fakeNotifier{}
	svc := testService(45)
	uc := newUseCase(apps, svc, notifier)

	_, err := uc.Execute(context.Background(), &Request{
		EstablishmentID: testEstablishment,
		ServiceID:       svc.ID,
		StartAt:         testDay.Add(8 * time.Hour),
	})
	require.ErrorIs(t, err, ErrSlotConflict)
	assert.Zero(t, notifier.notified)

	// The advisory fetch reaches back far enough to see the hold.
	require.NotNil(t, apps.lastFilter.From)
	assert.False(t, apps.lastFilter.From.After(hold.StartAt))
	require.NotNil(t, apps.lastFilter.To)
	assert.Equal(t, testDay.Add(8*time.Hour+45*time.Minute), *apps.lastFilter.To)
}
