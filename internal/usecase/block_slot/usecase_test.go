package block_slot

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendei/agenda-service/internal/domain"
	appointmentRepo "github.com/agendei/agenda-service/internal/infra/storage/appointment"
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
	f.created = &out
	return &out, nil
}

func (f *fakeAppointments) ListWindow(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	f.lastFilter = filter
	return f.existing, nil
}

type fakeNotifier struct{ notified int }

func (f *fakeNotifier) NotifyChanged(context.Context, uuid.UUID) { f.notified++ }

var (
	testEstablishment = uuid.New()
	testDay           = time.Date(2025, time.November, 12, 0, 0, 0, 0, time.UTC)
)

func newUseCase(apps *fakeAppointments, notifier *fakeNotifier) *UseCase {
	uc := NewUseCase(apps, notifier, nopLogger{})
	uc.timeProvider = fixedClock{now: testDay}
	return uc
}

func TestExecute_CreatesBlockedHold(t *testing.T) {
	apps := &fakeAppointments{}
	notifier := &fakeNotifier{}
	uc := newUseCase(apps, notifier)

	resp, err := uc.Execute(context.Background(), &Request{
		EstablishmentID: testEstablishment,
		StartAt:         testDay.Add(13 * time.Hour),
		EndAt:           testDay.Add(15 * time.Hour),
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusBlocked), resp.Status)
	assert.Equal(t, 1, notifier.notified)

	require.NotNil(t, apps.created)
	assert.Nil(t, apps.created.ClientID)
	assert.Nil(t, apps.created.ServiceID)
}

func TestExecute_HoldOccupiesTime(t *testing.T) {
	apps := &fakeAppointments{existing: []*domain.Appointment{{
		ID:              uuid.New(),
		EstablishmentID: testEstablishment,
		StartAt:         testDay.Add(14 * time.Hour),
		EndAt:           testDay.Add(14*time.Hour + 30*time.Minute),
		Status:          domain.StatusScheduled,
	}}}
	uc := newUseCase(apps, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), &Request{
		EstablishmentID: testEstablishment,
		StartAt:         testDay.Add(13 * time.Hour),
		EndAt:           testDay.Add(15 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_ValidationFailures(t *testing.T) {
	uc := newUseCase(&fakeAppointments{}, &fakeNotifier{})

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{
			name:    "missing establishment",
			req:     &Request{StartAt: testDay.Add(13 * time.Hour), EndAt: testDay.Add(14 * time.Hour)},
			wantErr: ErrInvalidInput,
		},
		{
			name: "end before start",
			req: &Request{
				EstablishmentID: testEstablishment,
				StartAt:         testDay.Add(14 * time.Hour),
				EndAt:           testDay.Add(13 * time.Hour),
			},
			wantErr: ErrInvalidInterval,
		},
		{
			name: "zero length",
			req: &Request{
				EstablishmentID: testEstablishment,
				StartAt:         testDay.Add(13 * time.Hour),
				EndAt:           testDay.Add(13 * time.Hour),
			},
			wantErr: ErrInvalidInterval,
		},
		{
			name: "longer than a day",
			req: &Request{
				EstablishmentID: testEstablishment,
				StartAt:         testDay.Add(8 * time.Hour),
				EndAt:           testDay.Add(8 * time.Hour).Add(25 * time.Hour),
			},
			wantErr: ErrHoldTooLong,
		},
		{
			name: "entirely in the past",
			req: &Request{
				EstablishmentID: testEstablishment,
				StartAt:         testDay.Add(-3 * time.Hour),
				EndAt:           testDay.Add(-2 * time.Hour),
			},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tc.req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestExecute_LostRaceMapsToSlotNoLongerAvailable(t *testing.T) {
	apps := &fakeAppointments{createErr: appointmentRepo.ErrSlotTaken}
	notifier := &fakeNotifier{}
	uc := newUseCase(apps, notifier)

	_, err := uc.Execute(context.Background(), &Request{
		EstablishmentID: testEstablishment,
		StartAt:         testDay.Add(13 * time.Hour),
		EndAt:           testDay.Add(14 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrSlotNoLongerAvailable)
	assert.Zero(t, notifier.notified)
}

func TestExecute_ConflictWindowCoversMidnightStraddle(t *testing.T) {
	// Блокировка с прошлого вечера ещё занимает начало текущего дня.
	overnight := &domain.Appointment{
		ID:              uuid.New(),
		EstablishmentID: testEstablishment,
		StartAt:         testDay.AddDate(0, 0, -1).Add(23 * time.Hour),
		EndAt:           testDay.Add(2 * time.Hour),
		Status:          domain.StatusBlocked,
	}

	apps := &fakeAppointments{existing: []*domain.Appointment{overnight}}
	notifier := &fakeNotifier{}
	uc := newUseCase(apps, notifier)

	_, err := uc.Execute(context.Background(), &Request{
		EstablishmentID: testEstablishment,
		StartAt:         testDay.Add(1 * time.Hour),
		EndAt:           testDay.Add(3 * time.Hour),
	})
	require.ErrorIs(t, err, ErrSlotConflict)
	assert.Zero(t, notifier.notified)

	// The advisory fetch reaches back far enough to see the overnight hold.
	require.NotNil(t, apps.lastFilter.From)
	assert.False(t, apps.lastFilter.From.After(overnight.StartAt))
	require.NotNil(t, apps.lastFilter.To)
	assert.Equal(t, testDay.Add(3*time.Hour), *apps.lastFilter.To)
}
