package update_status

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendei/agenda-service/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeAppointments struct {
	appointment *domain.Appointment
	getErr      error
	updateErr   error
	updateCalls int
}

func (f *fakeAppointments) GetByID(context.Context, uuid.UUID) (*domain.Appointment, error) {
	return f.appointment, f.getErr
}

func (f *fakeAppointments) UpdateStatus(context.Context, uuid.UUID, domain.AppointmentStatus) error {
	f.updateCalls++
	return f.updateErr
}

type fakeNotifier struct{ notified int }

func (f *fakeNotifier) NotifyChanged(context.Context, uuid.UUID) { f.notified++ }

func appointmentWithStatus(status domain.AppointmentStatus) *domain.Appointment {
	start := time.Date(2025, time.November, 12, 10, 0, 0, 0, time.UTC)
	return &domain.Appointment{
		ID:              uuid.New(),
		EstablishmentID: uuid.New(),
		StartAt:         start,
		EndAt:           start.Add(30 * time.Minute),
		Status:          status,
	}
}

func TestExecute_ScheduledTransitions(t *testing.T) {
	for _, target := range []string{"completed", "cancelled"} {
		t.Run(target, func(t *testing.T) {
			apps := &fakeAppointments{appointment: appointmentWithStatus(domain.StatusScheduled)}
			notifier := &fakeNotifier{}
			uc := NewUseCase(apps, notifier, nopLogger{})

			resp, err := uc.Execute(context.Background(), &Request{
				AppointmentID: apps.appointment.ID,
				Status:        target,
			})
			require.NoError(t, err)

			assert.Equal(t, target, resp.Status)
			assert.Equal(t, 1, apps.updateCalls)
			assert.Equal(t, 1, notifier.notified)
		})
	}
}

func TestExecute_CompletedToCancelledRejectedBeforeAnyWrite(t *testing.T) {
	apps := &fakeAppointments{appointment: appointmentWithStatus(domain.StatusCompleted)}
	notifier := &fakeNotifier{}
	uc := NewUseCase(apps, notifier, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: apps.appointment.ID,
		Status:        "cancelled",
	})
	require.ErrorIs(t, err, ErrInvalidTransition)

	assert.Zero(t, apps.updateCalls, "rejection must happen before the store is touched")
	assert.Zero(t, notifier.notified)
	assert.Equal(t, domain.StatusCompleted, apps.appointment.Status)
}

func TestExecute_TerminalStatesAdmitNoTransitions(t *testing.T) {
	tests := []struct {
		from   domain.AppointmentStatus
		target string
	}{
		{domain.StatusCompleted, "completed"},
		{domain.StatusCancelled, "completed"},
		{domain.StatusCancelled, "cancelled"},
	}

	for _, tc := range tests {
		t.Run(string(tc.from)+"_to_"+tc.target, func(t *testing.T) {
			apps := &fakeAppointments{appointment: appointmentWithStatus(tc.from)}
			uc := NewUseCase(apps, &fakeNotifier{}, nopLogger{})

			_, err := uc.Execute(context.Background(), &Request{
				AppointmentID: apps.appointment.ID,
				Status:        tc.target,
			})
			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Zero(t, apps.updateCalls)
		})
	}
}

func TestExecute_BlockedHoldRejected(t *testing.T) {
	apps := &fakeAppointments{appointment: appointmentWithStatus(domain.StatusBlocked)}
	uc := NewUseCase(apps, &fakeNotifier{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: apps.appointment.ID,
		Status:        "cancelled",
	})
	assert.ErrorIs(t, err, ErrBlockedHold)
	assert.Zero(t, apps.updateCalls)
}

func TestExecute_InvalidTargets(t *testing.T) {
	tests := []struct {
		target  string
		wantErr error
	}{
		{"scheduled", ErrInvalidTransition},
		{"blocked", ErrInvalidTransition},
		{"done", ErrInvalidStatus},
		{"", ErrInvalidStatus},
	}

	for _, tc := range tests {
		t.Run("target_"+tc.target, func(t *testing.T) {
			apps := &fakeAppointments{appointment: appointmentWithStatus(domain.StatusScheduled)}
			uc := NewUseCase(apps, &fakeNotifier{}, nopLogger{})

			_, err := uc.Execute(context.Background(), &Request{
				AppointmentID: apps.appointment.ID,
				Status:        tc.target,
			})
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Zero(t, apps.updateCalls)
		})
	}
}
