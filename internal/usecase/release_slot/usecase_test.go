package release_slot

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

type fakeAppointments struct {
	byID      map[uuid.UUID]*domain.Appointment
	deleteErr error
	deleted   []uuid.UUID
}

func (f *fakeAppointments) GetByID(_ context.Context, id uuid.UUID) (*domain.Appointment, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return a, nil
}

func (f *fakeAppointments) Delete(_ context.Context, id uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeNotifier struct{ notified int }

func (f *fakeNotifier) NotifyChanged(context.Context, uuid.UUID) { f.notified++ }

var testEstablishment = uuid.New()

func hold(status domain.AppointmentStatus) *domain.Appointment {
	start := time.Date(2025, time.November, 12, 13, 0, 0, 0, time.UTC)
	return &domain.Appointment{
		ID:              uuid.New(),
		EstablishmentID: testEstablishment,
		StartAt:         start,
		EndAt:           start.Add(2 * time.Hour),
		Status:          status,
	}
}

func TestExecute_DeletesBlockedHold(t *testing.T) {
	h := hold(domain.StatusBlocked)
	apps := &fakeAppointments{byID: map[uuid.UUID]*domain.Appointment{h.ID: h}}
	notifier := &fakeNotifier{}
	uc := NewUseCase(apps, notifier, nopLogger{})

	err := uc.Execute(context.Background(), h.ID)
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{h.ID}, apps.deleted)
	assert.Equal(t, 1, notifier.notified)
}

func TestExecute_RefusesToDeleteBookings(t *testing.T) {
	// Клиентские записи отменяются переходом статуса, а не удалением.
	for _, status := range []domain.AppointmentStatus{
		domain.StatusScheduled,
		domain.StatusCompleted,
		domain.StatusCancelled,
	} {
		t.Run(string(status), func(t *testing.T) {
			h := hold(status)
			apps := &fakeAppointments{byID: map[uuid.UUID]*domain.Appointment{h.ID: h}}
			notifier := &fakeNotifier{}
			uc := NewUseCase(apps, notifier, nopLogger{})

			err := uc.Execute(context.Background(), h.ID)
			require.ErrorIs(t, err, ErrNotBlocked)

			assert.Empty(t, apps.deleted)
			assert.Zero(t, notifier.notified)
		})
	}
}

func TestExecute_HoldNotFound(t *testing.T) {
	apps := &fakeAppointments{byID: map[uuid.UUID]*domain.Appointment{}}
	uc := NewUseCase(apps, &fakeNotifier{}, nopLogger{})

	err := uc.Execute(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrHoldNotFound)
}

func TestExecute_NilIDRejected(t *testing.T) {
	uc := NewUseCase(&fakeAppointments{}, &fakeNotifier{}, nopLogger{})

	err := uc.Execute(context.Background(), uuid.Nil)
	require.ErrorIs(t, err, ErrInvalidInput)
}
