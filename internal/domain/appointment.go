package domain

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	// StatusBlocked is an owner-imposed hold with no client or service.
	// It is a creation path of its own, never a transition target.
	StatusBlocked AppointmentStatus = "blocked"
)

// Appointment represents one entry on an establishment's agenda
type Appointment struct {
	ID              uuid.UUID
	EstablishmentID uuid.UUID
	ClientID        *uuid.UUID // nil only for blocked holds
	ServiceID       *uuid.UUID // nil only for blocked holds
	StartAt         time.Time
	EndAt           time.Time // strictly after StartAt, StartAt + service duration
	Status          AppointmentStatus

	// Denormalized display data attached by the read path.
	// Never authoritative and never used for conflict checks.
	ClientName   *string
	ServiceName  *string
	ServicePrice *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Occupies reports whether the appointment holds its time range for the
// non-overlap invariant. Cancelled entries are void, completed ones are in
// the past and kept for history only.
func (a *Appointment) Occupies() bool {
	return a.Status == StatusScheduled || a.Status == StatusBlocked
}

// IsTerminal reports whether the status admits no further transitions.
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCompleted || a.Status == StatusCancelled
}

// IsBlocked reports whether this is an owner hold rather than a booking.
func (a *Appointment) IsBlocked() bool {
	return a.Status == StatusBlocked
}

// DurationMinutes returns the appointment length in whole minutes.
func (a *Appointment) DurationMinutes() int {
	return int(a.EndAt.Sub(a.StartAt) / time.Minute)
}

// CanTransitionTo reports whether the status change is legal.
// The only legal transitions are scheduled -> completed and
// scheduled -> cancelled. Blocked holds are deleted, not transitioned.
func (a *Appointment) CanTransitionTo(to AppointmentStatus) bool {
	return ValidTransition(a.Status, to)
}

// ValidTransition is the state machine table behind CanTransitionTo.
func ValidTransition(from, to AppointmentStatus) bool {
	if from != StatusScheduled {
		return false
	}
	return to == StatusCompleted || to == StatusCancelled
}

// Overlaps reports whether the two half-open intervals [StartAt, EndAt)
// intersect. Touching endpoints are not an overlap, which is what makes
// back-to-back bookings possible.
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return a.StartAt.Before(end) && a.EndAt.After(start)
}

// AppointmentsFilter фильтр для выборки агенды за период
type AppointmentsFilter struct {
	EstablishmentID uuid.UUID  // Обязательный параметр
	From            *time.Time // Начало окна (включительно, по start_at)
	To              *time.Time // Конец окна (включительно, по start_at)
	Status          *AppointmentStatus
	IncludeVoided   bool // Включать ли отменённые записи
}
