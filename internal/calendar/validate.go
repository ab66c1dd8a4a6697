package calendar

import (
	"time"

	"github.com/agendei/agenda-service/internal/domain"
)

// Candidate is a proposed appointment interval, end derived from the selected
// service's fixed duration.
type Candidate struct {
	Start time.Time
	End   time.Time
}

// CandidateForService builds a candidate from a slot start and the selected
// service. Re-selecting the service recomputes End from the unchanged Start.
func CandidateForService(start time.Time, svc *domain.Service) Candidate {
	return Candidate{
		Start: start,
		End:   start.Add(time.Duration(svc.DurationMinutes) * time.Minute),
	}
}

// Validate checks a candidate against the current in-memory appointment set.
// Intervals are half-open [start, end): touching endpoints are NOT a conflict,
// so back-to-back bookings pass. Only scheduled and blocked entries occupy
// time; cancelled and completed ones are ignored.
//
// This is the advisory fast path. The store enforces the same invariant with
// an exclusion constraint, which stays authoritative under concurrent bookers.
func Validate(c Candidate, existing []*domain.Appointment) error {
	if !c.End.After(c.Start) {
		return ErrInvalidInterval
	}
	if len(FindConflicts(c, existing)) > 0 {
		return ErrSlotConflict
	}
	return nil
}

// FindConflicts returns every occupying appointment whose interval intersects
// the candidate's.
func FindConflicts(c Candidate, existing []*domain.Appointment) []*domain.Appointment {
	var conflicts []*domain.Appointment
	for _, app := range existing {
		if !app.Occupies() {
			continue
		}
		if app.Overlaps(c.Start, c.End) {
			conflicts = append(conflicts, app)
		}
	}
	return conflicts
}

// OverlapPair is a persisted invariant violation: two occupying appointments
// of the same establishment whose intervals intersect.
type OverlapPair struct {
	A *domain.Appointment
	B *domain.Appointment
}

// FindOverlaps audits a persisted appointment set for invariant violations,
// including identical-start pairs from a double-insert race that bypassed the
// store constraint. Violations are reported, never silently resolved - the
// tie-break (first-wins vs manual reconciliation) is a business decision.
func FindOverlaps(appointments []*domain.Appointment) []OverlapPair {
	var pairs []OverlapPair
	for i := 0; i < len(appointments); i++ {
		a := appointments[i]
		if !a.Occupies() {
			continue
		}
		for j := i + 1; j < len(appointments); j++ {
			b := appointments[j]
			if !b.Occupies() || a.EstablishmentID != b.EstablishmentID {
				continue
			}
			if a.Overlaps(b.StartAt, b.EndAt) {
				pairs = append(pairs, OverlapPair{A: a, B: b})
			}
		}
	}
	return pairs
}
