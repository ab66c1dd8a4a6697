package calendar

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendei/agenda-service/internal/domain"
	"github.com/agendei/agenda-service/pkg/types"
)

func candidateAt(t *testing.T, clock types.TimeString, durationMin int) Candidate {
	t.Helper()
	start, err := clock.OnDate(testDay)
	require.NoError(t, err)
	return Candidate{Start: start, End: start.Add(time.Duration(durationMin) * time.Minute)}
}

func TestValidate_TouchingEndpointsAreNotAConflict(t *testing.T) {
	existing := []*domain.Appointment{scheduledAt(t, testDay, "10:00", 30)}

	// Candidate 10:30-11:00 against existing 10:00-10:30: back-to-back is ok.
	err := Validate(candidateAt(t, "10:30", 30), existing)
	assert.NoError(t, err)

	// And the mirror case, ending exactly at the existing start.
	err = Validate(candidateAt(t, "09:30", 30), existing)
	assert.NoError(t, err)
}

func TestValidate_PartialOverlapConflicts(t *testing.T) {
	existing := []*domain.Appointment{scheduledAt(t, testDay, "10:00", 30)}

	// Candidate 10:15-10:45 against existing 10:00-10:30.
	err := Validate(candidateAt(t, "10:15", 30), existing)
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestValidate_ContainedAndContainingConflict(t *testing.T) {
	existing := []*domain.Appointment{scheduledAt(t, testDay, "10:00", 60)}

	assert.ErrorIs(t, Validate(candidateAt(t, "10:15", 15), existing), ErrSlotConflict)
	assert.ErrorIs(t, Validate(candidateAt(t, "09:00", 180), existing), ErrSlotConflict)
}

func TestValidate_VoidStatusesDoNotOccupy(t *testing.T) {
	cancelled := scheduledAt(t, testDay, "10:00", 30)
	cancelled.Status = domain.StatusCancelled
	completed := scheduledAt(t, testDay, "10:00", 30)
	completed.Status = domain.StatusCompleted

	err := Validate(candidateAt(t, "10:00", 30),
		[]*domain.Appointment{cancelled, completed})
	assert.NoError(t, err)
}

func TestValidate_BlockedHoldsOccupy(t *testing.T) {
	hold := scheduledAt(t, testDay, "12:00", 60)
	hold.Status = domain.StatusBlocked
	hold.ClientID = nil
	hold.ServiceID = nil

	err := Validate(candidateAt(t, "12:30", 30), []*domain.Appointment{hold})
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestValidate_InvalidInterval(t *testing.T) {
	c := candidateAt(t, "10:00", 0)
	assert.ErrorIs(t, Validate(c, nil), ErrInvalidInterval)

	c.End = c.Start.Add(-time.Minute)
	assert.ErrorIs(t, Validate(c, nil), ErrInvalidInterval)
}

func TestValidate_RandomIntervals(t *testing.T) {
	// P4: the validator flags every true overlap and none of the disjoint or
	// touching pairs, against the half-open reference predicate.
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 1000; i++ {
		existing := scheduledAt(t, testDay,
			types.NewTimeString(testDay.Add(time.Duration(rng.Intn(600))*time.Minute)),
			5+rng.Intn(120))
		c := Candidate{
			Start: testDay.Add(time.Duration(rng.Intn(600)) * time.Minute),
		}
		c.End = c.Start.Add(time.Duration(5+rng.Intn(120)) * time.Minute)

		wantConflict := c.Start.Before(existing.EndAt) && c.End.After(existing.StartAt)

		err := Validate(c, []*domain.Appointment{existing})
		if wantConflict {
			assert.ErrorIs(t, err, ErrSlotConflict,
				"candidate [%s,%s) vs existing [%s,%s)", c.Start, c.End, existing.StartAt, existing.EndAt)
		} else {
			assert.NoError(t, err,
				"candidate [%s,%s) vs existing [%s,%s)", c.Start, c.End, existing.StartAt, existing.EndAt)
		}
	}
}

func TestCandidateForService_EndDerivedFromDuration(t *testing.T) {
	svc := &domain.Service{Name: "Corte", DurationMinutes: 45}
	start := time.Date(2025, 11, 12, 10, 0, 0, 0, time.UTC)

	c := CandidateForService(start, svc)
	assert.Equal(t, start, c.Start)
	assert.Equal(t, start.Add(45*time.Minute), c.End)

	// Re-selecting another service recomputes End from the unchanged Start.
	longer := &domain.Service{Name: "Corte + Barba", DurationMinutes: 75}
	c = CandidateForService(c.Start, longer)
	assert.Equal(t, start, c.Start)
	assert.Equal(t, start.Add(75*time.Minute), c.End)
}

func TestFindConflicts_ReturnsEveryIntersectingRecord(t *testing.T) {
	a := scheduledAt(t, testDay, "10:00", 30)
	b := scheduledAt(t, testDay, "10:20", 30)
	far := scheduledAt(t, testDay, "15:00", 30)

	conflicts := FindConflicts(candidateAt(t, "10:10", 30),
		[]*domain.Appointment{a, b, far})

	require.Len(t, conflicts, 2)
}

func TestFindOverlaps_ReportsPersistedViolations(t *testing.T) {
	// Identical-start pair from a double-insert race: reported, not resolved.
	a := scheduledAt(t, testDay, "10:00", 30)
	b := scheduledAt(t, testDay, "10:00", 30)
	clean := scheduledAt(t, testDay, "11:00", 30)

	pairs := FindOverlaps([]*domain.Appointment{a, b, clean})
	require.Len(t, pairs, 1)
	assert.Equal(t, a.ID, pairs[0].A.ID)
	assert.Equal(t, b.ID, pairs[0].B.ID)
}

func TestFindOverlaps_IgnoresVoidAndBackToBack(t *testing.T) {
	a := scheduledAt(t, testDay, "10:00", 30)
	touching := scheduledAt(t, testDay, "10:30", 30)
	cancelled := scheduledAt(t, testDay, "10:00", 30)
	cancelled.Status = domain.StatusCancelled

	pairs := FindOverlaps([]*domain.Appointment{a, touching, cancelled})
	assert.Empty(t, pairs)
}
