package agenda

import (
	"context"
	"errors"
	"sync"
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

// fakeRepo routes every ListWindow call through fn, passing the 1-based call
// number. Safe for concurrent use.
type fakeRepo struct {
	mu    sync.Mutex
	calls int
	fn    func(call int, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

func (r *fakeRepo) ListWindow(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	r.mu.Lock()
	r.calls++
	call := r.calls
	fn := r.fn
	r.mu.Unlock()
	return fn(call, filter)
}

func (r *fakeRepo) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

type fakeSubscription struct {
	events chan struct{}
	once   sync.Once
	closed bool
}

func newFakeSubscription() *fakeSubscription {
	return &fakeSubscription{events: make(chan struct{}, 1)}
}

func (s *fakeSubscription) Events() <-chan struct{} { return s.events }

func (s *fakeSubscription) Close() error {
	s.once.Do(func() {
		s.closed = true
		close(s.events)
	})
	return nil
}

type fakeFeed struct {
	sub *fakeSubscription
	err error
}

func (f *fakeFeed) Subscribe(context.Context, uuid.UUID) (Subscription, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sub, nil
}

func appointmentsAt(day time.Time, clocks ...string) []*domain.Appointment {
	out := make([]*domain.Appointment, 0, len(clocks))
	for _, clock := range clocks {
		parsed, err := time.Parse("15:04", clock)
		if err != nil {
			panic(err)
		}
		start := time.Date(day.Year(), day.Month(), day.Day(), parsed.Hour(), parsed.Minute(), 0, 0, day.Location())
		out = append(out, &domain.Appointment{
			ID:      uuid.New(),
			StartAt: start,
			EndAt:   start.Add(30 * time.Minute),
			Status:  domain.StatusScheduled,
		})
	}
	return out
}

func TestController_OpenFetchesWindow(t *testing.T) {
	day := time.Date(2025, time.November, 12, 0, 0, 0, 0, time.UTC)
	want := appointmentsAt(day, "09:00", "14:00")

	repo := &fakeRepo{fn: func(_ int, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
		require.NotNil(t, filter.From)
		require.NotNil(t, filter.To)
		assert.True(t, filter.IncludeVoided)
		return want, nil
	}}
	c := NewController(repo, &fakeFeed{sub: newFakeSubscription()}, nopLogger{}, nil)

	require.NoError(t, c.Open(context.Background(), uuid.New(), Window{Mode: ViewDay, Anchor: day}))
	defer c.Close()

	assert.Equal(t, want, c.Appointments())
	assert.Equal(t, 1, repo.callCount())
}

func TestController_RepeatedRefreshIsIdempotent(t *testing.T) {
	day := time.Date(2025, time.November, 12, 0, 0, 0, 0, time.UTC)
	want := appointmentsAt(day, "09:00", "10:30", "16:00")

	repo := &fakeRepo{fn: func(int, domain.AppointmentsFilter) ([]*domain.Appointment, error) {
		return want, nil
	}}
	c := NewController(repo, &fakeFeed{sub: newFakeSubscription()}, nopLogger{}, nil)

	require.NoError(t, c.Open(context.Background(), uuid.New(), Window{Mode: ViewDay, Anchor: day}))
	defer c.Close()

	// Each refresh replaces the set wholesale: triggering it many times for
	// the same underlying state must never duplicate entries.
	for i := 0; i < 5; i++ {
		require.NoError(t, c.Refresh(context.Background()))
	}

	got := c.Appointments()
	assert.Len(t, got, 3)
	assert.Equal(t, want, got)
}

func TestController_FeedEventTriggersRefresh(t *testing.T) {
	day := time.Date(2025, time.November, 12, 0, 0, 0, 0, time.UTC)
	first := appointmentsAt(day, "09:00")
	second := appointmentsAt(day, "09:00", "11:00")

	repo := &fakeRepo{fn: func(call int, _ domain.AppointmentsFilter) ([]*domain.Appointment, error) {
		if call == 1 {
			return first, nil
		}
		return second, nil
	}}
	sub := newFakeSubscription()
	c := NewController(repo, &fakeFeed{sub: sub}, nopLogger{}, nil)

	require.NoError(t, c.Open(context.Background(), uuid.New(), Window{Mode: ViewDay, Anchor: day}))
	defer c.Close()
	require.Len(t, c.Appointments(), 1)

	sub.events <- struct{}{}

	require.Eventually(t, func() bool {
		return len(c.Appointments()) == 2
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, second, c.Appointments())
}

func TestController_SupersededRefreshIsDropped(t *testing.T) {
	day := time.Date(2025, time.November, 12, 0, 0, 0, 0, time.UTC)
	slow := appointmentsAt(day, "09:00")
	fresh := appointmentsAt(day, "09:00", "13:00")

	release := make(chan struct{})
	repo := &fakeRepo{}
	repo.fn = func(call int, _ domain.AppointmentsFilter) ([]*domain.Appointment, error) {
		switch call {
		case 1:
			return nil, nil // Open's initial fetch
		case 2:
			<-release // stalled response from the old window
			return slow, nil
		default:
			return fresh, nil
		}
	}
	c := NewController(repo, &fakeFeed{sub: newFakeSubscription()}, nopLogger{}, nil)
	require.NoError(t, c.Open(context.Background(), uuid.New(), Window{Mode: ViewDay, Anchor: day}))
	defer c.Close()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = c.Refresh(context.Background())
	}()

	// Wait for the slow refresh to be in flight, then run a newer one.
	require.Eventually(t, func() bool { return repo.callCount() == 2 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, c.Refresh(context.Background()))
	require.Equal(t, fresh, c.Appointments())

	// Releasing the stalled fetch must not roll the state back.
	close(release)
	wg.Wait()
	assert.Equal(t, fresh, c.Appointments())
}

func TestController_FetchFailureKeepsLastKnownState(t *testing.T) {
	day := time.Date(2025, time.November, 12, 0, 0, 0, 0, time.UTC)
	want := appointmentsAt(day, "09:00", "15:30")

	repo := &fakeRepo{fn: func(call int, _ domain.AppointmentsFilter) ([]*domain.Appointment, error) {
		if call == 1 {
			return want, nil
		}
		return nil, errors.New("connection refused")
	}}
	c := NewController(repo, &fakeFeed{sub: newFakeSubscription()}, nopLogger{}, nil)
	require.NoError(t, c.Open(context.Background(), uuid.New(), Window{Mode: ViewDay, Anchor: day}))
	defer c.Close()

	err := c.Refresh(context.Background())
	require.ErrorIs(t, err, ErrFetchFailure)
	assert.Equal(t, want, c.Appointments(), "stale data must survive a failed refresh")
}

func TestController_SetWindowRefetches(t *testing.T) {
	day := time.Date(2025, time.November, 12, 0, 0, 0, 0, time.UTC)
	repo := &fakeRepo{fn: func(_ int, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
		return appointmentsAt(filter.From.Add(9*time.Hour), "09:00"), nil
	}}
	c := NewController(repo, &fakeFeed{sub: newFakeSubscription()}, nopLogger{}, nil)
	require.NoError(t, c.Open(context.Background(), uuid.New(), Window{Mode: ViewDay, Anchor: day}))
	defer c.Close()

	require.NoError(t, c.SetWindow(context.Background(), Window{Mode: ViewWeek, Anchor: day}))
	assert.Equal(t, ViewWeek, c.Window().Mode)
	assert.Equal(t, 2, repo.callCount())

	err := c.SetWindow(context.Background(), Window{Mode: "quarter", Anchor: day})
	assert.ErrorIs(t, err, ErrInvalidView)
	assert.Equal(t, ViewWeek, c.Window().Mode, "invalid mode must not replace the window")
}

func TestController_CloseIsDeterministic(t *testing.T) {
	day := time.Date(2025, time.November, 12, 0, 0, 0, 0, time.UTC)
	repo := &fakeRepo{fn: func(int, domain.AppointmentsFilter) ([]*domain.Appointment, error) {
		return appointmentsAt(day, "09:00"), nil
	}}
	sub := newFakeSubscription()
	c := NewController(repo, &fakeFeed{sub: sub}, nopLogger{}, nil)
	require.NoError(t, c.Open(context.Background(), uuid.New(), Window{Mode: ViewDay, Anchor: day}))

	require.NoError(t, c.Close())
	assert.True(t, sub.closed)
	assert.Empty(t, c.Appointments())
	assert.ErrorIs(t, c.Refresh(context.Background()), ErrNotOpen)

	// Second close is a no-op.
	require.NoError(t, c.Close())
}

func TestController_OpenWithoutFeedStillServes(t *testing.T) {
	day := time.Date(2025, time.November, 12, 0, 0, 0, 0, time.UTC)
	repo := &fakeRepo{fn: func(int, domain.AppointmentsFilter) ([]*domain.Appointment, error) {
		return appointmentsAt(day, "09:00"), nil
	}}
	c := NewController(repo, &fakeFeed{err: errors.New("redis down")}, nopLogger{}, nil)

	require.NoError(t, c.Open(context.Background(), uuid.New(), Window{Mode: ViewDay, Anchor: day}))
	defer c.Close()

	assert.Len(t, c.Appointments(), 1)
	require.NoError(t, c.Refresh(context.Background()))
}

func TestWindow_Bounds(t *testing.T) {
	// 2025-11-12 is a Wednesday.
	anchor := time.Date(2025, time.November, 12, 15, 42, 0, 0, time.UTC)

	tests := []struct {
		name     string
		mode     ViewMode
		wantFrom time.Time
		wantTo   time.Time
	}{
		{
			name:     "day covers midnight to midnight",
			mode:     ViewDay,
			wantFrom: time.Date(2025, time.November, 12, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2025, time.November, 12, 23, 59, 59, 999999999, time.UTC),
		},
		{
			name:     "week starts on sunday",
			mode:     ViewWeek,
			wantFrom: time.Date(2025, time.November, 9, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2025, time.November, 15, 23, 59, 59, 999999999, time.UTC),
		},
		{
			name:     "month covers first to last day",
			mode:     ViewMonth,
			wantFrom: time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2025, time.November, 30, 23, 59, 59, 999999999, time.UTC),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			from, to := Window{Mode: tc.mode, Anchor: anchor}.Bounds()
			assert.Equal(t, tc.wantFrom, from)
			assert.Equal(t, tc.wantTo, to)
		})
	}
}

func TestParseViewMode(t *testing.T) {
	for _, valid := range []string{"day", "week", "month"} {
		mode, err := ParseViewMode(valid)
		require.NoError(t, err)
		assert.Equal(t, ViewMode(valid), mode)
	}

	_, err := ParseViewMode("fortnight")
	assert.ErrorIs(t, err, ErrInvalidView)
}
