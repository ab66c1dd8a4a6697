package calendar

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveClick_SnapsDownToQuarterHour(t *testing.T) {
	// A click at the pixel row of 10:07 with an 08:00 opening resolves to
	// 10:00, never 10:15.
	offset := (2*60 + 7) * PixelsPerMinute

	got := ResolveClick(testDay, "08:00", offset, 15)

	want := time.Date(2025, 11, 12, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, want, got)
}

func TestResolveClick_ExactBoundaryIsKept(t *testing.T) {
	offset := (2 * 60) * PixelsPerMinute // exactly 10:00

	got := ResolveClick(testDay, "08:00", offset, 15)
	assert.Equal(t, time.Date(2025, 11, 12, 10, 0, 0, 0, time.UTC), got)
}

func TestResolveClick_NeverRoundsUp(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	grid, err := BuildDayGrid(testDay, "08:00", "20:00")
	require.NoError(t, err)

	for i := 0; i < 500; i++ {
		offset := rng.Intn(grid.TotalHeight())
		got := ResolveClick(testDay, "08:00", offset, 15)

		// Minute component is always a multiple of the snap unit.
		assert.Zero(t, got.Minute()%15, "offset %d", offset)

		// And never later than the raw time implied by the offset.
		raw := time.Date(2025, 11, 12, 8, 0, 0, 0, time.UTC).
			Add(time.Duration(offset/PixelsPerMinute) * time.Minute)
		assert.False(t, got.After(raw), "offset %d: snapped %s after raw %s", offset, got, raw)
	}
}

func TestResolveClick_CustomGranularity(t *testing.T) {
	offset := (2*60 + 25) * PixelsPerMinute // 10:25

	assert.Equal(t, 0, ResolveClick(testDay, "08:00", offset, 30).Minute())
	assert.Equal(t, 25, ResolveClick(testDay, "08:00", offset, 5).Minute())
}

func TestResolveClick_ZeroGranularityUsesDefault(t *testing.T) {
	offset := (2*60 + 7) * PixelsPerMinute

	got := ResolveClick(testDay, "08:00", offset, 0)
	assert.Zero(t, got.Minute()%15)
}

func TestResolveClick_NonWholeHourOpening(t *testing.T) {
	// Opening 08:30; click 45 minutes down the timeline -> 09:15.
	offset := 45 * PixelsPerMinute

	got := ResolveClick(testDay, "08:30", offset, 15)
	assert.Equal(t, time.Date(2025, 11, 12, 9, 15, 0, 0, time.UTC), got)
}

func TestResolveClick_MalformedOpeningFallsBack(t *testing.T) {
	got := ResolveClick(testDay, "garbage", 0, 15)
	assert.Equal(t, time.Date(2025, 11, 12, 8, 0, 0, 0, time.UTC), got)
}

func TestResolveDayCell_Midnight(t *testing.T) {
	clicked := time.Date(2025, 11, 12, 16, 42, 13, 0, time.UTC)

	got := ResolveDayCell(clicked)
	assert.Equal(t, time.Date(2025, 11, 12, 0, 0, 0, 0, time.UTC), got)
}
