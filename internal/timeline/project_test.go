package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosition(t *testing.T) {
	w := DefaultWindow()
	const totalDays = 423.0 // 2026-01-01 .. 2027-02-28

	tests := []struct {
		name     string
		date     string
		expected float64
	}{
		{"window start", "2026-01-01", 0},
		{"window end", "2027-02-28", 100},
		{"before window clamps", "2025-06-15", 0},
		{"after window clamps", "2027-03-01", 100},
		{"mid window", "2026-07-01", 181 / totalDays * 100},
		{"second day", "2026-01-02", 1 / totalDays * 100},
		{"whitespace tolerated", " 2026-07-01 ", 181 / totalDays * 100},
		{"unparseable", "someday", 0},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Position(tt.date, w)
			assert.InDelta(t, tt.expected, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 100.0)
		})
	}
}

func TestPosition_Monotonic(t *testing.T) {
	w := DefaultWindow()
	prev := -1.0
	for d := w.Start().AddDate(0, -1, 0); d.Before(w.End().AddDate(0, 1, 0)); d = d.AddDate(0, 0, 1) {
		got := PositionOf(d, w)
		require.GreaterOrEqual(t, got, prev, "position decreased at %s", d)
		prev = got
	}
}

func TestPosition_CustomWindow(t *testing.T) {
	w, err := NewWindow("2026-02")
	require.NoError(t, err)

	assert.Equal(t, 0.0, Position("2026-02-01", w))
	assert.Equal(t, 100.0, Position("2026-02-28", w))
	assert.InDelta(t, 50.0, Position("2026-02-14T12:00:00Z", w), 1e-9)
}

func TestTodayPosition(t *testing.T) {
	w := DefaultWindow()

	tests := []struct {
		name     string
		ref      time.Time
		expected float64
	}{
		{"first day", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 0},
		{"reference day", time.Date(2026, 1, 27, 0, 0, 0, 0, time.UTC), (26.0 / 31.0) / 14 * 100},
		{"last month", time.Date(2027, 2, 15, 0, 0, 0, 0, time.UTC), (13 + 14.0/28.0) / 14 * 100},
		{"second month start", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), 1.0 / 14 * 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TodayPosition(tt.ref, w)
			require.True(t, ok)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestTodayPosition_OutsideWindow(t *testing.T) {
	w := DefaultWindow()

	_, ok := TodayPosition(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), w)
	assert.False(t, ok)
	_, ok = TodayPosition(time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC), w)
	assert.False(t, ok)
}
