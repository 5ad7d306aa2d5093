package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultWindow(t *testing.T) {
	w := DefaultWindow()

	assert.Equal(t, 14, w.Len())
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), w.Start())
	assert.Equal(t, time.Date(2027, 2, 28, 0, 0, 0, 0, time.UTC), w.End())
	assert.Equal(t, DefaultMonths, w.Strings())
}

func TestNewWindow_Errors(t *testing.T) {
	tests := []struct {
		name   string
		months []string
	}{
		{"empty", nil},
		{"bad format", []string{"2026-1"}},
		{"bad month", []string{"2026-13"}},
		{"gap", []string{"2026-01", "2026-03"}},
		{"reversed", []string{"2026-02", "2026-01"}},
		{"duplicate", []string{"2026-01", "2026-01"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWindow(tt.months...)
			assert.Error(t, err)
		})
	}
}

func TestNewWindow_YearBoundary(t *testing.T) {
	w, err := NewWindow("2026-11", "2026-12", "2027-01")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC), w.Start())
	assert.Equal(t, time.Date(2027, 1, 31, 0, 0, 0, 0, time.UTC), w.End())
}

func TestWindowMonth(t *testing.T) {
	w := DefaultWindow()

	m, ok := w.Month(0)
	require.True(t, ok)
	assert.Equal(t, "2026-01", m.String())
	assert.Equal(t, "2026-01-01", m.FirstDay())
	assert.Equal(t, "2026-01-31", m.LastDay())

	m, ok = w.Month(13)
	require.True(t, ok)
	assert.Equal(t, "2027-02-28", m.LastDay())

	_, ok = w.Month(14)
	assert.False(t, ok)
	_, ok = w.Month(-1)
	assert.False(t, ok)
}

func TestWindowIndex(t *testing.T) {
	w := DefaultWindow()
	assert.Equal(t, 0, w.Index(YearMonth{Year: 2026, Month: time.January}))
	assert.Equal(t, 12, w.Index(YearMonth{Year: 2027, Month: time.January}))
	assert.Equal(t, -1, w.Index(YearMonth{Year: 2025, Month: time.December}))
}

func TestWindowMonths_ReturnsCopy(t *testing.T) {
	w := DefaultWindow()
	months := w.Months()
	months[0] = YearMonth{Year: 1999, Month: time.March}

	first, _ := w.Month(0)
	assert.Equal(t, "2026-01", first.String())
}

func TestZeroWindow(t *testing.T) {
	var w Window
	assert.Equal(t, 0, w.Len())
	assert.Equal(t, 0.0, Position("2026-01-10", w))
	_, ok := TodayPosition(time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), w)
	assert.False(t, ok)
}
