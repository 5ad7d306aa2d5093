package timeline

import (
	"time"

	"github.com/roach88/timeline/internal/model"
)

// Position returns the offset of date within w as a percentage in [0, 100].
// Dates outside the window are clamped. Unparseable dates map to 0.
func Position(date string, w Window) float64 {
	t, err := model.ParseDate(date)
	if err != nil {
		return 0
	}
	return PositionOf(t, w)
}

// PositionOf is Position for an already parsed instant.
func PositionOf(t time.Time, w Window) float64 {
	start := w.Start()
	total := w.End().Sub(start).Milliseconds()
	if total <= 0 {
		return 0
	}
	pos := float64(t.Sub(start).Milliseconds()) / float64(total) * 100
	return clamp(pos, 0, 100)
}

// TodayPosition places a reference date on the chart at month granularity:
// the month's index plus the fraction of the month elapsed before ref's day.
// It reports false when ref's month is not part of w.
func TodayPosition(ref time.Time, w Window) (float64, bool) {
	if w.Len() == 0 {
		return 0, false
	}
	year, month, day := ref.Date()
	idx := w.Index(YearMonth{Year: year, Month: month})
	if idx < 0 {
		return 0, false
	}
	frac := float64(day-1) / float64(model.DaysIn(year, month))
	return (float64(idx) + frac) / float64(w.Len()) * 100, true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
