package timeline

import (
	"fmt"
	"time"

	"github.com/roach88/timeline/internal/model"
)

// DefaultMonths is the chart window used when none is configured.
var DefaultMonths = []string{
	"2026-01", "2026-02", "2026-03", "2026-04", "2026-05",
	"2026-06", "2026-07", "2026-08", "2026-09", "2026-10",
	"2026-11", "2026-12", "2027-01", "2027-02",
}

// YearMonth is one calendar month of the chart window.
type YearMonth struct {
	Year  int
	Month time.Month
}

// ParseYearMonth parses "YYYY-MM".
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid month %q: expected YYYY-MM", s)
	}
	return YearMonth{Year: t.Year(), Month: t.Month()}, nil
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// Next returns the following calendar month.
func (ym YearMonth) Next() YearMonth {
	if ym.Month == time.December {
		return YearMonth{Year: ym.Year + 1, Month: time.January}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month + 1}
}

// Days returns the number of days in the month.
func (ym YearMonth) Days() int {
	return model.DaysIn(ym.Year, ym.Month)
}

// FirstDay returns the first day of the month as YYYY-MM-DD.
func (ym YearMonth) FirstDay() string {
	return model.FirstOfMonth(ym.Year, ym.Month)
}

// LastDay returns the last day of the month as YYYY-MM-DD.
func (ym YearMonth) LastDay() string {
	return model.LastOfMonth(ym.Year, ym.Month)
}

// Window is a contiguous, ordered run of months bounding the chart.
//
// The projection domain runs from UTC midnight of the first day of the first
// month to UTC midnight of the last day of the last month, so that the last
// calendar date of the window projects to exactly 100.
type Window struct {
	months []YearMonth
}

// NewWindow builds a window from "YYYY-MM" strings. The months must be
// non-empty and strictly contiguous.
func NewWindow(months ...string) (Window, error) {
	if len(months) == 0 {
		return Window{}, fmt.Errorf("window requires at least one month")
	}

	parsed := make([]YearMonth, len(months))
	for i, m := range months {
		ym, err := ParseYearMonth(m)
		if err != nil {
			return Window{}, err
		}
		if i > 0 && parsed[i-1].Next() != ym {
			return Window{}, fmt.Errorf("window months must be contiguous: %s does not follow %s", ym, parsed[i-1])
		}
		parsed[i] = ym
	}
	return Window{months: parsed}, nil
}

// DefaultWindow returns the window spanned by DefaultMonths.
func DefaultWindow() Window {
	w, err := NewWindow(DefaultMonths...)
	if err != nil {
		panic(fmt.Sprintf("timeline: invalid default window: %v", err))
	}
	return w
}

// Len returns the number of months in the window.
func (w Window) Len() int {
	return len(w.months)
}

// Months returns a copy of the window months.
func (w Window) Months() []YearMonth {
	out := make([]YearMonth, len(w.months))
	copy(out, w.months)
	return out
}

// Month returns the i-th month of the window.
func (w Window) Month(i int) (YearMonth, bool) {
	if i < 0 || i >= len(w.months) {
		return YearMonth{}, false
	}
	return w.months[i], true
}

// Index returns the position of ym in the window, or -1.
func (w Window) Index(ym YearMonth) int {
	for i, m := range w.months {
		if m == ym {
			return i
		}
	}
	return -1
}

// Start returns the first instant of the projection domain.
func (w Window) Start() time.Time {
	if len(w.months) == 0 {
		return time.Time{}
	}
	first := w.months[0]
	return time.Date(first.Year, first.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the last instant of the projection domain.
func (w Window) End() time.Time {
	if len(w.months) == 0 {
		return time.Time{}
	}
	last := w.months[len(w.months)-1]
	return time.Date(last.Year, last.Month, last.Days(), 0, 0, 0, 0, time.UTC)
}

// Strings returns the months in "YYYY-MM" form.
func (w Window) Strings() []string {
	out := make([]string, len(w.months))
	for i, m := range w.months {
		out[i] = m.String()
	}
	return out
}
