package model

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-date form used for task start and end.
const DateLayout = "2006-01-02"

// Day is the length of the mandatory gap between packed bars.
const Day = 24 * time.Hour

// ParseDate parses a task date into a UTC instant.
//
// Surrounding whitespace is ignored. Plain calendar dates resolve to UTC
// midnight; full RFC 3339 timestamps are accepted as-is.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t.UTC(), nil
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstOfMonth returns the first calendar day of the month as YYYY-MM-DD.
func FirstOfMonth(year int, month time.Month) string {
	return FormatDate(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// LastOfMonth returns the last calendar day of the month as YYYY-MM-DD.
func LastOfMonth(year int, month time.Month) string {
	return FormatDate(time.Date(year, month, DaysIn(year, month), 0, 0, 0, 0, time.UTC))
}
