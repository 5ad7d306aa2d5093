package timeline

import (
	"strings"
	"time"

	"github.com/roach88/timeline/internal/model"
)

// sortKeyLayout keeps lexicographic order equal to chronological order.
const sortKeyLayout = "2006-01-02T15:04:05.000Z"

// Interval is the parsed date range of a task.
type Interval struct {
	Start   time.Time
	End     time.Time
	StartOK bool
	EndOK   bool
}

// Valid reports whether both bounds parsed.
func (iv Interval) Valid() bool {
	return iv.StartOK && iv.EndOK
}

// Span parses a task's date range. When both bounds parse and end precedes
// start, the bounds are swapped.
func Span(t model.Task) Interval {
	var iv Interval
	if s, err := model.ParseDate(t.Start); err == nil {
		iv.Start, iv.StartOK = s, true
	}
	if e, err := model.ParseDate(t.End); err == nil {
		iv.End, iv.EndOK = e, true
	}
	if iv.Valid() && iv.End.Before(iv.Start) {
		iv.Start, iv.End = iv.End, iv.Start
	}
	return iv
}

// Fits reports whether next may follow iv in the same row: next must start at
// least one full day after iv ends.
func (iv Interval) Fits(next Interval) bool {
	if !iv.EndOK || !next.StartOK {
		return false
	}
	return !next.Start.Before(iv.End.Add(model.Day))
}

func (iv Interval) startKey(raw string) string {
	if iv.StartOK {
		return iv.Start.UTC().Format(sortKeyLayout)
	}
	return strings.TrimSpace(raw)
}

func (iv Interval) endKey(raw string) string {
	if iv.EndOK {
		return iv.End.UTC().Format(sortKeyLayout)
	}
	return strings.TrimSpace(raw)
}
