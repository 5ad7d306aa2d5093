package timeline

import (
	"math"

	"github.com/roach88/timeline/internal/model"
)

// MinBarWidth keeps very short tasks visible on the chart.
const MinBarWidth = 2.0

// Bar is one task placed on the chart.
type Bar struct {
	Task     model.Task
	Left     float64 // percent offset of the start
	Width    float64 // percent width, never below MinBarWidth
	Progress int
}

// Row is one display lane of the packed chart.
type Row struct {
	Index int
	Bars  []Bar
}

// Layout packs tasks and projects every bar onto w.
func Layout(tasks []model.Task, w Window) []Row {
	packed := Pack(tasks)
	rows := make([]Row, len(packed))
	for i, lane := range packed {
		bars := make([]Bar, len(lane))
		for j, t := range lane {
			bars[j] = BarFor(t, w)
		}
		rows[i] = Row{Index: i, Bars: bars}
	}
	return rows
}

// BarFor projects a single task onto w.
func BarFor(t model.Task, w Window) Bar {
	span := Span(t)

	left := 0.0
	if span.StartOK {
		left = PositionOf(span.Start, w)
	}
	right := 0.0
	if span.EndOK {
		right = PositionOf(span.End, w)
	}

	return Bar{
		Task:     t,
		Left:     left,
		Width:    math.Max(MinBarWidth, right-left),
		Progress: Progress(t.Checklist),
	}
}
