package timeline

import (
	"cmp"
	"slices"

	"github.com/roach88/timeline/internal/model"
)

type packItem struct {
	task     model.Task
	span     Interval
	startKey string
	endKey   string
}

// Pack assigns tasks to rows so that bars within a row never overlap and are
// separated by at least one day.
//
// Every input task appears in exactly one row. The result is identical for
// the same task set regardless of input order. An empty input yields an
// empty, non-nil slice.
func Pack(tasks []model.Task) [][]model.Task {
	rows := make([][]model.Task, 0)
	if len(tasks) == 0 {
		return rows
	}

	items := sortForPacking(tasks)
	tails := make([]Interval, 0)

	for _, it := range items {
		placed := false
		for r := range rows {
			if tails[r].Fits(it.span) {
				rows[r] = append(rows[r], it.task)
				tails[r] = it.span
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, []model.Task{it.task})
			tails = append(tails, it.span)
		}
	}

	return rows
}

// sortForPacking orders tasks by (start, end, id) ascending.
func sortForPacking(tasks []model.Task) []packItem {
	items := make([]packItem, len(tasks))
	for i, t := range tasks {
		span := Span(t)
		items[i] = packItem{
			task:     t,
			span:     span,
			startKey: span.startKey(t.Start),
			endKey:   span.endKey(t.End),
		}
	}

	slices.SortStableFunc(items, func(a, b packItem) int {
		if c := cmp.Compare(a.startKey, b.startKey); c != 0 {
			return c
		}
		if c := cmp.Compare(a.endKey, b.endKey); c != 0 {
			return c
		}
		return cmp.Compare(a.task.ID, b.task.ID)
	})
	return items
}
