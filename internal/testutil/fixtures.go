package testutil

import (
	"fmt"
	"time"

	"github.com/roach88/timeline/internal/model"
)

// Task builds a task with an empty checklist.
func Task(id int64, title, start, end string) model.Task {
	return model.Task{
		ID:        id,
		Title:     title,
		Start:     start,
		End:       end,
		Status:    model.StatusTodo,
		Assignee:  "Unassigned",
		Color:     model.PaletteColor(int(id)),
		Checklist: []model.ChecklistItem{},
	}
}

// Checklist builds total items of which the first done are completed.
// Item IDs start at 1.
func Checklist(done, total int) []model.ChecklistItem {
	items := make([]model.ChecklistItem, total)
	for i := range items {
		items[i] = model.ChecklistItem{
			ID:        int64(i + 1),
			Text:      fmt.Sprintf("item %d", i+1),
			Completed: i < done,
		}
	}
	return items
}

// Date parses a YYYY-MM-DD date and panics if it is invalid.
func Date(s string) time.Time {
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		panic(fmt.Sprintf("testutil.Date(%q): %v", s, err))
	}
	return t
}

// FixedNow returns a clock function that always reports date at noon UTC.
func FixedNow(date string) func() time.Time {
	t := Date(date).Add(12 * time.Hour)
	return func() time.Time { return t }
}
