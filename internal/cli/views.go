package cli

import (
	"github.com/roach88/timeline/internal/model"
	"github.com/roach88/timeline/internal/tasks"
	"github.com/roach88/timeline/internal/timeline"
)

// TaskView is a task with its derived progress.
type TaskView struct {
	ID          int64                 `json:"id"`
	Title       string                `json:"title"`
	Start       string                `json:"start"`
	End         string                `json:"end"`
	Status      model.Status          `json:"status"`
	Progress    int                   `json:"progress"`
	Assignee    string                `json:"assignee"`
	Description string                `json:"description"`
	Color       string                `json:"color"`
	Checklist   []model.ChecklistItem `json:"checklist"`
}

// BarView is one projected bar of the chart.
type BarView struct {
	ID       int64        `json:"id"`
	Title    string       `json:"title"`
	Start    string       `json:"start"`
	End      string       `json:"end"`
	Status   model.Status `json:"status"`
	Color    string       `json:"color"`
	Left     float64      `json:"left"`
	Width    float64      `json:"width"`
	Progress int          `json:"progress"`
}

// ChartView is the packed chart: window months, rows of bars and the today
// marker when the reference date lies inside the window.
type ChartView struct {
	Months []string    `json:"months"`
	Today  *float64    `json:"today,omitempty"`
	Rows   [][]BarView `json:"rows"`
}

// GroupView is one status group of the task list.
type GroupView struct {
	Status model.Status `json:"status,omitempty"`
	Tasks  []TaskView   `json:"tasks"`
}

// TodayView reports the today marker.
type TodayView struct {
	Date     string  `json:"date"`
	Inside   bool    `json:"inside"`
	Position float64 `json:"position"`
}

func newTaskView(t model.Task) TaskView {
	checklist := t.Checklist
	if checklist == nil {
		checklist = []model.ChecklistItem{}
	}
	return TaskView{
		ID:          t.ID,
		Title:       t.Title,
		Start:       t.Start,
		End:         t.End,
		Status:      t.Status,
		Progress:    timeline.Progress(t.Checklist),
		Assignee:    t.Assignee,
		Description: t.Description,
		Color:       t.Color,
		Checklist:   checklist,
	}
}

func newChartView(w timeline.Window, rows []timeline.Row, today float64, inside bool) ChartView {
	view := ChartView{
		Months: w.Strings(),
		Rows:   make([][]BarView, len(rows)),
	}
	if inside {
		view.Today = &today
	}
	for i, row := range rows {
		bars := make([]BarView, len(row.Bars))
		for j, b := range row.Bars {
			bars[j] = BarView{
				ID:       b.Task.ID,
				Title:    b.Task.Title,
				Start:    b.Task.Start,
				End:      b.Task.End,
				Status:   b.Task.Status,
				Color:    b.Task.Color,
				Left:     b.Left,
				Width:    b.Width,
				Progress: b.Progress,
			}
		}
		view.Rows[i] = bars
	}
	return view
}

func newGroupViews(groups []tasks.Group) []GroupView {
	views := make([]GroupView, len(groups))
	for i, g := range groups {
		ts := make([]TaskView, len(g.Tasks))
		for j, t := range g.Tasks {
			ts[j] = newTaskView(t)
		}
		views[i] = GroupView{Status: g.Status, Tasks: ts}
	}
	return views
}
