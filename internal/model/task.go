package model

// Status is the derived workflow state of a task.
type Status string

const (
	StatusTodo  Status = "todo"
	StatusDoing Status = "doing"
	StatusDone  Status = "done"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusDoing, StatusDone:
		return true
	}
	return false
}

// Capacity limits. Exceeding either is rejected, never truncated.
const (
	MaxTasks          = 50
	MaxChecklistItems = 30
)

// ChecklistItem is a single entry of a task checklist.
type ChecklistItem struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Task is a dated unit of work drawn as one bar on the timeline.
//
// Start and End are inclusive calendar dates. Status is derived from the
// checklist and is only written by the task store.
type Task struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Start       string          `json:"start"`
	End         string          `json:"end"`
	Status      Status          `json:"status"`
	Assignee    string          `json:"assignee"`
	Description string          `json:"description"`
	Color       string          `json:"color"`
	Checklist   []ChecklistItem `json:"checklist"`
}

// Clone returns a deep copy of t. The checklist is never nil in the copy.
func (t Task) Clone() Task {
	c := t
	c.Checklist = make([]ChecklistItem, len(t.Checklist))
	copy(c.Checklist, t.Checklist)
	return c
}

// ItemIndex returns the position of the checklist item with the given ID, or -1.
func (t Task) ItemIndex(itemID int64) int {
	for i, item := range t.Checklist {
		if item.ID == itemID {
			return i
		}
	}
	return -1
}

// CloneTasks deep-copies a task slice.
func CloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}
