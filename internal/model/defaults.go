package model

// DefaultTasks returns the built-in dataset used when nothing usable is
// persisted. Each call returns a fresh copy.
func DefaultTasks() []Task {
	return []Task{
		{
			ID:          1,
			Title:       "Foundation design",
			Start:       "2026-01-01",
			End:         "2026-01-31",
			Status:      StatusDone,
			Assignee:    "Jung Woo-sung",
			Description: "Initial project structure and database schema design",
			Color:       "#51CF66",
			Checklist: []ChecklistItem{
				{ID: 101, Text: "Requirements analysis", Completed: true},
				{ID: 102, Text: "Data modeling", Completed: true},
			},
		},
		{
			ID:          2,
			Title:       "UI development",
			Start:       "2026-03-01",
			End:         "2026-07-15",
			Status:      StatusDoing,
			Assignee:    "Lee Jung-jae",
			Description: "Main dashboard and component development",
			Color:       "#339AF0",
			Checklist: []ChecklistItem{
				{ID: 201, Text: "Gantt component", Completed: true},
				{ID: 202, Text: "Task card styling", Completed: false},
				{ID: 203, Text: "Responsive layout", Completed: false},
			},
		},
		{
			ID:          3,
			Title:       "API integration",
			Start:       "2026-08-01",
			End:         "2026-10-15",
			Status:      StatusTodo,
			Assignee:    "Park Hae-il",
			Description: "Backend services and external data source integration",
			Color:       "#FF922B",
			Checklist:   []ChecklistItem{},
		},
	}
}
