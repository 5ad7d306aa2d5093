package tasks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/roach88/timeline/internal/model"
	"github.com/roach88/timeline/internal/timeline"
)

// Defaults applied to empty draft fields.
const (
	DefaultTitle    = "Untitled task"
	DefaultAssignee = "Unassigned"
)

// draftLength is how many days a prefilled draft spans after its start.
const draftLength = 6

// Draft holds the user-supplied fields of a new task.
type Draft struct {
	Title       string
	Start       string
	End         string
	Assignee    string
	Description string
	Color       string
}

// Draft returns a prefilled draft for the next task: a numbered title, a one
// week range starting on today and the next palette color. The calendar date
// of today is taken in its own location.
func (s *Store) Draft(today time.Time) Draft {
	n := s.Len()
	y, m, d := today.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return Draft{
		Title: fmt.Sprintf("New task %d", n+1),
		Start: model.FormatDate(start),
		End:   model.FormatDate(start.AddDate(0, 0, draftLength)),
		Color: model.PaletteColor(n),
	}
}

// AddTask appends a new task built from d.
//
// The task gets a fresh ID, status todo and an empty checklist. Empty title,
// assignee and color fall back to DefaultTitle, DefaultAssignee and the
// palette color for the current task count. Dates are stored as given.
func (s *Store) AddTask(ctx context.Context, d Draft) (model.Task, error) {
	var added model.Task
	err := s.commit(ctx, "add_task", func(next []model.Task) ([]model.Task, error) {
		if len(next) >= model.MaxTasks {
			return nil, newTaskCapacityError(model.MaxTasks)
		}
		added = model.Task{
			ID:          s.ids.Next(),
			Title:       orDefault(d.Title, DefaultTitle),
			Start:       d.Start,
			End:         d.End,
			Status:      model.StatusTodo,
			Assignee:    orDefault(d.Assignee, DefaultAssignee),
			Description: d.Description,
			Color:       orDefault(d.Color, model.PaletteColor(len(next))),
			Checklist:   []model.ChecklistItem{},
		}
		return append(next, added), nil
	})
	if err != nil {
		return model.Task{}, err
	}

	s.logger.Info("task added",
		"task_id", added.ID,
		"title", added.Title)
	return added.Clone(), nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// Field names an updatable task field. Status is not a field: it follows the
// checklist.
type Field string

const (
	FieldTitle       Field = "title"
	FieldAssignee    Field = "assignee"
	FieldDescription Field = "description"
	FieldStart       Field = "start"
	FieldEnd         Field = "end"
	FieldColor       Field = "color"
	FieldChecklist   Field = "checklist"
)

// Fields lists the updatable fields.
var Fields = []Field{
	FieldTitle,
	FieldAssignee,
	FieldDescription,
	FieldStart,
	FieldEnd,
	FieldColor,
	FieldChecklist,
}

// ParseField resolves a field name.
func ParseField(name string) (Field, error) {
	for _, f := range Fields {
		if string(f) == name {
			return f, nil
		}
	}
	return "", newInvalidFieldError(Field(name))
}

// UpdateField sets one field of a task.
//
// String fields take a string. FieldChecklist takes a []model.ChecklistItem
// and re-derives the task status. Any other field, or a value of the wrong
// type, is rejected without touching the collection.
func (s *Store) UpdateField(ctx context.Context, id int64, field Field, value any) error {
	if field == FieldChecklist {
		items, ok := value.([]model.ChecklistItem)
		if !ok {
			return newInvalidValueError(id, field, "[]model.ChecklistItem", value)
		}
		if len(items) > model.MaxChecklistItems {
			return newChecklistCapacityError(id, model.MaxChecklistItems)
		}
		if dup, ok := duplicateItem(items); ok {
			return &Error{
				Code:    ErrCodeInvalidValue,
				Message: fmt.Sprintf("duplicate checklist item id %d", dup),
				TaskID:  id,
				ItemID:  dup,
			}
		}
		replacement := make([]model.ChecklistItem, len(items))
		copy(replacement, items)
		return s.updateChecklist(ctx, "set_checklist", id, func(t *model.Task) error {
			t.Checklist = replacement
			return nil
		})
	}

	str, isString := value.(string)
	var set func(t *model.Task)
	switch field {
	case FieldTitle:
		set = func(t *model.Task) { t.Title = str }
	case FieldAssignee:
		set = func(t *model.Task) { t.Assignee = str }
	case FieldDescription:
		set = func(t *model.Task) { t.Description = str }
	case FieldStart:
		set = func(t *model.Task) { t.Start = str }
	case FieldEnd:
		set = func(t *model.Task) { t.End = str }
	case FieldColor:
		set = func(t *model.Task) { t.Color = str }
	default:
		return newInvalidFieldError(field)
	}
	if !isString {
		return newInvalidValueError(id, field, "string", value)
	}

	err := s.updateTask(ctx, "set_"+string(field), id, func(t *model.Task) error {
		set(t)
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Debug("task field updated", "task_id", id, "field", field)
	return nil
}

func duplicateItem(items []model.ChecklistItem) (int64, bool) {
	seen := make(map[int64]bool, len(items))
	for _, item := range items {
		if seen[item.ID] {
			return item.ID, true
		}
		seen[item.ID] = true
	}
	return 0, false
}

// RemoveTask deletes a task. An unknown ID is a not-found error and nothing
// is written.
func (s *Store) RemoveTask(ctx context.Context, id int64) error {
	err := s.commit(ctx, "remove_task", func(next []model.Task) ([]model.Task, error) {
		i := indexOf(next, id)
		if i < 0 {
			return nil, newTaskNotFoundError(id)
		}
		return append(next[:i], next[i+1:]...), nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("task removed", "task_id", id)
	return nil
}

// AddChecklistItem appends an empty, uncompleted item to a task.
func (s *Store) AddChecklistItem(ctx context.Context, taskID int64) (model.ChecklistItem, error) {
	var added model.ChecklistItem
	err := s.updateChecklist(ctx, "add_item", taskID, func(t *model.Task) error {
		if len(t.Checklist) >= model.MaxChecklistItems {
			return newChecklistCapacityError(taskID, model.MaxChecklistItems)
		}
		added = model.ChecklistItem{ID: s.ids.Next()}
		t.Checklist = append(t.Checklist, added)
		return nil
	})
	if err != nil {
		return model.ChecklistItem{}, err
	}
	return added, nil
}

// ToggleChecklistItem flips the completed flag of an item.
func (s *Store) ToggleChecklistItem(ctx context.Context, taskID, itemID int64) error {
	return s.updateItem(ctx, "toggle_item", taskID, itemID, func(item *model.ChecklistItem) {
		item.Completed = !item.Completed
	})
}

// EditChecklistItemText replaces the text of an item.
func (s *Store) EditChecklistItemText(ctx context.Context, taskID, itemID int64, text string) error {
	return s.updateItem(ctx, "edit_item", taskID, itemID, func(item *model.ChecklistItem) {
		item.Text = text
	})
}

// RemoveChecklistItem deletes an item from a task.
func (s *Store) RemoveChecklistItem(ctx context.Context, taskID, itemID int64) error {
	return s.updateChecklist(ctx, "remove_item", taskID, func(t *model.Task) error {
		i := t.ItemIndex(itemID)
		if i < 0 {
			return newItemNotFoundError(taskID, itemID)
		}
		t.Checklist = append(t.Checklist[:i], t.Checklist[i+1:]...)
		return nil
	})
}

func (s *Store) updateItem(ctx context.Context, op string, taskID, itemID int64, apply func(*model.ChecklistItem)) error {
	return s.updateChecklist(ctx, op, taskID, func(t *model.Task) error {
		i := t.ItemIndex(itemID)
		if i < 0 {
			return newItemNotFoundError(taskID, itemID)
		}
		apply(&t.Checklist[i])
		return nil
	})
}

// updateChecklist is the single path for every checklist change. The status
// is re-derived after change runs.
func (s *Store) updateChecklist(ctx context.Context, op string, taskID int64, change func(*model.Task) error) error {
	var before, after model.Status
	err := s.updateTask(ctx, op, taskID, func(t *model.Task) error {
		before = t.Status
		if err := change(t); err != nil {
			return err
		}
		t.Status = timeline.StatusOf(t.Checklist)
		after = t.Status
		return nil
	})
	if err != nil {
		return err
	}
	if before != after {
		s.logger.Info("task status changed",
			"task_id", taskID,
			"from", before,
			"to", after)
	}
	return nil
}

func (s *Store) updateTask(ctx context.Context, op string, id int64, change func(*model.Task) error) error {
	return s.commit(ctx, op, func(next []model.Task) ([]model.Task, error) {
		i := indexOf(next, id)
		if i < 0 {
			return nil, newTaskNotFoundError(id)
		}
		if err := change(&next[i]); err != nil {
			return nil, err
		}
		return next, nil
	})
}
