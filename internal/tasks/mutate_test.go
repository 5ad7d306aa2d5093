package tasks

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/timeline/internal/model"
	"github.com/roach88/timeline/internal/testutil"
	"github.com/roach88/timeline/internal/timeline"
)

func TestAddTask_AppliesDefaults(t *testing.T) {
	s, mem := openStore(t, nil)

	task, err := s.AddTask(context.Background(), Draft{Start: "2026-01-27", End: "2026-02-02"})
	require.NoError(t, err)

	assert.Equal(t, DefaultTitle, task.Title)
	assert.Equal(t, DefaultAssignee, task.Assignee)
	assert.Equal(t, model.PaletteColor(3), task.Color)
	assert.Equal(t, model.StatusTodo, task.Status)
	assert.NotNil(t, task.Checklist)
	assert.Empty(t, task.Checklist)
	assert.Equal(t, "2026-01-27", task.Start)

	assert.Equal(t, 4, s.Len())
	assert.Len(t, mem.Writes(), 1)
	assert.Equal(t, s.Tasks(), lastSnapshot(t, mem))
}

func TestAddTask_KeepsDraftFields(t *testing.T) {
	s, _ := openStore(t, []model.Task{})

	task, err := s.AddTask(context.Background(), Draft{
		Title:       "Launch",
		Start:       "2026-11-01",
		End:         "2026-11-30",
		Assignee:    "Kim",
		Description: "go live",
		Color:       "#845EF7",
	})
	require.NoError(t, err)

	assert.Equal(t, "Launch", task.Title)
	assert.Equal(t, "Kim", task.Assignee)
	assert.Equal(t, "go live", task.Description)
	assert.Equal(t, "#845EF7", task.Color)
}

func TestAddTask_StoresBadDatesVerbatim(t *testing.T) {
	s, _ := openStore(t, []model.Task{})

	task, err := s.AddTask(context.Background(), Draft{Start: "someday", End: "2026-01-01"})
	require.NoError(t, err)
	assert.Equal(t, "someday", task.Start)
	assert.Equal(t, 0.0, s.DatePosition(task.Start))
}

func TestAddTask_IDsAreUniqueAndIncreasing(t *testing.T) {
	s, _ := openStore(t, []model.Task{})
	ctx := context.Background()

	var last int64
	for i := 0; i < 10; i++ {
		task, err := s.AddTask(ctx, Draft{})
		require.NoError(t, err)
		assert.Greater(t, task.ID, last)
		last = task.ID
	}
}

func TestAddTask_CapacityExceeded(t *testing.T) {
	s, mem := openStore(t, seedTasks(model.MaxTasks-1))
	ctx := context.Background()

	_, err := s.AddTask(ctx, Draft{Title: "fiftieth"})
	require.NoError(t, err)
	assert.Equal(t, model.MaxTasks, s.Len())

	before := s.Tasks()
	_, err = s.AddTask(ctx, Draft{Title: "fifty-first"})
	require.Error(t, err)
	assert.True(t, IsCapacityError(err))
	assert.Equal(t, before, s.Tasks())
	assert.Len(t, mem.Writes(), 1, "rejected add must not write")
}

func TestUpdateField_StringFields(t *testing.T) {
	s, mem := openStore(t, nil)
	ctx := context.Background()

	updates := map[Field]string{
		FieldTitle:       "Renamed",
		FieldAssignee:    "Someone",
		FieldDescription: "details",
		FieldStart:       "2026-02-01",
		FieldEnd:         "2026-02-10",
		FieldColor:       "#868E96",
	}
	for field, value := range updates {
		require.NoError(t, s.UpdateField(ctx, 3, field, value), field)
	}

	got, _ := s.Task(3)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, "Someone", got.Assignee)
	assert.Equal(t, "details", got.Description)
	assert.Equal(t, "2026-02-01", got.Start)
	assert.Equal(t, "2026-02-10", got.End)
	assert.Equal(t, "#868E96", got.Color)
	assert.Equal(t, model.StatusTodo, got.Status)

	assert.Len(t, mem.Writes(), len(updates))
	assert.Equal(t, s.Tasks(), lastSnapshot(t, mem))
}

func TestUpdateField_ChecklistDerivesStatus(t *testing.T) {
	s, _ := openStore(t, nil)
	ctx := context.Background()

	require.NoError(t, s.UpdateField(ctx, 3, FieldChecklist, testutil.Checklist(1, 2)))
	got, _ := s.Task(3)
	assert.Equal(t, model.StatusDoing, got.Status)

	require.NoError(t, s.UpdateField(ctx, 3, FieldChecklist, testutil.Checklist(2, 2)))
	got, _ = s.Task(3)
	assert.Equal(t, model.StatusDone, got.Status)

	require.NoError(t, s.UpdateField(ctx, 3, FieldChecklist, []model.ChecklistItem{}))
	got, _ = s.Task(3)
	assert.Equal(t, model.StatusTodo, got.Status)
}

func TestUpdateField_ChecklistIsCopied(t *testing.T) {
	s, _ := openStore(t, nil)

	items := testutil.Checklist(0, 2)
	require.NoError(t, s.UpdateField(context.Background(), 3, FieldChecklist, items))

	items[0].Completed = true
	got, _ := s.Task(3)
	assert.False(t, got.Checklist[0].Completed)
}

func TestUpdateField_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		id    int64
		field Field
		value any
		code  ErrorCode
	}{
		{"status is not a field", 1, Field("status"), "done", ErrCodeInvalidField},
		{"id is not a field", 1, Field("id"), "5", ErrCodeInvalidField},
		{"title wants string", 1, FieldTitle, 42, ErrCodeInvalidValue},
		{"start wants string", 1, FieldStart, nil, ErrCodeInvalidValue},
		{"checklist wants items", 1, FieldChecklist, "nope", ErrCodeInvalidValue},
		{"duplicate item ids", 1, FieldChecklist, []model.ChecklistItem{{ID: 1}, {ID: 1}}, ErrCodeInvalidValue},
		{"checklist over limit", 1, FieldChecklist, testutil.Checklist(0, model.MaxChecklistItems+1), ErrCodeCapacityExceeded},
		{"unknown task", 99, FieldTitle, "x", ErrCodeTaskNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mem := openStore(t, nil)
			before := s.Tasks()

			err := s.UpdateField(context.Background(), tt.id, tt.field, tt.value)
			require.Error(t, err)
			assert.Equal(t, tt.code, CodeOf(err))
			assert.Equal(t, before, s.Tasks())
			assert.Empty(t, mem.Writes())
		})
	}
}

func TestParseField(t *testing.T) {
	f, err := ParseField("assignee")
	require.NoError(t, err)
	assert.Equal(t, FieldAssignee, f)

	_, err = ParseField("status")
	assert.Equal(t, ErrCodeInvalidField, CodeOf(err))
}

func TestRemoveTask(t *testing.T) {
	s, mem := openStore(t, nil)

	require.NoError(t, s.RemoveTask(context.Background(), 2))

	_, ok := s.Task(2)
	assert.False(t, ok)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, s.Tasks(), lastSnapshot(t, mem))
}

func TestRemoveTask_UnknownID(t *testing.T) {
	s, mem := openStore(t, nil)

	err := s.RemoveTask(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
	assert.Equal(t, 3, s.Len())
	assert.Empty(t, mem.Writes())
}

func TestAddChecklistItem(t *testing.T) {
	s, mem := openStore(t, nil)

	// Task 1 is done with two completed items; a new open item pulls it back.
	item, err := s.AddChecklistItem(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int64(204), item.ID)
	assert.Equal(t, "", item.Text)
	assert.False(t, item.Completed)

	got, _ := s.Task(1)
	assert.Len(t, got.Checklist, 3)
	assert.Equal(t, model.StatusDoing, got.Status)
	assert.Equal(t, s.Tasks(), lastSnapshot(t, mem))
}

func TestAddChecklistItem_CapacityExceeded(t *testing.T) {
	task := testutil.Task(1, "full", "2026-01-01", "2026-01-31")
	task.Checklist = testutil.Checklist(0, model.MaxChecklistItems-1)
	s, mem := openStore(t, []model.Task{task})
	ctx := context.Background()

	_, err := s.AddChecklistItem(ctx, 1)
	require.NoError(t, err)

	_, err = s.AddChecklistItem(ctx, 1)
	require.Error(t, err)
	assert.True(t, IsCapacityError(err))

	got, _ := s.Task(1)
	assert.Len(t, got.Checklist, model.MaxChecklistItems)
	assert.Len(t, mem.Writes(), 1)
}

func TestAddChecklistItem_UnknownTask(t *testing.T) {
	s, _ := openStore(t, nil)

	_, err := s.AddChecklistItem(context.Background(), 77)
	assert.Equal(t, ErrCodeTaskNotFound, CodeOf(err))
}

func TestToggleChecklistItem(t *testing.T) {
	s, _ := openStore(t, nil)
	ctx := context.Background()

	require.NoError(t, s.ToggleChecklistItem(ctx, 2, 202))
	got, _ := s.Task(2)
	assert.Equal(t, model.StatusDoing, got.Status)

	require.NoError(t, s.ToggleChecklistItem(ctx, 2, 203))
	got, _ = s.Task(2)
	assert.Equal(t, model.StatusDone, got.Status)

	p, _ := s.Progress(2)
	assert.Equal(t, 100, p)

	require.NoError(t, s.ToggleChecklistItem(ctx, 2, 201))
	got, _ = s.Task(2)
	assert.Equal(t, model.StatusDoing, got.Status)
	assert.False(t, got.Checklist[0].Completed)
}

func TestEditChecklistItemText(t *testing.T) {
	s, mem := openStore(t, nil)

	require.NoError(t, s.EditChecklistItemText(context.Background(), 2, 202, "Bar tooltips"))

	got, _ := s.Task(2)
	assert.Equal(t, "Bar tooltips", got.Checklist[1].Text)
	assert.Equal(t, model.StatusDoing, got.Status)
	assert.Len(t, mem.Writes(), 1)
}

func TestRemoveChecklistItem(t *testing.T) {
	s, _ := openStore(t, nil)
	ctx := context.Background()

	// Removing the two open items leaves only completed work.
	require.NoError(t, s.RemoveChecklistItem(ctx, 2, 202))
	require.NoError(t, s.RemoveChecklistItem(ctx, 2, 203))

	got, _ := s.Task(2)
	assert.Len(t, got.Checklist, 1)
	assert.Equal(t, model.StatusDone, got.Status)

	// Removing the last item empties the checklist.
	require.NoError(t, s.RemoveChecklistItem(ctx, 2, 201))
	got, _ = s.Task(2)
	assert.NotNil(t, got.Checklist)
	assert.Equal(t, model.StatusTodo, got.Status)
}

func TestChecklistOps_ItemNotFound(t *testing.T) {
	s, mem := openStore(t, nil)
	ctx := context.Background()

	for _, err := range []error{
		s.ToggleChecklistItem(ctx, 2, 999),
		s.EditChecklistItemText(ctx, 2, 999, "x"),
		s.RemoveChecklistItem(ctx, 2, 999),
		s.ToggleChecklistItem(ctx, 1, 201),
	} {
		require.Error(t, err)
		assert.Equal(t, ErrCodeItemNotFound, CodeOf(err))
		assert.True(t, IsNotFoundError(err))
	}
	assert.Empty(t, mem.Writes())
}

func TestMutation_FailedWriteRollsBack(t *testing.T) {
	s, mem := openStore(t, nil)
	ctx := context.Background()
	boom := errors.New("quota exceeded")
	before := s.Tasks()

	mem.FailPuts(boom)

	_, err := s.AddTask(ctx, Draft{Title: "lost"})
	assert.ErrorIs(t, err, boom)
	err = s.ToggleChecklistItem(ctx, 2, 202)
	assert.ErrorIs(t, err, boom)
	err = s.RemoveTask(ctx, 1)
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, before, s.Tasks())

	mem.FailPuts(nil)
	require.NoError(t, s.ToggleChecklistItem(ctx, 2, 202))
	assert.Equal(t, s.Tasks(), lastSnapshot(t, mem))
}

func TestMutation_SnapshotAfterEverySuccess(t *testing.T) {
	s, mem := openStore(t, nil)
	ctx := context.Background()

	task, err := s.AddTask(ctx, Draft{Title: "new"})
	require.NoError(t, err)
	item, err := s.AddChecklistItem(ctx, task.ID)
	require.NoError(t, err)
	require.NoError(t, s.EditChecklistItemText(ctx, task.ID, item.ID, "write docs"))
	require.NoError(t, s.ToggleChecklistItem(ctx, task.ID, item.ID))
	require.NoError(t, s.UpdateField(ctx, task.ID, FieldEnd, "2026-03-01"))
	require.NoError(t, s.RemoveTask(ctx, 1))

	// A rejected call in between writes nothing.
	require.Error(t, s.RemoveTask(ctx, 1))

	assert.Len(t, mem.Writes(), 6)
	assert.Equal(t, s.Tasks(), lastSnapshot(t, mem))
}

func TestMutation_StatusAlwaysFollowsChecklist(t *testing.T) {
	s, _ := openStore(t, nil)
	ctx := context.Background()

	check := func() {
		for _, task := range s.Tasks() {
			assert.Equal(t, timeline.StatusOf(task.Checklist), task.Status, "task %d", task.ID)
		}
	}

	check()
	for i := 0; i < 5; i++ {
		item, err := s.AddChecklistItem(ctx, 3)
		require.NoError(t, err)
		check()
		require.NoError(t, s.ToggleChecklistItem(ctx, 3, item.ID))
		check()
	}
	require.NoError(t, s.UpdateField(ctx, 1, FieldChecklist, testutil.Checklist(0, 4)))
	check()
}

func TestMutation_ConcurrentAddsAreSerialized(t *testing.T) {
	s, mem := openStore(t, nil)
	ctx := context.Background()

	const n = 40
	var wg sync.WaitGroup
	ids := make(chan int64, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			task, err := s.AddTask(ctx, Draft{})
			if assert.NoError(t, err) {
				ids <- task.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
	assert.Equal(t, 3+n, s.Len())
	assert.Len(t, mem.Writes(), n)
	assert.Equal(t, s.Tasks(), lastSnapshot(t, mem))
}

func TestDraft(t *testing.T) {
	s, _ := openStore(t, nil)

	d := s.Draft(testutil.FixedNow("2026-01-27")())

	assert.Equal(t, "New task 4", d.Title)
	assert.Equal(t, "2026-01-27", d.Start)
	assert.Equal(t, "2026-02-02", d.End)
	assert.Equal(t, model.PaletteColor(3), d.Color)
}

func TestDraft_UsesCallerCalendarDate(t *testing.T) {
	s, _ := openStore(t, nil)

	tests := []struct {
		name  string
		today time.Time
		start string
		end   string
	}{
		{"east of UTC, early morning", time.Date(2026, 2, 1, 7, 0, 0, 0, time.FixedZone("KST", 9*3600)), "2026-02-01", "2026-02-07"},
		{"west of UTC, late evening", time.Date(2026, 1, 31, 22, 0, 0, 0, time.FixedZone("PST", -8*3600)), "2026-01-31", "2026-02-06"},
		{"UTC midnight", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), "2026-03-01", "2026-03-07"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := s.Draft(tt.today)
			assert.Equal(t, tt.start, d.Start)
			assert.Equal(t, tt.end, d.End)

			start, err := model.ParseDate(d.Start)
			require.NoError(t, err)
			want, ok := s.TodayPosition(start)
			require.True(t, ok)
			got, _ := s.TodayPosition(tt.today)
			assert.Equal(t, want, got, "today marker and draft start fall on the same day")
		})
	}
}
