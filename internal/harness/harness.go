package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/roach88/timeline/internal/model"
	"github.com/roach88/timeline/internal/store"
	"github.com/roach88/timeline/internal/tasks"
	"github.com/roach88/timeline/internal/testutil"
	"github.com/roach88/timeline/internal/timeline"
)

// Harness executes scenario steps against a task store.
type Harness struct {
	backend *store.SQLite
	tasks   *tasks.Store
	clock   *testutil.DeterministicClock
	logger  *slog.Logger
	result  *Result

	taskRefs map[string]int64
	itemRefs map[string]int64
	seq      int64
}

// Option configures Run.
type Option func(*Harness)

// WithLogger sets the harness and store logger. Logs are discarded by default.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) {
		h.logger = l
	}
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory SQLite database with a
// deterministic ID sequence, so the same scenario always produces the same
// IDs and rows.
//
// Execution flow:
// 1. Create fresh in-memory database, seeded empty unless Defaults is set
// 2. Open the task store over it
// 3. Execute setup steps (all must succeed)
// 4. Execute flow steps, checking expected rejections
// 5. Evaluate assertions
//
// An error is returned when the scenario itself is broken, e.g. it names an
// unknown reference or a setup step fails.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	ctx := context.Background()

	backend, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer backend.Close()

	h := &Harness{
		backend:  backend,
		clock:    testutil.NewDeterministicClock(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		result:   NewResult(),
		taskRefs: make(map[string]int64),
		itemRefs: make(map[string]int64),
	}
	for _, opt := range opts {
		opt(h)
	}

	window := timeline.DefaultWindow()
	if len(scenario.Months) > 0 {
		window, err = timeline.NewWindow(scenario.Months...)
		if err != nil {
			return nil, fmt.Errorf("months: %w", err)
		}
	}

	if !scenario.Defaults {
		if err := backend.Put(ctx, store.KeyTasks, []byte("[]")); err != nil {
			return nil, fmt.Errorf("failed to seed empty collection: %w", err)
		}
	}

	h.tasks, err = tasks.Open(ctx, backend,
		tasks.WithWindow(window),
		tasks.WithIDSource(h.clock),
		tasks.WithLogger(h.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to open task store: %w", err)
	}

	for i, step := range scenario.Setup {
		for n := 0; n < max(step.Repeat, 1); n++ {
			if err := h.execute(ctx, step); err != nil {
				return nil, fmt.Errorf("setup step %d (%s): %w", i, step.Op, err)
			}
		}
	}

	for i, step := range scenario.Flow {
		for n := 0; n < max(step.Repeat, 1); n++ {
			if err := h.runFlowStep(ctx, i, step); err != nil {
				return nil, err
			}
		}
	}

	h.result.Rows = h.tasks.PackedRows()

	actx := &AssertionContext{
		Ctx:     ctx,
		Tasks:   h.tasks,
		Backend: backend,
		Refs:    h.resolveTask,
	}
	for _, msg := range EvaluateAssertions(h.result, scenario.Assertions, actx) {
		h.result.AddError(msg)
	}

	return h.result, nil
}

// runFlowStep executes one flow step and records it in the trace.
func (h *Harness) runFlowStep(ctx context.Context, index int, step Step) error {
	h.seq++
	ev := TraceEvent{Seq: h.seq, Op: step.Op, Task: step.Task, Item: step.Item, Outcome: OutcomeOK}

	err := h.execute(ctx, step)
	var se *tasks.Error
	switch {
	case err == nil:
	case errors.As(err, &se):
		ev.Outcome = string(se.Code)
		h.result.Rejected++
	default:
		return fmt.Errorf("flow step %d (%s): %w", index, step.Op, err)
	}
	h.result.AddTrace(ev)

	if ev.Outcome != expectedOutcome(step) {
		h.result.AddError(fmt.Sprintf("flow[%d] %s: expected %s, got %s",
			index, step.Op, expectedOutcome(step), ev.Outcome))
	}

	h.logger.Info("flow step completed",
		"step", index,
		"op", step.Op,
		"outcome", ev.Outcome)
	return nil
}

func expectedOutcome(step Step) string {
	if step.ExpectError != "" {
		return step.ExpectError
	}
	return OutcomeOK
}

// execute applies a step to the store. Store rejections are returned as
// *tasks.Error; anything else means the scenario is broken.
func (h *Harness) execute(ctx context.Context, step Step) error {
	switch step.Op {
	case OpAddTask:
		t, err := h.tasks.AddTask(ctx, tasks.Draft{
			Title:       step.Title,
			Start:       step.Start,
			End:         step.End,
			Assignee:    step.Assignee,
			Description: step.Description,
			Color:       step.Color,
		})
		if err != nil {
			return err
		}
		if step.As != "" {
			h.taskRefs[step.As] = t.ID
			h.result.refs[t.ID] = step.As
		}
		return h.addItems(ctx, t.ID, step.Items)

	case OpUpdateField:
		id, err := h.resolveTask(step.Task)
		if err != nil {
			return err
		}
		field := tasks.Field(step.Field)
		if field == tasks.FieldChecklist {
			return h.tasks.UpdateField(ctx, id, field, h.buildChecklist(step.Items))
		}
		return h.tasks.UpdateField(ctx, id, field, step.Value)

	case OpRemoveTask:
		id, err := h.resolveTask(step.Task)
		if err != nil {
			return err
		}
		return h.tasks.RemoveTask(ctx, id)

	case OpAddItem:
		id, err := h.resolveTask(step.Task)
		if err != nil {
			return err
		}
		item, err := h.tasks.AddChecklistItem(ctx, id)
		if err != nil {
			return err
		}
		if step.As != "" {
			h.itemRefs[step.As] = item.ID
		}
		return nil

	case OpToggleItem, OpEditItem, OpRemoveItem:
		id, err := h.resolveTask(step.Task)
		if err != nil {
			return err
		}
		itemID, err := h.resolveItem(step.Item)
		if err != nil {
			return err
		}
		switch step.Op {
		case OpToggleItem:
			return h.tasks.ToggleChecklistItem(ctx, id, itemID)
		case OpEditItem:
			return h.tasks.EditChecklistItemText(ctx, id, itemID, step.Text)
		default:
			return h.tasks.RemoveChecklistItem(ctx, id, itemID)
		}
	}
	return fmt.Errorf("unknown op %q", step.Op)
}

// addItems creates the checklist entries of a new task through the store.
func (h *Harness) addItems(ctx context.Context, taskID int64, specs []ItemSpec) error {
	for _, spec := range specs {
		item, err := h.tasks.AddChecklistItem(ctx, taskID)
		if err != nil {
			return err
		}
		if spec.Ref != "" {
			h.itemRefs[spec.Ref] = item.ID
		}
		if spec.Text != "" {
			if err := h.tasks.EditChecklistItemText(ctx, taskID, item.ID, spec.Text); err != nil {
				return err
			}
		}
		if spec.Completed {
			if err := h.tasks.ToggleChecklistItem(ctx, taskID, item.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

// buildChecklist turns item specs into a replacement checklist with fresh IDs.
func (h *Harness) buildChecklist(specs []ItemSpec) []model.ChecklistItem {
	items := make([]model.ChecklistItem, len(specs))
	for i, spec := range specs {
		items[i] = model.ChecklistItem{ID: h.clock.Next(), Text: spec.Text, Completed: spec.Completed}
		if spec.Ref != "" {
			h.itemRefs[spec.Ref] = items[i].ID
		}
	}
	return items
}

func (h *Harness) resolveTask(ref string) (int64, error) {
	if id, ok := h.taskRefs[ref]; ok {
		return id, nil
	}
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return id, nil
	}
	return 0, fmt.Errorf("unknown task reference %q", ref)
}

func (h *Harness) resolveItem(ref string) (int64, error) {
	if id, ok := h.itemRefs[ref]; ok {
		return id, nil
	}
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return id, nil
	}
	return 0, fmt.Errorf("unknown item reference %q", ref)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
