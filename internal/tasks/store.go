package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/roach88/timeline/internal/migrate"
	"github.com/roach88/timeline/internal/model"
	"github.com/roach88/timeline/internal/store"
	"github.com/roach88/timeline/internal/timeline"
)

// Store is the canonical task collection.
//
// Thread-safety model:
//   - mutations are serialized by mu; each one commits in memory and then
//     writes the full snapshot before the next one starts
//   - reads take the same lock and always return copies
//
// INVARIANTS:
//   - task IDs are unique; item IDs are unique within a task
//   - every task's Status equals timeline.StatusOf(task.Checklist)
//   - len(tasks) <= model.MaxTasks, len(checklist) <= model.MaxChecklistItems
//     for every change made through the store
type Store struct {
	mu      sync.Mutex
	backend store.Backend
	window  timeline.Window
	ids     IDSource
	logger  *slog.Logger
	tasks   []model.Task
}

// Option configures a Store.
type Option func(*Store)

// WithWindow sets the chart window used for projection and legacy migration.
//
// Default: timeline.DefaultWindow()
func WithWindow(w timeline.Window) Option {
	return func(s *Store) {
		s.window = w
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// WithIDSource replaces the wall-clock ID source, e.g. with a deterministic
// sequence in tests.
func WithIDSource(ids IDSource) Option {
	return func(s *Store) {
		s.ids = ids
	}
}

// Open loads the task collection from backend.
//
// A missing payload loads the default dataset. A payload that cannot be
// decoded also loads the defaults; the failure is logged, never returned.
// Only a backend read error is returned.
func Open(ctx context.Context, backend store.Backend, opts ...Option) (*Store, error) {
	s := &Store{
		backend: backend,
		window:  timeline.DefaultWindow(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ids == nil {
		s.ids = NewClock()
	}

	raw, found, err := backend.Get(ctx, store.KeyTasks)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", store.KeyTasks, err)
	}

	s.tasks = s.decode(raw, found)
	for _, t := range s.tasks {
		s.ids.Observe(t.ID)
		for _, item := range t.Checklist {
			s.ids.Observe(item.ID)
		}
	}

	s.logger.Debug("task store loaded",
		"tasks", len(s.tasks),
		"window_start", model.FormatDate(s.window.Start()),
		"window_end", model.FormatDate(s.window.End()))

	return s, nil
}

func (s *Store) decode(raw []byte, found bool) []model.Task {
	if !found {
		s.logger.Info("no saved tasks, loading defaults")
		return model.DefaultTasks()
	}

	res, err := migrate.Decode(raw, s.window)
	if err != nil {
		s.logger.Warn("saved tasks unreadable, loading defaults",
			"key", store.KeyTasks,
			"error", err)
		return model.DefaultTasks()
	}
	if res.Upgraded > 0 {
		s.logger.Info("migrated legacy task records",
			"upgraded", res.Upgraded,
			"target_version", int(migrate.Current))
	}
	return res.Tasks
}

// Window returns the chart window.
func (s *Store) Window() timeline.Window {
	return s.window
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Tasks returns a copy of the collection in insertion order.
func (s *Store) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CloneTasks(s.tasks)
}

// Task returns a copy of the task with the given ID.
func (s *Store) Task(id int64) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.tasks, id)
	if i < 0 {
		return model.Task{}, false
	}
	return s.tasks[i].Clone(), true
}

// PackedRows packs the current collection into timeline rows.
func (s *Store) PackedRows() [][]model.Task {
	return timeline.Pack(s.Tasks())
}

// Layout returns the packed rows as positioned bars.
func (s *Store) Layout() []timeline.Row {
	return timeline.Layout(s.Tasks(), s.window)
}

// DatePosition projects a date onto the chart window.
func (s *Store) DatePosition(date string) float64 {
	return timeline.Position(date, s.window)
}

// TodayPosition returns where ref falls on the chart, or false when its
// month is outside the window.
func (s *Store) TodayPosition(ref time.Time) (float64, bool) {
	return timeline.TodayPosition(ref, s.window)
}

// Progress returns the checklist completion percentage of a task.
func (s *Store) Progress(id int64) (int, error) {
	t, ok := s.Task(id)
	if !ok {
		return 0, newTaskNotFoundError(id)
	}
	return timeline.Progress(t.Checklist), nil
}

// commit runs change against a copy of the collection and, if it succeeds,
// persists the copy and swaps it in. Any failure leaves the collection and
// the backend untouched.
func (s *Store) commit(ctx context.Context, op string, change func(next []model.Task) ([]model.Task, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := change(model.CloneTasks(s.tasks))
	if err != nil {
		s.logger.Debug("mutation rejected", "op", op, "error", err)
		return err
	}

	data, err := model.MarshalTasks(next)
	if err != nil {
		return fmt.Errorf("%s: encode snapshot: %w", op, err)
	}
	if err := s.backend.Put(ctx, store.KeyTasks, data); err != nil {
		s.logger.Error("snapshot write failed, change rolled back",
			"op", op,
			"error", err)
		return fmt.Errorf("%s: write snapshot: %w", op, err)
	}

	s.tasks = next
	s.logger.Debug("mutation committed",
		"op", op,
		"tasks", len(next),
		"bytes", len(data))
	return nil
}

func indexOf(tasks []model.Task, id int64) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
