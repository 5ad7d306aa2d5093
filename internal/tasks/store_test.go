package tasks

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/timeline/internal/migrate"
	"github.com/roach88/timeline/internal/model"
	"github.com/roach88/timeline/internal/store"
	"github.com/roach88/timeline/internal/testutil"
	"github.com/roach88/timeline/internal/timeline"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// openStore opens a store over a Memory backend. A nil seed leaves the
// backend empty so the defaults load.
func openStore(t *testing.T, seed []model.Task) (*Store, *store.Memory) {
	t.Helper()

	mem := store.NewMemory()
	if seed != nil {
		data, err := model.MarshalTasks(seed)
		require.NoError(t, err)
		mem.Seed(store.KeyTasks, data)
	}

	s, err := Open(context.Background(), mem,
		WithIDSource(testutil.NewDeterministicClock()),
		WithLogger(quietLogger()))
	require.NoError(t, err)
	return s, mem
}

// lastSnapshot decodes the most recent write to the tasks key.
func lastSnapshot(t *testing.T, mem *store.Memory) []model.Task {
	t.Helper()

	writes := mem.Writes()
	require.NotEmpty(t, writes, "no snapshot written")
	last := writes[len(writes)-1]
	require.Equal(t, store.KeyTasks, last.Key)

	res, err := migrate.Decode(last.Value, timeline.DefaultWindow())
	require.NoError(t, err)
	return res.Tasks
}

func seedTasks(n int) []model.Task {
	out := make([]model.Task, n)
	for i := range out {
		out[i] = testutil.Task(int64(i+1), "seeded", "2026-01-01", "2026-01-02")
	}
	return out
}

type brokenBackend struct{ err error }

func (b brokenBackend) Get(context.Context, string) ([]byte, bool, error) { return nil, false, b.err }
func (b brokenBackend) Put(context.Context, string, []byte) error         { return b.err }

func TestOpen_MissingPayloadLoadsDefaults(t *testing.T) {
	s, mem := openStore(t, nil)

	assert.Equal(t, model.DefaultTasks(), s.Tasks())
	assert.Empty(t, mem.Writes(), "loading must not write")
}

func TestOpen_MalformedPayloadLoadsDefaults(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	for _, raw := range []string{`{"not":"an array"}`, `[{"id":1,`, `[{"id":1,"start":0,"end":40}]`} {
		mem := store.NewMemory()
		mem.Seed(store.KeyTasks, []byte(raw))

		s, err := Open(context.Background(), mem, WithLogger(logger))
		require.NoError(t, err, raw)
		assert.Equal(t, model.DefaultTasks(), s.Tasks(), raw)
		assert.Empty(t, mem.Writes())
	}

	assert.Contains(t, logs.String(), "saved tasks unreadable")
	assert.Contains(t, logs.String(), "level=WARN")
}

func TestOpen_LegacyPayloadIsMigrated(t *testing.T) {
	mem := store.NewMemory()
	mem.Seed(store.KeyTasks, []byte(`[{"id":7,"title":"Legacy","start":0,"end":0,"status":"done","checklist":[]}]`))

	s, err := Open(context.Background(), mem,
		WithIDSource(testutil.NewDeterministicClock()),
		WithLogger(quietLogger()))
	require.NoError(t, err)

	got, ok := s.Task(7)
	require.True(t, ok)
	assert.Equal(t, "2026-01-01", got.Start)
	assert.Equal(t, "2026-01-31", got.End)
	assert.Equal(t, model.StatusTodo, got.Status, "status re-derived from empty checklist")
}

func TestOpen_UsesWindowForMigration(t *testing.T) {
	w, err := timeline.NewWindow("2028-01", "2028-02", "2028-03")
	require.NoError(t, err)

	mem := store.NewMemory()
	mem.Seed(store.KeyTasks, []byte(`[{"id":1,"start":1,"end":1}]`))

	s, err := Open(context.Background(), mem, WithWindow(w), WithLogger(quietLogger()))
	require.NoError(t, err)

	got, ok := s.Task(1)
	require.True(t, ok)
	assert.Equal(t, "2028-02-01", got.Start)
	assert.Equal(t, "2028-02-29", got.End)
	assert.Equal(t, w, s.Window())
}

func TestOpen_BackendErrorIsReturned(t *testing.T) {
	boom := errors.New("disk on fire")

	_, err := Open(context.Background(), brokenBackend{err: boom}, WithLogger(quietLogger()))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestOpen_IDsStartAboveLoadedIDs(t *testing.T) {
	s, _ := openStore(t, nil)

	task, err := s.AddTask(context.Background(), Draft{})
	require.NoError(t, err)

	// Highest ID in the default dataset is checklist item 203.
	assert.Equal(t, int64(204), task.ID)
}

func TestReads_ReturnCopies(t *testing.T) {
	s, _ := openStore(t, nil)

	tasks := s.Tasks()
	tasks[0].Title = "mutated"
	tasks[0].Checklist[0].Completed = false

	got, ok := s.Task(tasks[0].ID)
	require.True(t, ok)
	assert.Equal(t, "Foundation design", got.Title)
	assert.True(t, got.Checklist[0].Completed)

	_, ok = s.Task(999)
	assert.False(t, ok)
}

func TestPackedRows_Defaults(t *testing.T) {
	s, _ := openStore(t, nil)

	rows := s.PackedRows()
	require.Len(t, rows, 1)
	require.Len(t, rows[0], 3)
	assert.Equal(t, int64(1), rows[0][0].ID)
	assert.Equal(t, int64(2), rows[0][1].ID)
	assert.Equal(t, int64(3), rows[0][2].ID)

	layout := s.Layout()
	require.Len(t, layout, 1)
	assert.Len(t, layout[0].Bars, 3)
	assert.Equal(t, 100, layout[0].Bars[0].Progress)
}

func TestPackedRows_OverlapScenario(t *testing.T) {
	s, _ := openStore(t, []model.Task{
		testutil.Task(1, "A", "2026-01-01", "2026-01-10"),
		testutil.Task(2, "B", "2026-01-05", "2026-01-15"),
		testutil.Task(3, "C", "2026-01-11", "2026-01-20"),
	})

	rows := s.PackedRows()
	require.Len(t, rows, 2)
	assert.Equal(t, []int64{1, 3}, []int64{rows[0][0].ID, rows[0][1].ID})
	assert.Equal(t, int64(2), rows[1][0].ID)
}

func TestPositions(t *testing.T) {
	s, _ := openStore(t, nil)

	assert.Equal(t, 0.0, s.DatePosition("2026-01-01"))
	assert.Equal(t, 100.0, s.DatePosition("2027-02-28"))
	assert.Equal(t, 0.0, s.DatePosition("not a date"))

	pos, ok := s.TodayPosition(testutil.Date("2026-01-27"))
	require.True(t, ok)
	assert.InDelta(t, (26.0/31.0)/14.0*100, pos, 1e-9)

	_, ok = s.TodayPosition(testutil.Date("2025-12-31"))
	assert.False(t, ok)
}

func TestProgress(t *testing.T) {
	s, _ := openStore(t, nil)

	p, err := s.Progress(1)
	require.NoError(t, err)
	assert.Equal(t, 100, p)

	p, err = s.Progress(2)
	require.NoError(t, err)
	assert.Equal(t, 33, p)

	p, err = s.Progress(3)
	require.NoError(t, err)
	assert.Equal(t, 0, p)

	_, err = s.Progress(42)
	assert.True(t, IsNotFoundError(err))
}
