package harness

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/roach88/timeline/internal/model"
	"github.com/roach88/timeline/internal/store"
	"github.com/roach88/timeline/internal/tasks"
)

// positionTolerance is the allowed difference for position assertions.
const positionTolerance = 0.01

// AssertionError is returned when an assertion fails.
// It includes the final rows to help debug the failure.
type AssertionError struct {
	Type     string     // Assertion type for categorization
	Expected string     // Human-readable expected outcome
	Actual   string     // Human-readable actual outcome
	Rows     [][]string // Final packed rows for context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Rows) > 0 {
		fmt.Fprintf(&buf, "\nPacked rows:\n")
		for i, row := range e.Rows {
			fmt.Fprintf(&buf, "  [%d] %s\n", i, strings.Join(row, ", "))
		}
	}

	return buf.String()
}

// AssertionContext gives assertions access to the final state.
type AssertionContext struct {
	Ctx     context.Context
	Tasks   *tasks.Store
	Backend *store.SQLite

	// Refs resolves a task reference to its ID.
	Refs func(ref string) (int64, error)
}

// EvaluateAssertions checks every assertion and returns the failure messages.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errors []string

	for i, assertion := range assertions {
		if err := evaluate(result, assertion, actx); err != nil {
			errors = append(errors, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}

	return errors
}

func evaluate(result *Result, a Assertion, actx *AssertionContext) error {
	switch a.Type {
	case AssertRows:
		return assertRows(result, a)
	case AssertStatus:
		return assertStatus(result, a, actx)
	case AssertProgress:
		return assertProgress(result, a, actx)
	case AssertCount:
		if n := actx.Tasks.Len(); n != a.Count {
			return mismatch(result, a.Type, fmt.Sprintf("%d tasks", a.Count), fmt.Sprintf("%d tasks", n))
		}
	case AssertRejected:
		if result.Rejected != a.Count {
			return mismatch(result, a.Type, fmt.Sprintf("%d rejected steps", a.Count), fmt.Sprintf("%d rejected steps", result.Rejected))
		}
	case AssertRevision:
		rev, err := actx.Backend.Revision(actx.Ctx, store.KeyTasks)
		if err != nil {
			return fmt.Errorf("read revision: %w", err)
		}
		if rev != int64(a.Count) {
			return mismatch(result, a.Type, fmt.Sprintf("%d snapshot writes", a.Count), fmt.Sprintf("%d snapshot writes", rev))
		}
	case AssertPosition:
		got := actx.Tasks.DatePosition(a.Date)
		if math.Abs(got-a.Position) > positionTolerance {
			return mismatch(result, a.Type, fmt.Sprintf("%s at %.2f%%", a.Date, a.Position), fmt.Sprintf("%.4f%%", got))
		}
	case AssertToday:
		return assertToday(result, a, actx)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}

func mismatch(result *Result, typ, expected, actual string) *AssertionError {
	return &AssertionError{
		Type:     typ,
		Expected: expected,
		Actual:   actual,
		Rows:     result.RowRefs(),
	}
}

// assertRows compares the packed rows, as references, with the expected rows.
func assertRows(result *Result, a Assertion) error {
	got := result.RowRefs()
	if !reflect.DeepEqual(got, a.Rows) {
		return mismatch(result, a.Type, formatRows(a.Rows), formatRows(got))
	}
	return nil
}

func formatRows(rows [][]string) string {
	parts := make([]string, len(rows))
	for i, row := range rows {
		parts[i] = "[" + strings.Join(row, ", ") + "]"
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func lookup(actx *AssertionContext, ref string) (model.Task, error) {
	id, err := actx.Refs(ref)
	if err != nil {
		return model.Task{}, err
	}
	t, ok := actx.Tasks.Task(id)
	if !ok {
		return model.Task{}, fmt.Errorf("task %q not found", ref)
	}
	return t, nil
}

func assertStatus(result *Result, a Assertion, actx *AssertionContext) error {
	t, err := lookup(actx, a.Task)
	if err != nil {
		return err
	}
	if string(t.Status) != a.Status {
		return mismatch(result, a.Type, fmt.Sprintf("%s is %s", a.Task, a.Status), string(t.Status))
	}
	return nil
}

func assertProgress(result *Result, a Assertion, actx *AssertionContext) error {
	t, err := lookup(actx, a.Task)
	if err != nil {
		return err
	}
	got, err := actx.Tasks.Progress(t.ID)
	if err != nil {
		return err
	}
	if got != a.Progress {
		return mismatch(result, a.Type, fmt.Sprintf("%s at %d%%", a.Task, a.Progress), fmt.Sprintf("%d%%", got))
	}
	return nil
}

func assertToday(result *Result, a Assertion, actx *AssertionContext) error {
	ref, err := model.ParseDate(a.Date)
	if err != nil {
		return fmt.Errorf("today: %w", err)
	}

	got, ok := actx.Tasks.TodayPosition(ref)
	switch {
	case a.Outside && ok:
		return mismatch(result, a.Type, fmt.Sprintf("%s outside the window", a.Date), fmt.Sprintf("%.4f%%", got))
	case !a.Outside && !ok:
		return mismatch(result, a.Type, fmt.Sprintf("%s at %.2f%%", a.Date, a.Position), "outside the window")
	case !a.Outside && math.Abs(got-a.Position) > positionTolerance:
		return mismatch(result, a.Type, fmt.Sprintf("%s at %.2f%%", a.Date, a.Position), fmt.Sprintf("%.4f%%", got))
	}
	return nil
}
