package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func failingRun(t *testing.T, assertions ...Assertion) *Result {
	t.Helper()

	scenario := &Scenario{
		Name:        "failing",
		Description: "assertions that do not hold",
		Flow: []Step{
			{Op: OpAddTask, As: "a", Title: "A", Start: "2026-01-01", End: "2026-01-10",
				Items: []ItemSpec{{Text: "one", Completed: true}, {Text: "two"}}},
		},
		Assertions: assertions,
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, len(assertions))
	return result
}

func TestAssertions_ReportMismatches(t *testing.T) {
	tests := []struct {
		name      string
		assertion Assertion
		contains  string
	}{
		{"rows", Assertion{Type: AssertRows, Rows: [][]string{{"b"}}}, "Actual: [[a]]"},
		{"status", Assertion{Type: AssertStatus, Task: "a", Status: "done"}, "Actual: doing"},
		{"progress", Assertion{Type: AssertProgress, Task: "a", Progress: 100}, "Actual: 50%"},
		{"count", Assertion{Type: AssertCount, Count: 2}, "Actual: 1 tasks"},
		{"rejected", Assertion{Type: AssertRejected, Count: 1}, "Actual: 0 rejected steps"},
		{"revision", Assertion{Type: AssertRevision, Count: 1}, "Actual: 7 snapshot writes"},
		{"position", Assertion{Type: AssertPosition, Date: "2026-01-01", Position: 50}, "Actual: 0.0000%"},
		{"today outside", Assertion{Type: AssertToday, Date: "2026-01-01", Outside: true}, "outside the window"},
		{"today inside", Assertion{Type: AssertToday, Date: "2030-01-01", Position: 10}, "Actual: outside the window"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failingRun(t, tt.assertion)
			assert.Contains(t, result.Errors[0], "Assertion failed: "+tt.assertion.Type)
			assert.Contains(t, result.Errors[0], tt.contains)
		})
	}
}

func TestAssertions_UnknownTask(t *testing.T) {
	result := failingRun(t, Assertion{Type: AssertStatus, Task: "nope", Status: "todo"})
	assert.Contains(t, result.Errors[0], `unknown task reference "nope"`)
}

func TestAssertionError_IncludesRows(t *testing.T) {
	err := &AssertionError{
		Type:     "rows",
		Expected: "[[a]]",
		Actual:   "[[b]]",
		Rows:     [][]string{{"b", "c"}, {"d"}},
	}

	msg := err.Error()
	assert.Contains(t, msg, "Assertion failed: rows")
	assert.Contains(t, msg, "[0] b, c")
	assert.Contains(t, msg, "[1] d")
}
